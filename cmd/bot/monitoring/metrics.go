package monitoring

import (
	"fmt"

	"github.com/doorkeep-bot/doorkeep/cmd/bot/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalDiscordEvents is the total number of events.
	TotalDiscordEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_discord_events", config.AppName),
			Help: "Total number of events",
		},
		[]string{"event"},
	)

	// HttpTotalRequests is the total number of http requests.
	HttpTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_http_total_requests", config.AppName),
			Help: "Total number of http requests",
		},
		[]string{"path", "method", "status_code"},
	)

	// HttpRequestDuration is the duration of the http request.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_http_request_duration", config.AppName),
			Help: "Duration of the http request",
		},
		[]string{"path", "method", "status_code"},
	)

	// TotalDiscordGuilds is the number of guilds the bot is currently in.
	TotalDiscordGuilds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_total_discord_guilds", config.AppName),
			Help: "Total number of discord guilds",
		},
	)

	// TicketsCreated is the total number of ticket channels provisioned.
	TicketsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_tickets_created", config.AppName),
			Help: "Total number of ticket channels created",
		},
		[]string{"guild_id"},
	)

	// TicketsFinalized is the total number of tickets that completed the
	// questionnaire.
	TicketsFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_tickets_finalized", config.AppName),
			Help: "Total number of tickets finalized",
		},
		[]string{"guild_id", "reason"},
	)

	// TicketsClosed is the total number of tickets closed or cancelled.
	TicketsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_tickets_closed", config.AppName),
			Help: "Total number of tickets closed or cancelled",
		},
		[]string{"guild_id"},
	)

	// GuardedMessagesRemoved is the total number of messages removed from
	// pending ticket channels.
	GuardedMessagesRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_guarded_messages_removed", config.AppName),
			Help: "Total number of messages removed from pending ticket channels",
		},
	)
)
