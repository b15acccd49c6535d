package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/cmd/bot/config"
	"github.com/doorkeep-bot/doorkeep/cmd/bot/monitoring"
	"github.com/doorkeep-bot/doorkeep/pkg/dataaccess"
	"github.com/doorkeep-bot/doorkeep/pkg/entities"
	"github.com/doorkeep-bot/doorkeep/pkg/logging"
	"github.com/doorkeep-bot/doorkeep/pkg/request"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"
)

// DiscordSession is the part of the Discord API the handlers consume.
// *discordgo.Session implements it.
type DiscordSession interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, options ...discordgo.RequestOption) error
	GatewayBot(options ...discordgo.RequestOption) (*discordgo.GatewayBotResponse, error)
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// IApp is the interface for the application.
type IApp interface {
	// Session returns the discord session.
	Session() DiscordSession

	// Log returns the application logger.
	Log() *slog.Logger

	// GuildConfig returns the ticketing configuration for a guild, if the
	// guild was configured at startup.
	GuildConfig(guildID string) (*entities.GuildConfig, bool)

	// Tickets returns the session store for pending tickets and drafts.
	Tickets() *ticketing.Store

	// Counters returns the ticket number allocator.
	Counters() *ticketing.CounterStore

	// TicketDal returns the finalized ticket archive, or nil when no
	// archive is configured.
	TicketDal() dataaccess.TicketDal

	// AllowCreate reports whether the user is within the ticket creation
	// rate limit.
	AllowCreate(userID string) bool
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the application.
	r *mux.Router

	// svr is the server for the application.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan any

	// tickets is the session store for per-channel ticket state.
	tickets *ticketing.Store

	// counters allocates ticket numbers.
	counters *ticketing.CounterStore

	// ticketDal is the finalized ticket archive; nil when disabled.
	ticketDal dataaccess.TicketDal

	// limiterMu guards limiters.
	limiterMu sync.Mutex

	// limiters holds the per-user ticket creation limiters.
	limiters map[string]*rate.Limiter
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router) *App {
	return &App{
		Logger:   l,
		r:        r,
		tickets:  ticketing.NewStore(),
		limiters: make(map[string]*rate.Limiter),
	}
}

func (a *App) Run() error {
	counters, err := ticketing.NewCounterStore(config.CountersFile)
	if err != nil {
		return fmt.Errorf("error opening counter store: %w", err)
	}
	a.counters = counters

	if dataaccess.MongoDB != nil {
		a.ticketDal = dataaccess.NewTicketDal(a.Log())

		// A rebuilt counters file must not reissue numbers that already
		// exist in the archive.
		guildIDs := make([]string, 0, len(config.Guilds))
		for guildID := range config.Guilds {
			guildIDs = append(guildIDs, guildID)
		}
		reconcileCounters(a, guildIDs)
	}

	// Register bot.
	if err := a.RegisterBot(); err != nil {
		return fmt.Errorf("error registering bot: %w", err)
	}

	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info(fmt.Sprintf("Logged in as %s#%s", r.User.Username, r.User.Discriminator))

		// The panels can only be refreshed once the session knows who it is.
		go a.ensureTicketPanels()
	})

	if err := a.RegisterDiscordHandlers(); err != nil {
		return fmt.Errorf("error registering discord handlers: %w", err)
	}

	// Start event listener.
	go a.eventListener()

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	// Slash commands are registered per configured guild; a failure for one
	// guild must not abort the others.
	a.registerSlashCommands()

	a.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	// Register listener for shutdown signal.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	// Process shutdown signal.
	for sig := range c {
		a.Info("Received shutdown signal", slog.String("signal", sig.String()))
		if err := a.ShutdownHook(); err != nil {
			a.Error("Error shutting down application", slog.String(logging.KeyError, err.Error()))
		}
		os.Exit(0)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	a.unregisterSlashCommands()

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		return fmt.Errorf("error closing connection to Discord: %w", err)
	}
	return nil
}

func (a *App) RegisterBot() error {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	dg, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	if a.eventNotifier == nil {
		// Create event notifier. This is used to observe events. It is buffered to prevent blocking.
		a.eventNotifier = make(chan any, 100)
	}

	dg.SetEventNotifier(a.eventNotifier)

	a.s = dg
	return nil
}

func (a *App) RegisterDiscordHandlers() error {
	// Bot joined guild.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Slash commands, buttons, select menus and modal submissions all
	// arrive as interactions and go through a single dispatcher.
	a.s.AddHandler(interactionHandler(a))

	// Messages sent into pending ticket channels are guarded until the
	// questionnaire completes.
	a.s.AddHandler(pendingMessageGuard(a))

	return nil
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				monitoring.TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				monitoring.TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			monitoring.TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

// registerSlashCommands registers the ticket command for every configured
// guild. Per-guild failures are logged and skipped.
func (a *App) registerSlashCommands() {
	for guildID := range config.Guilds {
		if _, err := a.s.ApplicationCommandCreate(config.ApplicationId, guildID, ticketCmd); err != nil {
			a.Error("Error creating ticket command for guild",
				slog.String("guild_id", guildID),
				slog.String(logging.KeyError, err.Error()))
			continue
		}
		a.Debug("Registered ticket command", slog.String("guild_id", guildID))
	}
}

func (a *App) unregisterSlashCommands() {
	for guildID := range config.Guilds {
		cmds, err := a.s.ApplicationCommands(config.ApplicationId, guildID)
		if err != nil {
			a.Error("Error listing commands for guild",
				slog.String("guild_id", guildID),
				slog.String(logging.KeyError, err.Error()))
			continue
		}

		for _, cmd := range cmds {
			if cmd.Name != TicketCmdName {
				continue
			}
			if err := a.s.ApplicationCommandDelete(config.ApplicationId, guildID, cmd.ID); err != nil {
				a.Error("Error deleting ticket command for guild",
					slog.String("guild_id", guildID),
					slog.String(logging.KeyError, err.Error()))
			}
		}
	}
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server")
		if err := a.svr.ListenAndServe(); err != nil {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	// PathMetrics is the path for metrics.
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)

	// PathHealth is the path for health check.
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), a)).Methods(http.MethodGet)

	// NotFoundHandler is the handler for 404.
	a.r.NotFoundHandler = request.NotFoundHandler(a.Log())

	// MethodNotAllowedHandler is the handler for 405.
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Log())
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:    ":" + config.MonitoringPort,
		Handler: a.r,
	}
}

func (a *App) Session() DiscordSession {
	return a.s
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) GuildConfig(guildID string) (*entities.GuildConfig, bool) {
	cfg, ok := config.Guilds[guildID]
	return cfg, ok
}

func (a *App) Tickets() *ticketing.Store {
	return a.tickets
}

func (a *App) Counters() *ticketing.CounterStore {
	return a.counters
}

func (a *App) TicketDal() dataaccess.TicketDal {
	return a.ticketDal
}

// AllowCreate applies the per-user ticket creation rate limit: a small burst,
// refilled every thirty seconds.
func (a *App) AllowCreate(userID string) bool {
	a.limiterMu.Lock()
	defer a.limiterMu.Unlock()

	l, ok := a.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(createLimitInterval), createLimitBurst)
		a.limiters[userID] = l
	}
	return l.Allow()
}
