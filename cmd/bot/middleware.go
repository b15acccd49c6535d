package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/cmd/bot/monitoring"
	"github.com/doorkeep-bot/doorkeep/pkg/logging"
	"github.com/doorkeep-bot/doorkeep/pkg/messages"
	"github.com/doorkeep-bot/doorkeep/pkg/request"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
	"github.com/gorilla/mux"
)

// actionProcessor handles one decoded user action.
type actionProcessor func(a IApp, i *discordgo.InteractionCreate) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.Any(logging.KeyError, rec),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(http.StatusText(http.StatusInternalServerError))); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path // If the route does not define a path, use the URL path.
			}
		} else {
			path = r.URL.Path // If the route is nil, use the URL path.
		}

		defer func() {
			// Run the deferred function after the request has been handled, as the status code will not be available until then.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionHandler decodes every inbound interaction into a single action
// and dispatches it. Slash commands, component presses and modal submissions
// all funnel through here so each interaction gets exactly one reply.
func interactionHandler(a IApp) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic handling interaction",
					slog.Any(logging.KeyError, rec),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		// Ticketing only operates inside guilds.
		if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
			return
		}

		if _, ok := a.GuildConfig(i.GuildID); !ok {
			a.Log().Warn("Interaction from unconfigured guild", slog.String("guild_id", i.GuildID))
			if err := respondEphemeral(a, i, messages.ErrServerNotConfigured); err != nil {
				a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		processor, err := resolveAction(i)
		if err != nil {
			a.Log().Error("Error resolving interaction",
				slog.String(logging.KeyError, err.Error()))

			if err := respondError(a, i); err != nil {
				a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
			return
		} else if processor == nil {
			// Not an interaction this bot handles.
			return
		}

		if err := processor(a, i); err != nil {
			a.Log().Error("Error processing interaction",
				slog.String(logging.KeyError, err.Error()))

			// Best effort; the processor may already have replied.
			if err := respondError(a, i); err != nil {
				a.Log().Debug("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
		}
	}
}

// resolveAction maps an interaction to its processor. A nil processor with a
// nil error means the interaction is not ours.
func resolveAction(i *discordgo.InteractionCreate) (actionProcessor, error) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name != TicketCmdName {
			return nil, nil
		}
		return ticketCommandReply, nil

	case discordgo.InteractionMessageComponent:
		act, err := ticketing.DecodeCustomID(i.MessageComponentData().CustomID)
		if err != nil {
			if errors.Is(err, ticketing.ErrUnknownAction) {
				return nil, nil
			}
			return nil, err
		}
		return componentProcessor(act)

	case discordgo.InteractionModalSubmit:
		act, err := ticketing.DecodeCustomID(i.ModalSubmitData().CustomID)
		if err != nil {
			if errors.Is(err, ticketing.ErrUnknownAction) {
				return nil, nil
			}
			return nil, err
		}
		step, ok := act.(ticketing.ModalStep)
		if !ok {
			return nil, fmt.Errorf("modal submit decoded to %T", act)
		}
		return func(a IApp, i *discordgo.InteractionCreate) error {
			return submitDetails(a, i, step)
		}, nil

	default:
		return nil, nil
	}
}

func componentProcessor(act ticketing.Action) (actionProcessor, error) {
	switch act := act.(type) {
	case ticketing.CreateTicket:
		return func(a IApp, i *discordgo.InteractionCreate) error {
			return createTicket(a, i, act)
		}, nil
	case ticketing.DeleteTicket:
		return func(a IApp, i *discordgo.InteractionCreate) error {
			return deleteTicket(a, i, act.ChannelID)
		}, nil
	case ticketing.CloseTicket:
		return func(a IApp, i *discordgo.InteractionCreate) error {
			return closeTicket(a, i)
		}, nil
	case ticketing.ConfirmClose:
		return func(a IApp, i *discordgo.InteractionCreate) error {
			return confirmClose(a, i, act.ChannelID)
		}, nil
	case ticketing.CancelClose:
		return cancelClose, nil
	case ticketing.SelectStep:
		return func(a IApp, i *discordgo.InteractionCreate) error {
			return advanceQuestionnaire(a, i, act)
		}, nil
	default:
		return nil, fmt.Errorf("component decoded to %T", act)
	}
}
