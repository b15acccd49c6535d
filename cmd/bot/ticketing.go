package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/cmd/bot/monitoring"
	"github.com/doorkeep-bot/doorkeep/pkg/logging"
	"github.com/doorkeep-bot/doorkeep/pkg/messages"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// TicketCmdName is the slash command for creating a ticket.
	TicketCmdName = "ticket"

	// CancelEmoji is the emoji used on cancel and delete buttons. (Cross)
	CancelEmoji = "❌"

	// CloseEmoji is the emoji used on close buttons. (Padlock)
	CloseEmoji = "\U0001F512"
)

const (
	// createLimitInterval is the refill interval of the per-user ticket
	// creation limiter.
	createLimitInterval = 30 * time.Second

	// createLimitBurst is the number of tickets a user may create before the
	// limiter starts refusing.
	createLimitBurst = 2
)

// ticketCmd is the slash command for creating a ticket.
var ticketCmd = &discordgo.ApplicationCommand{
	Name:        TicketCmdName,
	Type:        discordgo.ChatApplicationCommand,
	Description: "Create a new support ticket",
}

// createTicket provisions a ticket channel for the interacting user and
// starts the questionnaire. A preset reason skips the initial selection.
func createTicket(a IApp, i *discordgo.InteractionCreate, act ticketing.CreateTicket) error {
	cfg, ok := a.GuildConfig(i.GuildID)
	if !ok {
		return respondEphemeral(a, i, messages.ErrServerNotConfigured)
	}

	user := i.Member.User

	if !a.AllowCreate(user.ID) {
		return respondEphemeral(a, i, messages.ErrCreateTooFast)
	}

	// One open ticket per user. The channel topic carries the owner's user
	// ID, so an existing ticket is found by naming convention plus topic.
	channels, err := a.Session().GuildChannels(i.GuildID)
	if err != nil {
		return fmt.Errorf("error listing guild channels: %w", err)
	}
	for _, c := range channels {
		if ticketing.IsTicketChannelName(c.Name) && c.Topic == user.ID {
			return respondEphemeralEmbed(a, i, &discordgo.MessageEmbed{
				Title: "Existing Ticket Found",
				Description: fmt.Sprintf("You already have an open ticket: <#%s>\n\n"+
					"Please use your existing ticket or close it before creating a new one.", c.ID),
				Color: colourRed,
			})
		}
	}

	number, err := a.Counters().Next(i.GuildID)
	if err != nil {
		return fmt.Errorf("error allocating ticket number: %w", err)
	}

	// The channel is visible to the owner but locked for sending until the
	// questionnaire completes. Staff can send from the start.
	channel, err := a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:     ticketing.ChannelName(number),
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    user.ID,
		ParentID: cfg.CategoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   i.GuildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    user.ID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel,
				Deny:  discordgo.PermissionSendMessages,
			},
			{
				ID:    cfg.StaffRoleID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating ticket channel: %w", err)
	}

	welcome, err := a.Session().ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title: fmt.Sprintf("Ticket #%d", number),
			Description: fmt.Sprintf("<@%s>, please complete the ticket creation process below.\n\n"+
				"You can cancel this ticket using the button below if needed.", user.ID),
			Color:  colourBlurple,
			Footer: &discordgo.MessageEmbedFooter{Text: "This process helps us serve you better"},
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    fmt.Sprintf("%s Cancel Ticket", CancelEmoji),
						Style:    discordgo.SecondaryButton,
						CustomID: ticketing.DeleteTicketCustomID(channel.ID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error sending welcome message: %w", err)
	}

	a.Tickets().PutPending(channel.ID, &ticketing.PendingTicket{
		UserID:           user.ID,
		GuildID:          i.GuildID,
		Number:           number,
		WelcomeMessageID: welcome.ID,
	})

	monitoring.TicketsCreated.WithLabelValues(i.GuildID).Inc()

	draft := ticketing.NewDraft(user.ID, i.GuildID, act.Preset)
	a.Tickets().PutDraft(channel.ID, draft)

	step, err := ticketing.EnterAt(draft)
	if err != nil {
		return fmt.Errorf("error entering questionnaire: %w", err)
	}

	return presentStep(a, i, channel.ID, step)
}

// deleteTicket cancels a ticket and removes its channel. The owner, admins
// and the guild owner are allowed; an already deleted channel is treated as
// success.
func deleteTicket(a IApp, i *discordgo.InteractionCreate, channelID string) error {
	channel, err := a.Session().Channel(channelID)
	if err != nil {
		if isUnknownEntity(err) {
			a.Tickets().Purge(channelID)
			return respondEphemeralEmbed(a, i, alreadyClosedEmbed())
		}
		return fmt.Errorf("error getting channel: %w", err)
	}

	owner := ticketOwner(a, channelID, channel)

	actor, err := ticketActor(a, i)
	if err != nil {
		return fmt.Errorf("error resolving member: %w", err)
	}
	if !actor.CanManage(owner) {
		return respondEphemeralEmbed(a, i, permissionDeniedEmbed())
	}

	if _, err := a.Session().ChannelDelete(channelID); err != nil && !isUnknownEntity(err) {
		return fmt.Errorf("error deleting channel: %w", err)
	}

	a.Tickets().Purge(channelID)
	monitoring.TicketsClosed.WithLabelValues(i.GuildID).Inc()

	if err := respondEphemeralEmbed(a, i, &discordgo.MessageEmbed{
		Title:       "Ticket Cancelled",
		Description: fmt.Sprintf("The ticket has been successfully cancelled by <@%s>.", actor.ID),
		Color:       colourGreen,
	}); err != nil && !isUnknownEntity(err) {
		return fmt.Errorf("error responding to interaction: %w", err)
	}

	// The owner learns about a foreign cancellation by DM. Failure to
	// deliver must not fail the cancellation.
	if owner != "" && owner != actor.ID {
		go notifyTicketClosed(a, owner, channel.Name, i.GuildID, actor.ID)
	}

	return nil
}

// notifyTicketClosed DMs the ticket owner that someone else removed their
// ticket.
func notifyTicketClosed(a IApp, ownerID, channelName, guildID, closedBy string) {
	dm, err := a.Session().UserChannelCreate(ownerID)
	if err != nil {
		a.Log().Warn("Could not open DM channel with ticket owner", slog.String(logging.KeyError, err.Error()))
		return
	}

	guildName := guildID
	if guild, err := a.Session().Guild(guildID); err == nil {
		guildName = guild.Name
	}

	_, err = a.Session().ChannelMessageSendEmbed(dm.ID, &discordgo.MessageEmbed{
		Title:       "Your Ticket Was Closed",
		Description: fmt.Sprintf("Your ticket in %s was closed by <@%s>.", guildName, closedBy),
		Color:       colourOrange,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket Channel", Value: channelName, Inline: true},
			{Name: "Closed By", Value: fmt.Sprintf("<@%s>", closedBy), Inline: true},
		},
	})
	if err != nil {
		a.Log().Warn("Could not DM ticket owner", slog.String(logging.KeyError, err.Error()))
	}
}

// closeTicket presents the close confirmation prompt for the current channel.
func closeTicket(a IApp, i *discordgo.InteractionCreate) error {
	channel, err := a.Session().Channel(i.ChannelID)
	if err != nil {
		return fmt.Errorf("error getting channel: %w", err)
	}

	if !ticketing.IsTicketChannelName(channel.Name) {
		return respondEphemeralEmbed(a, i, &discordgo.MessageEmbed{
			Title:       "Invalid Action",
			Description: messages.ErrTicketChannelOnly,
			Color:       colourRed,
		})
	}

	owner := ticketOwner(a, i.ChannelID, channel)

	actor, err := ticketActor(a, i)
	if err != nil {
		return fmt.Errorf("error resolving member: %w", err)
	}
	if !actor.CanManage(owner) {
		return respondEphemeralEmbed(a, i, permissionDeniedEmbed())
	}

	// The confirmation is visible to the whole channel so staff see the
	// pending closure.
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Confirm Ticket Closure",
				Description: "Are you sure you want to close this ticket? This action cannot be undone.",
				Color:       colourOrange,
			}},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    fmt.Sprintf("%s Confirm Close", CloseEmoji),
							Style:    discordgo.DangerButton,
							CustomID: ticketing.ConfirmCloseCustomID(i.ChannelID),
						},
						discordgo.Button{
							Label:    fmt.Sprintf("%s Cancel", CancelEmoji),
							Style:    discordgo.SecondaryButton,
							CustomID: ticketing.CustomIDCancelClose,
						},
					},
				},
			},
		},
	})
}

// confirmClose completes a previously requested close. A channel that is
// already gone still purges the session state and reports success.
func confirmClose(a IApp, i *discordgo.InteractionCreate, channelID string) error {
	_, err := a.Session().ChannelDelete(channelID)
	if err != nil && !isUnknownEntity(err) {
		return fmt.Errorf("error deleting channel: %w", err)
	}

	a.Tickets().Purge(channelID)
	monitoring.TicketsClosed.WithLabelValues(i.GuildID).Inc()

	if err != nil {
		// The channel was already gone before we got to it.
		if rerr := respondEphemeralEmbed(a, i, alreadyClosedEmbed()); rerr != nil && !isUnknownEntity(rerr) {
			return fmt.Errorf("error responding to interaction: %w", rerr)
		}
		return nil
	}

	// The interaction lived in the deleted channel, so the acknowledgement
	// usually fails. That is fine.
	if rerr := respondEphemeralEmbed(a, i, &discordgo.MessageEmbed{
		Title:       "Ticket Closed",
		Description: "This ticket has been successfully closed.",
		Color:       colourGreen,
	}); rerr != nil && !isUnknownEntity(rerr) {
		a.Log().Debug("Error acknowledging ticket closure", slog.String(logging.KeyError, rerr.Error()))
	}
	return nil
}

// cancelClose abandons a previously requested close, replacing the
// confirmation prompt.
func cancelClose(a IApp, i *discordgo.InteractionCreate) error {
	return respondUpdate(a, i, &discordgo.MessageEmbed{
		Title:       "Closure Cancelled",
		Description: "The ticket will remain open.",
		Color:       colourGreen,
	}, []discordgo.MessageComponent{})
}

// ticketOwner resolves the owning user of a ticket channel. The session
// store is authoritative while the ticket is pending; finalized tickets fall
// back to the channel topic, which carries the owner's user ID.
func ticketOwner(a IApp, channelID string, channel *discordgo.Channel) string {
	if owner, ok := a.Tickets().Owner(channelID); ok {
		return owner
	}
	if channel != nil && strings.TrimSpace(channel.Topic) != "" {
		return strings.TrimSpace(channel.Topic)
	}
	return ""
}

func permissionDeniedEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Permission Denied",
		Description: messages.ErrPermissionDenied,
		Color:       colourRed,
	}
}

func alreadyClosedEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Ticket Already Closed",
		Description: "This ticket channel has already been deleted.",
		Color:       colourGreen,
	}
}

// reconcileCounters raises each guild's ticket counter to the highest
// archived ticket number. A rebuilt or lost counters file would otherwise
// hand out numbers that collide with existing ticket channels.
func reconcileCounters(a IApp, guildIDs []string) {
	dal := a.TicketDal()
	if dal == nil {
		return
	}

	for _, guildID := range guildIDs {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		latest, err := dal.GetLatestTicket(ctx, guildID)
		cancel()
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				a.Log().Warn("Could not fetch latest archived ticket",
					slog.String("guild_id", guildID),
					slog.String(logging.KeyError, err.Error()))
			}
			continue
		}

		if err := a.Counters().Ensure(guildID, latest.Number); err != nil {
			a.Log().Error("Could not advance ticket counter",
				slog.String("guild_id", guildID),
				slog.String(logging.KeyError, err.Error()))
		}
	}
}
