package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/cmd/bot/monitoring"
	"github.com/doorkeep-bot/doorkeep/pkg/custom"
	"github.com/doorkeep-bot/doorkeep/pkg/dataaccess"
	"github.com/doorkeep-bot/doorkeep/pkg/entities"
	"github.com/doorkeep-bot/doorkeep/pkg/logging"
	"github.com/doorkeep-bot/doorkeep/pkg/messages"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
	"go.mongodb.org/mongo-driver/mongo"
)

// advanceQuestionnaire applies one select menu answer and presents whatever
// the questionnaire asks for next.
func advanceQuestionnaire(a IApp, i *discordgo.InteractionCreate, act ticketing.SelectStep) error {
	if _, err := a.Session().Channel(act.ChannelID); err != nil {
		if isUnknownEntity(err) {
			a.Tickets().Purge(act.ChannelID)
			return respondEphemeralEmbed(a, i, staleTicketEmbed("Ticket channel not found. Please create a new ticket."))
		}
		return fmt.Errorf("error getting channel: %w", err)
	}

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		return fmt.Errorf("expected exactly one selection, got %d", len(values))
	}

	draft, ok := a.Tickets().Draft(act.ChannelID)
	if !ok {
		// The reason step can arrive before any draft exists, for example
		// after a restart while the prompt was still on screen.
		if act.Node != ticketing.NodeReason {
			return respondEphemeralEmbed(a, i, staleTicketEmbed(messages.ErrTicketStateNotFound))
		}
		draft = ticketing.NewDraft(i.Member.User.ID, i.GuildID, "")
		a.Tickets().PutDraft(act.ChannelID, draft)
	}

	step, err := ticketing.Advance(draft, act.Node, values[0])
	if err != nil {
		return fmt.Errorf("error advancing questionnaire: %w", err)
	}

	return presentNextStep(a, i, act.ChannelID, step)
}

// submitDetails records a modal submission and finalizes the ticket.
func submitDetails(a IApp, i *discordgo.InteractionCreate, act ticketing.ModalStep) error {
	draft, ok := a.Tickets().Draft(act.ChannelID)
	if !ok {
		return respondEphemeralEmbed(a, i, staleTicketEmbed(messages.ErrTicketStateNotFound))
	}

	step, err := ticketing.Submit(draft, act.Node, modalValues(i))
	if err != nil {
		return fmt.Errorf("error submitting details: %w", err)
	}

	if !step.Finalize {
		return fmt.Errorf("capture step %s did not complete the questionnaire", act.Node)
	}
	return finalizeTicket(a, i, act.ChannelID)
}

// presentStep renders the first questionnaire step as the reply to a fresh
// interaction. Selection prompts become an ephemeral message, capture steps
// open a modal.
func presentStep(a IApp, i *discordgo.InteractionCreate, channelID string, step *ticketing.Step) error {
	switch {
	case step.Prompt != nil:
		return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags:      discordgo.MessageFlagsEphemeral,
				Embeds:     []*discordgo.MessageEmbed{promptEmbed(step.Prompt)},
				Components: promptComponents(step.Prompt, channelID),
			},
		})
	case step.Capture != nil:
		return a.Session().InteractionRespond(i.Interaction, modalResponse(step.Capture, channelID))
	default:
		return finalizeTicket(a, i, channelID)
	}
}

// presentNextStep renders a mid-questionnaire step. Selection prompts replace
// the message that held the answered menu.
func presentNextStep(a IApp, i *discordgo.InteractionCreate, channelID string, step *ticketing.Step) error {
	switch {
	case step.Prompt != nil:
		return respondUpdate(a, i, promptEmbed(step.Prompt), promptComponents(step.Prompt, channelID))
	case step.Capture != nil:
		return a.Session().InteractionRespond(i.Interaction, modalResponse(step.Capture, channelID))
	default:
		return finalizeTicket(a, i, channelID)
	}
}

func promptEmbed(p *ticketing.OptionsPrompt) *discordgo.MessageEmbed {
	colour := colourBlurple
	if p.Node != ticketing.NodeReason {
		colour = colourGold
	}
	return &discordgo.MessageEmbed{
		Title:       p.Title,
		Description: p.Description,
		Color:       colour,
	}
}

func promptComponents(p *ticketing.OptionsPrompt, channelID string) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(p.Options))
	for _, opt := range p.Options {
		options = append(options, discordgo.SelectMenuOption{
			Label: opt.Label,
			Value: opt.Value,
			Emoji: discordgo.ComponentEmoji{Name: opt.Emoji},
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    ticketing.StepCustomID(p.Node, channelID),
					Placeholder: p.Placeholder,
					Options:     options,
				},
			},
		},
	}
}

func modalResponse(form *ticketing.FormPrompt, channelID string) *discordgo.InteractionResponse {
	rows := make([]discordgo.MessageComponent, 0, len(form.Fields))
	for _, f := range form.Fields {
		style := discordgo.TextInputShort
		if f.Multiline {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    f.Key,
					Label:       f.Label,
					Style:       style,
					Placeholder: f.Placeholder,
					Required:    true,
					MinLength:   f.MinLen,
					MaxLength:   f.MaxLen,
				},
			},
		})
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   ticketing.StepCustomID(form.Node, channelID),
			Title:      form.Title,
			Components: rows,
		},
	}
}

// modalValues extracts the submitted text inputs keyed by their custom IDs.
func modalValues(i *discordgo.InteractionCreate) map[string]string {
	values := make(map[string]string)
	for _, row := range i.ModalSubmitData().Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if ti, ok := comp.(*discordgo.TextInput); ok {
				values[ti.CustomID] = ti.Value
			}
		}
	}
	return values
}

// finalizeTicket completes a ticket: the owner gets write access, the
// welcome message is replaced by the consolidated summary, and the session
// state is dropped. From here on the ticket lives entirely in the channel.
func finalizeTicket(a IApp, i *discordgo.InteractionCreate, channelID string) error {
	pending, ok := a.Tickets().Pending(channelID)
	if !ok {
		return respondEphemeralEmbed(a, i, staleTicketEmbed(messages.ErrFinalizeFailed))
	}
	draft, ok := a.Tickets().Draft(channelID)
	if !ok {
		return respondEphemeralEmbed(a, i, staleTicketEmbed(messages.ErrFinalizeFailed))
	}

	cfg, ok := a.GuildConfig(i.GuildID)
	if !ok {
		return respondEphemeral(a, i, messages.ErrServerNotConfigured)
	}

	// The owner may now talk in their ticket.
	err := a.Session().ChannelPermissionSet(channelID, pending.UserID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionViewChannel|discordgo.PermissionSendMessages, 0)
	if err != nil {
		// The channel vanished mid questionnaire, so there is nothing left
		// to finalize.
		if isUnknownEntity(err) {
			a.Tickets().Purge(channelID)
			return respondEphemeralEmbed(a, i, staleTicketEmbed(messages.ErrFinalizeFailed))
		}
		return fmt.Errorf("error granting channel access: %w", err)
	}

	// The welcome message carried the cancel button; the summary message
	// replaces it as the channel's control surface.
	if err := a.Session().ChannelMessageDelete(channelID, pending.WelcomeMessageID); err != nil && !isUnknownEntity(err) {
		a.Log().Warn("Could not remove welcome message", slog.String(logging.KeyError, err.Error()))
	}

	summary := &discordgo.MessageSend{
		Content: ticketing.SummaryContent(draft, pending.Number, fmt.Sprintf("<@%s>", pending.UserID)),
		Embeds: []*discordgo.MessageEmbed{{
			Title:       fmt.Sprintf("Ticket #%d", pending.Number),
			Description: fmt.Sprintf("A new ticket has been created by <@%s>", pending.UserID),
			Color:       colourBlurple,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Reason", Value: draft.Reason.Display(), Inline: true},
				{Name: "Created At", Value: fmt.Sprintf("<t:%d:f>", time.Now().Unix()), Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: "User ID: " + pending.UserID},
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    fmt.Sprintf("%s Close Ticket", CloseEmoji),
						Style:    discordgo.DangerButton,
						CustomID: ticketing.CustomIDCloseTicket,
					},
					discordgo.Button{
						Label:    fmt.Sprintf("%s Delete Ticket", CancelEmoji),
						Style:    discordgo.SecondaryButton,
						CustomID: ticketing.DeleteTicketCustomID(channelID),
					},
				},
			},
		},
	}
	if _, err := a.Session().ChannelMessageSendComplex(channelID, summary); err != nil {
		return fmt.Errorf("error sending ticket summary: %w", err)
	}

	a.Tickets().Purge(channelID)
	monitoring.TicketsFinalized.WithLabelValues(i.GuildID, string(draft.Reason)).Inc()

	if err := respondEphemeralEmbed(a, i, &discordgo.MessageEmbed{
		Title:       "Ticket Created",
		Description: fmt.Sprintf("Your ticket has been successfully created: <#%s>", channelID),
		Color:       colourGreen,
	}); err != nil {
		a.Log().Warn("Error acknowledging ticket creation", slog.String(logging.KeyError, err.Error()))
	}

	if cfg.LogChannelID != "" {
		go logTicketCreated(a, cfg.LogChannelID, channelID, pending, draft)
	}

	if dal := a.TicketDal(); dal != nil {
		go archiveTicket(a, dal, channelID, i.Member.User.Username, pending, draft)
	}

	return nil
}

// logTicketCreated posts the finalization notice to the guild's log channel.
// Best effort only.
func logTicketCreated(a IApp, logChannelID, channelID string, pending *ticketing.PendingTicket, draft *ticketing.Draft) {
	_, err := a.Session().ChannelMessageSendEmbed(logChannelID, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Ticket #%d Created", pending.Number),
		Color: colourBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", pending.UserID), Inline: true},
			{Name: "Channel", Value: fmt.Sprintf("<#%s>", channelID), Inline: true},
			{Name: "Reason", Value: draft.Reason.Display(), Inline: false},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		a.Log().Warn("Could not log ticket creation", slog.String(logging.KeyError, err.Error()))
	}
}

// archiveTicket writes the finalized ticket record to the archive. Best
// effort only.
func archiveTicket(a IApp, dal dataaccess.TicketDal, channelID, username string, pending *ticketing.PendingTicket, draft *ticketing.Draft) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// A retried finalization must not rewrite an archived record.
	existing, err := dal.GetTicket(ctx, pending.GuildID, channelID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		a.Log().Warn("Could not check for archived ticket", slog.String(logging.KeyError, err.Error()), slog.String(logging.KeyDal, "ticket_dal"))
	}
	if existing != nil {
		return
	}

	details := make(map[string]string, len(draft.Details))
	for k, v := range draft.Details {
		details[k] = v
	}

	ticket := &entities.Ticket{
		Number:    pending.Number,
		GuildID:   pending.GuildID,
		ChannelID: channelID,
		UserID:    pending.UserID,
		Username:  username,
		Reason:    string(draft.Reason),
		Details:   details,
		CreatedAt: custom.Now(),
	}

	if err := dal.SaveTicket(ctx, ticket); err != nil {
		a.Log().Error("Error archiving ticket", slog.String(logging.KeyError, err.Error()), slog.String(logging.KeyDal, "ticket_dal"))
	}
}

func staleTicketEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Error",
		Description: description,
		Color:       colourRed,
	}
}
