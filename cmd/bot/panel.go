package main

import (
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/cmd/bot/config"
	"github.com/doorkeep-bot/doorkeep/pkg/logging"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
)

const (
	// TicketEmoji is the emoji used on the general inquiry button. (Ticket)
	TicketEmoji = "\U0001F3AB"

	// GiveawayEmoji is the emoji used on the giveaway claim button. (Gift)
	GiveawayEmoji = "\U0001F381"

	// SupportEmoji is the emoji used on the tech support button. (SOS)
	SupportEmoji = "\U0001F198"
)

// panelEmbed is the persistent ticket panel content.
var panelEmbed = &discordgo.MessageEmbed{
	Title:       "\U0001F4E9 Support Ticket System",
	Description: "Please select the appropriate ticket type below. Our support team will assist you shortly.",
	Color:       colourBlurple,
	Fields: []*discordgo.MessageEmbedField{
		{Name: "\U0001F3AB General Inquiry", Value: "For any general questions or assistance", Inline: true},
		{Name: "\U0001F381 Giveaway Claim", Value: "To claim your giveaway prize or reward", Inline: true},
		{Name: "\U0001F198 Technical Support", Value: "For technical issues or account problems", Inline: true},
	},
	Footer: &discordgo.MessageEmbedFooter{Text: "Response time: Typically within 24 hours"},
}

// panelComponents are the three entry point buttons of the panel.
var panelComponents = []discordgo.MessageComponent{
	discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    fmt.Sprintf("%s General Inquiry", TicketEmoji),
				Style:    discordgo.PrimaryButton,
				CustomID: ticketing.CustomIDCreateTicket,
			},
			discordgo.Button{
				Label:    fmt.Sprintf("%s Giveaway/Event Claim", GiveawayEmoji),
				Style:    discordgo.SuccessButton,
				CustomID: ticketing.CustomIDCreateGiveawayTicket,
			},
			discordgo.Button{
				Label:    fmt.Sprintf("%s Tech Support", SupportEmoji),
				Style:    discordgo.DangerButton,
				CustomID: ticketing.CustomIDCreateSupportTicket,
			},
		},
	},
}

// ensureTicketPanels refreshes the persistent ticket panel in every
// configured guild. An existing panel is edited in place so the channel does
// not fill up with duplicates across restarts.
func (a *App) ensureTicketPanels() {
	for guildID, cfg := range config.Guilds {
		if err := a.ensureTicketPanel(cfg.PanelChannelID); err != nil {
			a.Error("Error refreshing ticket panel",
				slog.String("guild_id", guildID),
				slog.String(logging.KeyError, err.Error()))
		}
	}
}

func (a *App) ensureTicketPanel(panelChannelID string) error {
	msgs, err := a.s.ChannelMessages(panelChannelID, 10, "", "", "")
	if err != nil {
		return fmt.Errorf("error fetching panel channel messages: %w", err)
	}

	edit := &discordgo.MessageEdit{
		Channel:    panelChannelID,
		Embed:      panelEmbed,
		Components: panelComponents,
	}

	for _, m := range msgs {
		if m.Author == nil || a.s.State.User == nil || m.Author.ID != a.s.State.User.ID {
			continue
		}
		if !messageHasButton(m, ticketing.CustomIDCreateTicket) {
			continue
		}

		edit.ID = m.ID
		if _, err := a.s.ChannelMessageEditComplex(edit); err != nil {
			return fmt.Errorf("error updating ticket panel: %w", err)
		}
		return nil
	}

	_, err = a.s.ChannelMessageSendComplex(panelChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{panelEmbed},
		Components: panelComponents,
	})
	if err != nil {
		return fmt.Errorf("error sending ticket panel: %w", err)
	}
	return nil
}

// messageHasButton reports whether a fetched message carries a button with
// the given custom ID.
func messageHasButton(m *discordgo.Message, customID string) bool {
	for _, row := range m.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if b, ok := comp.(*discordgo.Button); ok && b.CustomID == customID {
				return true
			}
		}
	}
	return false
}

// ticketCommandReply is the response to the /ticket slash command: an
// ephemeral shortcut to the general create button.
func ticketCommandReply(a IApp, i *discordgo.InteractionCreate) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Ticket Creation",
				Description: "Click the button below to create a new support ticket.",
				Color:       colourBlurple,
				Footer:      &discordgo.MessageEmbedFooter{Text: "You can create multiple tickets if needed"},
			}},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    fmt.Sprintf("%s Create Ticket", TicketEmoji),
							Style:    discordgo.PrimaryButton,
							CustomID: ticketing.CustomIDCreateTicket,
						},
					},
				},
			},
		},
	})
}
