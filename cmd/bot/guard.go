package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/cmd/bot/monitoring"
	"github.com/doorkeep-bot/doorkeep/pkg/logging"
)

// guardReminderTTL is how long the reminder stays up before it is removed.
const guardReminderTTL = 5 * time.Second

// pendingMessageGuard removes user messages sent into a ticket channel whose
// questionnaire has not completed yet, and posts a short lived reminder to
// finish the setup first.
func pendingMessageGuard(a IApp) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}

		if !a.Tickets().HasPending(m.ChannelID) {
			return
		}

		if err := a.Session().ChannelMessageDelete(m.ChannelID, m.ID); err != nil && !isUnknownEntity(err) {
			a.Log().Warn("Could not remove message from pending ticket", slog.String(logging.KeyError, err.Error()))
			return
		}

		monitoring.GuardedMessagesRemoved.Inc()

		reminder, err := a.Session().ChannelMessageSendEmbed(m.ChannelID, &discordgo.MessageEmbed{
			Title:       "Please Complete Ticket Creation",
			Description: fmt.Sprintf("<@%s>, please finish setting up your ticket before sending messages.", m.Author.ID),
			Color:       colourOrange,
		})
		if err != nil {
			a.Log().Warn("Could not send guard reminder", slog.String(logging.KeyError, err.Error()))
			return
		}

		time.AfterFunc(guardReminderTTL, func() {
			if err := a.Session().ChannelMessageDelete(m.ChannelID, reminder.ID); err != nil && !isUnknownEntity(err) {
				a.Log().Debug("Could not remove guard reminder", slog.String(logging.KeyError, err.Error()))
			}
		})
	}
}
