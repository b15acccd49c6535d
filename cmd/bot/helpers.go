package main

import (
	"errors"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/pkg/messages"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
)

// Embed colours used across the bot's replies.
const (
	colourBlurple = 0x5865F2
	colourGreen   = 0x57F287
	colourRed     = 0xED4245
	colourOrange  = 0xE67E22
	colourGold    = 0xF1C40F
)

func respondError(a IApp, i *discordgo.InteractionCreate) error {
	return respondEphemeral(a, i, messages.ErrUserErrorProcessing)
}

func respondEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEphemeralEmbed(a IApp, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// respondUpdate replaces the message the interacted component belongs to.
func respondUpdate(a IApp, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// isUnknownEntity reports whether the error is Discord telling us the channel
// or message is already gone. Cleanup paths treat this as success.
func isUnknownEntity(err error) bool {
	if err == nil {
		return false
	}
	er := new(discordgo.RESTError)
	if !errors.As(err, &er) || er.Message == nil {
		return false
	}
	switch er.Message.Code {
	case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeGeneralError: // General is thrown when a 404 is returned.
		return true
	}
	return false
}

// ticketActor builds the authorization view of the interacting member.
func ticketActor(a IApp, i *discordgo.InteractionCreate) (ticketing.Actor, error) {
	isAdmin := i.Member.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator

	guild, err := a.Session().Guild(i.GuildID)
	if err != nil {
		return ticketing.Actor{}, err
	}

	return ticketing.Actor{
		ID:           i.Member.User.ID,
		IsAdmin:      isAdmin,
		IsGuildOwner: guild.OwnerID == i.Member.User.ID,
	}, nil
}
