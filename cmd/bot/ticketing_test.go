package main

import (
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/pkg/entities"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
	"github.com/stretchr/testify/require"
)

func TestCreateTicket_DuplicateBlocked(t *testing.T) {
	a := newFakeApp(t)
	a.session.guildChannels = []*discordgo.Channel{
		{ID: "chan-9", Name: "ticket-9", Topic: "user-1"},
	}

	i := memberInteraction("guild-1", "panel-1", "user-1")
	require.NoError(t, createTicket(a, i, ticketing.CreateTicket{}))

	embed := a.session.lastEmbed(t)
	require.Equal(t, "Existing Ticket Found", embed.Title)
	require.Contains(t, embed.Description, "chan-9")

	// No number was allocated and no channel was provisioned.
	require.Equal(t, 0, a.counters.Current("guild-1"))
	require.Len(t, a.session.guildChannels, 1)
}

func TestCreateTicket_OtherUsersTicketDoesNotBlock(t *testing.T) {
	a := newFakeApp(t)
	a.session.guildChannels = []*discordgo.Channel{
		{ID: "chan-9", Name: "ticket-9", Topic: "user-2"},
	}

	i := memberInteraction("guild-1", "panel-1", "user-1")
	require.NoError(t, createTicket(a, i, ticketing.CreateTicket{}))

	require.Equal(t, 1, a.counters.Current("guild-1"))
	require.True(t, a.tickets.HasPending("created-channel"))

	// The reply is the reason selection, not a refusal.
	require.NotEmpty(t, a.session.responses)
	require.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, a.session.responses[len(a.session.responses)-1].Type)
}

func TestDeleteTicket_ChannelAlreadyGone(t *testing.T) {
	a := newFakeApp(t)
	a.session.channelErr = unknownChannelErr()
	a.tickets.PutPending("chan-1", &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 1})

	i := memberInteraction("guild-1", "chan-1", "user-1")
	require.NoError(t, deleteTicket(a, i, "chan-1"))

	require.False(t, a.tickets.HasPending("chan-1"))
	require.Equal(t, "Ticket Already Closed", a.session.lastEmbed(t).Title)
}

func TestDeleteTicket_OwnerDeletes(t *testing.T) {
	a := newFakeApp(t)
	a.tickets.PutPending("chan-1", &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 1})

	i := memberInteraction("guild-1", "chan-1", "user-1")
	require.NoError(t, deleteTicket(a, i, "chan-1"))

	require.Equal(t, []string{"chan-1"}, a.session.deletedChannels)
	require.False(t, a.tickets.HasPending("chan-1"))
	require.Equal(t, "Ticket Cancelled", a.session.lastEmbed(t).Title)
}

func TestDeleteTicket_StrangerDenied(t *testing.T) {
	a := newFakeApp(t)
	a.tickets.PutPending("chan-1", &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 1})

	i := memberInteraction("guild-1", "chan-1", "user-2")
	require.NoError(t, deleteTicket(a, i, "chan-1"))

	require.Empty(t, a.session.deletedChannels)
	require.True(t, a.tickets.HasPending("chan-1"))
	require.Equal(t, "Permission Denied", a.session.lastEmbed(t).Title)
}

func TestConfirmClose_DeletesChannel(t *testing.T) {
	a := newFakeApp(t)
	a.tickets.PutPending("chan-1", &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 1})

	i := memberInteraction("guild-1", "chan-1", "user-1")
	require.NoError(t, confirmClose(a, i, "chan-1"))

	require.Equal(t, []string{"chan-1"}, a.session.deletedChannels)
	require.False(t, a.tickets.HasPending("chan-1"))
	require.Equal(t, "Ticket Closed", a.session.lastEmbed(t).Title)
}

func TestConfirmClose_ChannelAlreadyGone(t *testing.T) {
	a := newFakeApp(t)
	a.session.channelDeleteErr = unknownChannelErr()
	a.tickets.PutPending("chan-1", &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 1})

	i := memberInteraction("guild-1", "chan-1", "user-1")
	require.NoError(t, confirmClose(a, i, "chan-1"))

	// A second confirm after the channel vanished still succeeds and leaves
	// no session state behind.
	require.False(t, a.tickets.HasPending("chan-1"))
	require.Equal(t, "Ticket Already Closed", a.session.lastEmbed(t).Title)
}

func TestReconcileCounters(t *testing.T) {
	tests := []struct {
		name      string
		latest    *entities.Ticket
		allocated int
		want      int
	}{
		{
			name:   "archive ahead of counter",
			latest: &entities.Ticket{Number: 7, GuildID: "guild-1"},
			want:   7,
		},
		{
			name:      "counter ahead of archive",
			latest:    &entities.Ticket{Number: 1, GuildID: "guild-1"},
			allocated: 2,
			want:      2,
		},
		{
			name: "empty archive",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newFakeApp(t)
			a.dal = &stubTicketDal{latest: tt.latest}

			for n := 0; n < tt.allocated; n++ {
				_, err := a.counters.Next("guild-1")
				require.NoError(t, err)
			}

			reconcileCounters(a, []string{"guild-1"})
			require.Equal(t, tt.want, a.counters.Current("guild-1"))
		})
	}
}

func TestReconcileCounters_NoArchive(t *testing.T) {
	a := newFakeApp(t)
	reconcileCounters(a, []string{"guild-1"})
	require.Equal(t, 0, a.counters.Current("guild-1"))
}
