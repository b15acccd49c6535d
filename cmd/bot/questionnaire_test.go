package main

import (
	"testing"

	"github.com/doorkeep-bot/doorkeep/pkg/entities"
	"github.com/doorkeep-bot/doorkeep/pkg/messages"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
	"github.com/stretchr/testify/require"
)

func TestFinalizeTicket_MissingState(t *testing.T) {
	tests := []struct {
		name    string
		pending *ticketing.PendingTicket
		draft   *ticketing.Draft
	}{
		{
			name: "no state at all",
		},
		{
			name:    "pending without draft",
			pending: &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 1},
		},
		{
			name:  "draft without pending",
			draft: ticketing.NewDraft("user-1", "guild-1", ticketing.ReasonSupport),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newFakeApp(t)
			if tt.pending != nil {
				a.tickets.PutPending("chan-1", tt.pending)
			}
			if tt.draft != nil {
				a.tickets.PutDraft("chan-1", tt.draft)
			}

			i := memberInteraction("guild-1", "chan-1", "user-1")
			require.NoError(t, finalizeTicket(a, i, "chan-1"))

			require.Equal(t, messages.ErrFinalizeFailed, a.session.lastEmbed(t).Description)

			// The channel must stay locked when finalization is refused.
			require.Empty(t, a.session.permissionSets)
			require.Empty(t, a.session.sentMessages)
		})
	}
}

func TestFinalizeTicket_ChannelGone(t *testing.T) {
	a := newFakeApp(t)
	a.session.permissionSetErr = unknownChannelErr()
	a.tickets.PutPending("chan-1", &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 3})
	a.tickets.PutDraft("chan-1", ticketing.NewDraft("user-1", "guild-1", ticketing.ReasonSupport))

	i := memberInteraction("guild-1", "chan-1", "user-1")
	require.NoError(t, finalizeTicket(a, i, "chan-1"))

	require.Equal(t, messages.ErrFinalizeFailed, a.session.lastEmbed(t).Description)
	require.False(t, a.tickets.HasPending("chan-1"))
	require.Empty(t, a.session.sentMessages)
}

func TestFinalizeTicket_PostsSummaryAndUnlocks(t *testing.T) {
	a := newFakeApp(t)
	a.tickets.PutPending("chan-1", &ticketing.PendingTicket{
		UserID:           "user-1",
		GuildID:          "guild-1",
		Number:           4,
		WelcomeMessageID: "welcome-1",
	})

	draft := ticketing.NewDraft("user-1", "guild-1", ticketing.ReasonSupport)
	draft.SetDetail(ticketing.DetailSupport, "cannot log in")
	a.tickets.PutDraft("chan-1", draft)

	i := memberInteraction("guild-1", "chan-1", "user-1")
	require.NoError(t, finalizeTicket(a, i, "chan-1"))

	require.Equal(t, []string{"chan-1"}, a.session.permissionSets)

	require.Len(t, a.session.sentMessages, 1)
	summary := a.session.sentMessages[0]
	require.Contains(t, summary.Content, "**Ticket #**: 4")
	require.Contains(t, summary.Content, "cannot log in")
	require.NotEmpty(t, summary.Components)

	require.False(t, a.tickets.HasPending("chan-1"))
	require.Equal(t, "Ticket Created", a.session.lastEmbed(t).Title)
}

func TestArchiveTicket_SavesRecord(t *testing.T) {
	a := newFakeApp(t)
	dal := &stubTicketDal{}

	pending := &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 2}
	draft := ticketing.NewDraft("user-1", "guild-1", ticketing.ReasonGiveawayReward)
	draft.SetDetail(ticketing.DetailRewardType, "gift_card")
	draft.SetDetail(ticketing.DetailGiftCardType, "steam")
	draft.SetDetail(ticketing.DetailSteamID, "76561198000000000")

	archiveTicket(a, dal, "chan-1", "tester", pending, draft)

	require.Len(t, dal.saved, 1)
	saved := dal.saved[0]
	require.Equal(t, 2, saved.Number)
	require.Equal(t, "guild-1", saved.GuildID)
	require.Equal(t, "chan-1", saved.ChannelID)
	require.Equal(t, "user-1", saved.UserID)
	require.Equal(t, string(ticketing.ReasonGiveawayReward), saved.Reason)
	require.Equal(t, "steam", saved.Details[ticketing.DetailGiftCardType])
}

func TestArchiveTicket_SkipsArchivedTicket(t *testing.T) {
	a := newFakeApp(t)
	dal := &stubTicketDal{
		existing: &entities.Ticket{Number: 2, GuildID: "guild-1", ChannelID: "chan-1"},
	}

	pending := &ticketing.PendingTicket{UserID: "user-1", GuildID: "guild-1", Number: 2}
	draft := ticketing.NewDraft("user-1", "guild-1", ticketing.ReasonSupport)

	archiveTicket(a, dal, "chan-1", "tester", pending, draft)
	require.Empty(t, dal.saved)
}
