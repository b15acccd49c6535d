package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/doorkeep-bot/doorkeep/pkg/dataaccess"
	"github.com/doorkeep-bot/doorkeep/pkg/entities"
	"github.com/doorkeep-bot/doorkeep/pkg/ticketing"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeSession records the Discord calls a handler makes. Error fields force
// the corresponding call to fail.
type fakeSession struct {
	guildChannels []*discordgo.Channel
	guild         *discordgo.Guild

	channelErr       error
	channelDeleteErr error
	permissionSetErr error

	deletedChannels []string
	permissionSets  []string
	responses       []*discordgo.InteractionResponse
	sentMessages    []*discordgo.MessageSend
}

func (f *fakeSession) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	for _, c := range f.guildChannels {
		if c.ID == channelID {
			return c, nil
		}
	}
	return &discordgo.Channel{ID: channelID, Name: "ticket-1"}, nil
}

func (f *fakeSession) ChannelDelete(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelDeleteErr != nil {
		return nil, f.channelDeleteErr
	}
	f.deletedChannels = append(f.deletedChannels, channelID)
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeSession) ChannelMessageDelete(string, string, ...discordgo.RequestOption) error {
	return nil
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sentMessages = append(f.sentMessages, data)
	return &discordgo.Message{ID: fmt.Sprintf("message-%d", len(f.sentMessages)), ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ID: "embed-message", ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelPermissionSet(channelID, _ string, _ discordgo.PermissionOverwriteType, _, _ int64, _ ...discordgo.RequestOption) error {
	if f.permissionSetErr != nil {
		return f.permissionSetErr
	}
	f.permissionSets = append(f.permissionSets, channelID)
	return nil
}

func (f *fakeSession) GatewayBot(...discordgo.RequestOption) (*discordgo.GatewayBotResponse, error) {
	return &discordgo.GatewayBotResponse{}, nil
}

func (f *fakeSession) Guild(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	if f.guild != nil {
		return f.guild, nil
	}
	return &discordgo.Guild{ID: guildID}, nil
}

func (f *fakeSession) GuildChannelCreateComplex(_ string, data discordgo.GuildChannelCreateData, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	c := &discordgo.Channel{ID: "created-channel", Name: data.Name, Topic: data.Topic}
	f.guildChannels = append(f.guildChannels, c)
	return c, nil
}

func (f *fakeSession) GuildChannels(string, ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	return f.guildChannels, nil
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

// lastEmbed returns the embed of the most recent interaction response.
func (f *fakeSession) lastEmbed(t *testing.T) *discordgo.MessageEmbed {
	t.Helper()
	require.NotEmpty(t, f.responses)
	resp := f.responses[len(f.responses)-1]
	require.NotNil(t, resp.Data)
	require.NotEmpty(t, resp.Data.Embeds)
	return resp.Data.Embeds[0]
}

type fakeApp struct {
	session  *fakeSession
	log      *slog.Logger
	guilds   map[string]*entities.GuildConfig
	tickets  *ticketing.Store
	counters *ticketing.CounterStore
	dal      dataaccess.TicketDal
}

func newFakeApp(t *testing.T) *fakeApp {
	t.Helper()

	counters, err := ticketing.NewCounterStore(filepath.Join(t.TempDir(), "counters.json"))
	require.NoError(t, err)

	return &fakeApp{
		session: &fakeSession{},
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		guilds: map[string]*entities.GuildConfig{
			"guild-1": {
				GuildID:        "guild-1",
				PanelChannelID: "panel-1",
				CategoryID:     "category-1",
				StaffRoleID:    "staff-1",
			},
		},
		tickets:  ticketing.NewStore(),
		counters: counters,
	}
}

func (f *fakeApp) Session() DiscordSession { return f.session }

func (f *fakeApp) Log() *slog.Logger { return f.log }

func (f *fakeApp) GuildConfig(guildID string) (*entities.GuildConfig, bool) {
	cfg, ok := f.guilds[guildID]
	return cfg, ok
}

func (f *fakeApp) Tickets() *ticketing.Store { return f.tickets }

func (f *fakeApp) Counters() *ticketing.CounterStore { return f.counters }

func (f *fakeApp) TicketDal() dataaccess.TicketDal { return f.dal }

func (f *fakeApp) AllowCreate(string) bool { return true }

// stubTicketDal is an in-memory TicketDal for handler tests.
type stubTicketDal struct {
	existing *entities.Ticket
	latest   *entities.Ticket
	saved    []*entities.Ticket
}

func (s *stubTicketDal) SaveTicket(_ context.Context, ticket *entities.Ticket) error {
	s.saved = append(s.saved, ticket)
	return nil
}

func (s *stubTicketDal) GetTicket(context.Context, string, string) (*entities.Ticket, error) {
	if s.existing == nil {
		return nil, fmt.Errorf("error getting ticket: %w", mongo.ErrNoDocuments)
	}
	return s.existing, nil
}

func (s *stubTicketDal) GetLatestTicket(context.Context, string) (*entities.Ticket, error) {
	if s.latest == nil {
		return nil, fmt.Errorf("error getting ticket: %w", mongo.ErrNoDocuments)
	}
	return s.latest, nil
}

// memberInteraction builds a component interaction from a guild member.
func memberInteraction(guildID, channelID, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			GuildID:   guildID,
			ChannelID: channelID,
			Type:      discordgo.InteractionMessageComponent,
			Member:    &discordgo.Member{User: &discordgo.User{ID: userID, Username: "tester"}},
		},
	}
}

// unknownChannelErr is Discord's answer when the channel no longer exists.
func unknownChannelErr() error {
	return &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel}}
}
