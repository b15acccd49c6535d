package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doorkeep-bot/doorkeep/pkg/dataaccess/monitoring"
	"github.com/doorkeep-bot/doorkeep/pkg/entities"
	"github.com/doorkeep-bot/doorkeep/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ticketDalName = "ticket_dal"

// TicketDal is the archive of finalized tickets.
type TicketDal interface {
	// SaveTicket upserts a finalized ticket record.
	SaveTicket(ctx context.Context, ticket *entities.Ticket) error

	// GetTicket gets a ticket by guild and channel.
	GetTicket(ctx context.Context, guildID, channelID string) (*entities.Ticket, error)

	// GetLatestTicket gets the most recently finalized ticket for a guild.
	GetLatestTicket(ctx context.Context, guildID string) (*entities.Ticket, error)
}

type ticketDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal(logger *slog.Logger) TicketDal {
	l := logger.With(slog.String(logging.KeyDal, ticketDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDal{
		l:      l,
		client: MongoDB,
	}
}

func (d *ticketDal) SaveTicket(ctx context.Context, ticket *entities.Ticket) error {
	collection := d.client.Database(mongoDatabase).Collection("tickets")

	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "save_ticket", mongoDatabase, "tickets").Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "save_ticket", mongoDatabase, "tickets"))
	defer t.ObserveDuration()

	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"guild_id": ticket.GuildID, "channel_id": ticket.ChannelID}, bson.M{"$set": ticket}, opts)
	if err != nil {
		return fmt.Errorf("error updating ticket: %w", err)
	}
	return nil
}

func (d *ticketDal) GetTicket(ctx context.Context, guildID, channelID string) (*entities.Ticket, error) {
	collection := d.client.Database(mongoDatabase).Collection("tickets")

	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "get_ticket", mongoDatabase, "tickets").Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "get_ticket", mongoDatabase, "tickets"))
	defer t.ObserveDuration()

	var ticket entities.Ticket
	err := collection.FindOne(ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	}).Decode(&ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return &ticket, nil
}

func (d *ticketDal) GetLatestTicket(ctx context.Context, guildID string) (*entities.Ticket, error) {
	collection := d.client.Database(mongoDatabase).Collection("tickets")

	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "get_latest_ticket", mongoDatabase, "tickets").Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "get_latest_ticket", mongoDatabase, "tickets"))
	defer t.ObserveDuration()

	opts := options.FindOne()
	opts.SetSort(bson.M{"created_at": -1})

	var ticket entities.Ticket
	err := collection.FindOne(ctx, bson.M{"guild_id": guildID}, opts).Decode(&ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return &ticket, nil
}
