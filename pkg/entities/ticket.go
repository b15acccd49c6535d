package entities

import (
	"fmt"

	"github.com/doorkeep-bot/doorkeep/pkg/custom"
)

// Ticket is the permanent record of a finalized ticket.
type Ticket struct {
	// Number is the guild-scoped ticket number. The channel name embeds it
	// as "ticket-<Number>".
	Number int `json:"number" bson:"number"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// ChannelID is the ID of the ticket channel.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// UserID is the ID of the user that created the ticket.
	UserID string `json:"user_id" bson:"user_id"`

	// Username is the username of the user that created the ticket.
	Username string `json:"username" bson:"username"`

	// Reason is the selected top-level reason.
	Reason string `json:"reason" bson:"reason"`

	// Details are the questionnaire answers collected along the path.
	Details map[string]string `json:"details" bson:"details"`

	// CreatedAt is the time that the ticket was finalized.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`
}

// Name returns the ticket channel name.
func (t *Ticket) Name() string {
	return fmt.Sprintf("ticket-%d", t.Number)
}
