package ticketing

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ChannelNamePrefix is the naming convention for ticket channels. The
// allocated ticket number is embedded after the prefix.
const ChannelNamePrefix = "ticket-"

// ChannelName returns the channel name for an allocated ticket number.
func ChannelName(number int) string {
	return fmt.Sprintf("%s%d", ChannelNamePrefix, number)
}

// IsTicketChannelName reports whether a channel name follows the ticket
// naming convention.
func IsTicketChannelName(name string) bool {
	return strings.HasPrefix(name, ChannelNamePrefix)
}

// ErrPendingNotFound is returned when no pending ticket exists for a channel.
var ErrPendingNotFound = errors.New("pending ticket not found")

// PendingTicket represents a provisioned ticket channel whose questionnaire
// has not yet completed.
type PendingTicket struct {
	// UserID is the ID of the user that owns the ticket.
	UserID string

	// GuildID is the ID of the guild the ticket belongs to.
	GuildID string

	// Number is the allocated ticket number.
	Number int

	// WelcomeMessageID is the ID of the welcome message carrying the cancel
	// button. It is removed at finalization.
	WelcomeMessageID string
}

// Store is the session store for per-channel ticket state. It is the only
// mutation surface for pending tickets and drafts; handlers never touch the
// maps directly.
type Store struct {
	mu      sync.Mutex
	pending map[string]*PendingTicket
	drafts  map[string]*Draft
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		pending: make(map[string]*PendingTicket),
		drafts:  make(map[string]*Draft),
	}
}

// PutPending registers the pending ticket for a channel.
func (s *Store) PutPending(channelID string, p *PendingTicket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[channelID] = p
}

// Pending returns the pending ticket for a channel.
func (s *Store) Pending(channelID string) (*PendingTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[channelID]
	return p, ok
}

// HasPending reports whether a channel has an incomplete questionnaire.
func (s *Store) HasPending(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[channelID]
	return ok
}

// PutDraft registers the draft for a channel.
func (s *Store) PutDraft(channelID string, d *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[channelID] = d
}

// Draft returns the draft for a channel.
func (s *Store) Draft(channelID string) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[channelID]
	return d, ok
}

// Owner returns the owning user ID recorded for a channel in either the
// pending ticket or the draft.
func (s *Store) Owner(channelID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[channelID]; ok {
		return p.UserID, true
	}
	if d, ok := s.drafts[channelID]; ok {
		return d.UserID, true
	}
	return "", false
}

// Purge removes both the pending ticket and the draft for a channel. The two
// are always removed together at finalization or cancellation.
func (s *Store) Purge(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, channelID)
	delete(s.drafts, channelID)
}
