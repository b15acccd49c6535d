package ticketing

import (
	"errors"
	"fmt"
	"strings"
)

// Action is an inbound user action, decoded once at the platform boundary
// and dispatched by type. Component custom IDs are the wire format.
type Action interface {
	isAction()
}

// CreateTicket starts ticket creation, optionally with a preset reason from
// a shortcut entry point.
type CreateTicket struct {
	// Preset is the preset reason, empty when the user should be asked.
	Preset Reason
}

// DeleteTicket cancels a ticket and removes its channel.
type DeleteTicket struct {
	ChannelID string
}

// CloseTicket opens the close confirmation prompt for the current channel.
type CloseTicket struct{}

// ConfirmClose completes a previously requested close.
type ConfirmClose struct {
	ChannelID string
}

// CancelClose abandons a previously requested close.
type CancelClose struct{}

// SelectStep is one selection-node answer of the questionnaire.
type SelectStep struct {
	Node      NodeID
	ChannelID string
}

// ModalStep is one detail-capture submission of the questionnaire.
type ModalStep struct {
	Node      NodeID
	ChannelID string
}

func (CreateTicket) isAction() {}
func (DeleteTicket) isAction() {}
func (CloseTicket) isAction()  {}
func (ConfirmClose) isAction() {}
func (CancelClose) isAction()  {}
func (SelectStep) isAction()   {}
func (ModalStep) isAction()    {}

// Static custom IDs.
const (
	CustomIDCreateTicket         = "create_ticket"
	CustomIDCreateGiveawayTicket = "create_giveaway_ticket"
	CustomIDCreateSupportTicket  = "create_support_ticket"
	CustomIDCloseTicket          = "close_ticket"
	CustomIDCancelClose          = "cancel_close"

	deleteTicketPrefix = "delete_ticket_"
	confirmClosePrefix = "confirm_close_"
)

// DeleteTicketCustomID builds the custom ID for the cancel/delete button of a
// channel.
func DeleteTicketCustomID(channelID string) string {
	return deleteTicketPrefix + channelID
}

// ConfirmCloseCustomID builds the custom ID for the close confirmation button
// of a channel.
func ConfirmCloseCustomID(channelID string) string {
	return confirmClosePrefix + channelID
}

// StepCustomID builds the custom ID for a questionnaire step component.
func StepCustomID(node NodeID, channelID string) string {
	return string(node) + "_" + channelID
}

// selectNodes and modalNodes are the recognized step prefixes.
var (
	selectNodes = []NodeID{NodeReason, NodeRewardType, NodeGiftCardType}
	modalNodes  = []NodeID{
		NodeSupportDetails,
		NodeOtherDetails,
		NodePaypalDetails,
		NodeSteamDetails,
		NodeOtherRewardDetails,
		NodeOtherGiftCardDetails,
	}
)

// ErrUnknownAction is returned for a custom ID that does not decode to any
// action.
var ErrUnknownAction = errors.New("unknown action")

// DecodeCustomID decodes a component or modal custom ID into an action.
func DecodeCustomID(customID string) (Action, error) {
	switch customID {
	case CustomIDCreateTicket:
		return CreateTicket{}, nil
	case CustomIDCreateGiveawayTicket:
		return CreateTicket{Preset: ReasonGiveawayReward}, nil
	case CustomIDCreateSupportTicket:
		return CreateTicket{Preset: ReasonSupport}, nil
	case CustomIDCloseTicket:
		return CloseTicket{}, nil
	case CustomIDCancelClose:
		return CancelClose{}, nil
	}

	if id, ok := strings.CutPrefix(customID, deleteTicketPrefix); ok && id != "" {
		return DeleteTicket{ChannelID: id}, nil
	}
	if id, ok := strings.CutPrefix(customID, confirmClosePrefix); ok && id != "" {
		return ConfirmClose{ChannelID: id}, nil
	}

	for _, n := range selectNodes {
		if id, ok := strings.CutPrefix(customID, string(n)+"_"); ok && id != "" {
			return SelectStep{Node: n, ChannelID: id}, nil
		}
	}
	for _, n := range modalNodes {
		if id, ok := strings.CutPrefix(customID, string(n)+"_"); ok && id != "" {
			return ModalStep{Node: n, ChannelID: id}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, customID)
}
