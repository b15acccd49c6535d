package ticketing

import (
	"errors"
	"fmt"
)

// NodeID identifies a node in the questionnaire graph.
type NodeID string

const (
	// Selection nodes.
	NodeReason       NodeID = "ticket_reason"
	NodeRewardType   NodeID = "reward_type"
	NodeGiftCardType NodeID = "gift_card_type"

	// Terminal detail capture nodes.
	NodeSupportDetails       NodeID = "support_details"
	NodeOtherDetails         NodeID = "other_reason"
	NodePaypalDetails        NodeID = "paypal_details"
	NodeSteamDetails         NodeID = "steam_details"
	NodeOtherRewardDetails   NodeID = "other_reward_details"
	NodeOtherGiftCardDetails NodeID = "other_gift_card_details"
)

// GoBackValue is the selection value that navigates to the parent node.
const GoBackValue = "go_back"

var (
	// ErrDraftNotFound is returned when the draft for a channel no longer
	// exists. This happens when finalization or cancellation raced ahead of
	// a stale prompt; the user has to restart the ticket.
	ErrDraftNotFound = errors.New("ticket draft not found")

	// ErrUnknownSelection is returned for a selection value that is not
	// valid at the current node.
	ErrUnknownSelection = errors.New("unknown selection value")
)

// Step is the outcome of one questionnaire transition. Exactly one of the
// fields is set.
type Step struct {
	// Prompt is the next selection prompt to present.
	Prompt *OptionsPrompt

	// Capture is the detail form to present.
	Capture *FormPrompt

	// Finalize indicates the questionnaire is complete.
	Finalize bool
}

// Advance applies one selection to the draft and returns the next step.
// The draft is mutated: the answered value is recorded, and a go-back
// selection truncates the draft to the state before the undone step.
func Advance(draft *Draft, node NodeID, value string) (*Step, error) {
	if draft == nil {
		return nil, ErrDraftNotFound
	}

	if value == GoBackValue {
		return goBack(draft, node)
	}

	switch node {
	case NodeReason:
		reason := Reason(value)
		if !reason.Valid() {
			return nil, fmt.Errorf("%w: %q at %s", ErrUnknownSelection, value, node)
		}
		draft.Reason = reason
		return EnterAt(draft)

	case NodeRewardType:
		rt := RewardType(value)
		if !rt.Valid() {
			return nil, fmt.Errorf("%w: %q at %s", ErrUnknownSelection, value, node)
		}
		draft.SetDetail(DetailRewardType, value)
		switch rt {
		case RewardGiftCard:
			return &Step{Prompt: GiftCardTypePrompt()}, nil
		case RewardPaypal:
			return &Step{Capture: DetailForm(NodePaypalDetails)}, nil
		default:
			return &Step{Capture: DetailForm(NodeOtherRewardDetails)}, nil
		}

	case NodeGiftCardType:
		gc := GiftCardType(value)
		if !gc.Valid() {
			return nil, fmt.Errorf("%w: %q at %s", ErrUnknownSelection, value, node)
		}
		draft.SetDetail(DetailGiftCardType, value)
		switch gc {
		case GiftCardSteam:
			return &Step{Capture: DetailForm(NodeSteamDetails)}, nil
		case GiftCardAmazon:
			// Amazon needs no further details.
			return &Step{Finalize: true}, nil
		default:
			return &Step{Capture: DetailForm(NodeOtherGiftCardDetails)}, nil
		}

	default:
		return nil, fmt.Errorf("%w: %q at %s", ErrUnknownSelection, value, node)
	}
}

// Submit records the values captured by a terminal form and completes the
// questionnaire.
func Submit(draft *Draft, node NodeID, values map[string]string) (*Step, error) {
	if draft == nil {
		return nil, ErrDraftNotFound
	}

	form := DetailForm(node)
	if form == nil {
		return nil, fmt.Errorf("%w: %s is not a capture node", ErrUnknownSelection, node)
	}

	for _, f := range form.Fields {
		draft.SetDetail(f.Key, values[f.Key])
	}
	return &Step{Finalize: true}, nil
}

// EnterAt returns the first step for a draft whose reason is already set.
// This is used on reason selection and for shortcut entry points that preset
// the reason.
func EnterAt(draft *Draft) (*Step, error) {
	if draft == nil {
		return nil, ErrDraftNotFound
	}

	switch draft.Reason {
	case ReasonGiveawayReward, ReasonEventReward:
		return &Step{Prompt: RewardTypePrompt(draft.Reason)}, nil
	case ReasonSupport:
		return &Step{Capture: DetailForm(NodeSupportDetails)}, nil
	case ReasonOther:
		return &Step{Capture: DetailForm(NodeOtherDetails)}, nil
	default:
		return &Step{Prompt: ReasonPrompt()}, nil
	}
}

// goBack moves to the parent of the given node, undoing the answer that led
// to it.
func goBack(draft *Draft, node NodeID) (*Step, error) {
	switch node {
	case NodeRewardType:
		draft.Truncate(NodeReason)
		return &Step{Prompt: ReasonPrompt()}, nil
	case NodeGiftCardType:
		draft.Truncate(NodeRewardType)
		return &Step{Prompt: RewardTypePrompt(draft.Reason)}, nil
	default:
		return nil, fmt.Errorf("%w: %q at %s", ErrUnknownSelection, GoBackValue, node)
	}
}
