package ticketing

// Option is a single selectable entry in an options prompt.
type Option struct {
	// Label is the user-facing text for the option.
	Label string

	// Emoji is the emoji shown next to the label.
	Emoji string

	// Value is the machine value submitted when the option is picked.
	Value string
}

// OptionsPrompt asks the user to pick one option from an ordered list. The
// presentation layer decides how it is rendered; this type only carries the
// semantic content.
type OptionsPrompt struct {
	// Node is the questionnaire node the prompt belongs to.
	Node NodeID

	// Title is the prompt title.
	Title string

	// Description is the prompt body text.
	Description string

	// Placeholder is the hint shown before a selection is made.
	Placeholder string

	// Options is the ordered list of selectable options.
	Options []Option
}

// Field is a single input in a form prompt.
type Field struct {
	// Key is the detail key the submitted value is stored under.
	Key string

	// Label is the user-facing field label.
	Label string

	// Placeholder is the hint text shown in the empty field.
	Placeholder string

	// MinLen and MaxLen bound the accepted input length.
	MinLen int
	MaxLen int

	// Multiline indicates a paragraph-style input rather than a single line.
	Multiline bool
}

// FormPrompt asks the user to fill in structured fields. All current
// questionnaire terminals use a single field.
type FormPrompt struct {
	// Node is the questionnaire node the prompt belongs to.
	Node NodeID

	// Title is the form title.
	Title string

	// Fields is the ordered list of inputs.
	Fields []Field
}

// goBackOption is the distinguished option present on every non-root
// selection node.
var goBackOption = Option{Label: "Go Back", Emoji: "↩️", Value: GoBackValue}

// ReasonPrompt is the root selection prompt of the questionnaire.
func ReasonPrompt() *OptionsPrompt {
	return &OptionsPrompt{
		Node:        NodeReason,
		Title:       "Ticket Reason",
		Description: "Please select the most appropriate reason for creating this ticket.",
		Placeholder: "Select a reason for your ticket",
		Options: []Option{
			{Label: "Giveaway Reward", Emoji: "\U0001F381", Value: string(ReasonGiveawayReward)},
			{Label: "Event Reward", Emoji: "\U0001F389", Value: string(ReasonEventReward)},
			{Label: "Technical Support", Emoji: "\U0001F6E0️", Value: string(ReasonSupport)},
			{Label: "Other Inquiry", Emoji: "❓", Value: string(ReasonOther)},
		},
	}
}

// RewardTypePrompt is the reward selection prompt. The description depends on
// whether the reward comes from a giveaway or an event.
func RewardTypePrompt(reason Reason) *OptionsPrompt {
	source := "the event"
	if reason == ReasonGiveawayReward {
		source = "your giveaway prize"
	}

	return &OptionsPrompt{
		Node:  NodeRewardType,
		Title: "Reward Selection",
		Description: "What type of reward would you like to receive for " + source +
			"?\n\n**Please attach proof of your participation in this channel.**",
		Placeholder: "Select your reward type",
		Options: []Option{
			{Label: "Gift Card", Emoji: "\U0001F4B3", Value: string(RewardGiftCard)},
			{Label: "PayPal", Emoji: "\U0001F4B0", Value: string(RewardPaypal)},
			{Label: "Other Reward", Emoji: "\U0001F381", Value: string(RewardOther)},
			goBackOption,
		},
	}
}

// GiftCardTypePrompt is the gift card selection prompt.
func GiftCardTypePrompt() *OptionsPrompt {
	return &OptionsPrompt{
		Node:  NodeGiftCardType,
		Title: "Gift Card Type",
		Description: "Please select the type of gift card you would like to receive." +
			"\n\n**Please attach proof of your participation in this channel.**",
		Placeholder: "Select gift card type",
		Options: []Option{
			{Label: "Steam Gift Card", Emoji: "\U0001F3AE", Value: string(GiftCardSteam)},
			{Label: "Amazon Gift Card", Emoji: "\U0001F4E6", Value: string(GiftCardAmazon)},
			{Label: "Other Gift Card", Emoji: "\U0001F4B3", Value: string(GiftCardOther)},
			goBackOption,
		},
	}
}

// detailForms maps each terminal capture node to its form prompt.
var detailForms = map[NodeID]*FormPrompt{
	NodeSupportDetails: {
		Node:  NodeSupportDetails,
		Title: "Support Request Details",
		Fields: []Field{{
			Key:         DetailSupport,
			Label:       "Please describe your issue",
			Placeholder: "Be as detailed as possible about your technical issue...",
			MinLen:      20,
			MaxLen:      1000,
			Multiline:   true,
		}},
	},
	NodeOtherDetails: {
		Node:  NodeOtherDetails,
		Title: "Please specify your request",
		Fields: []Field{{
			Key:         DetailOther,
			Label:       "Details of your inquiry",
			Placeholder: "Please explain your request in detail...",
			MinLen:      20,
			MaxLen:      1000,
			Multiline:   true,
		}},
	},
	NodePaypalDetails: {
		Node:  NodePaypalDetails,
		Title: "PayPal Information",
		Fields: []Field{{
			Key:         DetailPaypalID,
			Label:       "Your PayPal email address",
			Placeholder: "example@paypal.com",
			MinLen:      5,
			MaxLen:      100,
		}},
	},
	NodeSteamDetails: {
		Node:  NodeSteamDetails,
		Title: "Steam Information",
		Fields: []Field{{
			Key:         DetailSteamID,
			Label:       "Your Steam Profile URL or ID",
			Placeholder: "https://steamcommunity.com/id/yourprofile",
			MinLen:      5,
			MaxLen:      100,
		}},
	},
	NodeOtherRewardDetails: {
		Node:  NodeOtherRewardDetails,
		Title: "Reward Details",
		Fields: []Field{{
			Key:         DetailOtherReward,
			Label:       "Describe your reward request",
			Placeholder: "Please describe the reward you are expecting...",
			MinLen:      20,
			MaxLen:      1000,
			Multiline:   true,
		}},
	},
	NodeOtherGiftCardDetails: {
		Node:  NodeOtherGiftCardDetails,
		Title: "Gift Card Details",
		Fields: []Field{{
			Key:         DetailOtherGiftCard,
			Label:       "Specify the gift card you need",
			Placeholder: "Example: $50 PlayStation Store gift card for US region",
			MinLen:      10,
			MaxLen:      1000,
			Multiline:   true,
		}},
	},
}

// DetailForm returns the form prompt for a terminal capture node, or nil if
// the node does not capture details.
func DetailForm(node NodeID) *FormPrompt {
	return detailForms[node]
}
