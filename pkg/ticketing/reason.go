package ticketing

// Reason is the top-level reason a ticket was opened.
type Reason string

const (
	ReasonGiveawayReward Reason = "giveaway_reward"
	ReasonEventReward    Reason = "event_reward"
	ReasonSupport        Reason = "support"
	ReasonOther          Reason = "other"
)

// Valid reports whether the reason is one of the known values.
func (r Reason) Valid() bool {
	switch r {
	case ReasonGiveawayReward, ReasonEventReward, ReasonSupport, ReasonOther:
		return true
	}
	return false
}

// IsReward reports whether the reason leads into the reward branch of the
// questionnaire.
func (r Reason) IsReward() bool {
	return r == ReasonGiveawayReward || r == ReasonEventReward
}

// Display returns the user-facing label for the reason.
func (r Reason) Display() string {
	switch r {
	case ReasonGiveawayReward:
		return "\U0001F381 Giveaway Reward"
	case ReasonEventReward:
		return "\U0001F389 Event Reward"
	case ReasonSupport:
		return "\U0001F6E0️ Technical Support"
	case ReasonOther:
		return "❓ Other Inquiry"
	}
	return string(r)
}

// RewardType is the kind of reward requested on the reward branch.
type RewardType string

const (
	RewardGiftCard RewardType = "gift_card"
	RewardPaypal   RewardType = "paypal"
	RewardOther    RewardType = "other_reward"
)

// Valid reports whether the reward type is one of the known values.
func (r RewardType) Valid() bool {
	switch r {
	case RewardGiftCard, RewardPaypal, RewardOther:
		return true
	}
	return false
}

// Display returns the user-facing label for the reward type.
func (r RewardType) Display() string {
	switch r {
	case RewardGiftCard:
		return "\U0001F4B3 Gift Card"
	case RewardPaypal:
		return "\U0001F4B0 PayPal"
	case RewardOther:
		return "\U0001F381 Other Reward"
	}
	return string(r)
}

// GiftCardType is the kind of gift card requested.
type GiftCardType string

const (
	GiftCardSteam  GiftCardType = "steam"
	GiftCardAmazon GiftCardType = "amazon"
	GiftCardOther  GiftCardType = "other_gift_card"
)

// Valid reports whether the gift card type is one of the known values.
func (g GiftCardType) Valid() bool {
	switch g {
	case GiftCardSteam, GiftCardAmazon, GiftCardOther:
		return true
	}
	return false
}

// Display returns the user-facing label for the gift card type.
func (g GiftCardType) Display() string {
	switch g {
	case GiftCardSteam:
		return "\U0001F3AE Steam"
	case GiftCardAmazon:
		return "\U0001F4E6 Amazon"
	case GiftCardOther:
		return "\U0001F4B3 Other Gift Card"
	}
	return string(g)
}
