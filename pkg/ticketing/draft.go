package ticketing

// Detail keys collected along the questionnaire path. The key names are part
// of the archived ticket record, so they must stay stable.
const (
	DetailRewardType    = "rewardType"
	DetailGiftCardType  = "giftCardType"
	DetailSteamID       = "steamId"
	DetailPaypalID      = "paypalId"
	DetailSupport       = "supportDetails"
	DetailOther         = "otherDetails"
	DetailOtherReward   = "otherRewardDetails"
	DetailOtherGiftCard = "otherGiftCardDetails"
)

// Draft is the accumulating answer set for one channel's questionnaire
// traversal. It is created when the user picks (or presets) a reason and is
// consumed at finalization.
type Draft struct {
	// UserID is the ID of the user that owns the draft.
	UserID string

	// GuildID is the ID of the guild the draft belongs to.
	GuildID string

	// Reason is the selected top-level reason.
	Reason Reason

	// Details maps detail keys to the values collected along the path.
	// Steps only ever add keys; removal happens through Truncate when the
	// user goes back.
	Details map[string]string
}

// NewDraft creates a draft for the given owner with the reason already set.
func NewDraft(userID, guildID string, reason Reason) *Draft {
	return &Draft{
		UserID:  userID,
		GuildID: guildID,
		Reason:  reason,
		Details: make(map[string]string),
	}
}

// SetDetail records a collected detail value.
func (d *Draft) SetDetail(key, value string) {
	if d.Details == nil {
		d.Details = make(map[string]string)
	}
	d.Details[key] = value
}

// Detail returns the collected value for a key, or the empty string.
func (d *Draft) Detail(key string) string {
	return d.Details[key]
}

// RewardType returns the selected reward type, if any.
func (d *Draft) RewardType() RewardType {
	return RewardType(d.Details[DetailRewardType])
}

// GiftCardType returns the selected gift card type, if any.
func (d *Draft) GiftCardType() GiftCardType {
	return GiftCardType(d.Details[DetailGiftCardType])
}

// Truncate discards everything collected at or below the given node,
// restoring the draft to the state it was in before that step was answered.
func (d *Draft) Truncate(node NodeID) {
	switch node {
	case NodeReason:
		d.Reason = ""
		fallthrough
	case NodeRewardType:
		delete(d.Details, DetailRewardType)
		fallthrough
	case NodeGiftCardType:
		delete(d.Details, DetailGiftCardType)
		delete(d.Details, DetailSteamID)
		delete(d.Details, DetailPaypalID)
		delete(d.Details, DetailOtherReward)
		delete(d.Details, DetailOtherGiftCard)
		delete(d.Details, DetailSupport)
		delete(d.Details, DetailOther)
	}
}
