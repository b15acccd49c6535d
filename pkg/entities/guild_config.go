package entities

// GuildConfig is the ticketing configuration for one guild. It is built from
// validated environment input at startup and never mutated afterwards.
type GuildConfig struct {
	// GuildID is the ID of the guild.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// PanelChannelID is the channel the persistent ticket panel lives in.
	PanelChannelID string `json:"panel_channel_id" bson:"panel_channel_id"`

	// CategoryID is the category created ticket channels are placed under.
	CategoryID string `json:"category_id" bson:"category_id"`

	// StaffRoleID is the role granted visibility into all ticket channels.
	StaffRoleID string `json:"staff_role_id" bson:"staff_role_id"`

	// LogChannelID is the optional channel finalized tickets are logged to.
	// Empty disables logging.
	LogChannelID string `json:"log_channel_id" bson:"log_channel_id"`
}
