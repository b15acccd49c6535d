package config

import "github.com/doorkeep-bot/doorkeep/pkg/entities"

const (
	// AppName is the name of the application.
	AppName = "doorkeep"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvMongoUri is the environment variable for the MongoDB URI. Optional;
	// enables the finalized ticket archive.
	EnvMongoUri = `MONGO_URI`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvCountersFile is the environment variable for the ticket counters
	// file path.
	EnvCountersFile = `COUNTERS_FILE`

	// EnvServerIds is the environment variable holding the comma separated
	// list of configured guild IDs.
	EnvServerIds = `SERVER_IDS`

	// Per-guild environment variable suffixes. Each configured guild ID is
	// prefixed to these, e.g. "123456789012345678_PANEL_CHANNEL_ID".
	SuffixPanelChannelId = `_PANEL_CHANNEL_ID`
	SuffixCategoryId     = `_CATEGORY_ID`
	SuffixStaffRoleId    = `_STAFF_ROLE_ID`
	SuffixLogChannelId   = `_LOG_CHANNEL_ID`
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// ApplicationId is the ID of the application.
	ApplicationId string

	// MongoUri is the URI for the MongoDB database. Empty disables the
	// ticket archive.
	MongoUri string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string

	// CountersFile is the path to the ticket counters file.
	CountersFile string

	// Guilds holds the ticketing configuration for every guild that passed
	// validation. Guilds with missing or malformed IDs are absent.
	Guilds map[string]*entities.GuildConfig
)
