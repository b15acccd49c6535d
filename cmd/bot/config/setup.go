package config

import (
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/doorkeep-bot/doorkeep/pkg/dataaccess"
	"github.com/doorkeep-bot/doorkeep/pkg/dataaccess/connection"
	"github.com/doorkeep-bot/doorkeep/pkg/entities"
	"github.com/doorkeep-bot/doorkeep/pkg/logging"
	"github.com/joho/godotenv"
)

// snowflakeRegex matches a Discord snowflake ID.
var snowflakeRegex = regexp.MustCompile(`^\d{17,20}$`)

// IsSnowflake reports whether id looks like a Discord snowflake.
func IsSnowflake(id string) bool {
	return snowflakeRegex.MatchString(id)
}

// Parse loads configuration from the environment. A .env file is honoured
// when present. The process exits when required values are missing; invalid
// per-guild configuration only skips that guild.
func Parse(l *slog.Logger) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		l.Warn("Error loading .env file", slog.String(logging.KeyError, err.Error()))
	}

	if envBT := os.Getenv(EnvBotToken); envBT != "" {
		l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))
		BotToken = envBT
	}

	if envAppId := os.Getenv(EnvApplicationId); envAppId != "" {
		l.Debug("Found application ID in environment", slog.String("key", EnvApplicationId))
		ApplicationId = envAppId
	}

	if envMongoUri := os.Getenv(EnvMongoUri); envMongoUri != "" {
		l.Debug("Found MongoDB URI in environment", slog.String("key", EnvMongoUri))
		MongoUri = envMongoUri
	}

	if envPort := os.Getenv(EnvMonitoringPort); envPort != "" {
		MonitoringPort = envPort
	} else {
		// Default to 8080 if not provided.
		MonitoringPort = "8080"
		l.Info("No monitoring port provided in environment, defaulting to 8080", slog.String("key", EnvMonitoringPort))
	}

	if envCounters := os.Getenv(EnvCountersFile); envCounters != "" {
		CountersFile = envCounters
	} else {
		CountersFile = "ticketCounters.json"
	}

	Guilds = parseGuilds(l, os.Getenv)

	if BotToken == "" || ApplicationId == "" {
		l.Error("Not all required environment variables have been provided", slog.String(logging.KeyError, "Incomplete configuration"))
		os.Exit(1)
	}

	// The ticket archive is optional; only connect when a URI was given.
	if MongoUri != "" {
		connectMongo(l)
	}
}

// parseGuilds builds the per-guild configuration registry. Guilds with any
// invalid required ID are skipped entirely rather than defaulted.
func parseGuilds(l *slog.Logger, getenv func(string) string) map[string]*entities.GuildConfig {
	guilds := make(map[string]*entities.GuildConfig)

	for _, raw := range strings.Split(getenv(EnvServerIds), ",") {
		guildID := strings.TrimSpace(raw)
		if guildID == "" {
			continue
		}

		panelChannelID := strings.TrimSpace(getenv(guildID + SuffixPanelChannelId))
		categoryID := strings.TrimSpace(getenv(guildID + SuffixCategoryId))
		staffRoleID := strings.TrimSpace(getenv(guildID + SuffixStaffRoleId))
		logChannelID := strings.TrimSpace(getenv(guildID + SuffixLogChannelId))

		if !IsSnowflake(panelChannelID) || !IsSnowflake(categoryID) || !IsSnowflake(staffRoleID) {
			l.Warn("Skipping guild due to invalid configuration", slog.String("guild_id", guildID))
			continue
		}

		if !IsSnowflake(logChannelID) {
			// The log channel is optional; anything malformed is ignored.
			logChannelID = ""
		}

		guilds[guildID] = &entities.GuildConfig{
			GuildID:        guildID,
			PanelChannelID: panelChannelID,
			CategoryID:     categoryID,
			StaffRoleID:    staffRoleID,
			LogChannelID:   logChannelID,
		}

		l.Info("Loaded valid configuration for guild", slog.String("guild_id", guildID))
	}

	return guilds
}

func connectMongo(l *slog.Logger) {
	mongoConn := new(connection.MongoDB)
	mongoConn.ConnectionString = MongoUri

	db, err := mongoConn.Connect()
	if err != nil {
		l.Error("Error connecting to mongo", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	} else if db == nil {
		l.Error("MongoDB came back nil", slog.String(logging.KeyError, "MongoDB came back nil"))
		os.Exit(1)
	}

	dataaccess.MongoDB = db
	l.Debug("Connected to MongoDB", slog.String("key", EnvMongoUri))
}
