package config

import (
	"testing"

	"github.com/doorkeep-bot/doorkeep/pkg/logging"
	"github.com/stretchr/testify/require"
)

func TestIsSnowflake(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "Valid17", id: "12345678901234567", want: true},
		{name: "Valid20", id: "12345678901234567890", want: true},
		{name: "TooShort", id: "1234567890123456", want: false},
		{name: "TooLong", id: "123456789012345678901", want: false},
		{name: "NonNumeric", id: "1234567890123456a", want: false},
		{name: "Empty", id: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsSnowflake(tt.id))
		})
	}
}

func TestParseGuilds(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	const (
		goodGuild = "111111111111111111"
		badGuild  = "222222222222222222"
	)

	env := map[string]string{
		EnvServerIds:                      goodGuild + ", " + badGuild + " ,",
		goodGuild + SuffixPanelChannelId:  "333333333333333333",
		goodGuild + SuffixCategoryId:      "444444444444444444",
		goodGuild + SuffixStaffRoleId:     "555555555555555555",
		goodGuild + SuffixLogChannelId:    "not-a-snowflake",
		badGuild + SuffixPanelChannelId:   "666666666666666666",
		badGuild + SuffixCategoryId:       "777777777777777777",
		// Staff role missing: the guild must be skipped, not defaulted.
	}

	guilds := parseGuilds(l, func(key string) string { return env[key] })

	require.Len(t, guilds, 1)
	require.NotContains(t, guilds, badGuild)

	got := guilds[goodGuild]
	require.NotNil(t, got)
	require.Equal(t, goodGuild, got.GuildID)
	require.Equal(t, "333333333333333333", got.PanelChannelID)
	require.Equal(t, "444444444444444444", got.CategoryID)
	require.Equal(t, "555555555555555555", got.StaffRoleID)

	// The invalid log channel is optional and must be dropped.
	require.Empty(t, got.LogChannelID)
}
