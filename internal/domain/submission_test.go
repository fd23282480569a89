package domain

import (
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func TestFormFromValues_MissingKeysAreEmpty(t *testing.T) {
	f := FormFromValues(url.Values{KeyName: {"Ana"}})
	require.Equal(t, "Ana", f.Name)
	require.Empty(t, f.Alias)
	require.Empty(t, f.Experience)
	require.Empty(t, f.Email)
}

func TestNewRecord_SanitizesFields(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 5, 3, 0, time.Local)
	rec := NewRecord(Form{
		Name:       "  Ana  ",
		Alias:      "<AnaGamer>",
		Channel:    "https://twitch.tv/anagamer?a=1&b=2",
		Experience: "abc",
		Goal:       "línea 1\nlínea 2",
		Email:      " ana@example.com ",
	}, now)

	require.Equal(t, now, rec.Timestamp)
	require.Equal(t, "Ana", rec.Name)
	require.Equal(t, "&lt;AnaGamer&gt;", rec.Alias)
	require.Equal(t, "https://twitch.tv/anagamer?a=1&amp;b=2", rec.Channel)
	require.Equal(t, 0, rec.Experience)
	require.Equal(t, "línea 1\nlínea 2", rec.Goal)
	require.Equal(t, "ana@example.com", rec.Email)
}

func TestRecordFields_Order(t *testing.T) {
	now := time.Date(2026, 10, 17, 21, 0, 59, 0, time.Local)
	rec := NewRecord(Form{
		Name:       "Ana",
		Alias:      "AnaGamer",
		Platform:   "Twitch",
		Channel:    "https://twitch.tv/anagamer",
		Country:    "Chile",
		Experience: "7",
		Schedule:   "noches",
		Game:       "Valorant",
		Goal:       "crecer",
		Email:      "ana@example.com",
	}, now)

	fields := rec.Fields()
	require.Len(t, fields, 11)
	require.Equal(t, []string{
		"2026-10-17 21:00:59",
		"Ana",
		"AnaGamer",
		"Twitch",
		"https://twitch.tv/anagamer",
		"Chile",
		"7",
		"noches",
		"Valorant",
		"crecer",
		"ana@example.com",
	}, fields)
	require.Regexp(t, timestampPattern, fields[0])
}
