package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryCode(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"England":        "gb-eng",
		"United Kingdom": "gb",
		"Spain":          "sp",
		"Germany":        "ge",
		"USA":            "us",
		"":               "",
		"X":              "x",
	}
	for country, want := range cases {
		assert.Equal(t, want, CountryCode(country), country)
	}
}

func TestFlagURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://flagcdn.com/w40/gb-eng.png", FlagURL("England"))
	assert.Equal(t, "", FlagURL(""))
}

func TestShortName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Premier League", ShortName("English Premier League"))
	assert.Equal(t, "La Liga", ShortName("spanish La Liga"))
	assert.Equal(t, "Bundesliga", ShortName("German Bundesliga"))
	assert.Equal(t, "UEFA Champions League", ShortName("UEFA Champions League"))
	assert.Equal(t, "Ligue 1", ShortName("French Ligue 1"))
}
