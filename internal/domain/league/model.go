package league

import (
	"regexp"
	"strings"
)

const flagCDNBase = "https://flagcdn.com/w40/"

var nationalityPrefix = regexp.MustCompile(`(?i)^(English|Spanish|Italian|German|French)\s+`)

// League is a competition listed by TheSportsDB.
type League struct {
	ID            string
	Name          string
	AlternateName string
	Sport         string
	BadgeURL      string
	BackgroundURL string
	BannerURL     string
	Country       string
	Description   string
}

// CountryCode derives the flag code for a country name. England and the
// United Kingdom have dedicated codes; every other country uses its first
// two letters, lowercased.
func CountryCode(country string) string {
	switch country {
	case "England":
		return "gb-eng"
	case "United Kingdom":
		return "gb"
	}
	runes := []rune(country)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToLower(string(runes))
}

// FlagURL returns the 40px flag image for a country, or "" when unknown.
func FlagURL(country string) string {
	code := CountryCode(country)
	if code == "" {
		return ""
	}
	return flagCDNBase + code + ".png"
}

// ShortName drops one leading nationality word, so "English Premier League"
// becomes "Premier League".
func ShortName(name string) string {
	return nationalityPrefix.ReplaceAllString(name, "")
}
