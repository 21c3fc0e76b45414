package season

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/rankks/internal/domain/sport"
)

// FirstGeneratedYear bounds the fallback season list.
const FirstGeneratedYear = 1992

// Season is a competition period labelled either "YYYY-YYYY" or "YYYY".
type Season struct {
	Label string
}

// Source describes season lookups needed by use cases.
type Source interface {
	ListSeasons(ctx context.Context, leagueID string) []Season
}

// Current returns the season in progress at now. Soccer seasons run from
// August to May, so before August the previous season is still current.
func Current(sportName string, now time.Time) string {
	year := now.Year()
	if sportName != sport.Soccer {
		return strconv.Itoa(year)
	}
	if now.Month() < time.August {
		return strconv.Itoa(year-1) + "-" + strconv.Itoa(year)
	}
	return strconv.Itoa(year) + "-" + strconv.Itoa(year+1)
}

// Shift moves a label by offset years, keeping its shape. Labels without a
// numeric start year are returned unchanged with ok=false.
func Shift(label string, offset int) (string, bool) {
	startRaw, endRaw, split := strings.Cut(label, "-")
	start, err := strconv.Atoi(strings.TrimSpace(startRaw))
	if err != nil {
		return label, false
	}
	if !split {
		return strconv.Itoa(start + offset), true
	}
	span := 1
	if end, endErr := strconv.Atoi(strings.TrimSpace(endRaw)); endErr == nil && end >= start {
		span = end - start
	}
	return strconv.Itoa(start+offset) + "-" + strconv.Itoa(start+offset+span), true
}

// StartYear is the part of the label before the first "-".
func StartYear(label string) string {
	start, _, _ := strings.Cut(label, "-")
	return start
}

// Display renders "2023-2024" as "2023/2024".
func Display(label string) string {
	return strings.Replace(label, "-", "/", 1)
}

// DateRange converts a label into an inclusive calendar range used for
// highlight lookups. Missing parts fall back to 2023 and 2024.
func DateRange(label string) (from, to string) {
	parts := strings.Split(label, "-")
	start := strings.TrimSpace(parts[0])
	end := ""
	if len(parts) > 1 {
		end = strings.TrimSpace(parts[1])
	}

	fromYear := start
	if fromYear == "" {
		fromYear = "2023"
	}
	toYear := end
	if toYear == "" {
		toYear = start
	}
	if toYear == "" {
		toYear = "2024"
	}
	return fromYear + "-01-01", toYear + "-12-31"
}

// SortDescending orders seasons by label, newest first, in place.
func SortDescending(seasons []Season) {
	sort.SliceStable(seasons, func(i, j int) bool {
		return seasons[i].Label > seasons[j].Label
	})
}

// Generate lists seasons from the current one back to FirstGeneratedYear,
// newest first. It backs the season selector when the provider returns none.
func Generate(sportName string, now time.Time) []Season {
	current := Current(sportName, now)
	out := make([]Season, 0, now.Year()-FirstGeneratedYear+1)
	for offset := 0; ; offset-- {
		label, ok := Shift(current, offset)
		if !ok {
			break
		}
		if year, _ := strconv.Atoi(StartYear(label)); year < FirstGeneratedYear {
			break
		}
		out = append(out, Season{Label: label})
	}
	return out
}
