package sport

import "context"

// Upstream sport names as TheSportsDB spells them.
const (
	Soccer     = "Soccer"
	Basketball = "Basketball"
	Tennis     = "Tennis"
)

// Sport is a discipline listed by TheSportsDB.
type Sport struct {
	ID          string
	Name        string
	Format      string
	ThumbURL    string
	Description string
}

// Featured reports whether the sport appears in the main navigation.
func Featured(name string) bool {
	switch name {
	case Soccer, Basketball, Tennis:
		return true
	default:
		return false
	}
}

// DisplayName is the label shown to visitors. Unknown sports fall back to
// Tennis, matching the navigation that only ever lists featured sports.
func DisplayName(name string) string {
	switch name {
	case Soccer:
		return "Football"
	case Basketball:
		return "Basket-Ball"
	default:
		return "Tennis"
	}
}

// SidebarTitle is the heading of the popular-leagues sidebar.
func SidebarTitle(name string) string {
	if name == Soccer {
		return "Football"
	}
	return name
}

// DefaultLeagueID is the league a sport link lands on.
func DefaultLeagueID(name string) string {
	switch name {
	case Basketball:
		return "4387"
	case Tennis:
		return "4385"
	default:
		return "4328"
	}
}

var popularLeagueIDs = map[string][]string{
	Soccer:     {"4328", "4480", "4335", "4332", "4331", "4346", "4334"},
	Basketball: {"4387", "4463"},
	Tennis:     {"4385", "4449"},
}

// PopularLeagueIDs returns the sidebar league ids for a sport, in display order.
func PopularLeagueIDs(name string) []string {
	ids := popularLeagueIDs[name]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Shortcut is a featured league pinned to the shortcut strip.
type Shortcut struct {
	Sport    string
	LeagueID string
}

// Shortcuts lists the leagues pinned under the main navigation.
func Shortcuts() []Shortcut {
	return []Shortcut{
		{Sport: Soccer, LeagueID: "4328"},
		{Sport: Soccer, LeagueID: "4480"},
		{Sport: Soccer, LeagueID: "4335"},
		{Sport: Soccer, LeagueID: "4332"},
		{Sport: Soccer, LeagueID: "4331"},
		{Sport: Basketball, LeagueID: "4387"},
		{Sport: Tennis, LeagueID: "4385"},
	}
}

// Source describes sport lookups needed by use cases.
type Source interface {
	ListSports(ctx context.Context) []Sport
}
