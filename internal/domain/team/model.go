package team

// Team is a club or franchise. BadgeURL is normalized from whichever badge
// field the upstream endpoint exposes.
type Team struct {
	ID        string
	Name      string
	ShortName string
	BadgeURL  string
	LeagueID  string
	Country   string
	Stadium   string
	Founded   int
}
