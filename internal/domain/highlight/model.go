package highlight

import "context"

// Highlight is a video clip for a league.
type Highlight struct {
	ID           string
	Title        string
	VideoURL     string
	ThumbnailURL string
	Date         string
}

// Source describes highlight lookups needed by use cases. Failures yield an
// empty slice.
type Source interface {
	ListHighlights(ctx context.Context, sportName, leagueID, season string) []Highlight
}
