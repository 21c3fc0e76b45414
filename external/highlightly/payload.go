package highlightly

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/riskibarqy/rankks/internal/domain/highlight"
)

type highlightsEnvelope struct {
	Data []highlightPayload `json:"data"`
}

type highlightPayload struct {
	ID        flexID `json:"id"`
	Title     string `json:"title"`
	VideoURL  string `json:"videoUrl"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	ImgURL    string `json:"imgUrl"`
	Date      string `json:"date"`
	MatchDate string `json:"matchDate"`
}

func (p highlightPayload) toDomain() highlight.Highlight {
	return highlight.Highlight{
		ID:           string(p.ID),
		Title:        strings.TrimSpace(p.Title),
		VideoURL:     firstNonEmpty(p.VideoURL, p.URL),
		ThumbnailURL: firstNonEmpty(p.Thumbnail, p.ImgURL),
		Date:         firstNonEmpty(p.Date, p.MatchDate),
	}
}

// flexID accepts numeric and string ids.
type flexID string

func (f *flexID) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		*f = ""
	case raw[0] == '"':
		value, err := strconv.Unquote(string(raw))
		if err != nil {
			value = strings.Trim(string(raw), `"`)
		}
		*f = flexID(value)
	default:
		*f = flexID(raw)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
