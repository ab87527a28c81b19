package extractor

import (
	"strings"
	"time"

	"games-extractor/internal/types"
)

// Normalize maps a raw adapter tuple into the common record shape. It is a
// pure function: no I/O, and the capture time comes from the caller so reruns
// with a frozen clock produce identical records. Absent fields are coerced to
// empty strings; nothing downstream ever sees a sentinel.
func Normalize(raw *types.RawGame, website types.Website, now time.Time) types.GameRecord {
	return types.GameRecord{
		Name:        strings.TrimSpace(raw.Name),
		URL:         strings.TrimSpace(raw.URL),
		Description: strings.TrimSpace(raw.Description),
		ImageURL:    strings.TrimSpace(raw.ImageURL),
		GameAPIURL:  strings.TrimSpace(raw.GameAPIURL),
		Website:     website,
		CapturedAt:  now,
	}
}
