package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"games-extractor/internal/types"
)

// Header is the fixed CSV column order. It matches the GameRecord field
// order; changing it breaks downstream consumers.
var Header = []string{"Name", "URL", "Description", "Image URL", "Game API URL", "Website", "Timestamp"}

// WriteCSV writes one header row followed by one row per record to the file
// at path. The target is created (or truncated) only when this function runs;
// an existing file is left untouched if extraction fails before the sink.
// The file handle is closed on all exit paths. On a mid-write error, rows
// already flushed remain in the file and the error is returned.
func WriteCSV(records []types.GameRecord, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)

	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Name,
			r.URL,
			r.Description,
			r.ImageURL,
			r.GameAPIURL,
			string(r.Website),
			r.CapturedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write record for %q: %w", r.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
