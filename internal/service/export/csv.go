package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

// WriteCSV writes the header and one row per record.
func WriteCSV(w io.Writer, records []models.MixRecord, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(Row(rec, loc)); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
