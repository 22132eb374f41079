package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/mixlog/internal/domain/models"
	"github.com/mamadbah2/mixlog/internal/service/export"
)

// ErrNoRange is returned when a mirror is built without a target range.
var ErrNoRange = errors.New("sheet range must not be empty")

// Appender writes rows to a spreadsheet range.
type Appender interface {
	AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) (string, error)
}

// Mirror copies created mix records into a spreadsheet, one row per record,
// in the export column order.
type Mirror struct {
	appender   Appender
	sheetRange string
	location   *time.Location
	logger     *zap.Logger
}

// NewMirror binds an appender to the range that receives record rows.
func NewMirror(appender Appender, sheetRange string, location *time.Location, logger *zap.Logger) (*Mirror, error) {
	if sheetRange == "" {
		return nil, ErrNoRange
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{appender: appender, sheetRange: sheetRange, location: location, logger: logger}, nil
}

// AppendRecord writes rec as a new spreadsheet row.
func (m *Mirror) AppendRecord(ctx context.Context, rec models.MixRecord) error {
	written, err := m.appender.AppendRows(ctx, m.sheetRange, [][]interface{}{export.Cells(rec, m.location)})
	if err != nil {
		return fmt.Errorf("mirror mix record %s: %w", rec.ID, err)
	}

	m.logger.Debug("mix record mirrored to sheet",
		zap.String("id", rec.ID),
		zap.String("mix_type", string(rec.MixType)),
		zap.String("range", written),
	)
	return nil
}
