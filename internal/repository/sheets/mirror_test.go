package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

type captureAppender struct {
	sheetRange string
	rows       [][]interface{}
	err        error
}

func (a *captureAppender) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) (string, error) {
	a.sheetRange = sheetRange
	a.rows = rows
	if a.err != nil {
		return "", a.err
	}
	return "Mixes!A2:K2", nil
}

func TestMirror_AppendRecord(t *testing.T) {
	t.Parallel()

	appender := &captureAppender{}
	mirror, err := NewMirror(appender, "Mixes!A:K", time.FixedZone("UTC+1", 60*60), nil)
	require.NoError(t, err)

	birta := 12.0
	rec := models.MixRecord{
		ID:        "rec-1",
		Timestamp: time.Date(2026, 4, 1, 7, 5, 0, 0, time.UTC),
		MixType:   models.MixBoardsTiir,
		Measurements: models.Measurements{
			Cement:    25.5,
			Birta:     &birta,
			ColorType: models.ColorWhite,
		},
	}

	require.NoError(t, mirror.AppendRecord(context.Background(), rec))

	assert.Equal(t, "Mixes!A:K", appender.sheetRange)
	require.Len(t, appender.rows, 1)
	row := appender.rows[0]
	require.Len(t, row, 11)
	assert.Equal(t, "rec-1", row[0])
	assert.Equal(t, "2026-04-01 08:05:00", row[1])
	assert.Equal(t, "Boards/Tiir", row[2])
	assert.Equal(t, "White", row[3])
	assert.Equal(t, 25.5, row[5])
	assert.Equal(t, 12.0, row[10])
}

func TestMirror_BlankBirtaForInterlock(t *testing.T) {
	t.Parallel()

	appender := &captureAppender{}
	mirror, err := NewMirror(appender, "Mixes!A:K", nil, nil)
	require.NoError(t, err)

	require.NoError(t, mirror.AppendRecord(context.Background(), models.MixRecord{ID: "x", MixType: models.MixInterlock}))
	assert.Equal(t, "", appender.rows[0][10])
}

func TestMirror_WrapsAppendError(t *testing.T) {
	t.Parallel()

	boom := errors.New("quota exceeded")
	mirror, err := NewMirror(&captureAppender{err: boom}, "Mixes!A:K", nil, nil)
	require.NoError(t, err)

	err = mirror.AppendRecord(context.Background(), models.MixRecord{ID: "rec-9"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "rec-9")
}

func TestNewMirror_RequiresRange(t *testing.T) {
	t.Parallel()

	_, err := NewMirror(&captureAppender{}, "", nil, nil)
	assert.ErrorIs(t, err, ErrNoRange)
}
