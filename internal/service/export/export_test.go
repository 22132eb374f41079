package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

func fixtureRecords() []models.MixRecord {
	birta := 12.0
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []models.MixRecord{
		{
			ID:        "rec-1",
			Timestamp: ts,
			MixType:   models.MixInterlock,
			Measurements: models.Measurements{
				Cement: 50, Aggregate: 120.5, Sand: 80, Water: 30.25, Plastizer: 1.5,
				ColorType: models.ColorRed, ColorQuantity: 2.75,
				Products: []models.Product{{Type: models.ProductGarden, Quantity: 10}},
			},
		},
		{
			ID:        "rec-2",
			Timestamp: ts.Add(time.Hour),
			MixType:   models.MixBoardsTiir,
			Measurements: models.Measurements{
				Cement: 40, Birta: &birta, ColorType: models.ColorNone,
				Products: []models.Product{{Type: models.ProductTiir, Quantity: 5}},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fixtureRecords(), time.UTC))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Timestamp,Mix Type,Color Type,Color Quantity,Cement,Aggregate,Sand,Water,Plastizer,Birta", lines[0])
	assert.Equal(t, "rec-1,2026-03-14 09:30:00,Interlock,Red,2.75,50,120.5,80,30.25,1.5,", lines[1])
	assert.Equal(t, "rec-2,2026-03-14 10:30:00,Boards/Tiir,No Color,0,40,0,0,0,0,12", lines[2])
}

func TestWriteCSV_LocalTime(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*60*60)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fixtureRecords()[:1], loc))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-14 12:30:00", rows[1][1])
}

func TestWriteCSV_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil))
	assert.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

func TestXLSX(t *testing.T) {
	t.Parallel()

	data, err := XLSX(fixtureRecords(), time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "rec-1", rows[1][0])
	assert.Equal(t, "Interlock", rows[1][2])
	assert.Equal(t, "Boards/Tiir", rows[2][2])
	assert.Equal(t, "12", rows[2][10])
}
