// Package export renders mix records as CSV or XLSX tables.
package export

import (
	"strconv"
	"time"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

// TimestampLayout is the local display format used in exported files.
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the column order shared by every export format.
var Header = []string{
	"ID",
	"Timestamp",
	"Mix Type",
	"Color Type",
	"Color Quantity",
	"Cement",
	"Aggregate",
	"Sand",
	"Water",
	"Plastizer",
	"Birta",
}

// Row renders one record in Header order. loc selects the display time zone; nil means UTC.
func Row(rec models.MixRecord, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	m := rec.Measurements

	birta := ""
	if m.Birta != nil {
		birta = formatNumber(*m.Birta)
	}

	return []string{
		rec.ID,
		rec.Timestamp.In(loc).Format(TimestampLayout),
		rec.MixType.Label(),
		m.ColorType.Label(),
		formatNumber(m.ColorQuantity),
		formatNumber(m.Cement),
		formatNumber(m.Aggregate),
		formatNumber(m.Sand),
		formatNumber(m.Water),
		formatNumber(m.Plastizer),
		birta,
	}
}

// Cells is Row with numeric columns kept as float64, for spreadsheet targets.
func Cells(rec models.MixRecord, loc *time.Location) []interface{} {
	if loc == nil {
		loc = time.UTC
	}
	m := rec.Measurements

	var birta interface{} = ""
	if m.Birta != nil {
		birta = *m.Birta
	}

	return []interface{}{
		rec.ID,
		rec.Timestamp.In(loc).Format(TimestampLayout),
		rec.MixType.Label(),
		m.ColorType.Label(),
		m.ColorQuantity,
		m.Cement,
		m.Aggregate,
		m.Sand,
		m.Water,
		m.Plastizer,
		birta,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
