package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

const dateLayout = "2006-01-02"

// RecordSource loads every record of an owner.
type RecordSource interface {
	All(ctx context.Context, owner string, mixType models.MixType) ([]models.MixRecord, error)
}

// SnapshotSink persists daily summary snapshots.
type SnapshotSink interface {
	SaveSummarySnapshot(ctx context.Context, snapshot models.SummarySnapshot) error
}

// Service exposes production summaries for the summary views and the daily digest.
type Service struct {
	source   RecordSource
	sink     SnapshotSink
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance. sink may be nil, in which case
// snapshots are computed but not persisted.
func NewService(source RecordSource, sink SnapshotSink, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{
		source:   source,
		sink:     sink,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary aggregates all of the owner's records, optionally for a single mix type.
func (s *Service) Summary(ctx context.Context, owner string, mixType models.MixType) (models.Summary, error) {
	records, err := s.source.All(ctx, owner, mixType)
	if err != nil {
		return models.Summary{}, fmt.Errorf("load records for summary: %w", err)
	}
	return Summarize(records), nil
}

// DailySnapshot summarizes the records created on day (in the service time zone), persists
// the snapshot and returns it with a text digest.
func (s *Service) DailySnapshot(ctx context.Context, owner string, day time.Time) (models.SummarySnapshot, string, error) {
	local := day.In(s.location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 0, 1)

	records, err := s.source.All(ctx, owner, "")
	if err != nil {
		return models.SummarySnapshot{}, "", fmt.Errorf("load records for snapshot: %w", err)
	}

	var todays []models.MixRecord
	for _, rec := range records {
		if rec.Timestamp.Before(start) || !rec.Timestamp.Before(end) {
			continue
		}
		todays = append(todays, rec)
	}

	snapshot := models.SummarySnapshot{
		Date:      start.UTC(),
		Owner:     owner,
		Summary:   Summarize(todays),
		CreatedAt: s.now().UTC(),
	}

	if s.sink != nil {
		if err := s.sink.SaveSummarySnapshot(ctx, snapshot); err != nil {
			return models.SummarySnapshot{}, "", fmt.Errorf("save snapshot: %w", err)
		}
	}

	s.logger.Info("daily snapshot built",
		zap.String("owner", owner),
		zap.String("date", start.Format(dateLayout)),
		zap.Int("records", len(todays)),
		zap.Float64("grand_total", snapshot.Summary.GrandTotal))

	return snapshot, FormatDigest(start, snapshot.Summary), nil
}

// FormatDigest renders a summary as a short plain-text report.
func FormatDigest(day time.Time, summary models.Summary) string {
	if summary.RecordCount == 0 {
		return fmt.Sprintf("Production %s: no mixes recorded.", day.Format(dateLayout))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Production %s: %d mixes, %g units total.", day.Format(dateLayout), summary.RecordCount, summary.GrandTotal)

	for _, mixType := range models.MixTypes {
		products, ok := summary.ByMixType[mixType]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s:", mixType.Label())
		for _, p := range sortedProducts(products) {
			fmt.Fprintf(&b, " %s %g;", p.Label(), products[p])
		}
	}
	return b.String()
}

func sortedProducts(q models.QuantitiesByProduct) []models.ProductType {
	out := make([]models.ProductType, 0, len(q))
	for p := range q {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
