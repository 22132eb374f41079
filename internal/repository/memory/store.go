package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

// Store keeps mix records in process memory. It is used for local runs and tests.
type Store struct {
	mu      sync.RWMutex
	records map[string]models.MixRecord
	now     func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]models.MixRecord),
		now:     time.Now,
	}
}

// WithClock overrides the time source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// List returns the owner's records newest first.
func (s *Store) List(ctx context.Context, owner string, q models.ListQuery) (models.RecordPage, error) {
	if err := ctx.Err(); err != nil {
		return models.RecordPage{}, err
	}
	if q.Page < 1 || q.PageSize < 1 {
		return models.RecordPage{}, fmt.Errorf("page and page size must be positive")
	}

	s.mu.RLock()
	matched := make([]models.MixRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec.CreatedBy != owner {
			continue
		}
		if q.MixType != "" && rec.MixType != q.MixType {
			continue
		}
		matched = append(matched, cloneRecord(rec))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	page := models.RecordPage{
		Records:    []models.MixRecord{},
		TotalCount: len(matched),
		TotalPages: models.TotalPages(len(matched), q.PageSize),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}

	if q.Page > page.TotalPages {
		return page, nil
	}
	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	page.Records = matched[start:end]
	return page, nil
}

// Get returns one record owned by owner.
func (s *Store) Get(ctx context.Context, owner, id string) (models.MixRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.MixRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.CreatedBy != owner {
		return models.MixRecord{}, fmt.Errorf("mix record %s: %w", id, models.ErrNotFound)
	}
	return cloneRecord(rec), nil
}

// Create assigns an id and timestamps and stores the record.
func (s *Store) Create(ctx context.Context, owner string, in models.MixInput) (models.MixRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.MixRecord{}, err
	}

	now := s.now().UTC()
	rec := models.MixRecord{
		ID:           uuid.NewString(),
		Timestamp:    now,
		MixType:      in.MixType,
		Measurements: in.Measurements,
		CreatedBy:    owner,
		LastModified: now,
	}
	rec = cloneRecord(rec)

	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()

	return cloneRecord(rec), nil
}

// Update swaps the mix type and measurement block and refreshes LastModified.
func (s *Store) Update(ctx context.Context, owner, id string, in models.MixInput) (models.MixRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.MixRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.CreatedBy != owner {
		return models.MixRecord{}, fmt.Errorf("mix record %s: %w", id, models.ErrNotFound)
	}

	rec.MixType = in.MixType
	rec.Measurements = in.Measurements
	rec.LastModified = s.now().UTC()
	rec = cloneRecord(rec)
	s.records[id] = rec

	return cloneRecord(rec), nil
}

// Delete removes a record owned by owner.
func (s *Store) Delete(ctx context.Context, owner, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.CreatedBy != owner {
		return fmt.Errorf("mix record %s: %w", id, models.ErrNotFound)
	}
	delete(s.records, id)
	return nil
}

func cloneRecord(rec models.MixRecord) models.MixRecord {
	if rec.Measurements.Birta != nil {
		b := *rec.Measurements.Birta
		rec.Measurements.Birta = &b
	}
	if rec.Measurements.Products != nil {
		products := make([]models.Product, len(rec.Measurements.Products))
		copy(products, rec.Measurements.Products)
		rec.Measurements.Products = products
	}
	return rec
}
