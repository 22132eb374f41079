package mixes

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

const (
	// MaxPageSize caps a single listing request.
	MaxPageSize = 1000
	// DefaultPageSize is used when the caller does not pick one.
	DefaultPageSize = 10
)

// ErrInvalidQuery indicates paging parameters out of range.
var ErrInvalidQuery = errors.New("invalid list query")

// Store persists mix records scoped to their owner.
type Store interface {
	List(ctx context.Context, owner string, q models.ListQuery) (models.RecordPage, error)
	Get(ctx context.Context, owner, id string) (models.MixRecord, error)
	Create(ctx context.Context, owner string, in models.MixInput) (models.MixRecord, error)
	Update(ctx context.Context, owner, id string, in models.MixInput) (models.MixRecord, error)
	Delete(ctx context.Context, owner, id string) error
}

// Mirror receives a copy of every created record, e.g. a spreadsheet.
type Mirror interface {
	AppendRecord(ctx context.Context, record models.MixRecord) error
}

// Service validates and normalizes mix input before handing it to the store.
type Service struct {
	store  Store
	mirror Mirror
	logger *zap.Logger
}

// NewService wires a mix service. mirror may be nil.
func NewService(store Store, mirror Mirror, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, mirror: mirror, logger: logger}
}

// List returns one page of the owner's records, newest first.
func (s *Service) List(ctx context.Context, owner string, q models.ListQuery) (models.RecordPage, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page < 0 || q.PageSize < 0 || q.PageSize > MaxPageSize {
		return models.RecordPage{}, fmt.Errorf("%w: page=%d page_size=%d", ErrInvalidQuery, q.Page, q.PageSize)
	}
	if q.MixType != "" && !q.MixType.Valid() {
		return models.RecordPage{}, fmt.Errorf("%w: unknown mix type %q", ErrInvalidQuery, q.MixType)
	}

	page, err := s.store.List(ctx, owner, q)
	if err != nil {
		return models.RecordPage{}, &models.StoreError{Op: "list", Err: err}
	}
	return page, nil
}

// All collects every record of the owner, optionally narrowed to one mix type.
func (s *Service) All(ctx context.Context, owner string, mixType models.MixType) ([]models.MixRecord, error) {
	var out []models.MixRecord
	for page := 1; ; page++ {
		res, err := s.List(ctx, owner, models.ListQuery{Page: page, PageSize: MaxPageSize, MixType: mixType})
		if err != nil {
			return nil, err
		}
		out = append(out, res.Records...)
		if page >= res.TotalPages || len(res.Records) == 0 {
			return out, nil
		}
	}
}

// Get fetches a single record.
func (s *Service) Get(ctx context.Context, owner, id string) (models.MixRecord, error) {
	rec, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return models.MixRecord{}, &models.StoreError{Op: "get", Err: err}
	}
	return rec, nil
}

// Create validates, normalizes and stores a new record.
func (s *Service) Create(ctx context.Context, owner string, in models.MixInput) (models.MixRecord, error) {
	if err := Validate(in); err != nil {
		return models.MixRecord{}, err
	}

	rec, err := s.store.Create(ctx, owner, Normalize(in))
	if err != nil {
		return models.MixRecord{}, &models.StoreError{Op: "create", Err: err}
	}

	s.logger.Info("mix record created",
		zap.String("id", rec.ID),
		zap.String("owner", owner),
		zap.String("mix_type", string(rec.MixType)),
		zap.Int("products", len(rec.Measurements.Products)))

	if s.mirror != nil {
		if err := s.mirror.AppendRecord(ctx, rec); err != nil {
			s.logger.Warn("failed mirroring mix record", zap.String("id", rec.ID), zap.Error(err))
		}
	}

	return rec, nil
}

// Update replaces the mix type and measurement block of an existing record.
func (s *Service) Update(ctx context.Context, owner, id string, in models.MixInput) (models.MixRecord, error) {
	if err := Validate(in); err != nil {
		return models.MixRecord{}, err
	}

	rec, err := s.store.Update(ctx, owner, id, Normalize(in))
	if err != nil {
		return models.MixRecord{}, &models.StoreError{Op: "update", Err: err}
	}

	s.logger.Info("mix record updated", zap.String("id", rec.ID), zap.String("owner", owner))
	return rec, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return &models.StoreError{Op: "delete", Err: err}
	}
	s.logger.Info("mix record deleted", zap.String("id", id), zap.String("owner", owner))
	return nil
}
