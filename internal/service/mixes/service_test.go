package mixes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/mixlog/internal/domain/models"
	"github.com/mamadbah2/mixlog/internal/repository/memory"
)

type recordingMirror struct {
	records []models.MixRecord
	err     error
}

func (m *recordingMirror) AppendRecord(_ context.Context, rec models.MixRecord) error {
	m.records = append(m.records, rec)
	return m.err
}

type failingStore struct {
	err error
}

func (f failingStore) List(context.Context, string, models.ListQuery) (models.RecordPage, error) {
	return models.RecordPage{}, f.err
}

func (f failingStore) Get(context.Context, string, string) (models.MixRecord, error) {
	return models.MixRecord{}, f.err
}

func (f failingStore) Create(context.Context, string, models.MixInput) (models.MixRecord, error) {
	return models.MixRecord{}, f.err
}

func (f failingStore) Update(context.Context, string, string, models.MixInput) (models.MixRecord, error) {
	return models.MixRecord{}, f.err
}

func (f failingStore) Delete(context.Context, string, string) error {
	return f.err
}

func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func newTestService(t *testing.T) (*Service, *recordingMirror) {
	t.Helper()
	store := memory.NewStore().WithClock(steppingClock(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)))
	mirror := &recordingMirror{}
	return NewService(store, mirror, nil), mirror
}

func TestService_CreateThenListRoundTrip(t *testing.T) {
	t.Parallel()

	svc, mirror := newTestService(t)
	ctx := context.Background()

	in := validBoardsTiir()
	in.ColorType = ""
	in.Cement = 1234.56
	in.ColorQuantity = 9999.99

	created, err := svc.Create(ctx, "owner-1", in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-1", created.CreatedBy)
	assert.Equal(t, created.Timestamp, created.LastModified)

	page, err := svc.List(ctx, "owner-1", models.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)

	want := Normalize(in).Measurements
	assert.Equal(t, want, page.Records[0].Measurements)
	assert.Equal(t, models.ColorNone, page.Records[0].Measurements.ColorType)
	assert.Equal(t, 1234.56, page.Records[0].Measurements.Cement)

	require.Len(t, mirror.records, 1)
	assert.Equal(t, created.ID, mirror.records[0].ID)
}

func TestService_CreateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	svc, mirror := newTestService(t)

	in := validBoardsTiir()
	in.Birta = nil

	_, err := svc.Create(context.Background(), "owner-1", in)
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, mirror.records)

	page, err := svc.List(context.Background(), "owner-1", models.ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
}

func TestService_CreateIgnoresMirrorFailure(t *testing.T) {
	t.Parallel()

	svc, mirror := newTestService(t)
	mirror.err = errors.New("sheets down")

	_, err := svc.Create(context.Background(), "owner-1", validInterlock())
	require.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", validInterlock())
	require.NoError(t, err)

	edit := SwitchMixType(validInterlock(), models.MixBoardsTiir)
	edit.Cement = 10
	edit.Products = []models.Product{{Type: models.ProductBoards, Quantity: 8}}

	updated, err := svc.Update(ctx, "owner-1", created.ID, edit)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Timestamp, updated.Timestamp)
	assert.True(t, updated.LastModified.After(created.LastModified))
	assert.Equal(t, models.MixBoardsTiir, updated.MixType)
	assert.Equal(t, models.ColorNone, updated.Measurements.ColorType)
	assert.Equal(t, []models.Product{{Type: models.ProductBoards, Quantity: 8}}, updated.Measurements.Products)

	_, err = svc.Update(ctx, "owner-2", created.ID, edit)
	require.ErrorIs(t, err, models.ErrNotFound)

	invalid := edit
	invalid.Birta = nil
	_, err = svc.Update(ctx, "owner-1", created.ID, invalid)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestService_Delete(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", validInterlock())
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "owner-2", created.ID), models.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "owner-1", created.ID))

	_, err = svc.Get(ctx, "owner-1", created.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_ListValidatesQuery(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query models.ListQuery
	}{
		{"negative page", models.ListQuery{Page: -1, PageSize: 10}},
		{"negative page size", models.ListQuery{Page: 1, PageSize: -10}},
		{"page size too large", models.ListQuery{Page: 1, PageSize: MaxPageSize + 1}},
		{"unknown mix type", models.ListQuery{Page: 1, PageSize: 10, MixType: "concrete"}},
	}

	for _, tt := range tests {
		_, err := svc.List(ctx, "owner-1", tt.query)
		assert.ErrorIs(t, err, ErrInvalidQuery, tt.name)
	}

	page, err := svc.List(ctx, "owner-1", models.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
}

func TestService_AllPagesThroughStore(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, "owner-1", validInterlock())
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "owner-1", validBoardsTiir())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-2", validInterlock())
	require.NoError(t, err)

	all, err := svc.All(ctx, "owner-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	interlock, err := svc.All(ctx, "owner-1", models.MixInterlock)
	require.NoError(t, err)
	assert.Len(t, interlock, 3)

	none, err := svc.All(ctx, "owner-3", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_StoreFailuresAreWrapped(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	svc := NewService(failingStore{err: boom}, nil, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, "owner-1", models.ListQuery{Page: 1, PageSize: 10})
	var storeErr *models.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "list", storeErr.Op)
	assert.ErrorIs(t, err, boom)

	_, err = svc.All(ctx, "owner-1", "")
	require.ErrorAs(t, err, &storeErr)

	_, err = svc.Create(ctx, "owner-1", validInterlock())
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "create", storeErr.Op)

	err = svc.Delete(ctx, "owner-1", "id")
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "delete", storeErr.Op)
}
