package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/mixlog/internal/domain/models"
	"github.com/mamadbah2/mixlog/internal/service/export"
	"github.com/mamadbah2/mixlog/internal/service/mixes"
)

// OwnerKey is the gin context key holding the caller's owner id.
const OwnerKey = "owner_id"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MixService describes the record operations the HTTP layer needs.
type MixService interface {
	List(ctx context.Context, owner string, q models.ListQuery) (models.RecordPage, error)
	All(ctx context.Context, owner string, mixType models.MixType) ([]models.MixRecord, error)
	Get(ctx context.Context, owner, id string) (models.MixRecord, error)
	Create(ctx context.Context, owner string, in models.MixInput) (models.MixRecord, error)
	Update(ctx context.Context, owner, id string, in models.MixInput) (models.MixRecord, error)
	Delete(ctx context.Context, owner, id string) error
}

// SummaryService computes aggregate views.
type SummaryService interface {
	Summary(ctx context.Context, owner string, mixType models.MixType) (models.Summary, error)
}

// MixHandler exposes mix records over HTTP.
type MixHandler struct {
	mixes    MixService
	summary  SummaryService
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewMixHandler constructs the HTTP handler adapter.
func NewMixHandler(mixSvc MixService, summarySvc SummaryService, location *time.Location, logger *zap.Logger) *MixHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &MixHandler{mixes: mixSvc, summary: summarySvc, location: location, logger: logger, now: time.Now}
}

// List returns one page of records.
func (h *MixHandler) List(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pageSize, err := queryInt(c, "page_size", mixes.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if page < 1 || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page and page_size must be positive"})
		return
	}

	res, err := h.mixes.List(c.Request.Context(), owner(c), models.ListQuery{
		Page:     page,
		PageSize: pageSize,
		MixType:  models.MixType(c.Query("mix_type")),
	})
	if err != nil {
		h.writeError(c, "list mix records", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Get returns a single record.
func (h *MixHandler) Get(c *gin.Context) {
	rec, err := h.mixes.Get(c.Request.Context(), owner(c), c.Param("id"))
	if err != nil {
		h.writeError(c, "get mix record", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Create stores a new record.
func (h *MixHandler) Create(c *gin.Context) {
	var in models.MixInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid mix payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.mixes.Create(c.Request.Context(), owner(c), in)
	if err != nil {
		h.writeError(c, "create mix record", err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Update replaces the measurement block of a record.
func (h *MixHandler) Update(c *gin.Context) {
	var in models.MixInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid mix payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.mixes.Update(c.Request.Context(), owner(c), c.Param("id"), in)
	if err != nil {
		h.writeError(c, "update mix record", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Delete removes a record.
func (h *MixHandler) Delete(c *gin.Context) {
	if err := h.mixes.Delete(c.Request.Context(), owner(c), c.Param("id")); err != nil {
		h.writeError(c, "delete mix record", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Validate runs the form rules without storing anything.
func (h *MixHandler) Validate(c *gin.Context) {
	var in models.MixInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := mixes.Validate(in); err != nil {
		h.writeError(c, "validate mix input", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "normalized": mixes.Normalize(in)})
}

// Summary returns the grouped production totals.
func (h *MixHandler) Summary(c *gin.Context) {
	mixType, ok := mixTypeQuery(c)
	if !ok {
		return
	}

	summary, err := h.summary.Summary(c.Request.Context(), owner(c), mixType)
	if err != nil {
		h.writeError(c, "summarize mix records", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportCSV streams every matching record as CSV.
func (h *MixHandler) ExportCSV(c *gin.Context) {
	records, ok := h.exportRecords(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records, h.location); err != nil {
		h.logger.Error("failed writing csv export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", h.attachment("csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX returns every matching record as a workbook.
func (h *MixHandler) ExportXLSX(c *gin.Context) {
	records, ok := h.exportRecords(c)
	if !ok {
		return
	}

	data, err := export.XLSX(records, h.location)
	if err != nil {
		h.logger.Error("failed writing xlsx export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", h.attachment("xlsx"))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Vocabulary lists the enumerations the entry form offers.
func (h *MixHandler) Vocabulary(c *gin.Context) {
	products := make(map[models.MixType][]models.ProductType, len(models.MixTypes))
	for _, m := range models.MixTypes {
		products[m] = models.Vocabulary(m)
	}
	c.JSON(http.StatusOK, gin.H{
		"mix_types": models.MixTypes,
		"colors":    append([]models.ColorType{models.ColorNone}, models.Palette...),
		"products":  products,
	})
}

func (h *MixHandler) exportRecords(c *gin.Context) ([]models.MixRecord, bool) {
	mixType, ok := mixTypeQuery(c)
	if !ok {
		return nil, false
	}

	records, err := h.mixes.All(c.Request.Context(), owner(c), mixType)
	if err != nil {
		h.writeError(c, "load export records", err)
		return nil, false
	}
	return records, true
}

func (h *MixHandler) writeError(c *gin.Context, action string, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Error(), "fields": validationErr.Errors})
	case errors.Is(err, mixes.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "mix record not found"})
	default:
		h.logger.Error("failed to "+action, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to " + action})
	}
}

func owner(c *gin.Context) string {
	return c.GetString(OwnerKey)
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func mixTypeQuery(c *gin.Context) (models.MixType, bool) {
	mixType := models.MixType(c.Query("mix_type"))
	if mixType != "" && !mixType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mix_type %q", mixType)})
		return "", false
	}
	return mixType, true
}

// attachment names export files after the current day in the reporting timezone.
func (h *MixHandler) attachment(ext string) string {
	day := h.now().In(h.location).Format("2006-01-02")
	return fmt.Sprintf(`attachment; filename="mix-records-%s.%s"`, day, ext)
}
