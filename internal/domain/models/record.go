package models

import "time"

// Bounds applied to measurement values.
const (
	MaxMeasurement     = 9999.99
	MaxBirta           = 9999
	MaxProductQuantity = 9999
)

// Product records how much of one product type was produced within a mix.
type Product struct {
	Type     ProductType `bson:"type" json:"type"`
	Quantity float64     `bson:"quantity" json:"quantity"`
}

// Measurements is the replaceable block of a mix record. Edits always swap it wholesale.
type Measurements struct {
	Cement        float64   `bson:"cement" json:"cement"`
	Aggregate     float64   `bson:"aggregate" json:"aggregate"`
	Sand          float64   `bson:"sand" json:"sand"`
	Water         float64   `bson:"water" json:"water"`
	Plastizer     float64   `bson:"plastizer" json:"plastizer"`
	Birta         *float64  `bson:"birta,omitempty" json:"birta,omitempty"`
	ColorType     ColorType `bson:"color_type" json:"color_type"`
	ColorQuantity float64   `bson:"color_quantity" json:"color_quantity"`
	Products      []Product `bson:"products,omitempty" json:"products"`
}

// MixInput is the candidate submitted by the entry and edit forms.
type MixInput struct {
	MixType      MixType `json:"mix_type"`
	Measurements `bson:",inline"`
}

// MixRecord is a stored production record.
type MixRecord struct {
	ID           string       `bson:"_id" json:"id"`
	Timestamp    time.Time    `bson:"timestamp" json:"timestamp"`
	MixType      MixType      `bson:"mix_type" json:"mix_type"`
	Measurements Measurements `bson:"measurements" json:"measurements"`
	CreatedBy    string       `bson:"created_by" json:"created_by"`
	LastModified time.Time    `bson:"last_modified" json:"last_modified"`
}

// ListQuery selects a page of records, optionally narrowed to one mix type.
type ListQuery struct {
	Page     int
	PageSize int
	MixType  MixType
}

// RecordPage is one page of records, newest first.
type RecordPage struct {
	Records    []MixRecord `json:"records"`
	TotalCount int         `json:"total_count"`
	TotalPages int         `json:"total_pages"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}

// TotalPages computes the number of pages needed for total items.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
