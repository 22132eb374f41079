package models

import "time"

// QuantitiesByProduct sums product quantities per product type.
type QuantitiesByProduct map[ProductType]float64

// QuantitiesByMixType groups product sums by mix type.
type QuantitiesByMixType map[MixType]QuantitiesByProduct

// QuantitiesByColor groups mix type groupings by color.
type QuantitiesByColor map[ColorType]QuantitiesByMixType

// QuantitiesByProductColor sums quantities per product type and color.
type QuantitiesByProductColor map[ProductType]map[ColorType]float64

// GroupTotals holds the leaf sum of each grouping.
type GroupTotals struct {
	ByMixType     float64 `bson:"by_mix_type" json:"by_mix_type"`
	ByColor       float64 `bson:"by_color" json:"by_color"`
	ByProductType float64 `bson:"by_product_type" json:"by_product_type"`
}

// Summary bundles every aggregation shown by the summary views.
type Summary struct {
	ByMixType     QuantitiesByMixType      `bson:"by_mix_type" json:"by_mix_type"`
	ByColor       QuantitiesByColor        `bson:"by_color" json:"by_color"`
	ByProductType QuantitiesByProductColor `bson:"by_product_type" json:"by_product_type"`
	Totals        GroupTotals              `bson:"totals" json:"totals"`
	GrandTotal    float64                  `bson:"grand_total" json:"grand_total"`
	RecordCount   int                      `bson:"record_count" json:"record_count"`
}

// SummarySnapshot is the daily aggregate persisted by the scheduler.
type SummarySnapshot struct {
	Date      time.Time `bson:"date" json:"date"`
	Owner     string    `bson:"owner" json:"owner"`
	Summary   Summary   `bson:"summary" json:"summary"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
