package reporting

import "github.com/mamadbah2/mixlog/internal/domain/models"

// fold visits every product of every record in order, threading acc through step.
// Records without products contribute nothing.
func fold[A any](records []models.MixRecord, acc A, step func(A, models.MixRecord, models.Product) A) A {
	for _, rec := range records {
		for _, p := range rec.Measurements.Products {
			acc = step(acc, rec, p)
		}
	}
	return acc
}

// AggregateByMixType sums product quantities per mix type and product type.
func AggregateByMixType(records []models.MixRecord) models.QuantitiesByMixType {
	return fold(records, models.QuantitiesByMixType{}, func(acc models.QuantitiesByMixType, rec models.MixRecord, p models.Product) models.QuantitiesByMixType {
		if acc[rec.MixType] == nil {
			acc[rec.MixType] = models.QuantitiesByProduct{}
		}
		acc[rec.MixType][p.Type] += p.Quantity
		return acc
	})
}

// AggregateByColor sums product quantities per color, mix type and product type.
func AggregateByColor(records []models.MixRecord) models.QuantitiesByColor {
	return fold(records, models.QuantitiesByColor{}, func(acc models.QuantitiesByColor, rec models.MixRecord, p models.Product) models.QuantitiesByColor {
		color := colorKey(rec.Measurements.ColorType)
		if acc[color] == nil {
			acc[color] = models.QuantitiesByMixType{}
		}
		if acc[color][rec.MixType] == nil {
			acc[color][rec.MixType] = models.QuantitiesByProduct{}
		}
		acc[color][rec.MixType][p.Type] += p.Quantity
		return acc
	})
}

// AggregateByProductType sums product quantities per product type and color.
func AggregateByProductType(records []models.MixRecord) models.QuantitiesByProductColor {
	return fold(records, models.QuantitiesByProductColor{}, func(acc models.QuantitiesByProductColor, rec models.MixRecord, p models.Product) models.QuantitiesByProductColor {
		if acc[p.Type] == nil {
			acc[p.Type] = map[models.ColorType]float64{}
		}
		acc[p.Type][colorKey(rec.Measurements.ColorType)] += p.Quantity
		return acc
	})
}

// GrandTotal sums every product quantity across all records.
func GrandTotal(records []models.MixRecord) float64 {
	return fold(records, 0.0, func(acc float64, _ models.MixRecord, p models.Product) float64 {
		return acc + p.Quantity
	})
}

// TotalByMixType sums the leaves of a mix type grouping.
func TotalByMixType(q models.QuantitiesByMixType) float64 {
	var total float64
	for _, products := range q {
		for _, v := range products {
			total += v
		}
	}
	return total
}

// TotalByColor sums the leaves of a color grouping.
func TotalByColor(q models.QuantitiesByColor) float64 {
	var total float64
	for _, byMix := range q {
		total += TotalByMixType(byMix)
	}
	return total
}

// TotalByProductType sums the leaves of a product type grouping.
func TotalByProductType(q models.QuantitiesByProductColor) float64 {
	var total float64
	for _, colors := range q {
		for _, v := range colors {
			total += v
		}
	}
	return total
}

// Summarize computes every grouping shown by the summary views.
func Summarize(records []models.MixRecord) models.Summary {
	summary := models.Summary{
		ByMixType:     AggregateByMixType(records),
		ByColor:       AggregateByColor(records),
		ByProductType: AggregateByProductType(records),
		GrandTotal:    GrandTotal(records),
		RecordCount:   len(records),
	}
	summary.Totals = models.GroupTotals{
		ByMixType:     TotalByMixType(summary.ByMixType),
		ByColor:       TotalByColor(summary.ByColor),
		ByProductType: TotalByProductType(summary.ByProductType),
	}
	return summary
}

// Records stored before color normalization may carry an empty color.
func colorKey(c models.ColorType) models.ColorType {
	if c == "" {
		return models.ColorNone
	}
	return c
}
