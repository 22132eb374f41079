package mixes

import (
	"fmt"
	"math"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

// Validate checks a candidate against the mix rules and reports every violation at once.
// It returns nil or a *models.ValidationError.
func Validate(in models.MixInput) error {
	var errs []models.FieldError

	errs = checkRange(errs, "cement", in.Cement, models.MaxMeasurement)
	errs = checkRange(errs, "aggregate", in.Aggregate, models.MaxMeasurement)
	errs = checkRange(errs, "sand", in.Sand, models.MaxMeasurement)
	errs = checkRange(errs, "water", in.Water, models.MaxMeasurement)
	errs = checkRange(errs, "plastizer", in.Plastizer, models.MaxMeasurement)
	errs = checkRange(errs, "color_quantity", in.ColorQuantity, models.MaxMeasurement)

	knownType := in.MixType.Valid()
	if !knownType {
		errs = append(errs, models.FieldError{Field: "mix_type", Message: "must be interlock or boards_tiir"})
	}

	if in.MixType.RequiresBirta() {
		if in.Birta == nil {
			errs = append(errs, models.FieldError{Field: "birta", Message: "required for boards/tiir mixes"})
		} else {
			errs = checkRange(errs, "birta", *in.Birta, models.MaxBirta)
		}
	}

	// An empty color is accepted and becomes NoColor in Normalize.
	if in.ColorType != "" && !in.ColorType.Valid() {
		errs = append(errs, models.FieldError{Field: "color_type", Message: fmt.Sprintf("unknown color %q", in.ColorType)})
	}

	if len(in.Products) == 0 {
		errs = append(errs, models.FieldError{Field: "products", Message: "at least one product is required"})
	}

	seen := make(map[models.ProductType]int, len(in.Products))
	for i, p := range in.Products {
		if knownType && !in.MixType.Allows(p.Type) {
			errs = append(errs, models.FieldError{
				Field:   "products",
				Message: fmt.Sprintf("product %d: type %q is not allowed for %s", i+1, p.Type, in.MixType.Label()),
			})
		}
		if first, dup := seen[p.Type]; dup {
			errs = append(errs, models.FieldError{
				Field:   "products",
				Message: fmt.Sprintf("product %d: type %q already used by product %d", i+1, p.Type, first+1),
			})
		} else {
			seen[p.Type] = i
		}
		errs = checkRange(errs, fmt.Sprintf("products[%d].quantity", i), p.Quantity, models.MaxProductQuantity)
	}

	if len(errs) > 0 {
		return &models.ValidationError{Errors: errs}
	}
	return nil
}

func checkRange(errs []models.FieldError, field string, v, limit float64) []models.FieldError {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return append(errs, models.FieldError{Field: field, Message: "must be a number"})
	case v < 0:
		return append(errs, models.FieldError{Field: field, Message: "must be at least 0"})
	case v > limit:
		return append(errs, models.FieldError{Field: field, Message: fmt.Sprintf("must be at most %g", limit)})
	}
	return errs
}
