package mixes

import "github.com/mamadbah2/mixlog/internal/domain/models"

// Normalize prepares validated input for storage: an unset color becomes NoColor and
// Interlock inputs lose any birta value.
func Normalize(in models.MixInput) models.MixInput {
	out := in
	if out.ColorType == "" {
		out.ColorType = models.ColorNone
	}
	if !out.MixType.RequiresBirta() {
		out.Birta = nil
	} else if in.Birta != nil {
		b := *in.Birta
		out.Birta = &b
	}
	if in.Products != nil {
		out.Products = make([]models.Product, len(in.Products))
		copy(out.Products, in.Products)
	}
	return out
}

// SwitchMixType moves a form to mix type t. A different type replaces the whole
// measurement and product block with the defaults of t.
func SwitchMixType(in models.MixInput, t models.MixType) models.MixInput {
	if in.MixType == t {
		return in
	}
	return DefaultInput(t)
}

// DefaultInput is the empty form state for mix type t.
func DefaultInput(t models.MixType) models.MixInput {
	in := models.MixInput{MixType: t}
	if t.RequiresBirta() {
		var zero float64
		in.Birta = &zero
	}
	return in
}
