package models

// MixType enumerates the two production mix categories.
type MixType string

const (
	MixInterlock  MixType = "interlock"
	MixBoardsTiir MixType = "boards_tiir"
)

// MixTypes lists every mix type in display order.
var MixTypes = []MixType{MixInterlock, MixBoardsTiir}

// Valid reports whether m is one of the known mix types.
func (m MixType) Valid() bool {
	switch m {
	case MixInterlock, MixBoardsTiir:
		return true
	default:
		return false
	}
}

// Label returns the human readable mix type name.
func (m MixType) Label() string {
	switch m {
	case MixInterlock:
		return "Interlock"
	case MixBoardsTiir:
		return "Boards/Tiir"
	default:
		return string(m)
	}
}

// RequiresBirta reports whether records of this mix type must carry a birta value.
func (m MixType) RequiresBirta() bool {
	return m == MixBoardsTiir
}

// ColorType is either NoColor or one entry of the fixed palette.
type ColorType string

const (
	ColorNone    ColorType = "no_color"
	ColorRed     ColorType = "red"
	ColorPureRed ColorType = "pure_red"
	ColorWhite   ColorType = "white"
	ColorBlack   ColorType = "black"
	ColorYellow  ColorType = "yellow"
)

// Palette is the set of selectable colors, NoColor excluded.
var Palette = []ColorType{ColorRed, ColorPureRed, ColorWhite, ColorBlack, ColorYellow}

// Valid reports whether c is NoColor or a palette member. The empty string is not valid here;
// callers decide how to treat an unset color.
func (c ColorType) Valid() bool {
	if c == ColorNone {
		return true
	}
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Label returns the display name of the color.
func (c ColorType) Label() string {
	switch c {
	case ColorNone, "":
		return "No Color"
	case ColorRed:
		return "Red"
	case ColorPureRed:
		return "Pure Red"
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	case ColorYellow:
		return "Yellow"
	default:
		return string(c)
	}
}

// ProductType names a produced sub-item. Each mix type draws from its own vocabulary.
type ProductType string

const (
	ProductBlockInterlock         ProductType = "block_interlock"
	ProductBuuorInterlock         ProductType = "buuor_interlock"
	ProductDaimondInterlock       ProductType = "daimond_interlock"
	ProductTiibaTalyaaniInterlock ProductType = "tiiba_talyaani_interlock"
	ProductYorkShirInterlock      ProductType = "york_shir_interlock"
	ProductGarden                 ProductType = "garden"

	ProductTiir   ProductType = "tiir"
	ProductBoards ProductType = "boards"
)

var vocabularies = map[MixType][]ProductType{
	MixInterlock: {
		ProductBlockInterlock,
		ProductBuuorInterlock,
		ProductDaimondInterlock,
		ProductTiibaTalyaaniInterlock,
		ProductYorkShirInterlock,
		ProductGarden,
	},
	MixBoardsTiir: {
		ProductTiir,
		ProductBoards,
	},
}

// Vocabulary returns the product types permitted for the mix type, or nil for an unknown type.
// The returned slice is a copy.
func Vocabulary(m MixType) []ProductType {
	v := vocabularies[m]
	if v == nil {
		return nil
	}
	out := make([]ProductType, len(v))
	copy(out, v)
	return out
}

// Allows reports whether product type p belongs to the vocabulary of m.
func (m MixType) Allows(p ProductType) bool {
	for _, candidate := range vocabularies[m] {
		if candidate == p {
			return true
		}
	}
	return false
}

// Label returns the display name of the product type.
func (p ProductType) Label() string {
	switch p {
	case ProductBlockInterlock:
		return "Block Interlock"
	case ProductBuuorInterlock:
		return "Buuor Interlock"
	case ProductDaimondInterlock:
		return "Daimond Interlock"
	case ProductTiibaTalyaaniInterlock:
		return "Tiiba Talyaani Interlock"
	case ProductYorkShirInterlock:
		return "York Shir Interlock"
	case ProductGarden:
		return "Garden"
	case ProductTiir:
		return "Tiir"
	case ProductBoards:
		return "Boards"
	default:
		return string(p)
	}
}
