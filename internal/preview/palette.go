package preview

import "github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"

const (
	outline       = "#333333"
	glass         = "#cfe3f1"
	roofColor     = "#4a4a4a"
	roofTileColor = "#8a4b3a"
	textureStroke = "#000000"
	white         = "#ffffff"
)

// Palette maps the offered colors to their RAL-like hex values.
var Palette = map[domain.Color]string{
	domain.ColorWit:       white,
	domain.ColorCreme:     "#f3ecd8",
	domain.ColorAntraciet: "#383e42",
	domain.ColorZwart:     "#0e0e10",
	domain.ColorGrijs:     "#8f9695",
	domain.ColorGroen:     "#28713e",
	domain.ColorBlauw:     "#1f4e79",
}

// Hex falls back to white for colors outside the palette.
func Hex(c domain.Color) string {
	if h, ok := Palette[c]; ok {
		return h
	}
	return white
}
