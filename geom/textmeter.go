package geom

// TextMeter abstracts glyph metrics / font handling (spec §6), out of
// scope to implement here. It is the only source of truth the engravers
// consult when a shape's extent depends on a font.
type TextMeter interface {
	SelectFont(name string, size float64, bold, italic bool)
	MeasureWidth(s string) float64
	GetFontHeight() float64
	GetAscender() float64
	BoundingRectangle(ch rune) Rect
}
