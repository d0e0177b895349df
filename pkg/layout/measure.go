package layout

// Measurer answers text measurement queries for layout. Layout only needs
// advance widths and line heights; rasterization details stay in the
// paint layer.
type Measurer interface {
	Advance(text string, fontSize float64) float64
	LineHeight(fontSize float64) float64
}

// EstimatingMeasurer approximates glyph advances as a fixed fraction of
// the font size. Deterministic, which matters more to layout tests than
// typographic accuracy does.
type EstimatingMeasurer struct{}

func (EstimatingMeasurer) Advance(text string, fontSize float64) float64 {
	return float64(len([]rune(text))) * fontSize * 0.6
}

func (EstimatingMeasurer) LineHeight(fontSize float64) float64 {
	return fontSize * 1.2
}
