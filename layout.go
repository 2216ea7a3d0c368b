// layout.go
package cardpress

import "math"

// --- Layout Engine ---
//
// Pure geometry: given the slot count and the layout variant, derive
// where every photo cell and the message panel sit on the card. The
// result is never stored; it is recomputed whenever slots or the layout
// selection change.

// PercentRect is a region of the card surface in percent coordinates.
type PercentRect struct {
	X      float64 // left edge, percent of card width
	Y      float64 // top edge, percent of card height
	Width  float64
	Height float64
}

// CardLayout is the derived geometry for one composition state.
type CardLayout struct {
	Variant      string
	Columns      int // columns of the (secondary, for focus) grid
	Rows         int
	Hero         *PercentRect  // focus only; nil for duo
	Cells        []PercentRect // one per slot, in slot order (focus: index 0 is the hero)
	MessagePanel PercentRect
}

// Fraction of the card height reserved for the recipient/message panel.
const messagePanelShare = 22.0

// Inner gap between grid cells, percent of card width/height.
const cellGap = 2.0

// GridFor returns the grid dimensions for n items: 1 column up to one
// item, 2 columns up to four, 3 beyond that, rows to fit.
func GridFor(n int) (cols, rows int) {
	switch {
	case n <= 0:
		return 0, 0
	case n <= 1:
		cols = 1
	case n <= 4:
		cols = 2
	default:
		cols = 3
	}
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return cols, rows
}

// ComputeLayout derives the full card geometry for slotCount slots under
// the given variant. Unknown variants fall back to duo.
func ComputeLayout(slotCount int, variant string) CardLayout {
	if !ValidLayout(variant) {
		variant = LayoutDuo
	}
	photoArea := PercentRect{X: 0, Y: 0, Width: 100, Height: 100 - messagePanelShare}
	out := CardLayout{
		Variant:      variant,
		MessagePanel: PercentRect{X: 0, Y: photoArea.Height, Width: 100, Height: messagePanelShare},
	}
	if slotCount <= 0 {
		return out
	}

	if variant == LayoutFocus {
		if slotCount == 1 {
			// Hero alone fills the photo area.
			hero := photoArea
			out.Hero = &hero
			out.Cells = []PercentRect{hero}
			out.Columns, out.Rows = 1, 1
			return out
		}
		// Hero takes the upper 60% of the photo area, the rest share a grid.
		hero := photoArea
		hero.Height = photoArea.Height * 0.6
		out.Hero = &hero
		grid := PercentRect{
			X:      photoArea.X,
			Y:      photoArea.Y + hero.Height + cellGap,
			Width:  photoArea.Width,
			Height: photoArea.Height - hero.Height - cellGap,
		}
		out.Columns, out.Rows = GridFor(slotCount - 1)
		out.Cells = append([]PercentRect{hero}, gridCells(grid, slotCount-1, out.Columns, out.Rows)...)
		return out
	}

	out.Columns, out.Rows = GridFor(slotCount)
	out.Cells = gridCells(photoArea, slotCount, out.Columns, out.Rows)
	return out
}

// gridCells splits area into n cells over a cols x rows grid, row-major,
// with cellGap between neighbours. A short final row keeps its cells at
// full cell width (left aligned), matching how the grid renders.
func gridCells(area PercentRect, n, cols, rows int) []PercentRect {
	if n <= 0 || cols <= 0 || rows <= 0 {
		return nil
	}
	cellW := (area.Width - float64(cols-1)*cellGap) / float64(cols)
	cellH := (area.Height - float64(rows-1)*cellGap) / float64(rows)
	cells := make([]PercentRect, 0, n)
	for i := 0; i < n; i++ {
		col := i % cols
		row := i / cols
		cells = append(cells, PercentRect{
			X:      area.X + float64(col)*(cellW+cellGap),
			Y:      area.Y + float64(row)*(cellH+cellGap),
			Width:  cellW,
			Height: cellH,
		})
	}
	return cells
}
