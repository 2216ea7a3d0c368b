package cardpress

import "testing"

func TestGridFor(t *testing.T) {
	tests := []struct {
		n, wantCols, wantRows int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 3, 2},
		{6, 3, 2},
		{7, 3, 3},
		{9, 3, 3},
		{10, 3, 4},
	}
	for _, tt := range tests {
		cols, rows := GridFor(tt.n)
		if cols != tt.wantCols || rows != tt.wantRows {
			t.Errorf("GridFor(%d) = (%d, %d), want (%d, %d)", tt.n, cols, rows, tt.wantCols, tt.wantRows)
		}
	}
}

func TestComputeLayoutDuo(t *testing.T) {
	l := ComputeLayout(4, LayoutDuo)
	if l.Hero != nil {
		t.Error("duo layout should have no hero region")
	}
	if l.Columns != 2 || l.Rows != 2 {
		t.Errorf("grid = (%d, %d), want (2, 2)", l.Columns, l.Rows)
	}
	if len(l.Cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(l.Cells))
	}
	// Cells live above the message panel.
	for i, c := range l.Cells {
		if c.Y+c.Height > l.MessagePanel.Y+1e-9 {
			t.Errorf("cell %d overlaps message panel: %+v", i, c)
		}
	}
	// Row-major order: cell 1 is right of cell 0, cell 2 below cell 0.
	if l.Cells[1].X <= l.Cells[0].X {
		t.Error("cell 1 should sit right of cell 0")
	}
	if l.Cells[2].Y <= l.Cells[0].Y {
		t.Error("cell 2 should sit below cell 0")
	}
}

func TestComputeLayoutFocus(t *testing.T) {
	t.Run("hero plus secondary grid", func(t *testing.T) {
		l := ComputeLayout(5, LayoutFocus)
		if l.Hero == nil {
			t.Fatal("focus layout should have a hero region")
		}
		if len(l.Cells) != 5 {
			t.Fatalf("got %d cells, want 5", len(l.Cells))
		}
		if l.Cells[0] != *l.Hero {
			t.Error("cell 0 should be the hero region")
		}
		// Four secondary slots: 2x2 grid.
		if l.Columns != 2 || l.Rows != 2 {
			t.Errorf("secondary grid = (%d, %d), want (2, 2)", l.Columns, l.Rows)
		}
		for i, c := range l.Cells[1:] {
			if c.Y < l.Hero.Y+l.Hero.Height {
				t.Errorf("secondary cell %d overlaps hero: %+v", i+1, c)
			}
		}
	})

	t.Run("lone hero fills the photo area", func(t *testing.T) {
		l := ComputeLayout(1, LayoutFocus)
		if l.Hero == nil {
			t.Fatal("missing hero")
		}
		if l.Hero.Height != 100-messagePanelShare || l.Hero.Width != 100 {
			t.Errorf("hero should fill the photo area, got %+v", *l.Hero)
		}
	})
}

func TestComputeLayoutUnknownVariantFallsBack(t *testing.T) {
	l := ComputeLayout(3, "mosaic")
	if l.Variant != LayoutDuo {
		t.Errorf("variant = %q, want fallback to %q", l.Variant, LayoutDuo)
	}
	if len(l.Cells) != 3 {
		t.Errorf("got %d cells, want 3", len(l.Cells))
	}
}

func TestComputeLayoutIsPureOfState(t *testing.T) {
	a := ComputeLayout(6, LayoutFocus)
	b := ComputeLayout(6, LayoutFocus)
	if len(a.Cells) != len(b.Cells) {
		t.Fatal("repeated derivation disagrees")
	}
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Errorf("cell %d differs between derivations", i)
		}
	}
}
