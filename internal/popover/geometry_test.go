package popover

import "testing"

func TestClamp(t *testing.T) {
	const vw, vh, m = 100, 50, 8
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"fits", Rect{Left: 10, Top: 10, Width: 20, Height: 10}, Rect{Left: 10, Top: 10, Width: 20, Height: 10}},
		{"right overflow", Rect{Left: 80, Top: 10, Width: 20, Height: 10}, Rect{Left: 72, Top: 10, Width: 20, Height: 10}},
		{"bottom overflow", Rect{Left: 10, Top: 40, Width: 20, Height: 10}, Rect{Left: 10, Top: 32, Width: 20, Height: 10}},
		{"both", Rect{Left: 95, Top: 45, Width: 20, Height: 10}, Rect{Left: 72, Top: 32, Width: 20, Height: 10}},
		{"wider than viewport", Rect{Left: 50, Top: 10, Width: 120, Height: 10}, Rect{Left: 8, Top: 10, Width: 120, Height: 10}},
		{"negative origin", Rect{Left: -5, Top: 0, Width: 10, Height: 10}, Rect{Left: 8, Top: 8, Width: 10, Height: 10}},
		{"exactly at edge", Rect{Left: 72, Top: 32, Width: 20, Height: 10}, Rect{Left: 72, Top: 32, Width: 20, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.in, vw, vh, m); got != tt.want {
				t.Errorf("Clamp(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampKeepsFittingBoxesInBounds(t *testing.T) {
	const vw, vh, m = 120, 40, 8
	for left := -20; left < 140; left += 7 {
		for top := -10; top < 50; top += 3 {
			b := Clamp(Rect{Left: left, Top: top, Width: 30, Height: 12}, vw, vh, m)
			if b.Left < m || b.Top < m || b.Right() > vw-m || b.Bottom() > vh-m {
				t.Fatalf("Clamp left=%d top=%d gave %+v", left, top, b)
			}
		}
	}
}

func TestTentative(t *testing.T) {
	p := Tentative(&Rect{Left: 3, Top: 4, Width: 10, Height: 2}, 100, 50, 8)
	if p != (Point{X: 3, Y: 14}) {
		t.Errorf("anchored = %+v", p)
	}
	if p := Tentative(nil, 100, 50, 8); p != (Point{X: 50, Y: 25}) {
		t.Errorf("unanchored = %+v", p)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Left: 2, Top: 2, Width: 3, Height: 3}
	if !r.Contains(Point{X: 2, Y: 2}) || !r.Contains(Point{X: 4, Y: 4}) {
		t.Error("expected inner points to be contained")
	}
	if r.Contains(Point{X: 5, Y: 2}) || r.Contains(Point{X: 1, Y: 3}) {
		t.Error("expected outer points to be excluded")
	}
}
