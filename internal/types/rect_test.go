package types

import "testing"

func TestRectContains(t *testing.T) {
	r := R(0, 0, 40, 40)
	for _, tc := range []struct {
		label string
		p     Point
		want  bool
	}{
		{"origin", Pt(0, 0), true},
		{"center", Pt(20, 20), true},
		{"right edge excluded", Pt(40, 20), false},
		{"bottom edge excluded", Pt(20, 40), false},
		{"left of origin", Pt(-1, 20), false},
	} {
		t.Run(tc.label, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", r, tc.p, got, tc.want)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	got := R(0, 0, 40, 40).Expand(0.75)
	want := Rect{Min: Pt(-30, -30), Max: Pt(70, 70)}
	if got != want {
		t.Fatalf("Expand(0.75) = %v, want %v", got, want)
	}
	if !got.Contains(Pt(69, 20)) {
		t.Errorf("expanded rect should contain (69,20)")
	}
	if got.Contains(Pt(100, 20)) {
		t.Errorf("expanded rect should not contain (100,20)")
	}
	if r := R(0, 0, 10, 10); r.Expand(0) != r {
		t.Errorf("Expand(0) changed the rect")
	}
}

func TestPointLen(t *testing.T) {
	if got := Pt(3, -4).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := Pt(5, 7).Sub(Pt(2, 3)); got != Pt(3, 4) {
		t.Errorf("Sub = %v, want (3,4)", got)
	}
}
