package gesture

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	const tan15 = 0.268
	for _, tc := range []struct {
		label  string
		dx, dy float32
		want   Direction
	}{
		{"zero", 0, 0, None},
		{"straight up", 0, -15, Up},
		{"straight down", 0, 15, Down},
		{"straight right", 20, 0, Right},
		{"straight left", -20, 0, Left},
		{"shallow right", 20, -3, Right},
		{"shallow left", -20, 3, Left},
		{"steep up", 2, -30, Up},
		{"steep down", -2, 30, Down},
		{"exact diagonal", 20, -20, None},
		{"thirty degrees", 20, -11.5, None},
	} {
		t.Run(tc.label, func(t *testing.T) {
			if got := Classify(tc.dx, tc.dy, tan15); got != tc.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tc.dx, tc.dy, got, tc.want)
			}
		})
	}
}

func TestClassifyTotalAndDeterministic(t *testing.T) {
	valid := map[Direction]bool{None: true, Up: true, Down: true, Left: true, Right: true}
	for _, th := range []float32{0.05, 0.268, 0.5, 0.99} {
		for dx := float32(-25); dx <= 25; dx += 2.5 {
			for dy := float32(-25); dy <= 25; dy += 2.5 {
				got := Classify(dx, dy, th)
				if !valid[got] {
					t.Fatalf("Classify(%v, %v, %v) = %d, not a direction", dx, dy, th, got)
				}
				if again := Classify(dx, dy, th); again != got {
					t.Fatalf("Classify(%v, %v, %v) not deterministic: %v then %v", dx, dy, th, got, again)
				}
			}
		}
	}
}

func TestClassifyNaN(t *testing.T) {
	nan := float32(math.NaN())
	if got := Classify(nan, 3, 0.268); got != None {
		t.Errorf("Classify(NaN, 3) = %v, want none", got)
	}
}

func TestSwipeRoundTrip(t *testing.T) {
	for _, d := range Directions {
		typ, ok := d.Swipe()
		if !ok || !typ.IsSwipe() {
			t.Fatalf("%v.Swipe() = %v, %v", d, typ, ok)
		}
		if typ.Direction() != d {
			t.Errorf("%v.Direction() = %v, want %v", typ, typ.Direction(), d)
		}
		if parsed, ok := ParseDirection(d.String()); !ok || parsed != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), parsed, ok)
		}
	}
	if _, ok := None.Swipe(); ok {
		t.Errorf("None.Swipe() reported a swipe")
	}
	if Release.IsSwipe() {
		t.Errorf("Release.IsSwipe() = true")
	}
}

func TestDefaultThresholdsValid(t *testing.T) {
	th := DefaultThresholds()
	if err := th.Validate(); err != nil {
		t.Fatalf("default thresholds invalid: %v", err)
	}
	if th.TangentThreshold < 0.267 || th.TangentThreshold > 0.268 {
		t.Errorf("tan(15deg) = %v", th.TangentThreshold)
	}
	th.TangentThreshold = 1.5
	th.SpaceDragSensitivity = 0
	if err := th.Validate(); err == nil {
		t.Errorf("expected validation error")
	}
}
