package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	unit := Vec3{X: 1, Y: 1, Z: 1}

	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(Vec3{}, unit),
			b:        NewBox(Vec3{X: 1, Y: 1, Z: 1}, unit),
			expected: true,
		},
		{
			name:     "separated on X",
			a:        NewBox(Vec3{}, unit),
			b:        NewBox(Vec3{X: 6}, unit),
			expected: false,
		},
		{
			name:     "separated on Y",
			a:        NewBox(Vec3{}, unit),
			b:        NewBox(Vec3{Y: 2.5}, unit),
			expected: false,
		},
		{
			name:     "separated on Z",
			a:        NewBox(Vec3{}, unit),
			b:        NewBox(Vec3{Z: -3}, unit),
			expected: false,
		},
		{
			name:     "touching faces",
			a:        NewBox(Vec3{}, unit),
			b:        NewBox(Vec3{X: 2}, unit),
			expected: true,
		},
		{
			name:     "contained box",
			a:        NewBox(Vec3{}, Vec3{X: 5, Y: 5, Z: 5}),
			b:        NewBox(Vec3{X: 1}, unit),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxExpand(t *testing.T) {
	b := NewBox(Vec3{Y: 1}, Vec3{X: 1, Y: 1, Z: 1})

	grown := b.Expand(Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	if size := grown.Size(); size.X != 3 || size.Y != 3 || size.Z != 3 {
		t.Errorf("grown size = %+v, expected 3 on every axis", size)
	}

	shrunk := b.Expand(Vec3{X: -0.5, Y: -0.25, Z: -0.5})
	if size := shrunk.Size(); size.X != 1 || size.Y != 1.5 || size.Z != 1 {
		t.Errorf("shrunk size = %+v, expected (1, 1.5, 1)", size)
	}
	if c := shrunk.Center(); c != b.Center() {
		t.Errorf("shrinking moved the center: %+v != %+v", c, b.Center())
	}

	collapsed := b.Expand(Vec3{X: -5})
	if collapsed.Min.X != collapsed.Max.X {
		t.Errorf("over-shrunk axis should collapse to the center, got %+v", collapsed)
	}
}

func TestBoxContains(t *testing.T) {
	b := NewBox(Vec3{}, Vec3{X: 1, Y: 2, Z: 3})

	tests := []struct {
		name     string
		p        Vec3
		expected bool
	}{
		{"center", Vec3{}, true},
		{"corner", Vec3{X: 1, Y: 2, Z: 3}, true},
		{"outside X", Vec3{X: 1.1}, false},
		{"outside Z", Vec3{Z: -3.5}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%+v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRotatedHalfY(t *testing.T) {
	h := Vec3{X: 2, Y: 1, Z: 0.5}

	same := RotatedHalfY(h, 0)
	if same != h {
		t.Errorf("zero rotation = %+v, expected %+v", same, h)
	}

	quarter := RotatedHalfY(h, math.Pi/2)
	if math.Abs(quarter.X-0.5) > 1e-9 || math.Abs(quarter.Z-2) > 1e-9 {
		t.Errorf("quarter turn should swap X and Z, got %+v", quarter)
	}

	diag := RotatedHalfY(h, math.Pi/4)
	if diag.X <= h.Z || diag.X <= 1.7 {
		t.Errorf("diagonal rotation should widen X, got %+v", diag)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{1, 0, 2, 1},
		{-1, 0, 2, 0},
		{3, 0, 2, 2},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{50, 0, 100, 50},
		{106, 0, 100, 100},
		{-15, 0, 100, 0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 6, 0.5); got != 3 {
		t.Errorf("Lerp(0, 6, 0.5) = %f, expected 3", got)
	}
	if got := Lerp(-6, 0, 1); got != 0 {
		t.Errorf("Lerp(-6, 0, 1) = %f, expected 0", got)
	}
}
