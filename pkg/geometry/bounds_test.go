package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Errorf("IsEmpty failed: expected new box to be empty")
	}

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
	if bbox.IsEmpty() {
		t.Errorf("IsEmpty failed: expected extended box not to be empty")
	}
}

func TestBoundingBoxFromPoints(t *testing.T) {
	bbox := NewBoundingBox(NewVector3(0, 0, 0), NewVector3(10, 20, 30))

	if size := bbox.Size(); size != NewVector3(10, 20, 30) {
		t.Errorf("Size failed: expected (10, 20, 30), got %v", size)
	}
	if center := bbox.Center(); center != NewVector3(5, 10, 15) {
		t.Errorf("Center failed: expected (5, 10, 15), got %v", center)
	}

	expected := math.Sqrt(100 + 400 + 900)
	if d := bbox.Diagonal(); math.Abs(d-expected) > 1e-10 {
		t.Errorf("Diagonal failed: expected %v, got %v", expected, d)
	}
}

func TestBoundingBoxContains(t *testing.T) {
	bbox := NewBoundingBox(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))

	tests := []struct {
		point Vector3
		want  bool
	}{
		{NewVector3(0, 0, 0), true},
		{NewVector3(1, 1, 1), true},
		{NewVector3(1.5, 0, 0), false},
		{NewVector3(0, 0, -2), false},
	}
	for _, tt := range tests {
		if got := bbox.Contains(tt.point); got != tt.want {
			t.Errorf("Contains(%v) failed: expected %v, got %v", tt.point, tt.want, got)
		}
	}

	if NewBoundingBox().Contains(Vector3{}) {
		t.Errorf("Contains failed: empty box must not contain the origin")
	}
}
