package stats

import "testing"

func TestAverageEdgeLength_Static(t *testing.T) {
	v := [][3]float64{{0, 0, 0}, {2, 0, 0}, {0, 3, 0}}
	e := [][2]int32{{0, 1}, {0, 2}}
	got := AverageEdgeLength(v, nil, e)
	want := 2.5 // (2 + 3) / 2
	if got != want {
		t.Errorf("AverageEdgeLength() = %v, want %v", got, want)
	}
}

func TestAverageEdgeLength_Swept(t *testing.T) {
	v0 := [][3]float64{{0, 0, 0}, {1, 0, 0}}
	v1 := [][3]float64{{0, 0, 0}, {3, 0, 0}}
	e := [][2]int32{{0, 1}}
	got := AverageEdgeLength(v0, v1, e)
	want := 2.0 // (1 + 3) / 2
	if got != want {
		t.Errorf("AverageEdgeLength() = %v, want %v", got, want)
	}
}

func TestAverageDisplacementLength(t *testing.T) {
	v0 := [][3]float64{{0, 0, 0}, {0, 0, 0}}
	v1 := [][3]float64{{3, 0, 0}, {0, 4, 0}}
	got := AverageDisplacementLength(v0, v1)
	want := 3.5 // (3 + 4) / 2
	if got != want {
		t.Errorf("AverageDisplacementLength() = %v, want %v", got, want)
	}
}

func TestAverageEdgeLength_Empty(t *testing.T) {
	if got := AverageEdgeLength(nil, nil, nil); got != 0 {
		t.Errorf("AverageEdgeLength() = %v, want 0 for no edges", got)
	}
}
