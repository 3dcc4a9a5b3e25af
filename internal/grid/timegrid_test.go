package grid

import (
	"errors"
	"testing"
)

func TestFixedGridSeasonsUniform(t *testing.T) {
	ids := NewIDSource()
	g, err := NewFixed(ids, 5, 4, 8)
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}
	if g.MaxSeasons() != 4 {
		t.Fatalf("max seasons = %d, want 4", g.MaxSeasons())
	}
	for y := 0; y < g.Years(); y++ {
		n, err := g.SeasonsInYear(y)
		if err != nil {
			t.Fatalf("seasons in year %d: %v", y, err)
		}
		if n != 4 {
			t.Fatalf("year %d seasons = %d, want 4", y, n)
		}
	}
}

func TestFixedGridSeasonOffsets(t *testing.T) {
	ids := NewIDSource()
	g, err := NewFixed(ids, 2, 4, 1)
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}
	offsets, err := g.SeasonOffsets(1)
	if err != nil {
		t.Fatalf("season offsets: %v", err)
	}
	want := []float64{0.25, 0.5, 0.75, 1.0}
	if len(offsets) != len(want) {
		t.Fatalf("offsets length = %d, want %d", len(offsets), len(want))
	}
	for i := range want {
		if offsets[i] != want[i] {
			t.Fatalf("offset[%d] = %f, want %f", i, offsets[i], want[i])
		}
	}
}

func TestVariableGridMaxSeasons(t *testing.T) {
	ids := NewIDSource()
	g, err := NewVariable(ids, [][]float64{
		{0.5},
		{0.25, 0.5, 0.75},
		{0.3333, 0.6666},
	}, 2)
	if err != nil {
		t.Fatalf("new variable: %v", err)
	}
	if g.Years() != 3 {
		t.Fatalf("years = %d, want 3", g.Years())
	}
	if g.MaxSeasons() != 3 {
		t.Fatalf("max seasons = %d, want 3", g.MaxSeasons())
	}
	wantCounts := []int{1, 3, 2}
	maxSeen := 0
	for y, want := range wantCounts {
		n, err := g.SeasonsInYear(y)
		if err != nil {
			t.Fatalf("seasons in year %d: %v", y, err)
		}
		if n != want {
			t.Fatalf("year %d seasons = %d, want %d", y, n, want)
		}
		if n > maxSeen {
			maxSeen = n
		}
	}
	if g.MaxSeasons() != maxSeen {
		t.Fatalf("max seasons %d does not match maximum seen %d", g.MaxSeasons(), maxSeen)
	}
}

func TestSeasonsInYearOutOfRange(t *testing.T) {
	ids := NewIDSource()
	g, err := NewFixed(ids, 3, 2, 1)
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}
	if _, err := g.SeasonsInYear(-1); !errors.Is(err, ErrDimension) {
		t.Fatalf("year -1: got %v, want ErrDimension", err)
	}
	if _, err := g.SeasonsInYear(3); !errors.Is(err, ErrDimension) {
		t.Fatalf("year 3: got %v, want ErrDimension", err)
	}
}

func TestIndex3StrideDecomposition(t *testing.T) {
	ids := NewIDSource()
	g, err := NewFixed(ids, 3, 4, 5)
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}
	for y := 0; y < g.Years(); y++ {
		for s := 0; s < g.MaxSeasons(); s++ {
			for a := 0; a < g.Ages(); a++ {
				if got, want := g.Index3(y, s, a), g.Index3(y, s, 0)+a; got != want {
					t.Fatalf("index3(%d,%d,%d) = %d, want index3(y,s,0)+age = %d", y, s, a, got, want)
				}
			}
		}
		// Index2 carries no age stride, so it only lines up with Index3 on
		// the first season of a year.
		for a := 0; a < g.Ages(); a++ {
			if got, want := g.Index3(y, 0, a), g.Index2(y, 0)+a; got != want {
				t.Fatalf("index3(%d,0,%d) = %d, want index2+age = %d", y, a, got, want)
			}
		}
		for s := 1; s < g.MaxSeasons(); s++ {
			if got, want := g.Index3(y, s, 0)-g.Index2(y, s), s*(g.Ages()-1); got != want {
				t.Fatalf("index3-index2 gap at (%d,%d) = %d, want %d", y, s, got, want)
			}
		}
	}
}

func TestIndex3Injective(t *testing.T) {
	ids := NewIDSource()
	g, err := NewVariable(ids, [][]float64{
		{0.5},
		{0.25, 0.5, 0.75},
	}, 4)
	if err != nil {
		t.Fatalf("new variable: %v", err)
	}
	seen := make(map[int]bool, g.CellCount())
	for y := 0; y < g.Years(); y++ {
		for s := 0; s < g.MaxSeasons(); s++ {
			for a := 0; a < g.Ages(); a++ {
				offset := g.Index3(y, s, a)
				if offset < 0 || offset >= g.CellCount() {
					t.Fatalf("index3(%d,%d,%d) = %d outside [0, %d)", y, s, a, offset, g.CellCount())
				}
				if seen[offset] {
					t.Fatalf("index3(%d,%d,%d) = %d already produced", y, s, a, offset)
				}
				seen[offset] = true
			}
		}
	}
	if len(seen) != g.CellCount() {
		t.Fatalf("covered %d offsets, want %d", len(seen), g.CellCount())
	}
}

func TestIndex3FoldedFormula(t *testing.T) {
	ids := NewIDSource()
	g, err := NewFixed(ids, 30, 4, 8)
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}
	if got := g.Index3(0, 0, 0); got != 0 {
		t.Fatalf("index3(0,0,0) = %d, want 0", got)
	}
	if got := g.Index3(2, 1, 3); got != 2*4*8+1*8+3 {
		t.Fatalf("index3(2,1,3) = %d, want %d", got, 2*4*8+1*8+3)
	}
	if got := g.Index2(2, 1); got != 2*4*8+1 {
		t.Fatalf("index2(2,1) = %d, want %d", got, 2*4*8+1)
	}
}

func TestIndex3PanicsOutOfRange(t *testing.T) {
	ids := NewIDSource()
	g, err := NewFixed(ids, 2, 2, 2)
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}
	cases := []struct {
		name    string
		y, s, a int
	}{
		{"year", 2, 0, 0},
		{"season", 0, 2, 0},
		{"age", 0, 0, 2},
		{"negative year", -1, 0, 0},
	}
	for _, tc := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected panic", tc.name)
				}
			}()
			g.Index3(tc.y, tc.s, tc.a)
		}()
	}
}

func TestIDSourceMonotonic(t *testing.T) {
	ids := NewIDSource()
	a, err := NewFixed(ids, 1, 1, 1)
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}
	b, err := NewFixed(ids, 1, 1, 1)
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}
	if b.ObjectID() <= a.ObjectID() {
		t.Fatalf("object ids not increasing: %d then %d", a.ObjectID(), b.ObjectID())
	}
}

func TestIDSourceIndependent(t *testing.T) {
	first := NewIDSource()
	second := NewIDSource()
	if first.Next() != second.Next() {
		t.Fatal("fresh id sources should start from the same value")
	}
}
