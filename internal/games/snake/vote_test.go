package snake

import (
	"slices"
	"testing"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

var (
	up    = core.DirUp
	down  = core.DirDown
	left  = core.DirLeft
	right = core.DirRight
)

func TestPlurality(t *testing.T) {
	tests := []struct {
		name    string
		sample  []core.Direction
		most    int
		winners []core.Direction
	}{
		{"tie", []core.Direction{up, down, left, left, down, right}, 2, []core.Direction{down, left}},
		{"single", []core.Direction{right}, 1, []core.Direction{right}},
		{"clear winner", []core.Direction{up, up, left}, 2, []core.Direction{up}},
		{"all tied", []core.Direction{right, left, down, up}, 1, core.Directions},
		{"empty", nil, 0, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			most, winners := Plurality(tc.sample)
			if most != tc.most {
				t.Errorf("Plurality() most = %d, expected %d", most, tc.most)
			}
			if !slices.Equal(winners, tc.winners) {
				t.Errorf("Plurality() winners = %v, expected %v", winners, tc.winners)
			}
		})
	}
}

func TestTallyCounts(t *testing.T) {
	_, counts := Tally([]core.Direction{up, down, left, left, down, right})

	want := map[core.Direction]int{up: 1, down: 2, left: 2, right: 1}
	for d, n := range want {
		if counts[d] != n {
			t.Errorf("counts[%v] = %d, expected %d", d, counts[d], n)
		}
	}
}

func TestAggregateTieStaysInTiedSet(t *testing.T) {
	inputs := []core.Direction{up, down, left, left, down, right}

	// Current left filters right; the remaining five are all sampled
	for seed := range int64(200) {
		got, ok := Aggregate(inputs, left, seeded(seed))
		if !ok {
			t.Fatalf("seed %d: Aggregate() found no candidate", seed)
		}
		if got != down && got != left {
			t.Fatalf("seed %d: Aggregate() = %v, expected down or left", seed, got)
		}
	}
}

func TestAggregateNeverReverses(t *testing.T) {
	for _, current := range core.Directions {
		inputs := []core.Direction{current.Opposite(), current.Opposite(), current.Opposite(), up, right}
		for seed := range int64(100) {
			got, ok := Aggregate(inputs, current, seeded(seed))
			if ok && got == current.Opposite() {
				t.Fatalf("current %v seed %d: Aggregate() returned the reversal", current, seed)
			}
		}
	}
}

func TestAggregateNothingLeft(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []core.Direction
		current core.Direction
	}{
		{"empty", nil, up},
		{"only reversals", []core.Direction{left, left, left}, right},
		{"invalid", []core.Direction{core.Direction(9)}, up},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Aggregate(tc.inputs, tc.current, seeded(1))
			if ok {
				t.Errorf("Aggregate() = %v, true; expected no result", got)
			}
		})
	}
}

func TestAggregateTieBreakUsesRng(t *testing.T) {
	inputs := []core.Direction{up, left}

	// Sample draws Intn(2) then Intn(1); the third value picks among [up, left]
	tests := []struct {
		ints []int
		want core.Direction
	}{
		{[]int{0, 0, 0}, up},
		{[]int{0, 0, 1}, left},
		{[]int{1, 0, 1}, left},
	}

	for _, tc := range tests {
		got, ok := Aggregate(inputs, up, &stubRand{ints: tc.ints})
		if !ok || got != tc.want {
			t.Errorf("Aggregate() with %v = %v, %v; expected %v", tc.ints, got, ok, tc.want)
		}
	}
}

func TestSampleBound(t *testing.T) {
	in := []core.Direction{up, up, down, left, right, right, left, down, up}
	rng := seeded(11)

	for k := 0; k <= len(in)+2; k++ {
		s := Sample(in, k, rng)
		want := min(k, len(in))
		if len(s) != want {
			t.Fatalf("len(Sample(k=%d)) = %d, expected %d", k, len(s), want)
		}

		// The sample must be a sub-multiset of the input
		_, have := Tally(in)
		_, took := Tally(s)
		for d, n := range took {
			if n > have[d] {
				t.Errorf("Sample(k=%d) took %d of %v, input has %d", k, n, d, have[d])
			}
		}
	}

	if !slices.Equal(in, []core.Direction{up, up, down, left, right, right, left, down, up}) {
		t.Error("Sample() modified its input")
	}
}

func TestSampleNegativeSize(t *testing.T) {
	in := []core.Direction{up, down}

	for _, k := range []int{-1, -100} {
		if s := Sample(in, k, seeded(3)); len(s) != 0 {
			t.Errorf("Sample(k=%d) = %v, expected empty", k, s)
		}
	}
	if s := Sample(nil, -1, seeded(3)); len(s) != 0 {
		t.Errorf("Sample(nil, -1) = %v, expected empty", s)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	inputs := []core.Direction{up, down, down, left, up, up, down, left, left}

	for seed := range int64(20) {
		a, _ := Aggregate(inputs, right, seeded(seed))
		b, _ := Aggregate(inputs, right, seeded(seed))
		if a != b {
			t.Errorf("seed %d: Aggregate() = %v then %v", seed, a, b)
		}
	}
}
