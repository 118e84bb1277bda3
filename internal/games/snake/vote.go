package snake

import "github.com/vovakirdan/crowdsnake/internal/core"

// VoteSampleSize bounds how many pending inputs are considered per tick.
const VoteSampleSize = 5

// Aggregate resolves a batch of pending inputs into a single direction.
//
// Inputs that reverse the current direction are discarded. Up to
// VoteSampleSize of the rest are sampled without replacement, tallied, and
// the winner is drawn uniformly from the directions tied at the highest count.
// Returns false when nothing survives the filter.
func Aggregate(inputs []core.Direction, current core.Direction, rng core.Rand) (core.Direction, bool) {
	candidates := make([]core.Direction, 0, len(inputs))
	for _, d := range inputs {
		if d.Valid() && !current.IsOppositeTo(d) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return current, false
	}

	sample := Sample(candidates, VoteSampleSize, rng)
	_, winners := Plurality(sample)

	return winners[rng.Intn(len(winners))], true
}

// Sample returns up to k entries of in chosen uniformly without replacement.
// A negative k yields an empty sample. The input slice is not modified.
func Sample(in []core.Direction, k int, rng core.Rand) []core.Direction {
	pool := make([]core.Direction, len(in))
	copy(pool, in)

	k = max(0, min(k, len(pool)))
	// Partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Tally counts occurrences per direction and returns the highest count.
func Tally(sample []core.Direction) (most int, counts map[core.Direction]int) {
	counts = make(map[core.Direction]int, len(core.Directions))
	for _, d := range sample {
		counts[d]++
		if counts[d] > most {
			most = counts[d]
		}
	}
	return most, counts
}

// Plurality returns the highest count and every direction that reached it,
// in core.Directions order.
func Plurality(sample []core.Direction) (int, []core.Direction) {
	most, counts := Tally(sample)

	var winners []core.Direction
	if most == 0 {
		return 0, winners
	}
	for _, d := range core.Directions {
		if counts[d] == most {
			winners = append(winners, d)
		}
	}
	return most, winners
}
