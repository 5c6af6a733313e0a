package game

// Score deltas per turn outcome and the floor applied after every change.
const (
	MatchDelta    = 5
	MismatchDelta = -3
	MinScore      = 0
)

// ScoreDelta returns the score change for an evaluated turn.
func ScoreDelta(matched bool) int {
	if matched {
		return MatchDelta
	}
	return MismatchDelta
}

// ApplyDelta adds delta to score and clamps the result at MinScore.
func ApplyDelta(score, delta int) int {
	score += delta
	if score < MinScore {
		return MinScore
	}
	return score
}
