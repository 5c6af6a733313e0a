package game

import (
	"fmt"
	"math/rand/v2"
)

// BuildDeck lays out a shuffled board for d.
//
// The first d.Pairs() symbols of alphabet are taken in order, duplicated, and
// shuffled with rng. A nil rng is replaced by a freshly seeded source; pass a
// seeded *rand.Rand to reproduce a board. Card IDs are the final positions.
func BuildDeck(d Difficulty, alphabet []string, rng *rand.Rand) ([]Card, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrConfiguration, d)
	}
	p := d.Pairs()
	if len(alphabet) < p {
		return nil, fmt.Errorf("%w: %s needs %d symbols, alphabet has %d",
			ErrConfiguration, d, p, len(alphabet))
	}
	picked := alphabet[:p]
	seen := make(map[string]struct{}, p)
	for _, s := range picked {
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: symbol %q repeats in alphabet", ErrConfiguration, s)
		}
		seen[s] = struct{}{}
	}

	symbols := make([]string, 0, 2*p)
	symbols = append(symbols, picked...)
	symbols = append(symbols, picked...)

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	Shuffle(symbols, rng)

	cards := make([]Card, len(symbols))
	for i, s := range symbols {
		cards[i] = Card{ID: i, Symbol: s, State: Hidden}
	}
	return cards, nil
}

// Shuffle permutes s in place with Fisher–Yates: for i from len-1 down to 1,
// swap s[i] with s[j] for a uniform j in [0, i].
func Shuffle[T any](s []T, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
