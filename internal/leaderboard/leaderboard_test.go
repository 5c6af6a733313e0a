package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/memorypairs/apps/go-server/internal/game"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/kv"
)

// failingStore fails every call.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("io error") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("io error") }
func (failingStore) Close() error                                { return nil }

func TestRecordScoreKeepsTopFiveWithStableTies(t *testing.T) {
	ctx := context.Background()
	b := New(kv.NewMemory())

	for i, score := range []int{10, 50, 30, 50, 20} {
		require.NoError(t, b.RecordScore(ctx, fmt.Sprintf("p%d", i), score))
	}

	top := b.TopScores(ctx)
	assert.Equal(t, []Entry{
		{Name: "p1", Score: 50},
		{Name: "p3", Score: 50},
		{Name: "p2", Score: 30},
		{Name: "p4", Score: 20},
		{Name: "p0", Score: 10},
	}, top)
}

func TestRecordScoreTruncates(t *testing.T) {
	ctx := context.Background()
	b := New(kv.NewMemory())
	for i, score := range []int{10, 50, 30, 50, 20, 5, 40} {
		require.NoError(t, b.RecordScore(ctx, fmt.Sprintf("p%d", i), score))
	}
	top := b.TopScores(ctx)
	require.Len(t, top, 5)
	assert.Equal(t, []int{50, 50, 40, 30, 20}, scoresOf(top))
}

func TestLeaderboardStaysSortedAndBounded(t *testing.T) {
	ctx := context.Background()
	b := New(kv.NewMemory())
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		require.NoError(t, b.RecordScore(ctx, "p", rng.IntN(100)))
		top := b.TopScores(ctx)
		require.LessOrEqual(t, len(top), 5)
		for j := 1; j < len(top); j++ {
			require.GreaterOrEqual(t, top[j-1].Score, top[j].Score)
		}
	}
}

func TestMissingRecordIsEmpty(t *testing.T) {
	b := New(kv.NewMemory())
	top := b.TopScores(context.Background())
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestCorruptRecordIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, DefaultKey, []byte("{not json")))
	b := New(store)

	assert.Empty(t, b.TopScores(ctx))

	require.NoError(t, b.RecordScore(ctx, "Ana", 12))
	assert.Equal(t, []Entry{{Name: "Ana", Score: 12}}, b.TopScores(ctx))
}

func TestNullRecordIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, DefaultKey, []byte("null")))
	assert.Empty(t, New(store).TopScores(ctx))
}

func TestUnsortedRecordIsSortedOnRead(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	raw := `[{"name":"a","score":1},{"name":"b","score":9},{"name":"c","score":4},
	         {"name":"d","score":7},{"name":"e","score":2},{"name":"f","score":8}]`
	require.NoError(t, store.Set(ctx, DefaultKey, []byte(raw)))

	assert.Equal(t, []int{9, 8, 7, 4, 2}, scoresOf(New(store).TopScores(ctx)))
}

func TestReadFailureDegrades(t *testing.T) {
	b := New(failingStore{})
	assert.Empty(t, b.TopScores(context.Background()))
	assert.Error(t, b.RecordScore(context.Background(), "Ana", 5))
}

func TestOptions(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	b := New(store, WithKey("custom"), WithLimit(2))
	for _, s := range []int{1, 2, 3} {
		require.NoError(t, b.RecordScore(ctx, "p", s))
	}
	assert.Equal(t, []int{3, 2}, scoresOf(b.TopScores(ctx)))

	_, err := store.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
	raw, err := store.Get(ctx, "custom")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"p","score":3},{"name":"p","score":2}]`, string(raw))
}

func TestPersistsThroughSQLite(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/lb.db"
	store, err := kv.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, New(store).RecordScore(ctx, "Ana", 33))
	require.NoError(t, store.Close())

	store, err = kv.OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, []Entry{{Name: "Ana", Score: 33}}, New(store).TopScores(ctx))
}

func TestInsert(t *testing.T) {
	got := Insert([]Entry{{"a", 5}, {"b", 3}}, Entry{"c", 5}, 2)
	assert.Equal(t, []Entry{{"a", 5}, {"c", 5}}, got)
}

func TestInsertLeavesInputUntouched(t *testing.T) {
	in := make([]Entry, 2, 4)
	in[0], in[1] = Entry{"a", 1}, Entry{"b", 2}

	got := Insert(in, Entry{"c", 9}, 5)
	assert.Equal(t, []Entry{{"c", 9}, {"b", 2}, {"a", 1}}, got)
	assert.Equal(t, []Entry{{"a", 1}, {"b", 2}}, in)
	assert.Equal(t, Entry{}, in[:3][2])
}

func TestWonGameRecordedWhenRequestCancelled(t *testing.T) {
	store, err := kv.OpenSQLite(t.TempDir() + "/lb.db")
	require.NoError(t, err)
	defer store.Close()
	board := New(store)

	s, err := game.New("Ana", game.Easy,
		game.WithRand(rand.New(rand.NewPCG(7, 7))),
		game.WithRecorder(board),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bySym := make(map[string][]int)
	for _, c := range s.Cards() {
		bySym[c.Symbol] = append(bySym[c.Symbol], c.ID)
	}
	var last game.Outcome
	for _, ids := range bySym {
		_, err := s.SelectCard(ctx, ids[0])
		require.NoError(t, err)
		last, err = s.SelectCard(ctx, ids[1])
		require.NoError(t, err)
	}
	require.Equal(t, game.OutcomeWon, last)

	assert.Equal(t, []Entry{{Name: "Ana", Score: 40}}, board.TopScores(context.Background()))
}

func scoresOf(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}
