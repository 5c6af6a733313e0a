package game

// CardView is the client-facing representation of a card.
// Symbol is only set once the card is face up.
type CardView struct {
	ID     int       `json:"id"`
	State  CardState `json:"state"`
	Symbol string    `json:"symbol,omitempty"`
}

// SessionView is a snapshot of a session for rendering.
type SessionView struct {
	Player       string     `json:"player"`
	Difficulty   Difficulty `json:"difficulty"`
	Columns      int        `json:"columns"`
	Score        int        `json:"score"`
	MatchedPairs int        `json:"matchedPairs"`
	TotalPairs   int        `json:"totalPairs"`
	Moves        int        `json:"moves"`
	Phase        Phase      `json:"phase"`
	Locked       bool       `json:"locked"`
	Cards        []CardView `json:"cards"`
}

// View snapshots the session. Hidden cards do not expose their symbol.
func (s *Session) View() SessionView {
	cards := make([]CardView, len(s.cards))
	for i, c := range s.cards {
		cv := CardView{ID: c.ID, State: c.State}
		if c.State != Hidden {
			cv.Symbol = c.Symbol
		}
		cards[i] = cv
	}
	return SessionView{
		Player:       s.name,
		Difficulty:   s.difficulty,
		Columns:      s.difficulty.Columns(),
		Score:        s.score,
		MatchedPairs: s.matched,
		TotalPairs:   s.total,
		Moves:        s.moves,
		Phase:        s.phase,
		Locked:       s.Locked(),
		Cards:        cards,
	}
}
