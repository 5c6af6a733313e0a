// apps/go-server/internal/game/events.go
//
// Callbacks from the engine to the presentation layer.
// A Session reports every visible change through an Observer; EventLog is an
// Observer that buffers the changes as JSON-friendly events so a request handler
// can return them to the client.

package game

import "context"

// Observer receives state changes as they happen.
type Observer interface {
	CardRevealed(id int, symbol string)
	CardHidden(id int)
	CardMatched(id int)
	ScoreChanged(score int)
	GameWon(finalScore int)
}

// Recorder stores the final score of a won game.
type Recorder interface {
	RecordScore(ctx context.Context, name string, score int) error
}

type nopObserver struct{}

func (nopObserver) CardRevealed(int, string) {}
func (nopObserver) CardHidden(int)           {}
func (nopObserver) CardMatched(int)          {}
func (nopObserver) ScoreChanged(int)         {}
func (nopObserver) GameWon(int)              {}

// EventType names an Event.
type EventType string

const (
	EventRevealed EventType = "revealed"
	EventHidden   EventType = "hidden"
	EventMatched  EventType = "matched"
	EventScore    EventType = "score"
	EventWon      EventType = "won"
)

// Event is one recorded callback.
type Event struct {
	Type   EventType `json:"type"`
	CardID *int      `json:"cardId,omitempty"`
	Symbol string    `json:"symbol,omitempty"`
	Score  *int      `json:"score,omitempty"`
}

// EventLog buffers events until drained. Not safe for concurrent use.
type EventLog struct {
	events []Event
}

var _ Observer = (*EventLog)(nil)

// CardRevealed records a card turned face up with its symbol.
func (l *EventLog) CardRevealed(id int, symbol string) {
	l.events = append(l.events, Event{Type: EventRevealed, CardID: &id, Symbol: symbol})
}

// CardHidden records a card turned face down.
func (l *EventLog) CardHidden(id int) {
	l.events = append(l.events, Event{Type: EventHidden, CardID: &id})
}

// CardMatched records a card that became part of a found pair.
func (l *EventLog) CardMatched(id int) {
	l.events = append(l.events, Event{Type: EventMatched, CardID: &id})
}

// ScoreChanged records the score after a turn.
func (l *EventLog) ScoreChanged(score int) {
	l.events = append(l.events, Event{Type: EventScore, Score: &score})
}

// GameWon records the final score of a won game.
func (l *EventLog) GameWon(finalScore int) {
	l.events = append(l.events, Event{Type: EventWon, Score: &finalScore})
}

// Drain returns the buffered events and empties the log.
// It never returns nil so the result encodes as a JSON array.
func (l *EventLog) Drain() []Event {
	out := l.events
	l.events = nil
	if out == nil {
		out = []Event{}
	}
	return out
}
