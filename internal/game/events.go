package game

import (
	"time"

	"github.com/cardroom/holdem/internal/deck"
)

// EventType identifies a game lifecycle event.
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeStageChange  EventType = "stage_change"
	EventTypePlayerAction EventType = "player_action"
	EventTypeHandEnd      EventType = "hand_end"
)

// Event is a game lifecycle notification. Dispatch is synchronous and
// single-threaded; listeners must not call back into the engine.
type Event interface {
	EventType() EventType
	OccurredAt() time.Time
}

// Listener receives published events.
type Listener interface {
	HandleEvent(Event)
}

// EventBus fans events out to subscribed listeners in subscription order.
type EventBus struct {
	listeners []Listener
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a listener for all subsequent events.
func (b *EventBus) Subscribe(l Listener) {
	b.listeners = append(b.listeners, l)
}

// Publish delivers the event to every listener.
func (b *EventBus) Publish(e Event) {
	for _, l := range b.listeners {
		l.HandleEvent(e)
	}
}

// HandStartEvent is published after blinds are posted and hole cards dealt.
type HandStartEvent struct {
	HandID         string
	DealerPosition int
	PlayerCount    int
	timestamp      time.Time
}

func (e HandStartEvent) EventType() EventType  { return EventTypeHandStart }
func (e HandStartEvent) OccurredAt() time.Time { return e.timestamp }

// StageChangeEvent is published when community cards are dealt and a new
// betting round opens.
type StageChangeEvent struct {
	Stage          Stage
	CommunityCards []deck.Card
	PotTotal       int
	timestamp      time.Time
}

func (e StageChangeEvent) EventType() EventType  { return EventTypeStageChange }
func (e StageChangeEvent) OccurredAt() time.Time { return e.timestamp }

// PlayerActionEvent is published after a player action is applied.
type PlayerActionEvent struct {
	PlayerID  string
	Action    ActionType
	Amount    int
	Stage     Stage
	PotTotal  int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType  { return EventTypePlayerAction }
func (e PlayerActionEvent) OccurredAt() time.Time { return e.timestamp }

// HandEndEvent is published once per hand with the final results. External
// ledger or leaderboard systems consume Results; the engine does not care
// whether they are persisted.
type HandEndEvent struct {
	HandID    string
	Results   []Result
	PotTotal  int
	WonByFold bool
	Board     []deck.Card
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType  { return EventTypeHandEnd }
func (e HandEndEvent) OccurredAt() time.Time { return e.timestamp }
