package board

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskflow/internal/model"
)

// IDGenerator proposes card ids. taken reports ids already on the board.
type IDGenerator interface {
	NewID(taken func(string) bool) string
}

// TimestampIDs produces c-<unix millis>, stepping forward a millisecond
// at a time until the id is free.
type TimestampIDs struct {
	Clock model.Clock
}

func (g TimestampIDs) NewID(taken func(string) bool) string {
	ms := g.Clock.Now().UnixMilli()
	for {
		id := fmt.Sprintf("c-%d", ms)
		if !taken(id) {
			return id
		}
		ms++
	}
}

// UUIDIDs produces c-<uuidv7>.
type UUIDIDs struct{}

func (UUIDIDs) NewID(taken func(string) bool) string {
	for {
		u, err := uuid.NewV7()
		if err != nil {
			u = uuid.New()
		}
		id := "c-" + u.String()
		if !taken(id) {
			return id
		}
	}
}

// NewIDGenerator returns the generator for scheme ("timestamp" or "uuid").
func NewIDGenerator(scheme string, clock model.Clock) (IDGenerator, error) {
	switch scheme {
	case "", "timestamp":
		return TimestampIDs{Clock: clock}, nil
	case "uuid":
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("board: unknown id scheme %q", scheme)
	}
}
