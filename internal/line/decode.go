package line

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadEnvelope indicates the webhook body is not a valid event envelope.
var ErrBadEnvelope = errors.New("malformed webhook envelope")

// envelope is the top-level webhook body. Events are kept raw so one bad
// element cannot fail the whole batch.
type envelope struct {
	Destination string            `json:"destination,omitempty"`
	Events      []json.RawMessage `json:"events"`
}

// Decode parses a verified webhook body into its ordered event sequence.
//
// The envelope itself must be valid JSON with an events array; anything else
// is an ErrBadEnvelope. Individual events that fail to parse, or whose type
// the bot does not recognise, are preserved as non-text events so the rest of
// the batch still gets processed.
func Decode(body []byte) ([]Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	if env.Events == nil {
		return nil, fmt.Errorf("%w: missing events array", ErrBadEnvelope)
	}

	events := make([]Event, 0, len(env.Events))
	for _, raw := range env.Events {
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			// Keep batch order; downstream skips events it can't answer.
			events = append(events, Event{})
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
