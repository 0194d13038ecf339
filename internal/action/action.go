// Package action implements the retail action library: a closed set of
// named operations over a world.State, plus the registry that resolves
// trajectory entries to typed handlers.
package action

import (
	"encoding/json"
	"fmt"
)

// RespondName is the reserved conversational action. It never touches
// state and is filtered out before ground-truth replay.
const RespondName = "respond"

// Action is one trajectory entry: a name plus a raw keyword-argument
// bag. Kwargs may be nested and must stay JSON-representable.
type Action struct {
	Name   string         `json:"name"`
	Kwargs map[string]any `json:"kwargs,omitempty"`
}

// UnmarshalJSON tolerates the two kwargs encodings seen in trajectory
// payloads: an inline JSON object, or a string holding serialized JSON.
// Anything undecodable degrades to an empty bag rather than failing the
// whole trajectory.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Kwargs json.RawMessage `json:"kwargs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse action: %w", err)
	}
	a.Name = raw.Name
	a.Kwargs = decodeKwargs(raw.Kwargs)
	return nil
}

func decodeKwargs(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var bag map[string]any
	if err := json.Unmarshal(raw, &bag); err == nil {
		if bag == nil {
			bag = map[string]any{}
		}
		return bag
	}
	// Serialized-text form: a JSON string wrapping an object.
	var blob string
	if err := json.Unmarshal(raw, &blob); err == nil {
		if err := json.Unmarshal([]byte(blob), &bag); err == nil && bag != nil {
			return bag
		}
	}
	return map[string]any{}
}
