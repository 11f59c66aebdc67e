package events

import "encoding/json"

// Event names.
const (
	PowerState = "power.state"
)

// Event is a generic SSE event from the daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// PowerStateEvent is the payload of power.state, sent when the summary changes.
type PowerStateEvent struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Seconds int    `json:"seconds"`
	Percent int    `json:"percent"`
	Ts      int64  `json:"ts"`
}

// DecodeAs decodes the event payload into T. Empty data yields the zero T.
//
// Example:
//
//	payload, err := events.DecodeAs[events.PowerStateEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.From, payload.To)
func DecodeAs[T any](e Event) (T, error) {
	var v T
	if len(e.Data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
