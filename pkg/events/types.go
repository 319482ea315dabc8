package events

import "encoding/json"

// Event name constants
const (
	BatteryInfo = "battery.info"
)

// Event is a generic event from the daemon.
type Event struct {
	Name string          // event name
	Data json.RawMessage // Raw JSON payload
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
