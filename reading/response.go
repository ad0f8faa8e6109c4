package reading

import (
	"errors"
	"fmt"

	"github.com/jdecock/go-novelan/luxws"
)

// ErrMalformedPayload marks a poll response that could not be decoded at all.
// The caller treats the whole poll as failed, nothing is partially applied.
var ErrMalformedPayload = errors.New("malformed device payload")

// Snapshot maps field names to their parsed readings for one poll cycle.
type Snapshot map[string]Reading

// ParseResponse decodes an Informationen page payload into a snapshot. Field
// names carry their group as prefix ("Temperaturen_Vorlauf"), matching how the
// controller's own UI labels them.
func ParseResponse(payload []byte) (Snapshot, error) {
	content, err := luxws.DecodeContent(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	snapshot := Snapshot{}
	for _, group := range content.Items {
		collect(snapshot, group.Name, group.Items)
	}

	return snapshot, nil
}

func collect(snapshot Snapshot, group string, items []luxws.ContentItem) {
	for _, item := range items {
		if len(item.Items) > 0 {
			collect(snapshot, group, item.Items)
			continue
		}

		if item.Name == "" || item.Value == "" {
			continue
		}

		name := fmt.Sprintf("%v_%v", group, item.Name)
		parsed, err := Parse(item.Value, Classify(name))
		if err != nil {
			parsed = Reading{Kind: Classify(name), Raw: item.Value, Unknown: true}
		}

		snapshot[name] = parsed
	}
}
