package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jdecock/go-novelan/bridge"
	"github.com/jdecock/go-novelan/reading"
	"github.com/julienschmidt/httprouter"
)

type stateResponse struct {
	Readings map[string]fieldState `json:"readings"`
	LastPoll time.Time             `json:"last_poll"`
	Error    string                `json:"error,omitempty"`
}

type fieldState struct {
	Kind    string `json:"kind"`
	Raw     string `json:"raw"`
	Value   any    `json:"value,omitempty"`
	Unknown bool   `json:"unknown,omitempty"`
}

func State(b *bridge.Bridge) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		snapshot, lastPoll, lastError := b.Snapshot()

		resp := stateResponse{
			Readings: make(map[string]fieldState, len(snapshot)),
			LastPoll: lastPoll,
		}
		if lastError != nil {
			resp.Error = lastError.Error()
		}

		for name, parsed := range snapshot {
			resp.Readings[name] = fieldState{
				Kind:    string(parsed.Kind),
				Raw:     parsed.Raw,
				Value:   fieldValue(parsed),
				Unknown: parsed.Unknown,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if marshaled, err := json.Marshal(resp); err != nil {
			log.Printf("error marshaling: %v", err)
		} else {
			w.Write(marshaled)
		}
	}
}

func fieldValue(parsed reading.Reading) any {
	if parsed.Unknown {
		return nil
	}

	switch parsed.Kind {
	case reading.Stage:
		return parsed.Stage
	case reading.BinarySensor:
		return parsed.On
	case reading.Text, reading.Duration, reading.ErrorLog, reading.SystemStatus:
		return parsed.Raw
	default:
		return parsed.Number
	}
}
