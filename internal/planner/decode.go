package planner

import (
	"bytes"
	"encoding/json"

	"globetrotter-backend/internal/models"
)

// DecodeStops parses a destinations payload into a stop list.
//
// Old clients sometimes stringified stops twice, so an array element
// may arrive as a JSON-encoded string holding the actual stop object.
// Such elements get a nested parse; elements that still fail to
// decode are discarded. The only hard error is a payload that is not
// a JSON array at all.
func DecodeStops(raw json.RawMessage) ([]models.Stop, error) {
	if len(raw) == 0 {
		return []models.Stop{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		// The whole payload may itself be a double-encoded array.
		var nested string
		if err2 := json.Unmarshal(raw, &nested); err2 != nil {
			return nil, err
		}
		return DecodeStops(json.RawMessage(nested))
	}

	stops := make([]models.Stop, 0, len(elems))
	for _, elem := range elems {
		var stop models.Stop
		if trimmed := bytes.TrimSpace(elem); len(trimmed) > 0 && trimmed[0] == '{' {
			// Object-shaped elements are kept whether or not they
			// carry an id; validation decides their fate.
			if err := json.Unmarshal(elem, &stop); err != nil {
				continue
			}
			stops = append(stops, normalize(stop))
			continue
		}
		var encoded string
		if err := json.Unmarshal(elem, &encoded); err != nil {
			continue
		}
		if err := json.Unmarshal([]byte(encoded), &stop); err != nil {
			continue
		}
		stops = append(stops, normalize(stop))
	}
	return stops, nil
}

func normalize(stop models.Stop) models.Stop {
	if stop.Activities == nil {
		stop.Activities = []models.Activity{}
	}
	return stop
}
