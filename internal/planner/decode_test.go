package planner

import (
	"encoding/json"
	"testing"
)

func TestDecodeStops(t *testing.T) {
	t.Run("PlainArray", func(t *testing.T) {
		raw := json.RawMessage(`[{"id":"s1","city":"Delhi","startDate":"2025-09-01","endDate":"2025-09-03","activities":[]}]`)
		stops, err := DecodeStops(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(stops) != 1 || stops[0].City != "Delhi" {
			t.Errorf("Expected one Delhi stop, got %+v", stops)
		}
	})

	t.Run("DoubleEncodedElement", func(t *testing.T) {
		raw := json.RawMessage(`["{\"id\":\"s1\",\"city\":\"Agra\",\"startDate\":\"2025-09-04\",\"endDate\":\"2025-09-05\"}"]`)
		stops, err := DecodeStops(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(stops) != 1 || stops[0].City != "Agra" {
			t.Errorf("Expected the nested parse to recover the Agra stop, got %+v", stops)
		}
		if stops[0].Activities == nil {
			t.Error("Expected activities to be normalized to an empty slice")
		}
	})

	t.Run("DoubleEncodedWholePayload", func(t *testing.T) {
		inner := `[{"id":"s1","city":"Delhi","startDate":"2025-09-01","endDate":"2025-09-03"}]`
		raw, _ := json.Marshal(inner)
		stops, err := DecodeStops(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(stops) != 1 {
			t.Errorf("Expected one stop, got %d", len(stops))
		}
	})

	t.Run("UnrecoverableElementsAreDiscarded", func(t *testing.T) {
		raw := json.RawMessage(`[{"id":"s1","city":"Delhi","startDate":"2025-09-01","endDate":"2025-09-03"},"not json at all",42]`)
		stops, err := DecodeStops(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(stops) != 1 {
			t.Errorf("Expected the bad elements to be dropped, got %d stops", len(stops))
		}
	})

	t.Run("IDLessObjectIsKeptForValidation", func(t *testing.T) {
		// Both decode paths hand id-less stops to validation instead
		// of silently dropping them.
		raw := json.RawMessage(`[{"city":"Delhi","startDate":"2025-09-01","endDate":"2025-09-03"},"{\"city\":\"Agra\",\"startDate\":\"2025-09-04\",\"endDate\":\"2025-09-05\"}"]`)
		stops, err := DecodeStops(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(stops) != 2 {
			t.Fatalf("Expected both id-less stops kept, got %d", len(stops))
		}
		if err := ValidateStops(stops); err != ErrMissingStopID {
			t.Errorf("Expected validation to flag the missing id, got %v", err)
		}
	})

	t.Run("NonArrayPayloadFails", func(t *testing.T) {
		if _, err := DecodeStops(json.RawMessage(`{"city":"Delhi"}`)); err == nil {
			t.Error("Expected an error for a non-array payload")
		}
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		stops, err := DecodeStops(nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(stops) != 0 {
			t.Errorf("Expected no stops, got %d", len(stops))
		}
	})
}
