package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"globetrotter-backend/internal/models"
	"globetrotter-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// fakeItineraryStore keeps itineraries in memory and records writes
type fakeItineraryStore struct {
	items        map[int64]*models.Itinerary
	nextID       int64
	draftCalls   int
	replaceCalls int
}

func newFakeStore() *fakeItineraryStore {
	return &fakeItineraryStore{items: map[int64]*models.Itinerary{}, nextID: 1}
}

func (f *fakeItineraryStore) Create(_ context.Context, it *models.Itinerary) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *it
	stored.ID = id
	f.items[id] = &stored
	return id, nil
}

func (f *fakeItineraryStore) GetByID(_ context.Context, id int64) (*models.Itinerary, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("itinerary not found: %w", pgx.ErrNoRows)
	}
	return it, nil
}

func (f *fakeItineraryStore) List(_ context.Context, _, _ int) ([]*models.Itinerary, int, error) {
	var out []*models.Itinerary
	for _, it := range f.items {
		out = append(out, it)
	}
	return out, len(out), nil
}

func (f *fakeItineraryStore) UpdateDraft(_ context.Context, id int64, cost float64, information *string) error {
	f.draftCalls++
	it, ok := f.items[id]
	if !ok {
		return fmt.Errorf("itinerary not found: %w", pgx.ErrNoRows)
	}
	it.Cost = cost
	it.Information = information
	return nil
}

func (f *fakeItineraryStore) ReplaceStops(_ context.Context, id int64, stops []models.Stop) error {
	f.replaceCalls++
	it, ok := f.items[id]
	if !ok {
		return fmt.Errorf("itinerary not found: %w", pgx.ErrNoRows)
	}
	it.Destinations = stops
	return nil
}

func (f *fakeItineraryStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("itinerary not found: %w", pgx.ErrNoRows)
	}
	delete(f.items, id)
	return nil
}

func newTestRouter(store *fakeItineraryStore) *chi.Mux {
	h := NewItineraryHandler(services.NewItineraryService(store))
	r := chi.NewRouter()
	r.Post("/api/v1/itineraries", h.CreateItinerary)
	r.Get("/api/v1/itineraries", h.ListItineraries)
	r.Get("/api/v1/itineraries/{itinerary_id}", h.GetItinerary)
	r.Patch("/api/v1/itineraries/{itinerary_id}", h.SaveDraft)
	r.Put("/api/v1/itineraries/{itinerary_id}/stops", h.ReplaceStops)
	r.Get("/api/v1/itineraries/{itinerary_id}/calendar", h.GetCalendar)
	return r
}

func TestSaveDraft(t *testing.T) {
	t.Run("MissingItineraryReturns404WithoutMutation", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/itineraries/99",
			strings.NewReader(`{"cost": 120, "information": "notes"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Expected an error-shaped JSON body: %v", err)
		}
		if body.Error == "" {
			t.Error("Expected a non-empty error message")
		}
		if store.draftCalls != 0 {
			t.Errorf("Expected no row mutation, UpdateDraft was called %d times", store.draftCalls)
		}
	})

	t.Run("UpdatesCostAndInformationOnly", func(t *testing.T) {
		store := newFakeStore()
		info := "old"
		store.items[1] = &models.Itinerary{ID: 1, Title: "Rajasthan loop", Cost: 10, Information: &info,
			Destinations: []models.Stop{{ID: "s1", City: "Delhi", StartDate: "2025-09-01", EndDate: "2025-09-03", Activities: []models.Activity{}}}}
		store.nextID = 2
		router := newTestRouter(store)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/itineraries/1",
			strings.NewReader(`{"cost": 250.5, "information": "updated notes"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if store.items[1].Cost != 250.5 {
			t.Errorf("Expected cost 250.5, got %v", store.items[1].Cost)
		}
		if store.items[1].Information == nil || *store.items[1].Information != "updated notes" {
			t.Errorf("Expected information to be updated, got %v", store.items[1].Information)
		}
		if len(store.items[1].Destinations) != 1 {
			t.Error("Draft save must not touch the stop list")
		}
	})

	t.Run("NegativeCostIsRejected", func(t *testing.T) {
		store := newFakeStore()
		store.items[1] = &models.Itinerary{ID: 1, Title: "t"}
		router := newTestRouter(store)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/itineraries/1",
			strings.NewReader(`{"cost": -1}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}

func TestCreateItinerary(t *testing.T) {
	t.Run("CreatesWithDefaults", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)

		payload := `{"title": "Golden triangle", "destinations": [{"id":"s1","city":"Delhi","startDate":"2025-09-01","endDate":"2025-09-03"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var body struct {
			ID      int64  `json:"id"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body.ID != 1 {
			t.Errorf("Expected assigned id 1, got %d", body.ID)
		}
		created := store.items[1]
		if created.Cost != 0 {
			t.Errorf("Expected cost to default to 0, got %v", created.Cost)
		}
		if created.Information != nil {
			t.Errorf("Expected information to default to null, got %v", created.Information)
		}
	})

	t.Run("AcceptsDoubleEncodedDestinations", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)

		stop := `{"id":"s1","city":"Agra","startDate":"2025-09-04","endDate":"2025-09-05"}`
		payload, _ := json.Marshal(map[string]interface{}{
			"title":        "Agra weekend",
			"destinations": []string{stop},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader(string(payload)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(store.items[1].Destinations) != 1 || store.items[1].Destinations[0].City != "Agra" {
			t.Errorf("Expected the double-encoded stop to be recovered, got %+v", store.items[1].Destinations)
		}
	})

	t.Run("RejectsMissingTitle", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader(`{"destinations": []}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("RejectsNegativeCost", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries",
			strings.NewReader(`{"title": "Cheap trip", "cost": -10, "destinations": []}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("RejectsDuplicateStopIDs", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)

		payload := `{"title": "Twice to Delhi", "destinations": [
			{"id":"s1","city":"Delhi","startDate":"2025-09-01","endDate":"2025-09-03"},
			{"id":"s1","city":"Agra","startDate":"2025-09-04","endDate":"2025-09-05"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
		if len(store.items) != 0 {
			t.Error("Expected nothing persisted for a duplicate-id payload")
		}
	})

	t.Run("RejectsInvalidStopDateRange", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)

		payload := `{"title": "Bad dates", "destinations": [{"id":"s1","city":"Delhi","startDate":"2025-09-03","endDate":"2025-09-01"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}

func TestListItineraries(t *testing.T) {
	t.Run("EmptyStoreSerializesAsEmptyArray", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/itineraries", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"itineraries":[]`) {
			t.Errorf("Expected an empty JSON array, got %s", rec.Body.String())
		}
	})
}

func TestGetCalendar(t *testing.T) {
	store := newFakeStore()
	store.items[1] = &models.Itinerary{ID: 1, Title: "t", Destinations: []models.Stop{
		{ID: "s1", City: "Delhi", StartDate: "2025-09-01", EndDate: "2025-09-03",
			Activities: []models.Activity{{ID: "a1", Name: "Museum", Time: "09:00"}}},
	}}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/itineraries/1/calendar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body struct {
		Events []struct {
			Kind string `json:"kind"`
		} `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Events) != 2 {
		t.Errorf("Expected 2 events (activity + stay), got %d", len(body.Events))
	}
}
