package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MK-CIAN/AWM/internal/models"
	"github.com/MK-CIAN/AWM/internal/services"
	"github.com/MK-CIAN/AWM/internal/testutil"
)

func TestLocationHandler_Update_Success(t *testing.T) {
	var gotLat, gotLon float64
	profiles := &mockProfileService{
		UpdateLocationFunc: func(ctx context.Context, userID uuid.UUID, latitude, longitude float64) error {
			gotLat, gotLon = latitude, longitude
			return nil
		},
	}
	handler := NewLocationHandler(profiles)

	req := testutil.NewTestRequest(http.MethodPost, "/api/location", strings.NewReader(`{"latitude": 53.35, "longitude": -6.26}`))
	req = withUser(req, &models.User{ID: uuid.New()})
	rr := httptest.NewRecorder()
	handler.Update(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)
	testutil.AssertJSONContains(t, rr.Body.Bytes(), "success", true)
	if gotLat != 53.35 || gotLon != -6.26 {
		t.Fatalf("expected (53.35, -6.26), got (%v, %v)", gotLat, gotLon)
	}
}

func TestLocationHandler_Update_StringCoordinates(t *testing.T) {
	// Clients historically sent coordinates as strings.
	handler := NewLocationHandler(&mockProfileService{})

	req := testutil.NewTestRequest(http.MethodPost, "/api/location", strings.NewReader(`{"latitude": "53.35", "longitude": "-6.26"}`))
	req = withUser(req, &models.User{ID: uuid.New()})
	rr := httptest.NewRecorder()
	handler.Update(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)
}

func TestLocationHandler_Update_MalformedBody(t *testing.T) {
	handler := NewLocationHandler(&mockProfileService{})

	req := testutil.NewTestRequest(http.MethodPost, "/api/location", strings.NewReader("{not json"))
	req = withUser(req, &models.User{ID: uuid.New()})
	rr := httptest.NewRecorder()
	handler.Update(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusBadRequest)

	var resp UpdateLocationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Success || resp.Error != "Invalid request" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLocationHandler_Update_InvalidCoordinates(t *testing.T) {
	handler := NewLocationHandler(&mockProfileService{})

	bodies := []string{
		`{"latitude": "north", "longitude": -6.26}`,
		`{"longitude": -6.26}`,
		`{"latitude": 91, "longitude": 0}`,
		`{}`,
	}
	for _, body := range bodies {
		req := testutil.NewTestRequest(http.MethodPost, "/api/location", strings.NewReader(body))
		req = withUser(req, &models.User{ID: uuid.New()})
		rr := httptest.NewRecorder()
		handler.Update(rr, req)

		testutil.AssertStatusCode(t, rr, http.StatusBadRequest)

		var resp UpdateLocationResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("body %q: failed to parse response: %v", body, err)
		}
		if resp.Success || resp.Error != "Invalid coordinates" {
			t.Fatalf("body %q: unexpected response: %+v", body, resp)
		}
	}
}

func TestLocationHandler_Update_ProfileNotFound(t *testing.T) {
	profiles := &mockProfileService{
		UpdateLocationFunc: func(ctx context.Context, userID uuid.UUID, latitude, longitude float64) error {
			return services.ErrUserNotFound
		},
	}
	handler := NewLocationHandler(profiles)

	req := testutil.NewTestRequest(http.MethodPost, "/api/location", strings.NewReader(`{"latitude": 53.35, "longitude": -6.26}`))
	req = withUser(req, &models.User{ID: uuid.New()})
	rr := httptest.NewRecorder()
	handler.Update(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusNotFound)
}

func TestLocationHandler_Update_Unauthenticated(t *testing.T) {
	handler := NewLocationHandler(&mockProfileService{})

	req := testutil.NewTestRequest(http.MethodPost, "/api/location", strings.NewReader(`{"latitude": 53.35, "longitude": -6.26}`))
	rr := httptest.NewRecorder()
	handler.Update(rr, req)

	assertErrorResponse(t, rr, http.StatusUnauthorized, "Authentication required")
}

func TestLocationHandler_Get_WithLocation(t *testing.T) {
	lat, lon := 53.35, -6.26
	updated := time.Date(2026, 3, 14, 15, 9, 2, 0, time.UTC)
	profiles := &mockProfileService{
		GetFunc: func(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
			return &models.Profile{
				UserID:      userID,
				Latitude:    &lat,
				Longitude:   &lon,
				LastUpdated: &updated,
			}, nil
		},
	}
	handler := NewLocationHandler(profiles)

	req := testutil.NewTestRequest(http.MethodGet, "/api/location", nil)
	req = withUser(req, &models.User{ID: uuid.New()})
	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)

	var resp OwnLocationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Location == nil {
		t.Fatal("expected a location")
	}
	if resp.Location.Latitude != lat || resp.Location.Longitude != lon {
		t.Errorf("unexpected location %+v", resp.Location)
	}
	if resp.LastUpdated == nil || !resp.LastUpdated.Equal(updated) {
		t.Errorf("unexpected last_updated %v", resp.LastUpdated)
	}
}

func TestLocationHandler_Get_NoLocationYet(t *testing.T) {
	profiles := &mockProfileService{
		GetFunc: func(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
			return &models.Profile{UserID: userID}, nil
		},
	}
	handler := NewLocationHandler(profiles)

	req := testutil.NewTestRequest(http.MethodGet, "/api/location", nil)
	req = withUser(req, &models.User{ID: uuid.New()})
	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["location"] != nil {
		t.Errorf("expected null location, got %v", resp["location"])
	}
}

func TestLocationHandler_Get_Unauthenticated(t *testing.T) {
	handler := NewLocationHandler(&mockProfileService{})

	req := testutil.NewTestRequest(http.MethodGet, "/api/location", nil)
	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	assertErrorResponse(t, rr, http.StatusUnauthorized, "Authentication required")
}
