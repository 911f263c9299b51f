package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thinkmate-ai/thinkmate/components"
)

func newGeocodeServer(t *testing.T, candidates []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "ThinkMate-Agent" {
			t.Errorf("unexpected geocoder user agent %q", got)
		}
		json.NewEncoder(w).Encode(candidates)
	}))
}

func TestRunSearchesAroundGeocodedCenter(t *testing.T) {
	geoSrv := newGeocodeServer(t, []map[string]any{{"lat": "27.1767", "lon": "78.0081"}})
	defer geoSrv.Close()
	var gotLL, gotQuery, gotAuth, gotVersion string
	placesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotLL, gotQuery = q.Get("ll"), q.Get("query")
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("X-Places-Api-Version")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"name":     "Taj Mahal",
					"distance": 420,
					"location": map[string]any{"formatted_address": "Dharmapuri, Agra"},
					"categories": []map[string]any{
						{"name": "Monument"},
					},
					"fsq_place_id": "fsq-1",
				},
			},
		})
	}))
	defer placesSrv.Close()
	session := components.NewSession(nil)
	tool := New("service-key",
		WithGeocodeBaseURL(geoSrv.URL),
		WithPlacesBaseURL(placesSrv.URL),
		WithSession(session),
	)
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("Agra", "tourist"), output); err != nil {
		t.Fatal(err)
	}
	if gotLL != "27.1767,78.0081" {
		t.Errorf("unexpected ll %q", gotLL)
	}
	if gotQuery != "tourist" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("unexpected authorization %q", gotAuth)
	}
	if gotVersion != "2025-06-17" {
		t.Errorf("unexpected api version %q", gotVersion)
	}
	if output.ResultsCount != 1 || output.Results[0].Name != "Taj Mahal" {
		t.Errorf("unexpected output %+v", output)
	}
	if output.Coords.Lat != "27.1767" || output.Coords.Lon != "78.0081" {
		t.Errorf("unexpected coords %+v", output.Coords)
	}
	saved := session.LastPlaces()
	if len(saved) != 1 || saved[0].PlaceID != "fsq-1" {
		t.Errorf("expecting results recorded on the session, got %+v", saved)
	}
}

func TestRunUnknownCityNeverHitsPlacesProvider(t *testing.T) {
	geoSrv := newGeocodeServer(t, []map[string]any{})
	defer geoSrv.Close()
	var placesCalls int
	placesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		placesCalls++
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))
	defer placesSrv.Close()
	tool := New("service-key",
		WithGeocodeBaseURL(geoSrv.URL),
		WithPlacesBaseURL(placesSrv.URL),
	)
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("Atlantis", ""), output); err != nil {
		t.Fatal(err)
	}
	if output.Error != "city 'Atlantis' not found" {
		t.Errorf("unexpected error value %q", output.Error)
	}
	if placesCalls != 0 {
		t.Errorf("places provider must not be contacted, got %d calls", placesCalls)
	}
}

func TestRunDefaultQuery(t *testing.T) {
	geoSrv := newGeocodeServer(t, []map[string]any{{"lat": "19.07", "lon": "72.87"}})
	defer geoSrv.Close()
	var gotQuery, gotRadius, gotLimit string
	placesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery, gotRadius, gotLimit = q.Get("query"), q.Get("radius"), q.Get("limit")
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))
	defer placesSrv.Close()
	tool := New("service-key",
		WithGeocodeBaseURL(geoSrv.URL),
		WithPlacesBaseURL(placesSrv.URL),
	)
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("Mumbai", ""), output); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "restaurants" || gotRadius != "2000" || gotLimit != "10" {
		t.Errorf("unexpected defaults query=%q radius=%q limit=%q", gotQuery, gotRadius, gotLimit)
	}
}
