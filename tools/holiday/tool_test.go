package holiday

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRunSplitsDateIntoQueryParts(t *testing.T) {
	var gotYear, gotMonth, gotDay, gotCountry string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotYear, gotMonth, gotDay, gotCountry = q.Get("year"), q.Get("month"), q.Get("day"), q.Get("country")
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"name":     "Christmas Day",
				"date":     "2025-12-25",
				"type":     "National",
				"location": "All",
			},
		})
	}))
	defer srv.Close()
	tool := New("test-key", WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("2025-12-25", ""), output); err != nil {
		t.Fatal(err)
	}
	if gotYear != "2025" || gotMonth != "12" || gotDay != "25" {
		t.Errorf("unexpected date parts %s-%s-%s", gotYear, gotMonth, gotDay)
	}
	if gotCountry != "IN" {
		t.Errorf("expecting default country IN, got %q", gotCountry)
	}
	if output.Holiday == nil || output.Holiday.Name != "Christmas Day" {
		t.Errorf("unexpected output %+v", output)
	}
	if output.Holiday.Type != "National" || output.Holiday.Date != "2025-12-25" {
		t.Errorf("unexpected record %+v", output.Holiday)
	}
}

func TestRunNoHoliday(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()
	tool := New("test-key", WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("2025-03-03", "IN"), output); err != nil {
		t.Fatal(err)
	}
	if output.Holiday != nil {
		t.Error("expecting no holiday record")
	}
	if output.Message != "No holiday on 2025-03-03 in IN" {
		t.Errorf("unexpected message %q", output.Message)
	}
}

func TestRunUpstreamStatusBecomesValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	tool := New("bad-key", WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("2025-03-03", "IN"), output); err != nil {
		t.Fatalf("upstream statuses must not fail the call, got %v", err)
	}
	if output.Error != "HTTP 401" {
		t.Errorf("unexpected error value %q", output.Error)
	}
}

func TestRunRejectsMalformedDate(t *testing.T) {
	tool := New("test-key")
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("25/12/2025", "IN"), output); err == nil {
		t.Fatal("expecting an error for a malformed date")
	}
}
