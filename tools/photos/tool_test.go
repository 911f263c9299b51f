package photos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/thinkmate-ai/thinkmate/tools"
)

func TestRunCollectsRegularURLs(t *testing.T) {
	var gotQuery, gotPerPage, gotClientID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery, gotPerPage, gotClientID = q.Get("query"), q.Get("per_page"), q.Get("client_id")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"urls": map[string]any{"regular": "https://images.example/delhi-1.jpg"}},
				{"urls": map[string]any{"regular": "https://images.example/delhi-2.jpg"}},
			},
		})
	}))
	defer srv.Close()
	tool := New("access-key", WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("Delhi", 2), output); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "Delhi" || gotPerPage != "2" || gotClientID != "access-key" {
		t.Errorf("unexpected request query=%q per_page=%q client_id=%q", gotQuery, gotPerPage, gotClientID)
	}
	if output.Type != tools.PhotoDiscriminator {
		t.Errorf("unexpected discriminator %q", output.Type)
	}
	want := []string{"https://images.example/delhi-1.jpg", "https://images.example/delhi-2.jpg"}
	if !reflect.DeepEqual(output.PhotoURLs(), want) {
		t.Errorf("unexpected urls %v", output.PhotoURLs())
	}
}

func TestRunDefaultCount(t *testing.T) {
	var gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))
	defer srv.Close()
	tool := New("access-key", WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("Mumbai", 0), output); err != nil {
		t.Fatal(err)
	}
	if gotPerPage != "5" {
		t.Errorf("expecting default 5 images, got %q", gotPerPage)
	}
	if output.Type != tools.PhotoDiscriminator || len(output.URLs) != 0 {
		t.Errorf("unexpected output %+v", output)
	}
}
