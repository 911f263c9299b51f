package currency

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newPairServer(t *testing.T, rate float64, paths *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if paths != nil {
			*paths = append(*paths, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"result":          "success",
			"conversion_rate": rate,
		})
	}))
}

func TestRunRoundsToTwoDecimals(t *testing.T) {
	srv := newPairServer(t, 83.333333, nil)
	defer srv.Close()
	tool := New("test-key", WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput(100, "USD", "INR"), output); err != nil {
		t.Fatal(err)
	}
	if output.ConvertedAmount == nil {
		t.Fatal("expecting a converted amount")
	}
	if *output.ConvertedAmount != 8333.33 {
		t.Errorf("expecting 8333.33, got %v", *output.ConvertedAmount)
	}
}

func TestRunIsCaseInvariant(t *testing.T) {
	var paths []string
	srv := newPairServer(t, 0.012, &paths)
	defer srv.Close()
	tool := New("test-key", WithBaseURL(srv.URL))
	lower := new(Output)
	if err := tool.Run(context.Background(), NewInput(500, "inr", "usd"), lower); err != nil {
		t.Fatal(err)
	}
	upper := new(Output)
	if err := tool.Run(context.Background(), NewInput(500, "INR", "USD"), upper); err != nil {
		t.Fatal(err)
	}
	if *lower.ConvertedAmount != *upper.ConvertedAmount {
		t.Errorf("casing changed the result: %v vs %v", *lower.ConvertedAmount, *upper.ConvertedAmount)
	}
	for _, p := range paths {
		if !strings.HasSuffix(p, "/pair/INR/USD") {
			t.Errorf("codes must be upper-cased before lookup, got path %q", p)
		}
	}
}

func TestRunSuccessWithoutRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": "success",
		})
	}))
	defer srv.Close()
	tool := New("test-key", WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput(100, "USD", "INR"), output); err != nil {
		t.Fatalf("a missing rate must not fail the call, got %v", err)
	}
	if output.ConvertedAmount != nil {
		t.Errorf("a missing rate must not yield an amount, got %v", *output.ConvertedAmount)
	}
	if !strings.Contains(output.Detail, "Could not find conversion rate for USD to INR") {
		t.Errorf("unexpected detail %q", output.Detail)
	}
}

func TestRunProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result":     "error",
			"error-type": "unsupported-code",
		})
	}))
	defer srv.Close()
	tool := New("test-key", WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput(10, "USD", "XXX"), output); err != nil {
		t.Fatalf("provider rejections must not fail the call, got %v", err)
	}
	if output.ConvertedAmount != nil {
		t.Error("rejection must not carry a converted amount")
	}
	if !strings.Contains(output.Detail, "unsupported-code") {
		t.Errorf("unexpected detail %q", output.Detail)
	}
}
