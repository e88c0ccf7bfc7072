package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"idb-monitor/internal/survey"
)

const (
	fieldJSON = `[{"User": "aosimen", "Feeder": "F1", "DT Name": "DT-A"}, {"User": "sbolaji", "Feeder": "F2", "DT Name": "DT-B"}]`
	boqJSON   = `[{"FEEDER NAME": "F1", "DT NAME": "DT-A", "POLES Grand Total": "5"}]`
)

func serve(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("t") == "" {
			t.Errorf("request %s lacks the cache-busting parameter", r.URL)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetchJSON_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusNotFound, "not found"},
		{http.StatusForbidden, "denied"},
		{http.StatusTooManyRequests, "rate limit"},
		{http.StatusBadGateway, "server error"},
	}

	for _, tt := range tests {
		srv, _ := serve(t, tt.status, "")
		_, err := NewClient(time.Second, "").FetchJSON(context.Background(), srv.URL)

		var se *StatusError
		if !errors.As(err, &se) || se.StatusCode != tt.status {
			t.Fatalf("status %d: err = %v", tt.status, err)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("status %d: error %q does not mention %q", tt.status, err, tt.want)
		}
	}
}

func TestFetchJSON_RejectsInvalidJSON(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, "<html>")
	if _, err := NewClient(time.Second, "").FetchJSON(context.Background(), srv.URL); err == nil {
		t.Error("expected an error for a non-JSON body")
	}
}

func TestFetchWithFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("PrimaryOK", func(t *testing.T) {
		primary, _ := serve(t, http.StatusOK, fieldJSON)
		fallback, fbHits := serve(t, http.StatusOK, "[]")
		dir := t.TempDir()

		data, origin, err := NewClient(time.Second, dir).FetchWithFallback(ctx, "field", primary.URL, fallback.URL)
		if err != nil || origin != primary.URL || string(data) != fieldJSON {
			t.Fatalf("got %q from %q, err %v", data, origin, err)
		}
		if fbHits.Load() != 0 {
			t.Error("fallback must not be contacted when the primary succeeds")
		}
		cached, err := os.ReadFile(filepath.Join(dir, "field.json"))
		if err != nil || string(cached) != fieldJSON {
			t.Errorf("cache not written: %q, %v", cached, err)
		}
		if _, err := os.Stat(filepath.Join(dir, "field.json.tmp")); !os.IsNotExist(err) {
			t.Error("temp file left behind")
		}
	})

	t.Run("FallbackURL", func(t *testing.T) {
		primary, _ := serve(t, http.StatusInternalServerError, "")
		fallback, _ := serve(t, http.StatusOK, boqJSON)

		data, origin, err := NewClient(time.Second, "").FetchWithFallback(ctx, "boq", primary.URL, fallback.URL)
		if err != nil || origin != fallback.URL || string(data) != boqJSON {
			t.Fatalf("got %q from %q, err %v", data, origin, err)
		}
	})

	t.Run("FallbackFile", func(t *testing.T) {
		primary, _ := serve(t, http.StatusNotFound, "")
		path := filepath.Join(t.TempDir(), "boq.json")
		if err := os.WriteFile(path, []byte(boqJSON), 0644); err != nil {
			t.Fatal(err)
		}

		data, _, err := NewClient(time.Second, "").FetchWithFallback(ctx, "boq", primary.URL, path)
		if err != nil || string(data) != boqJSON {
			t.Fatalf("got %q, err %v", data, err)
		}
	})

	t.Run("CacheAsFallback", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "field.json"), []byte(fieldJSON), 0644); err != nil {
			t.Fatal(err)
		}
		primary, _ := serve(t, http.StatusServiceUnavailable, "")

		data, origin, err := NewClient(time.Second, dir).FetchWithFallback(ctx, "field", primary.URL, "")
		if err != nil || string(data) != fieldJSON {
			t.Fatalf("got %q, err %v", data, err)
		}
		if !strings.HasSuffix(origin, "field.json") {
			t.Errorf("origin = %q", origin)
		}
	})

	t.Run("BothFail", func(t *testing.T) {
		primary, _ := serve(t, http.StatusInternalServerError, "")
		fallback, _ := serve(t, http.StatusNotFound, "")

		_, _, err := NewClient(time.Second, "").FetchWithFallback(ctx, "field", primary.URL, fallback.URL)
		if !errors.Is(err, ErrBothSourcesFailed) {
			t.Errorf("err = %v, want ErrBothSourcesFailed", err)
		}
	})
}

func TestLoad(t *testing.T) {
	field, _ := serve(t, http.StatusOK, fieldJSON)
	boq, _ := serve(t, http.StatusOK, boqJSON)

	ds, err := Load(context.Background(), NewClient(time.Second, ""), Sources{FieldURL: field.URL, BOQURL: boq.URL}, survey.FixedClassifier(survey.IssueGood))
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Field) != 2 || len(ds.BOQ) != 1 || ds.BOQ[0].PolesTotal != 5 {
		t.Errorf("dataset = %d field, %d boq", len(ds.Field), len(ds.BOQ))
	}
	if ds.Field[0].VendorName != survey.VendorETC || ds.Field[1].VendorName != survey.VendorJesom {
		t.Errorf("records not normalized: %+v", ds.Field)
	}
}

func TestLoad_NoPartialDataset(t *testing.T) {
	field, _ := serve(t, http.StatusOK, fieldJSON)
	boqDown, _ := serve(t, http.StatusInternalServerError, "")

	ds, err := Load(context.Background(), NewClient(time.Second, ""), Sources{FieldURL: field.URL, BOQURL: boqDown.URL}, survey.FixedClassifier(survey.IssueGood))
	if err == nil || ds != nil {
		t.Fatalf("expected failure without a dataset, got %v / %v", ds, err)
	}
	if !errors.Is(err, ErrBothSourcesFailed) {
		t.Errorf("err = %v, want ErrBothSourcesFailed", err)
	}
}
