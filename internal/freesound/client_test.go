package freesound

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jscyril/freesound_cli/internal/config"
	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIKey:          "test-key",
		BaseURL:         baseURL,
		PageSize:        30,
		DownloadDir:     ".",
		SearchTimeout:   5 * time.Second,
		PreviewTimeout:  5 * time.Second,
		DownloadTimeout: 5 * time.Second,
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		pageSize int
		want     int
	}{
		{"no matches", 0, 30, 0},
		{"single partial page", 1, 30, 1},
		{"exactly one page", 30, 30, 1},
		{"one over a page", 31, 30, 2},
		{"many pages", 95, 30, 4},
		{"page size one", 7, 1, 7},
		{"negative count", -1, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPages(tt.count, tt.pageSize)
			if got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"query":     q.Get("query"),
			"token":     q.Get("token"),
			"page":      q.Get("page"),
			"page_size": q.Get("page_size"),
			"fields":    q.Get("fields"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 61,
			"results": [
				{
					"id": 12345,
					"name": "Heavy Rain",
					"username": "stormchaser",
					"created": "2021-06-01T10:30:00Z",
					"type": "wav",
					"duration": 42.5,
					"tags": ["rain", "storm", "weather", "field-recording"],
					"description": "Rain on a tin roof.",
					"license": "CC0",
					"previews": {"preview-hq-mp3": "https://example.org/p/12345.mp3"}
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	page, err := client.Search(context.Background(), "rain", 2)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if gotQuery["query"] != "rain" {
		t.Errorf("query param = %q, want %q", gotQuery["query"], "rain")
	}
	if gotQuery["token"] != "test-key" {
		t.Errorf("token param = %q, want %q", gotQuery["token"], "test-key")
	}
	if gotQuery["page"] != "2" {
		t.Errorf("page param = %q, want %q", gotQuery["page"], "2")
	}
	if gotQuery["page_size"] != "30" {
		t.Errorf("page_size param = %q, want %q", gotQuery["page_size"], "30")
	}
	if gotQuery["fields"] == "" {
		t.Error("fields param missing")
	}

	if page.Page != 2 {
		t.Errorf("Page = %d, want 2", page.Page)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3 (count 61, page size 30)", page.TotalPages)
	}
	if page.Len() != 1 {
		t.Fatalf("Len = %d, want 1", page.Len())
	}

	s := page.Sounds[0]
	if s.ID != 12345 {
		t.Errorf("ID = %d, want 12345", s.ID)
	}
	if s.Username != "stormchaser" {
		t.Errorf("Username = %q, want %q", s.Username, "stormchaser")
	}
	if url, ok := s.PreviewURL(); !ok || url != "https://example.org/p/12345.mp3" {
		t.Errorf("PreviewURL = %q, %v", url, ok)
	}
}

func TestSearch_ZeroMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	page, err := client.Search(context.Background(), "birdsong", 1)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if page.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", page.TotalPages)
	}
	if page.Len() != 0 {
		t.Errorf("Len = %d, want 0", page.Len())
	}
}

func TestSearch_Errors(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		cfg := testConfig("http://127.0.0.1:0")
		cfg.APIKey = ""
		client := NewClient(cfg)
		_, err := client.Search(context.Background(), "rain", 1)
		if !errors.Is(err, fserrors.ErrUnconfigured) {
			t.Errorf("error = %v, want ErrUnconfigured", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(testConfig(srv.URL))
		_, err := client.Search(context.Background(), "rain", 1)
		if !errors.Is(err, fserrors.ErrTransport) {
			t.Errorf("error = %v, want ErrTransport", err)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count": "not a number"`))
		}))
		defer srv.Close()

		client := NewClient(testConfig(srv.URL))
		_, err := client.Search(context.Background(), "rain", 1)
		if !errors.Is(err, fserrors.ErrMalformedResponse) {
			t.Errorf("error = %v, want ErrMalformedResponse", err)
		}
	})
}

func TestFetchPreview(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	data, err := client.FetchPreview(context.Background(), srv.URL+"/p/1.mp3")
	if err != nil {
		t.Fatalf("FetchPreview returned error: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("body = %q, want %q", data, "mp3-bytes")
	}
	if gotAuth != "Token test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Token test-key")
	}
}

func TestFetchPreview_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.FetchPreview(context.Background(), srv.URL+"/p/missing.mp3")
	if !errors.Is(err, fserrors.ErrFetchFailed) {
		t.Errorf("error = %v, want ErrFetchFailed", err)
	}
}
