package archivesspace

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"archival-transform-service/internal/ports"
)

// fakeArchivesSpace serves the login endpoint plus whatever extra
// routes a test registers.
func fakeArchivesSpace(t *testing.T, register func(mux *http.ServeMux)) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/admin/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"session": "session-token"})
	})
	if register != nil {
		register(mux)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCreate(t *testing.T) {
	var gotSession string
	var gotBody map[string]any

	srv := fakeArchivesSpace(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/repositories/2/accessions", func(w http.ResponseWriter, r *http.Request) {
			gotSession = r.Header.Get("X-ArchivesSpace-Session")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status": "Created",
				"uri":    "/repositories/2/accessions/1",
			})
		})
	})

	client, err := NewClient(srv.URL, "admin", "admin", "2")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	uri, err := client.Create(context.Background(), ports.KindAccession, map[string]any{"title": "Grantee records"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if uri != "/repositories/2/accessions/1" {
		t.Errorf("uri = %q", uri)
	}
	if gotSession != "session-token" {
		t.Errorf("session header = %q, want session-token", gotSession)
	}
	if gotBody["title"] != "Grantee records" {
		t.Errorf("request body = %v", gotBody)
	}
}

func TestClientCreateRemoteError(t *testing.T) {
	srv := fakeArchivesSpace(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/repositories/2/accessions", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "identifier in use"}`, http.StatusBadRequest)
		})
	})

	client, err := NewClient(srv.URL, "admin", "admin", "2")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Create(context.Background(), ports.KindAccession, map[string]any{})

	var remoteErr *ports.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %v", err)
	}
	if remoteErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", remoteErr.Status)
	}
	if remoteErr.System != "archivesspace" {
		t.Errorf("system = %q, want archivesspace", remoteErr.System)
	}
}

func TestClientAuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/admin/login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "admin", "wrong", "2")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Get(context.Background(), "/repositories/2/accessions/1")

	var remoteErr *ports.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %v", err)
	}
}

func TestClientSessionReuse(t *testing.T) {
	logins := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/users/admin/login", func(w http.ResponseWriter, r *http.Request) {
		logins++
		_ = json.NewEncoder(w).Encode(map[string]string{"session": "session-token"})
	})
	mux.HandleFunc("/repositories/2/accessions/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"uri": "/repositories/2/accessions/1"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "admin", "admin", "2")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := client.Get(context.Background(), "/repositories/2/accessions/1"); err != nil {
			t.Fatalf("get #%d: %v", i+1, err)
		}
	}

	if logins != 1 {
		t.Errorf("logins = %d, want 1 (session should be cached)", logins)
	}
}

func TestNextAccessionNumber(t *testing.T) {
	srv := fakeArchivesSpace(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/repositories/2/search", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"total_hits": 0,
				"results":    []any{},
			})
		})
	})

	client, err := NewClient(srv.URL, "admin", "admin", "2")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, id1, err := client.NextAccessionNumber(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id1 != "001" {
		t.Errorf("id1 = %q, want 001 (no accessions this year)", id1)
	}
}
