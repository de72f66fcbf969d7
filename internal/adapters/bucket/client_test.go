package bucket_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pousada_manicaca/internal/adapters/bucket"
)

func TestClient_Upload_RetriesThenSuccess(t *testing.T) {
	var hits int32
	var got []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			got, _ = io.ReadAll(r.Body)
			w.WriteHeader(200)
		}
	}))
	defer ts.Close()

	cl, err := bucket.New(ts.URL, "pousada-images", "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cl.Upload(ctx, "rooms/abc.jpg", "image/jpeg", strings.NewReader("jpegbytes")); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(got) != "jpegbytes" {
		t.Fatalf("server saw %q", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Remove_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := bucket.New(ts.URL, "pousada-images", "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err = cl.Remove(ctx, []string{"rooms/missing.jpg"})
	if !errors.Is(err, bucket.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_PublicURL_NoNetwork(t *testing.T) {
	cl, err := bucket.New("https://proj.supabase.co/storage/v1", "pousada-images", "", 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "https://proj.supabase.co/storage/v1/object/public/pousada-images/rooms/a.webp"
	if got := cl.PublicURL("rooms/a.webp"); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	if got := cl.PublicURL("/rooms/a.webp"); got != want {
		t.Fatalf("leading slash: got %s want %s", got, want)
	}
}
