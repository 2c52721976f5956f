package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/smartclinic/clinic-client/pkg/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, 0, logging.Discard())
}

func TestClient_AttachesBearerOnlyWhenTokenSet(t *testing.T) {
	var gotAuth []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	if _, err := client.Doctors(context.Background()); err != nil {
		t.Fatalf("Doctors() error = %v", err)
	}
	client.SetToken("tok-1")
	if _, err := client.Doctors(context.Background()); err != nil {
		t.Fatalf("Doctors() error = %v", err)
	}

	if gotAuth[0] != "" {
		t.Fatalf("anonymous request carried Authorization %q", gotAuth[0])
	}
	if gotAuth[1] != "Bearer tok-1" {
		t.Fatalf("Authorization = %q, want Bearer tok-1", gotAuth[1])
	}
}

func TestClient_RequestIDHeaderPresent(t *testing.T) {
	var gotID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`[]`))
	})
	if _, err := client.Doctors(context.Background()); err != nil {
		t.Fatalf("Doctors() error = %v", err)
	}
	if gotID == "" {
		t.Fatal("expected X-Request-Id header")
	}
}

func TestClient_UnauthorizedCallbackOncePerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	})

	var calls int32
	client.OnUnauthorized(func() { atomic.AddInt32(&calls, 1) })
	client.SetToken("tok-1")

	for i := 0; i < 3; i++ {
		_, err := client.DoctorAppointments(context.Background())
		if !IsUnauthorized(err) {
			t.Fatalf("expected unauthorized error, got %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("callback fired %d times under one token, want 1", got)
	}

	// A fresh token re-arms the callback.
	client.SetToken("tok-2")
	if _, err := client.DoctorAppointments(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("callback fired %d times after re-arm, want 2", got)
	}
}

func TestClient_UnauthorizedCallbackOnceUnderConcurrentFailures(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		http.Error(w, `{"message":"nope"}`, http.StatusForbidden)
	})

	var calls int32
	client.OnUnauthorized(func() { atomic.AddInt32(&calls, 1) })
	client.SetToken("tok-1")

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.DoctorAppointments(context.Background())
		}()
	}
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("callback fired %d times for three concurrent 403s, want 1", got)
	}
}

func TestClient_NoCallbackWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"anonymous"}`, http.StatusUnauthorized)
	})
	var calls int32
	client.OnUnauthorized(func() { atomic.AddInt32(&calls, 1) })

	if _, err := client.Doctors(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("callback must not fire when no token is set")
	}
}

func TestClient_ErrorStillReturnedAfterCallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"session ended"}`, http.StatusUnauthorized)
	})
	client.SetToken("tok-1")
	client.OnUnauthorized(func() { client.SetToken("") })

	_, err := client.DoctorProfile(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "session ended" {
		t.Fatalf("message = %q, want service envelope message", apiErr.Message)
	}
}

func TestClient_FallbackMessageWhenEnvelopeAbsent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	})
	_, err := client.PatientAppointments(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "Unable to load appointments." {
		t.Fatalf("message = %q, want fixed fallback", apiErr.Message)
	}
}

func TestClient_TransportErrorWrappedWithFallback(t *testing.T) {
	client := New("http://127.0.0.1:0", 0, logging.Discard())
	_, err := client.Doctors(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := UserMessage(err); got != "Unable to load doctors." {
		t.Fatalf("UserMessage = %q, want fallback", got)
	}
}

func TestDecodeListShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"pageable content", `{"content":[{"id":1}]}`, 1},
		{"data wrapper", `{"data":[{"id":1},{"id":2},{"id":3}]}`, 3},
		{"unknown shape", `{"items":[{"id":1}]}`, 0},
		{"empty body", ``, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeList[Doctor]([]byte(tt.raw))
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
