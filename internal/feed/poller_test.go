package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jpatelved/tradeboard/internal/models"
)

func TestPoller_RefreshesOnInterval(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Header.Get("Authorization") != "Bearer feed-token" {
			t.Errorf("Unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("limit") != "3" {
			t.Errorf("Unexpected limit %q", r.URL.Query().Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"insights":[{"id":1,"symbol":"AAPL","action":"buy","price":101.5,"reasoning":"momentum","confidence":"high","metadata":{},"created_at":"2026-01-02T15:04:05Z"}]}`)
	}))
	defer srv.Close()

	poller := NewPoller(NewClient(srv.URL, "feed-token"), 3, 20*time.Millisecond)
	updates := make(chan []models.TradeInsight, 16)
	poller.OnUpdate = func(insights []models.TradeInsight) {
		updates <- insights
	}

	poller.Start(context.Background())

	// First fetch is immediate, second comes from the ticker
	for i := 0; i < 2; i++ {
		select {
		case insights := <-updates:
			if len(insights) != 1 || insights[0].Symbol != "AAPL" {
				t.Errorf("Unexpected insights on update %d: %+v", i, insights)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for poll")
		}
	}

	poller.Stop()

	if n := atomic.LoadInt32(&hits); n < 2 {
		t.Errorf("Expected at least 2 fetches, got %d", n)
	}

	insights, err := poller.Snapshot()
	if err != nil {
		t.Errorf("Expected no error in snapshot, got %v", err)
	}
	if len(insights) != 1 || insights[0].Price != 101.5 {
		t.Errorf("Unexpected snapshot: %+v", insights)
	}
}

func TestPoller_SurfacesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	poller := NewPoller(NewClient(srv.URL, "feed-token"), 10, 10*time.Millisecond)
	poller.Start(context.Background())
	defer poller.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := poller.Snapshot(); err != nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("Expected snapshot to surface the poll error")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPoller_StopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"insights":[]}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	poller := NewPoller(NewClient(srv.URL, "feed-token"), 10, 10*time.Millisecond)
	poller.Start(ctx)

	cancel()

	select {
	case <-poller.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("Poller did not stop after context cancellation")
	}
}
