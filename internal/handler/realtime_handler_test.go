package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/wellcampus/internal/realtime"
)

func startRealtimeServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	base := setupTestAPI(t)
	hub := realtime.NewHub(nil)
	api := NewAPI(base.DB(), base.Dashboard(), hub, nil)

	r := gin.New()
	r.GET("/api/ws", api.Realtime)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
}

func TestRealtimeAcceptsSameOrigin(t *testing.T) {
	srv, url := startRealtimeServer(t)

	header := http.Header{"Origin": []string{srv.URL}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("same-origin dial failed: %v", err)
	}
	conn.Close()
}

func TestRealtimeRejectsCrossOrigin(t *testing.T) {
	_, url := startRealtimeServer(t)

	header := http.Header{"Origin": []string{"https://evil.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatalf("expected cross-origin upgrade to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %v", resp)
	}
}

func TestRealtimeWithoutHub(t *testing.T) {
	api := setupTestAPI(t)

	c, w := testContext(httptest.NewRequest(http.MethodGet, "/api/ws", nil), &studentProfile)
	api.Realtime(c)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}
