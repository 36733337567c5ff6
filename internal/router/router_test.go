package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellcampus/internal/db"
	"github.com/wellcampus/internal/handler"
	"github.com/wellcampus/internal/metrics"
	"github.com/wellcampus/internal/realtime"
	"github.com/wellcampus/internal/service"
	"github.com/wellcampus/internal/store"
)

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(h http.Handler) *localClient {
	jar, _ := cookiejar.New(nil)
	return &localClient{handler: h, jar: jar}
}

func (c *localClient) Do(req *http.Request) *http.Response {
	for _, cookie := range c.jar.Cookies(req.URL) {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	c.jar.SetCookies(req.URL, resp.Cookies())
	return resp
}

func (c *localClient) JSON(t *testing.T, method, path string, payload any) (int, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "http://wellcampus.test"+path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := c.Do(req)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode, out
}

type testStack struct {
	engine    *gin.Engine
	backend   *store.GormBackend
	metrics   *metrics.Metrics
	dashboard *service.Dashboard
}

func newTestStack(t *testing.T, opts Options) testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router-test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(db.Options{Path: dsn, Silent: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.EnsureAdmin(gdb, "ops@uni.edu", "e2e-secret"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	m := metrics.New()
	backend := store.NewGormBackend(gdb)
	hub := realtime.NewHub(nil)
	dashboard := service.NewDashboard(context.Background(), store.New(backend, store.WithFailureCounter(m.StoreWriteFailures)), service.Options{
		Metrics:  m,
		Notifier: hub,
	})
	t.Cleanup(func() {
		dashboard.Close()
		hub.Close()
	})

	opts.Metrics = m
	api := handler.NewAPI(gdb, dashboard, hub, nil)
	return testStack{
		engine:    SetupRouter(api, opts),
		backend:   backend,
		metrics:   m,
		dashboard: dashboard,
	}
}

func TestPing(t *testing.T) {
	stack := newTestStack(t, Options{})

	w := httptest.NewRecorder()
	stack.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("unexpected ping response: %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestStudentFlowPersistsSlots(t *testing.T) {
	stack := newTestStack(t, Options{})
	client := newLocalClient(stack.engine)

	if status, _ := client.JSON(t, http.MethodGet, "/api/views/dashboard", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", status)
	}

	status, body := client.JSON(t, http.MethodPost, "/api/session", map[string]string{"role": "student", "name": "Sam", "email": "sam@uni.edu"})
	if status != http.StatusOK || body["defaultTab"] != "dashboard" {
		t.Fatalf("login failed: %d %v", status, body)
	}

	if status, _ := client.JSON(t, http.MethodPost, "/api/events/1/register", nil); status != http.StatusOK {
		t.Fatalf("register failed: %d", status)
	}
	if status, _ := client.JSON(t, http.MethodPost, "/api/meals/log", map[string]string{"title": "Oatmeal", "cal": "300"}); status != http.StatusCreated {
		t.Fatalf("log meal failed: %d", status)
	}
	if status, _ := client.JSON(t, http.MethodPost, "/api/posts", map[string]string{"text": "See you at the 5K"}); status != http.StatusCreated {
		t.Fatalf("post failed: %d", status)
	}

	status, view := client.JSON(t, http.MethodGet, "/api/views/dashboard", nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard view failed: %d", status)
	}
	if view["registeredCount"] != float64(1) || view["dailyCalories"] != float64(300) {
		t.Fatalf("unexpected dashboard view: %v", view)
	}

	if status, _ := client.JSON(t, http.MethodGet, "/api/views/admin_overview", nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for admin tab, got %d", status)
	}

	raw, ok, err := stack.backend.Get(context.Background(), store.SlotRegistered)
	if err != nil || !ok || string(raw) != "[1]" {
		t.Fatalf("unexpected registered slot: %s ok=%v err=%v", raw, ok, err)
	}
	raw, ok, err = stack.backend.Get(context.Background(), store.SlotCalories)
	if err != nil || !ok || string(raw) != "300" {
		t.Fatalf("unexpected calories slot: %s ok=%v err=%v", raw, ok, err)
	}

	// 新的 Dashboard 从同一存储加载后应看到相同状态
	reloaded := service.NewDashboard(context.Background(), store.New(stack.backend), service.Options{})
	defer reloaded.Close()
	state := reloaded.Snapshot()
	if len(state.Registrations) != 1 || state.Posts[0].Text != "See you at the 5K" || len(state.UserLogs) != 1 {
		t.Fatalf("reloaded state mismatch: %+v", state)
	}
}

func TestAdminFlow(t *testing.T) {
	stack := newTestStack(t, Options{})
	client := newLocalClient(stack.engine)

	if status, _ := client.JSON(t, http.MethodPost, "/api/session", map[string]string{"role": "admin", "email": "ops@uni.edu", "password": "nope"}); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", status)
	}
	if status, _ := client.JSON(t, http.MethodPost, "/api/session", map[string]string{"role": "admin", "email": "ops@uni.edu", "password": "e2e-secret"}); status != http.StatusOK {
		t.Fatalf("admin login failed: %d", status)
	}

	status, body := client.JSON(t, http.MethodPost, "/api/admin/events", map[string]string{"title": "Blood Drive", "startDate": "2026-11-01"})
	if status != http.StatusCreated {
		t.Fatalf("create event failed: %d %v", status, body)
	}
	status, body = client.JSON(t, http.MethodPost, "/api/admin/resources", map[string]string{"title": "Focus", "type": "Plan"})
	if status != http.StatusBadRequest || body["reason"] != service.ReasonMissingRequiredField {
		t.Fatalf("expected missing content, got %d %v", status, body)
	}

	status, view := client.JSON(t, http.MethodGet, "/api/views/admin_alerts", nil)
	if status != http.StatusOK {
		t.Fatalf("admin alerts failed: %d", status)
	}
	events, _ := view["events"].([]any)
	if len(events) != 4 || events[0].(map[string]any)["title"] != "Blood Drive" {
		t.Fatalf("unexpected admin events: %v", view["events"])
	}

	if status, _ := client.JSON(t, http.MethodGet, "/api/views/dashboard", nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for student tab, got %d", status)
	}
	if status, _ := client.JSON(t, http.MethodGet, "/api/views/unknown", nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown tab, got %d", status)
	}
}

func TestMetricsEndpointExposesCounters(t *testing.T) {
	stack := newTestStack(t, Options{})
	client := newLocalClient(stack.engine)
	client.JSON(t, http.MethodPost, "/api/session", map[string]string{"role": "student"})
	client.JSON(t, http.MethodPost, "/api/posts", map[string]string{"text": "hello"})

	resp := client.Do(httptest.NewRequest(http.MethodGet, "http://wellcampus.test/metrics", nil))
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	text := string(raw)

	for _, name := range []string{"wellcampus_http_requests_total", "wellcampus_actions_total", "wellcampus_store_write_failures_total"} {
		if !strings.Contains(text, name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
	if !strings.Contains(text, `action="submit_post",outcome="ok"`) {
		t.Fatalf("expected submit_post action counted")
	}
}

func TestRateLimitOnMutatingRoutes(t *testing.T) {
	stack := newTestStack(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1})
	client := newLocalClient(stack.engine)

	if status, _ := client.JSON(t, http.MethodPost, "/api/session", map[string]string{"role": "student"}); status != http.StatusOK {
		t.Fatalf("first write should pass, got %d", status)
	}
	if status, _ := client.JSON(t, http.MethodPost, "/api/posts", map[string]string{"text": "hi"}); status != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", status)
	}
	if status, _ := client.JSON(t, http.MethodGet, "/api/views/community", nil); status != http.StatusOK {
		t.Fatalf("reads are not limited, got %d", status)
	}
}
