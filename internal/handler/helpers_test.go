package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/wellcampus/internal/db"
	"github.com/wellcampus/internal/service"
	"github.com/wellcampus/internal/store"
)

var testNow = time.Date(2026, time.October, 14, 9, 5, 7, 0, time.UTC)

func setupTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(db.Options{Path: dsn, Silent: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	dashboard := service.NewDashboard(context.Background(), store.New(store.NewMemoryBackend()), service.Options{
		Clock: func() time.Time { return testNow },
	})
	t.Cleanup(dashboard.Close)

	return NewAPI(gdb, dashboard, nil, nil)
}

// newSessionEngine 构造带会话中间件的最小路由，覆盖登录相关处理器
func newSessionEngine(api *API) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("wellcampus_test", cookie.NewStore([]byte("test-secret"))))

	r.POST("/api/session", api.Login)
	r.GET("/api/session", api.CurrentSession)
	r.DELETE("/api/session", api.Logout)

	auth := r.Group("/api", AuthRequired())
	auth.GET("/views/:tab", api.GetView)
	auth.POST("/events/:id/register", api.ToggleRegistration)

	admin := auth.Group("/admin", AdminRequired())
	admin.POST("/events", api.CreateEvent)
	return r
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// testContext 构造已登录的 gin 上下文，直接调用处理器
func testContext(req *http.Request, profile *service.Profile, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	if profile != nil {
		c.Set(profileContextKey, *profile)
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func loginCookie(t *testing.T, r *gin.Engine, payload map[string]string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/session", payload))
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

var (
	studentProfile = service.Profile{Role: service.RoleStudent, Name: "Sam", Email: "sam@uni.edu"}
	adminProfile   = service.Profile{Role: service.RoleAdmin, Name: "Ops", Email: "ops@uni.edu"}
)
