package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wellcampus/internal/handler"
	"github.com/wellcampus/internal/logger"
	"github.com/wellcampus/internal/metrics"
)

const sessionName = "wellcampus_session"

// Options 配置路由
type Options struct {
	SessionSecret  string
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	secret := opts.SessionSecret
	if secret == "" {
		secret = "wellcampus-dev-secret"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(instrument(m))

	// 配置会话中间件
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	apiGroup := r.Group("/api")
	apiGroup.Use(rateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	{
		apiGroup.POST("/session", api.Login)
		apiGroup.GET("/session", api.CurrentSession)
		apiGroup.DELETE("/session", api.Logout)

		// 需要登录的路由
		auth := apiGroup.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/ws", api.Realtime)
			auth.GET("/views/:tab", api.GetView)

			auth.GET("/events", api.ListEvents)
			auth.POST("/events/:id/register", api.ToggleRegistration)
			auth.POST("/events/:id/remind", api.ToggleReminder)

			auth.GET("/meals", api.ListMeals)
			auth.POST("/meals/generate", api.GenerateMeals)
			auth.GET("/meals/generation", api.GenerationStatus)
			auth.POST("/meals/log", api.LogMeal)

			auth.GET("/videos", api.ListVideos)
			auth.GET("/videos/:id", api.GetVideo)

			auth.GET("/resources", api.ListResources)
			auth.GET("/resources/:id/download", api.DownloadResource)
			auth.GET("/resources/:id/html", api.RenderResource)

			auth.GET("/posts", api.ListPosts)
			auth.POST("/posts", api.CreatePost)

			auth.GET("/metrics", api.GetMetrics)
			auth.PUT("/metrics", api.UpdateMetrics)
			auth.PUT("/checklist/:key/toggle", api.ToggleChecklist)
			auth.POST("/map/search", api.SearchMap)

			// 后台管理路由
			admin := auth.Group("/admin")
			admin.Use(handler.AdminRequired())
			{
				admin.POST("/videos", api.CreateVideo)
				admin.DELETE("/videos/:id", api.DeleteVideo)

				admin.POST("/meals", api.CreateMeal)
				admin.DELETE("/meals/:id", api.DeleteMeal)

				admin.POST("/resources", api.CreateResource)
				admin.DELETE("/resources/:id", api.DeleteResource)

				admin.POST("/events", api.CreateEvent)
				admin.DELETE("/events/:id", api.DeleteEvent)
				admin.GET("/events/:id/registrations", api.EventRegistrations)
			}
		}
	}

	return r
}
