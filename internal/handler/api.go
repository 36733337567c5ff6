package handler

import (
	"github.com/wellcampus/internal/logger"
	"github.com/wellcampus/internal/realtime"
	"github.com/wellcampus/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	dashboard *service.Dashboard
	hub       *realtime.Hub
	log       *logger.Logger
}

// NewAPI constructs a handler set over one dashboard.
func NewAPI(db *gorm.DB, dashboard *service.Dashboard, hub *realtime.Hub, log *logger.Logger) *API {
	if log == nil {
		log = logger.Nop()
	}
	return &API{
		db:        db,
		dashboard: dashboard,
		hub:       hub,
		log:       log,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Dashboard 返回共享的会话状态
func (a *API) Dashboard() *service.Dashboard {
	return a.dashboard
}
