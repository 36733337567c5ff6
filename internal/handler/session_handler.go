package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/wellcampus/internal/db"
	"github.com/wellcampus/internal/service"
)

const (
	sessionRoleKey  = "role"
	sessionNameKey  = "name"
	sessionEmailKey = "email"

	profileContextKey = "__profile"
)

type loginRequest struct {
	Role     string `json:"role" binding:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 建立会话并记录一次登录日志
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "请选择登录角色") {
		return
	}

	role := service.NormalizeRole(req.Role)
	if role == "" {
		respondError(c, http.StatusBadRequest, "未知的登录角色")
		return
	}

	profile := service.Profile{
		Role:  role,
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}

	if role == service.RoleAdmin {
		if err := db.VerifyAdmin(a.db, profile.Email, req.Password); err != nil {
			if errors.Is(err, db.ErrInvalidCredentials) {
				respondError(c, http.StatusUnauthorized, "邮箱或密码错误")
				return
			}
			a.log.WithError(err).Errorw("verify admin failed")
			respondError(c, http.StatusInternalServerError, "登录失败")
			return
		}
	}

	session := sessions.Default(c)
	session.Set(sessionRoleKey, profile.Role)
	session.Set(sessionNameKey, profile.Name)
	session.Set(sessionEmailKey, profile.Email)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	entry := a.dashboard.RecordLogin(c.Request.Context(), profile)
	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"defaultTab": service.DefaultTab(profile.Role),
		"log":        entry,
	})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// CurrentSession 返回当前登录资料
func (a *API) CurrentSession(c *gin.Context) {
	profile, ok := sessionProfile(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"defaultTab": service.DefaultTab(profile.Role),
	})
}

func sessionProfile(c *gin.Context) (service.Profile, bool) {
	session := sessions.Default(c)
	role, _ := session.Get(sessionRoleKey).(string)
	if service.NormalizeRole(role) == "" {
		return service.Profile{}, false
	}
	name, _ := session.Get(sessionNameKey).(string)
	email, _ := session.Get(sessionEmailKey).(string)
	return service.Profile{Role: role, Name: name, Email: email}, true
}

// currentProfile 读取 AuthRequired 放入上下文的资料
func currentProfile(c *gin.Context) service.Profile {
	if value, exists := c.Get(profileContextKey); exists {
		if profile, ok := value.(service.Profile); ok {
			return profile
		}
	}
	profile, _ := sessionProfile(c)
	return profile
}

// AuthRequired 要求已登录
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := sessionProfile(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "未登录")
			c.Abort()
			return
		}
		c.Set(profileContextKey, profile)
		c.Next()
	}
}

// AdminRequired 要求管理员角色，须置于 AuthRequired 之后
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentProfile(c).Role != service.RoleAdmin {
			respondError(c, http.StatusForbidden, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}
