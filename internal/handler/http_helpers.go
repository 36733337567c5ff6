package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wellcampus/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError 将业务错误映射为 HTTP 状态：校验失败 400（附原因），不存在 404，其余 500。
func (a *API) respondServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": message, "reason": service.ReasonOf(err)})
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, message)
	default:
		a.log.WithError(err).Errorw("request failed", "path", c.FullPath())
		respondError(c, http.StatusInternalServerError, message)
	}
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, key string) (int64, error) {
	raw := c.Param(key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}
