package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// upgrader 使用默认的同源校验：Origin 缺省或与请求 Host 一致时才允许升级
var upgrader = websocket.Upgrader{}

// Realtime 升级为 websocket，连接期间推送槽位变更
func (a *API) Realtime(c *gin.Context) {
	if a.hub == nil {
		respondError(c, http.StatusServiceUnavailable, "实时推送未启用")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	a.hub.Serve(conn)
}
