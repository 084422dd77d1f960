package dialogue

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/aokiyuki/cocoro/backend/internal/service/engine"
	"github.com/aokiyuki/cocoro/backend/pkg/logx"
)

// WebSocketHandler 对话WebSocket处理器：每个文本帧提交给引擎，回复帧携带引擎结果。
type WebSocketHandler struct {
	engine   *engine.Engine
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(eng *engine.Engine) *WebSocketHandler {
	return &WebSocketHandler{
		engine: eng,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/dialogue/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type outgoingMessage struct {
	*engine.Reply
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// handleWebSocket 处理WebSocket连接
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Warn().Err(err).Str("sessionID", sessionID).Msg("websocket closed unexpectedly")
			}
			return
		}

		reply, err := h.engine.Submit(r.Context(), sessionID, inbound.UserID, inbound.Message)
		outgoing := outgoingMessage{Timestamp: time.Now().UnixMilli()}
		if err != nil {
			outgoing.Error = err.Error()
		} else {
			outgoing.Reply = &reply
		}

		if err := conn.WriteJSON(outgoing); err != nil {
			logx.Warn().Err(err).Str("sessionID", sessionID).Msg("websocket write failed")
			return
		}

		// 会话结束后不再接受新消息
		if err != nil && errors.Is(err, engine.ErrSessionClosed) {
			return
		}
	}
}
