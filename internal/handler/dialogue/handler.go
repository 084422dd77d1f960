package dialogue

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aokiyuki/cocoro/backend/internal/core/errx"
	"github.com/aokiyuki/cocoro/backend/internal/service/engine"
	"github.com/aokiyuki/cocoro/backend/pkg/utils"
)

// Handler 对话服务的HTTP处理器
type Handler struct {
	engine *engine.Engine
}

// New 创建对话处理器
func New(eng *engine.Engine) *Handler {
	return &Handler{engine: eng}
}

// RegisterRoutes 注册对话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleStartSession)
	r.Post("/sessions/{sessionID}/messages", h.handleSubmit)
	r.Post("/sessions/{sessionID}/end", h.handleEndSession)
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID         string `json:"userId"`
		InitialMessage string `json:"initialMessage"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	started, err := h.engine.StartSession(r.Context(), payload.UserID, payload.InitialMessage)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, started)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		UserID  string `json:"userId"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.engine.Submit(r.Context(), sessionID, payload.UserID, payload.Message)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	summary, err := h.engine.EndSession(r.Context(), sessionID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, summary)
}

// respondEngineError 将引擎错误映射为HTTP状态码
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrEmptyMessage), errors.Is(err, engine.ErrUserRequired):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrSessionClosed):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	default:
		var appErr *errx.AppError
		if errors.As(err, &appErr) {
			utils.RespondError(w, appErr.Status, appErr.Message)
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, errx.SystemErrorMessage)
	}
}
