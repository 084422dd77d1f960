package quality

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aokiyuki/cocoro/backend/internal/service/engine"
	"github.com/aokiyuki/cocoro/backend/pkg/utils"
)

// Handler 质量监控报告的HTTP处理器。访问控制由外层负责。
type Handler struct {
	engine *engine.Engine
}

// New 创建质量报告处理器
func New(eng *engine.Engine) *Handler {
	return &Handler{engine: eng}
}

// RegisterRoutes 注册质量监控路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/quality/report", h.handleReport)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.engine.QualityReport())
}
