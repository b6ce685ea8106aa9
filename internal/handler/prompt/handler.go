package prompt

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	promptService "github.com/zhouzirui/persona-lab/backend/internal/service/prompt"
	"github.com/zhouzirui/persona-lab/backend/pkg/utils"
)

// Handler 提示词生成的HTTP处理器
type Handler struct {
	builder *promptService.Builder
}

// New 创建提示词处理器
func New(builder *promptService.Builder) *Handler {
	return &Handler{builder: builder}
}

// Prompt is the composed prompt returned to the client.
type Prompt struct {
	ID        string    `json:"id"`
	PersonaID string    `json:"personaId"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRoutes 注册提示词相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/prompts", h.handleCreatePrompt)
}

// handleCreatePrompt 用指定老师人设包装问题
func (h *Handler) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PersonaID string  `json:"personaId"`
		Question  *string `json:"question"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.PersonaID == "" {
		utils.RespondError(w, http.StatusBadRequest, "personaId is required")
		return
	}
	// 空字符串是合法问题，只有缺失字段才拒绝
	if payload.Question == nil {
		utils.RespondError(w, http.StatusBadRequest, "question is required")
		return
	}

	composed, err := h.builder.Apply(*payload.Question, payload.PersonaID)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, Prompt{
		ID:        uuid.NewString(),
		PersonaID: payload.PersonaID,
		Prompt:    composed,
		CreatedAt: time.Now().UTC(),
	})
}
