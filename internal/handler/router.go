package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/persona-lab/backend/internal/handler/persona"
	"github.com/zhouzirui/persona-lab/backend/internal/handler/prompt"
	"github.com/zhouzirui/persona-lab/backend/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/persona-lab/backend/internal/middleware"
	personaModel "github.com/zhouzirui/persona-lab/backend/internal/model/persona"
	aiService "github.com/zhouzirui/persona-lab/backend/internal/service/ai"
	promptService "github.com/zhouzirui/persona-lab/backend/internal/service/prompt"
	"github.com/zhouzirui/persona-lab/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. aiSvc may be nil when no model is configured.
func NewRouter(personas personaModel.Store, builder *promptService.Builder, aiSvc *aiService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	personaHandler := persona.New(personas)
	promptHandler := prompt.New(builder)

	var streamHandler *stream.Handler
	if aiSvc != nil {
		streamHandler = stream.New(aiSvc, personas)
	}

	r.Route("/api", func(api chi.Router) {
		personaHandler.RegisterRoutes(api)
		promptHandler.RegisterRoutes(api)

		api.Get("/ask/{personaID}", func(w http.ResponseWriter, r *http.Request) {
			personaID := chi.URLParam(r, "personaID")
			question := r.URL.Query().Get("question")

			if streamHandler == nil {
				utils.RespondError(w, http.StatusServiceUnavailable, "ai streaming unavailable")
				return
			}
			if question == "" {
				utils.RespondError(w, http.StatusBadRequest, "question query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, personaID, question); err != nil {
				log.Printf("[stream] error handling request: %v", err)
				// 其余错误已经通过 SSE error 事件告知客户端
				if errors.Is(err, utils.ErrStreamingUnsupported) {
					utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
				}
			}
		})
	})

	return r
}
