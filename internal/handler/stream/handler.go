package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/persona-lab/backend/internal/model/persona"
	aiService "github.com/zhouzirui/persona-lab/backend/internal/service/ai"
	"github.com/zhouzirui/persona-lab/backend/pkg/utils"
)

// Handler manages streaming AI answers via Server-Sent Events
type Handler struct {
	aiService *aiService.Service
	personas  persona.Store
}

// New creates a new stream handler
func New(aiSvc *aiService.Service, personas persona.Store) *Handler {
	return &Handler{
		aiService: aiSvc,
		personas:  personas,
	}
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	PersonaID string `json:"personaId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleStreamRequest answers question in the voice of the given persona
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, personaID, question string) error {
	sse, err := utils.NewSSEWriter(w)
	if err != nil {
		return err
	}

	p, err := h.personas.FindByID(personaID)
	if err != nil {
		send(sse, StreamResponse{Event: "error", Error: err.Error()})
		return err
	}

	send(sse, StreamResponse{
		Event:     "start",
		PersonaID: p.ID,
		Content:   fmt.Sprintf("%s的回复:", p.Name),
	})

	response, err := h.dispatchAIResponse(ctx, sse, p.ID, question)
	if err != nil {
		send(sse, StreamResponse{Event: "error", Error: fmt.Sprintf("AI generation failed: %v", err)})
		return err
	}

	send(sse, StreamResponse{
		Event:     "end",
		PersonaID: p.ID,
		Finished:  true,
	})

	log.Printf("[stream] completed answer for persona=%s, length=%d", p.ID, len(response.Content))
	return nil
}

// send writes resp as a named SSE event; the JSON body repeats the event name
func send(sse *utils.SSEWriter, resp StreamResponse) {
	sse.Event(resp.Event, resp)
}

// dispatchAIResponse streams when enabled and falls back to a single message otherwise
func (h *Handler) dispatchAIResponse(ctx context.Context, sse *utils.SSEWriter, personaID, question string) (*schema.Message, error) {
	if h.aiService.StreamingEnabled() {
		return h.streamAIResponse(ctx, sse, personaID, question)
	}

	answer, err := h.aiService.Ask(ctx, personaID, question)
	if err != nil {
		return nil, err
	}

	send(sse, StreamResponse{
		Event:     "message",
		PersonaID: personaID,
		Content:   answer.Message.Content,
	})
	return answer.Message, nil
}

func (h *Handler) streamAIResponse(ctx context.Context, sse *utils.SSEWriter, personaID, question string) (*schema.Message, error) {
	stream, err := h.aiService.Stream(ctx, personaID, question)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)

	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return nil, recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			send(sse, StreamResponse{
				Event:     "delta",
				PersonaID: personaID,
				Content:   chunk.Content,
			})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return nil, err
	}

	send(sse, StreamResponse{
		Event:     "message",
		PersonaID: personaID,
		Content:   response.Content,
	})
	return response, nil
}
