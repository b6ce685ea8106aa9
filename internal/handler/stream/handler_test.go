package stream

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/persona-lab/backend/internal/model/persona"
	aiService "github.com/zhouzirui/persona-lab/backend/internal/service/ai"
	promptService "github.com/zhouzirui/persona-lab/backend/internal/service/prompt"
)

type cannedModel struct {
	chunks []string
}

func (m *cannedModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(strings.Join(m.chunks, ""), nil), nil
}

func (m *cannedModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msgs := make([]*schema.Message, 0, len(m.chunks))
	for _, c := range m.chunks {
		msgs = append(msgs, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

func newHandler(t *testing.T, streaming bool) *Handler {
	t.Helper()

	store := persona.MustCatalog(persona.Seed())
	builder := promptService.NewBuilder(store)
	svc, err := aiService.NewServiceWithModel(context.Background(), &cannedModel{chunks: []string{"先想象", "一束光"}}, builder, streaming)
	if err != nil {
		t.Fatalf("NewServiceWithModel err: %v", err)
	}
	return New(svc, store)
}

func TestHandleStreamRequestStreaming(t *testing.T) {
	h := newHandler(t, true)
	resp := httptest.NewRecorder()

	if err := h.HandleStreamRequest(context.Background(), resp, "teacher-einstein", "光速为什么不变？"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	body := resp.Body.String()
	for _, want := range []string{"event: start\n", "event: delta\n", "event: message\n", "event: end\n", `"event":"delta"`, `"content":"先想象一束光"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("stream body missing %s:\n%s", want, body)
		}
	}
	if got := resp.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type: %s", got)
	}
}

func TestHandleStreamRequestSingleMessage(t *testing.T) {
	h := newHandler(t, false)
	resp := httptest.NewRecorder()

	if err := h.HandleStreamRequest(context.Background(), resp, "teacher-socrates", "什么是美德？"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	body := resp.Body.String()
	if strings.Contains(body, `"event":"delta"`) {
		t.Fatalf("did not expect delta events:\n%s", body)
	}
	if !strings.Contains(body, `"content":"先想象一束光"`) {
		t.Fatalf("missing full message:\n%s", body)
	}
}

func TestHandleStreamRequestUnknownPersona(t *testing.T) {
	h := newHandler(t, true)
	resp := httptest.NewRecorder()

	err := h.HandleStreamRequest(context.Background(), resp, "nonexistent-id", "q")
	if !errors.Is(err, persona.ErrPersonaNotFound) {
		t.Fatalf("expected ErrPersonaNotFound, got %v", err)
	}
	if !strings.Contains(resp.Body.String(), "event: error\ndata: ") {
		t.Fatalf("expected error event:\n%s", resp.Body.String())
	}
}
