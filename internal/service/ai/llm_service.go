package ai

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/persona-lab/backend/internal/config"
	promptbuilder "github.com/zhouzirui/persona-lab/backend/internal/service/prompt"
)

// ErrStreamingDisabled is returned by Stream when ARK_STREAM is off.
var ErrStreamingDisabled = errors.New("streaming disabled in configuration")

// Answer is a complete model reply to a persona prompt.
type Answer struct {
	PersonaID string
	Prompt    string
	Message   *schema.Message
}

// Service hands persona prompts to a chat model.
type Service struct {
	builder   *promptbuilder.Builder
	template  *prompt.DefaultChatTemplate
	chain     compose.Runnable[map[string]any, *schema.Message]
	streaming bool
}

// NewService creates the Ark-backed service described by cfg.
func NewService(ctx context.Context, builder *promptbuilder.Builder, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, builder, cfg.StreamResponse)
}

// NewServiceWithModel wires an arbitrary chat model behind the persona prompt chain.
func NewServiceWithModel(ctx context.Context, chatModel model.BaseChatModel, builder *promptbuilder.Builder, streaming bool) (*Service, error) {
	template := newChatTemplate()

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		builder:   builder,
		template:  template,
		chain:     runnable,
		streaming: streaming,
	}, nil
}

func newChatTemplate() *prompt.DefaultChatTemplate {
	return prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)
}

// StreamingEnabled 指示是否开启 SSE 流式输出。
func (s *Service) StreamingEnabled() bool {
	return s.streaming
}

// Ask sends the persona prompt for question to the model and waits for the full reply.
func (s *Service) Ask(ctx context.Context, personaID, question string) (*Answer, error) {
	input, err := s.buildChainInput(personaID, question)
	if err != nil {
		return nil, err
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated answer for persona=%s, length=%d", personaID, len(response.Content))
	return &Answer{
		PersonaID: personaID,
		Prompt:    input["query"].(string),
		Message:   response,
	}, nil
}

// Stream streams the model reply chunk by chunk.
func (s *Service) Stream(ctx context.Context, personaID, question string) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, ErrStreamingDisabled
	}

	input, err := s.buildChainInput(personaID, question)
	if err != nil {
		return nil, err
	}

	stream, err := s.chain.Stream(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to stream AI chain output: %w", err)
	}
	return stream, nil
}

// Messages renders the chat messages that would be sent to the model, without calling it.
func (s *Service) Messages(ctx context.Context, personaID, question string) ([]*schema.Message, error) {
	input, err := s.buildChainInput(personaID, question)
	if err != nil {
		return nil, err
	}
	return s.template.Format(ctx, input)
}

func (s *Service) buildChainInput(personaID, question string) (map[string]any, error) {
	system, err := s.builder.SystemPrompt(personaID)
	if err != nil {
		return nil, err
	}

	query, err := s.builder.Apply(question, personaID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"system": system,
		"query":  query,
	}, nil
}
