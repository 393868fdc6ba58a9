package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/task-assistant-team/task-assistant/pkg/ai"
	"github.com/task-assistant-team/task-assistant/pkg/config"
)

// openAIProvider adapts the OpenAI chat-completions API to the extraction
// contract.
type openAIProvider struct {
	client *ai.OpenAIClient
}

// NewOpenAIProvider wraps an OpenAI client as an extraction Provider.
func NewOpenAIProvider(client *ai.OpenAIClient) Provider {
	return &openAIProvider{client: client}
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Extract(ctx context.Context, req Request) (*RawExtraction, error) {
	content, err := p.client.CreateChatCompletion(ctx, req.SystemPrompt, req.UserPrompt)
	if err != nil {
		return nil, classifyProviderError(p.Name(), err)
	}
	entries, err := decodeEntries(content)
	if err != nil {
		// Unparseable model output is classified transient.
		return nil, &ProviderError{Provider: p.Name(), Kind: ErrorKindTransient, Err: err}
	}
	return &RawExtraction{Provider: p.Name(), Entries: entries}, nil
}

// NewProviderFromConfig selects the provider from the configured model name:
// claude* models go to Anthropic, everything else to OpenAI.
func NewProviderFromConfig(cfg *config.AIConfig) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ai config is required")
	}
	if strings.HasPrefix(strings.ToLower(cfg.Model), "claude") {
		return NewAnthropicProvider(ai.NewAnthropicClient(cfg)), nil
	}
	return NewOpenAIProvider(ai.NewOpenAIClient(cfg)), nil
}
