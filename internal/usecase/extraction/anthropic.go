package extraction

import (
	"context"

	"github.com/task-assistant-team/task-assistant/pkg/ai"
)

// anthropicProvider adapts the Anthropic messages API to the extraction
// contract.
type anthropicProvider struct {
	client *ai.AnthropicClient
}

// NewAnthropicProvider wraps an Anthropic client as an extraction Provider.
func NewAnthropicProvider(client *ai.AnthropicClient) Provider {
	return &anthropicProvider{client: client}
}

func (p *anthropicProvider) Name() string {
	return "anthropic"
}

func (p *anthropicProvider) Extract(ctx context.Context, req Request) (*RawExtraction, error) {
	content, err := p.client.CreateMessage(ctx, req.SystemPrompt, req.UserPrompt)
	if err != nil {
		return nil, classifyProviderError(p.Name(), err)
	}
	entries, err := decodeEntries(content)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Kind: ErrorKindTransient, Err: err}
	}
	return &RawExtraction{Provider: p.Name(), Entries: entries}, nil
}
