package classifier

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultBaseURL = "https://api.anthropic.com"

// AnthropicClient scores messages with the Anthropic messages API.
// Selected with classifier.provider = "anthropic".
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	prompts   Prompts
	maxTokens int64
}

func NewAnthropicClient(apiKey, apiBase, model string, prompts Prompts, maxTokens int) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(normalizeAnthropicBaseURL(apiBase)),
	)
	return newAnthropicClient(&client, model, prompts, maxTokens)
}

// NewAnthropicClientWithClient injects a preconfigured SDK client, mainly
// for tests against a fake server.
func NewAnthropicClientWithClient(client *anthropic.Client, model string, prompts Prompts, maxTokens int) *AnthropicClient {
	return newAnthropicClient(client, model, prompts, maxTokens)
}

func newAnthropicClient(client *anthropic.Client, model string, prompts Prompts, maxTokens int) *AnthropicClient {
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &AnthropicClient{
		client:    client,
		model:     model,
		prompts:   prompts,
		maxTokens: int64(maxTokens),
	}
}

func (c *AnthropicClient) ClassifyText(ctx context.Context, text string) (Result, error) {
	user := strings.ReplaceAll(c.prompts.Text, "{message}", text)
	return c.complete(ctx, anthropic.NewUserMessage(anthropic.NewTextBlock(user)))
}

func (c *AnthropicClient) ClassifyImages(ctx context.Context, images []Image) (Result, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(images)+1)
	blocks = append(blocks, anthropic.NewTextBlock(c.prompts.Image))
	for _, img := range images {
		mime := img.MimeType
		if mime == "" {
			mime = "image/png"
		}
		blocks = append(blocks, anthropic.NewImageBlockBase64(mime, base64.StdEncoding.EncodeToString(img.Data)))
	}
	return c.complete(ctx, anthropic.NewUserMessage(blocks...))
}

func (c *AnthropicClient) complete(ctx context.Context, msg anthropic.MessageParam) (Result, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: c.prompts.System}},
		Messages:  []anthropic.MessageParam{msg},
	})
	if err != nil {
		return Result{Verdict: Unparseable}, fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	if sb.Len() == 0 {
		return Result{Verdict: Unparseable}, fmt.Errorf("anthropic messages: no text content")
	}
	return ParseResponse(sb.String()), nil
}

func normalizeAnthropicBaseURL(apiBase string) string {
	base := strings.TrimSpace(apiBase)
	if base == "" {
		return anthropicDefaultBaseURL
	}
	base = strings.TrimRight(base, "/")
	if b, ok := strings.CutSuffix(base, "/v1"); ok {
		base = b
	}
	if base == "" {
		return anthropicDefaultBaseURL
	}
	return base
}
