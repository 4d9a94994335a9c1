package classifier

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openaiDefaultBaseURL = "https://api.openai.com/v1"

// OpenAIClient scores messages with the OpenAI chat completions API.
// It is the default classifier provider.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	prompts   Prompts
	maxTokens int64
}

func NewOpenAIClient(apiKey, apiBase, model string, prompts Prompts, maxTokens int) *OpenAIClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(normalizeOpenAIBaseURL(apiBase)),
	)
	return newOpenAIClient(&client, model, prompts, maxTokens)
}

// NewOpenAIClientWithClient injects a preconfigured SDK client, mainly
// for tests against a fake server.
func NewOpenAIClientWithClient(client *openai.Client, model string, prompts Prompts, maxTokens int) *OpenAIClient {
	return newOpenAIClient(client, model, prompts, maxTokens)
}

func newOpenAIClient(client *openai.Client, model string, prompts Prompts, maxTokens int) *OpenAIClient {
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &OpenAIClient{
		client:    client,
		model:     model,
		prompts:   prompts,
		maxTokens: int64(maxTokens),
	}
}

func (c *OpenAIClient) ClassifyText(ctx context.Context, text string) (Result, error) {
	user := strings.ReplaceAll(c.prompts.Text, "{message}", text)
	return c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(c.prompts.System),
		openai.UserMessage(user),
	})
}

func (c *OpenAIClient) ClassifyImages(ctx context.Context, images []Image) (Result, error) {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(images)+1)
	parts = append(parts, openai.TextContentPart(c.prompts.Image))
	for _, img := range images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    DataURL(img),
			Detail: "low",
		}))
	}
	return c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(c.prompts.System),
		openai.UserMessage(parts),
	})
}

func (c *OpenAIClient) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (Result, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		Messages:  messages,
		MaxTokens: openai.Int(c.maxTokens),
	})
	if err != nil {
		return Result{Verdict: Unparseable}, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{Verdict: Unparseable}, fmt.Errorf("openai completion: empty choices")
	}
	return ParseResponse(resp.Choices[0].Message.Content), nil
}

// DataURL encodes an image as a self-contained base64 data URL, so the
// classifier never receives a reference it would have to fetch with
// source-platform credentials.
func DataURL(img Image) string {
	mime := img.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func normalizeOpenAIBaseURL(apiBase string) string {
	base := strings.TrimSpace(apiBase)
	if base == "" {
		return openaiDefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}
