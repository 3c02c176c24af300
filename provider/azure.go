package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/aztrans"
	"github.com/sashabaranov/go-openai"
)

// AzureProvider implements AIProvider against an Azure OpenAI chat-completion deployment.
type AzureProvider struct {
	client     *openai.Client
	deployment string
	maxTokens  int
}

// AzureConfig holds configuration for the Azure OpenAI provider.
type AzureConfig struct {
	APIKey     string       // Sent as the api-key header
	Endpoint   string       // Resource base URL, e.g. https://my-resource.openai.azure.com
	Deployment string       // Deployment name (default: "gpt-4o-mini")
	APIVersion string       // REST API version (default: "2024-08-01-preview")
	MaxTokens  int          // Completion cap when the request sets none (default: 1000)
	HTTPClient *http.Client // Shared HTTP client (optional)
}

// NewAzureProvider creates a new Azure OpenAI provider.
func NewAzureProvider(cfg AzureConfig) *AzureProvider {
	deployment := cfg.Deployment
	if deployment == "" {
		deployment = aztrans.DefaultDeployment
	}

	config := openai.DefaultAzureConfig(cfg.APIKey, strings.TrimRight(cfg.Endpoint, "/"))
	config.APIVersion = cfg.APIVersion
	if config.APIVersion == "" {
		config.APIVersion = aztrans.DefaultAPIVersion
	}
	config.AzureModelMapperFunc = func(string) string {
		return deployment
	}
	if cfg.HTTPClient != nil {
		config.HTTPClient = cfg.HTTPClient
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = aztrans.DefaultMaxTokens
	}

	return &AzureProvider{
		client:     openai.NewClientWithConfig(config),
		deployment: deployment,
		maxTokens:  maxTokens,
	}
}

// Translate sends one chat completion and returns the trimmed reply.
func (p *AzureProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if req.Text == "" {
		return "", nil
	}

	lang := req.TargetLang
	if lang == "" {
		lang = aztrans.DefaultTargetLang
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = p.maxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.deployment,
		Messages:  buildMessages(req.Text, lang),
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 || noContent(resp.Choices[0].Message) {
		return "", &aztrans.ProviderError{
			Message:   "no translation found in the response",
			Malformed: true,
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Deployment returns the deployment requests are routed to.
func (p *AzureProvider) Deployment() string {
	return p.deployment
}

// noContent reports a choice that carries no message text.
func noContent(msg openai.ChatCompletionMessage) bool {
	return msg.Content == "" && len(msg.MultiContent) == 0 && len(msg.ToolCalls) == 0
}

func buildMessages(text, lang string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("You are an AI assistant that translates text to %s.", lang),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Translate the text: '%s' to %s", text, lang),
		},
	}
}

// classifyError maps client errors onto ProviderError by HTTP status.
// Only 429 is retryable.
func classifyError(err error) *aztrans.ProviderError {
	var (
		apiErr    *openai.APIError
		reqErr    *openai.RequestError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	status := 0
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return &aztrans.ProviderError{
			Message:   "error extracting translation from response",
			Cause:     err,
			Malformed: true,
		}
	}

	if status == http.StatusTooManyRequests {
		return &aztrans.ProviderError{
			Message:    "too many requests",
			Cause:      err,
			StatusCode: status,
			Retryable:  true,
		}
	}

	return &aztrans.ProviderError{
		Message:    "error making request to the API",
		Cause:      err,
		StatusCode: status,
	}
}

// Verify AzureProvider implements AIProvider
var _ AIProvider = (*AzureProvider)(nil)
