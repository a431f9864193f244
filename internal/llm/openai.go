package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/gentlify/pacify/internal/adapters/retry"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/ports"
)

// OpenAIClient calls the OpenAI Responses API with a strict json_schema
// text format whenever the request carries a schema.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(maxRetries),
		option.WithRequestTimeout(timeout),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(baseURL, "/")+"/"))
	}
	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client, model: model}
}

func (o *OpenAIClient) Name() string  { return "openai" }
func (o *OpenAIClient) Model() string { return o.model }

func (o *OpenAIClient) Generate(ctx context.Context, req *ports.LLMRequest) (*ports.LLMResponse, error) {
	resp, err := o.client.Responses.New(ctx, o.params(req))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &retry.StatusError{StatusCode: apiErr.StatusCode, Body: apiErr.Message}
		}
		return nil, err
	}

	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrLLMEmptyResponse
	}
	return &ports.LLMResponse{
		Content:    text,
		TokensUsed: int(resp.Usage.TotalTokens),
		Model:      o.model,
		Provider:   o.Name(),
	}, nil
}

func (o *OpenAIClient) params(req *ports.LLMRequest) responses.ResponseNewParams {
	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(int64(req.MaxTokens)),
		Instructions:    openai.String(req.SystemPrompt),
		Temperature:     openai.Float(req.Temperature),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.UserPrompt, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if req.Schema != nil {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		}
	}
	return params
}
