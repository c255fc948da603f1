package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel         = openai.GPT4oMini
	defaultOpenAIAdvancedModel = openai.GPT4o
)

type OpenAIConfig struct {
	APIKey        string
	Model         string
	AdvancedModel string
	// BaseURL overrides the API endpoint, e.g. for a compatible gateway.
	BaseURL string
}

type OpenAI struct {
	client        *openai.Client
	model         string
	advancedModel string
}

func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	o := &OpenAI{
		client:        openai.NewClientWithConfig(oc),
		model:         cfg.Model,
		advancedModel: cfg.AdvancedModel,
	}
	if o.model == "" {
		o.model = defaultOpenAIModel
	}
	if o.advancedModel == "" {
		o.advancedModel = defaultOpenAIAdvancedModel
	}
	return o, nil
}

func (o *OpenAI) Name() string {
	return "openai"
}

func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, o.build(req))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("openai returned an empty reply")
	}
	return text, nil
}

func (o *OpenAI) build(req Request) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, t := range req.History {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if NormalizeRole(t.Role) == RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	model := o.model
	if req.Advanced {
		model = o.advancedModel
	}
	return openai.ChatCompletionRequest{Model: model, Messages: msgs}
}
