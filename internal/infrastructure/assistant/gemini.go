package assistant

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel         = "gemini-3-flash-preview"
	defaultGeminiAdvancedModel = "gemini-3-pro-preview"
)

type GeminiConfig struct {
	APIKey         string
	Model          string
	AdvancedModel  string
	ThinkingBudget int32
	// BaseURL overrides the API endpoint.
	BaseURL string
}

type Gemini struct {
	client         *genai.Client
	model          string
	advancedModel  string
	thinkingBudget int32
}

func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	g := &Gemini{
		client:         client,
		model:          cfg.Model,
		advancedModel:  cfg.AdvancedModel,
		thinkingBudget: cfg.ThinkingBudget,
	}
	if g.model == "" {
		g.model = defaultGeminiModel
	}
	if g.advancedModel == "" {
		g.advancedModel = defaultGeminiAdvancedModel
	}
	return g, nil
}

func (g *Gemini) Name() string {
	return "gemini"
}

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	model, contents, cfg := g.build(req)
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned an empty reply")
	}
	return text, nil
}

func (g *Gemini) build(req Request) (string, []*genai.Content, *genai.GenerateContentConfig) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, t := range req.History {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		role := genai.Role(genai.RoleUser)
		if NormalizeRole(t.Role) == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	model := g.model
	if req.Advanced {
		model = g.advancedModel
		if g.thinkingBudget > 0 {
			budget := g.thinkingBudget
			cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
		}
	}
	return model, contents, cfg
}
