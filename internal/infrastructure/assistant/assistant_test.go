package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{"model": RoleModel, " Model ": RoleModel, "user": RoleUser, "assistant": RoleUser, "": RoleUser}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGemini_Build(t *testing.T) {
	g := &Gemini{model: "flash", advancedModel: "pro", thinkingBudget: 1024}
	req := Request{
		System:  "persona",
		History: []Turn{{Role: "user", Text: "hi"}, {Role: "model", Text: "Amahoro"}, {Role: "bot", Text: " "}},
		Prompt:  "[Current Hub View: jobs] any jobs?",
	}

	model, contents, cfg := g.build(req)
	if model != "flash" {
		t.Fatalf("expected default model, got %q", model)
	}
	roles := make([]string, 0, len(contents))
	for _, c := range contents {
		roles = append(roles, c.Role)
	}
	if diff := cmp.Diff([]string{string(genai.RoleUser), string(genai.RoleModel), string(genai.RoleUser)}, roles); diff != "" {
		t.Fatalf("roles (-want +got):\n%s", diff)
	}
	if cfg.SystemInstruction == nil || cfg.ThinkingConfig != nil {
		t.Fatalf("unexpected config %+v", cfg)
	}

	req.Advanced = true
	model, _, cfg = g.build(req)
	if model != "pro" {
		t.Fatalf("expected advanced model, got %q", model)
	}
	if cfg.ThinkingConfig == nil || cfg.ThinkingConfig.ThinkingBudget == nil || *cfg.ThinkingConfig.ThinkingBudget != 1024 {
		t.Fatalf("expected thinking budget on advanced requests")
	}
}

func TestOpenAI_GenerateAgainstServer(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: "assistant", Content: " Amahoro! "}}},
		})
	}))
	defer srv.Close()

	o, err := NewOpenAI(OpenAIConfig{APIKey: "test", Model: "small", AdvancedModel: "large", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	reply, err := o.Generate(context.Background(), Request{
		System:   "persona",
		History:  []Turn{{Role: "model", Text: "hello"}},
		Prompt:   "question",
		Advanced: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply != "Amahoro!" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if got.Model != "large" {
		t.Fatalf("expected advanced model, got %q", got.Model)
	}
	roles := []string{}
	for _, m := range got.Messages {
		roles = append(roles, m.Role)
	}
	want := []string{openai.ChatMessageRoleSystem, openai.ChatMessageRoleAssistant, openai.ChatMessageRoleUser}
	if diff := cmp.Diff(want, roles); diff != "" {
		t.Fatalf("roles (-want +got):\n%s", diff)
	}
}

func TestNewProviders_RequireKey(t *testing.T) {
	if _, err := NewOpenAI(OpenAIConfig{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewGemini(context.Background(), GeminiConfig{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

type blockingProvider struct{}

func (blockingProvider) Name() string { return "blocking" }

func (blockingProvider) Generate(ctx context.Context, _ Request) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 20*time.Millisecond)
	if p.Name() != "blocking" {
		t.Fatalf("name = %q", p.Name())
	}
	_, err := p.Generate(context.Background(), Request{Prompt: "hi"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if WithTimeout(blockingProvider{}, 0) != (blockingProvider{}) {
		t.Fatalf("zero timeout should return the provider unchanged")
	}
}
