package usecase

import (
	"context"
	"strings"

	"fsti-hub/internal/infrastructure/assistant"

	"go.uber.org/zap"
)

const (
	maxChatMessageLen = 4000
	maxChatHistory    = 30
	defaultChatView   = "home"

	fallbackReply = "Amahoro. My link to the national node is currently flickering. Please attempt to re-sync in a moment. Iterambere!"
)

const hubPersona = `Identity: Mbanza, the Digital Intelligence of Burundi (Hub 2025).
Tone: Empowering, patriotic, wise, and efficient.
Knowledge base: Deep expertise in the 5 reformed Burundi provinces (Bujumbura, Gitega, Burunga, Butanyerera, Buhumuza).
Rules:
1. Use 'Amahoro' as greeting.
2. Help with REGIDESO, Traffic RN routes, and local market trends.
3. If in Deep Reasoning mode, provide strategic analysis of how this query affects Burundi's Vision 2040.`

type ChatMessage struct {
	Role string
	Text string
}

type ChatInput struct {
	Message  string
	History  []ChatMessage
	View     string
	Province string
	Advanced bool
}

type ChatReply struct {
	Reply    string
	Provider string
	// Degraded is set when the provider failed and Reply is the fallback text.
	Degraded bool
}

type AssistantUsecase interface {
	Chat(ctx context.Context, in ChatInput) (ChatReply, error)
}

type Assistant struct {
	provider assistant.Provider
	logger   *zap.Logger
}

// NewAssistantUsecase accepts a nil provider; Chat then reports ErrAssistantDisabled.
func NewAssistantUsecase(provider assistant.Provider, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{provider: provider, logger: logger.With(zap.String("component", "assistant"))}
}

func (u *Assistant) Chat(ctx context.Context, in ChatInput) (ChatReply, error) {
	if u.provider == nil {
		return ChatReply{}, ErrAssistantDisabled
	}
	msg := strings.TrimSpace(in.Message)
	if msg == "" || len(msg) > maxChatMessageLen {
		return ChatReply{}, ErrInvalidInput
	}

	req := assistant.Request{
		System:   systemInstruction(in.Province),
		History:  chatHistory(in.History),
		Prompt:   "[Current Hub View: " + chatView(in.View) + "] " + msg,
		Advanced: in.Advanced,
	}

	text, err := u.provider.Generate(ctx, req)
	if err == nil {
		text = strings.TrimSpace(text)
	}
	if err != nil || text == "" {
		if ctx.Err() != nil {
			return ChatReply{}, ctx.Err()
		}
		u.logger.Warn("assistant reply failed, using fallback",
			zap.String("provider", u.provider.Name()),
			zap.Bool("advanced", in.Advanced),
			zap.Error(err),
		)
		return ChatReply{Reply: fallbackReply, Provider: u.provider.Name(), Degraded: true}, nil
	}
	return ChatReply{Reply: text, Provider: u.provider.Name()}, nil
}

func systemInstruction(province string) string {
	province = strings.TrimSpace(province)
	if province == "" {
		return hubPersona
	}
	return hubPersona + "\nThe member is based in " + province + " province."
}

// chatHistory keeps the most recent non-empty turns.
func chatHistory(in []ChatMessage) []assistant.Turn {
	out := make([]assistant.Turn, 0, len(in))
	for _, m := range in {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		out = append(out, assistant.Turn{Role: assistant.NormalizeRole(m.Role), Text: text})
	}
	if len(out) > maxChatHistory {
		out = out[len(out)-maxChatHistory:]
	}
	return out
}

func chatView(view string) string {
	view = strings.TrimSpace(view)
	if view == "" {
		return defaultChatView
	}
	return view
}
