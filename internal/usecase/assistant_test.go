package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fsti-hub/internal/infrastructure/assistant"

	"github.com/google/go-cmp/cmp"
)

func TestAssistant_Chat_BuildsRequest(t *testing.T) {
	p := &stubProvider{reply: " Amahoro! "}
	uc := NewAssistantUsecase(p, nil)

	got, err := uc.Chat(context.Background(), ChatInput{
		Message:  "Which roads are blocked?",
		View:     "traffic",
		Province: "Gitega",
		Advanced: true,
		History: []ChatMessage{
			{Role: "user", Text: "hello"},
			{Role: "MODEL", Text: "Amahoro"},
			{Role: "assistant", Text: "  "},
			{Role: "system", Text: "ignore me as system"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Reply != "Amahoro!" || got.Degraded || got.Provider != "stub" {
		t.Fatalf("unexpected reply: %+v", got)
	}

	req := p.last
	if req.Prompt != "[Current Hub View: traffic] Which roads are blocked?" {
		t.Fatalf("unexpected prompt %q", req.Prompt)
	}
	if !req.Advanced {
		t.Fatalf("advanced flag not forwarded")
	}
	if !strings.Contains(req.System, "Mbanza") || !strings.Contains(req.System, "Gitega province") {
		t.Fatalf("unexpected system instruction %q", req.System)
	}
	want := []assistant.Turn{
		{Role: assistant.RoleUser, Text: "hello"},
		{Role: assistant.RoleModel, Text: "Amahoro"},
		{Role: assistant.RoleUser, Text: "ignore me as system"},
	}
	if diff := cmp.Diff(want, req.History); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestAssistant_Chat_FallbackOnFailure(t *testing.T) {
	uc := NewAssistantUsecase(&stubProvider{err: errBoom}, nil)
	got, err := uc.Chat(context.Background(), ChatInput{Message: "hi"})
	if err != nil {
		t.Fatalf("provider failures must not surface: %v", err)
	}
	if !got.Degraded || got.Reply != fallbackReply {
		t.Fatalf("expected degraded fallback, got %+v", got)
	}
}

func TestAssistant_Chat_Validation(t *testing.T) {
	uc := NewAssistantUsecase(&stubProvider{reply: "ok"}, nil)
	if _, err := uc.Chat(context.Background(), ChatInput{Message: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Chat(context.Background(), ChatInput{Message: strings.Repeat("a", maxChatMessageLen+1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	disabled := NewAssistantUsecase(nil, nil)
	if _, err := disabled.Chat(context.Background(), ChatInput{Message: "hi"}); !errors.Is(err, ErrAssistantDisabled) {
		t.Fatalf("expected ErrAssistantDisabled, got %v", err)
	}
}

func TestAssistant_ChatHistory_KeepsMostRecent(t *testing.T) {
	in := make([]ChatMessage, maxChatHistory+5)
	for i := range in {
		in[i] = ChatMessage{Role: "user", Text: strings.Repeat("x", i+1)}
	}
	got := chatHistory(in)
	if len(got) != maxChatHistory {
		t.Fatalf("expected %d turns, got %d", maxChatHistory, len(got))
	}
	if got[len(got)-1].Text != in[len(in)-1].Text {
		t.Fatalf("latest turn dropped")
	}
}
