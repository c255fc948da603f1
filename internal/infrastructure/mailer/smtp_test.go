package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"fsti-hub/internal/config"

	"github.com/google/go-cmp/cmp"
	"github.com/wneessen/go-mail"
)

func TestWelcome_Recipients(t *testing.T) {
	cases := []struct {
		name string
		w    Welcome
		want []string
	}{
		{name: "with admin copy", w: Welcome{To: "a@x.bi", AdminEmail: "admin@x.bi"}, want: []string{"a@x.bi", "admin@x.bi"}},
		{name: "no admin", w: Welcome{To: "a@x.bi"}, want: []string{"a@x.bi"}},
		{name: "admin is registrant", w: Welcome{To: "Admin@x.bi", AdminEmail: "admin@x.bi"}, want: []string{"Admin@x.bi"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.w.Recipients()); diff != "" {
				t.Fatalf("recipients (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildWelcome(t *testing.T) {
	w := Welcome{
		To:         "amina@example.bi",
		AdminEmail: "admin@example.bi",
		FullName:   "Amina",
		Role:       "recruiter",
		AccessKey:  "FSTI-K7M2QX",
		Pending:    true,
	}
	msg, err := BuildWelcome("messagerie@example.bi", w)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	subject := msg.GetGenHeader(mail.HeaderSubject)
	if len(subject) != 1 || subject[0] != "FSTI HUB - Inscription RECRUITER Confirmée" {
		t.Fatalf("unexpected subject %v", subject)
	}
	if got := len(msg.GetTo()); got != 2 {
		t.Fatalf("expected 2 recipients, got %d", got)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "FSTI-K7M2QX") {
		t.Fatalf("message body should carry the access key")
	}
}

func TestBuildWelcome_InvalidRecipient(t *testing.T) {
	if _, err := BuildWelcome("from@example.bi", Welcome{To: "not an address"}); err == nil {
		t.Fatalf("expected invalid recipient error")
	}
}

func TestSMTP_DisabledSkips(t *testing.T) {
	s := NewSMTP(config.SMTPConfig{}, nil)
	if err := s.SendWelcome(context.Background(), Welcome{To: "a@x.bi"}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
