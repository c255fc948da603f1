package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/domain/account"
	"fsti-hub/internal/domain/job"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type envelope struct {
	Status  int                `json:"status"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Meta    *response.PageMeta `json:"meta"`
}

// newTestApp mirrors the production middleware order. A non-nil principal is
// attached to every request.
func newTestApp(p *middleware.Principal) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	if p != nil {
		principal := *p
		app.Use(func(c fiber.Ctx) error {
			c.Locals(middleware.CtxPrincipalKey, principal)
			return c.Next()
		})
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) envelope {
	t.Helper()

	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	if env.Status != resp.StatusCode {
		t.Fatalf("%s %s: envelope status %d differs from HTTP status %d", method, path, env.Status, resp.StatusCode)
	}
	return env
}

func principal(role account.Role) *middleware.Principal {
	return &middleware.Principal{ID: uuid.New(), Role: role, Email: string(role) + "@example.com"}
}

func TestMapCommonUsecaseError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{usecase.ErrInvalidInput, fiber.StatusBadRequest},
		{usecase.ErrFileRejected, fiber.StatusUnprocessableEntity},
		{usecase.ErrUnauthorized, fiber.StatusUnauthorized},
		{usecase.ErrForbidden, fiber.StatusForbidden},
		{usecase.ErrNotFound, fiber.StatusNotFound},
		{usecase.ErrConflict, fiber.StatusConflict},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		var appErr *middleware.AppError
		if !errors.As(mapCommonUsecaseError(tc.err), &appErr) {
			t.Fatalf("%v: expected *AppError", tc.err)
		}
		if appErr.StatusCode != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, appErr.StatusCode)
		}
		if !errors.Is(appErr, tc.err) {
			t.Fatalf("%v: cause lost", tc.err)
		}
	}
	if mapCommonUsecaseError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestParseTimestamp(t *testing.T) {
	for _, s := range []string{"2025-07-01T09:30:00Z", "2025-07-01T09:30", " 2025-07-01T09:30 "} {
		ts, err := parseTimestamp(s)
		if err != nil {
			t.Fatalf("%q: unexpected err: %v", s, err)
		}
		if ts.Hour() != 9 || ts.Minute() != 30 {
			t.Fatalf("%q: got %v", s, ts)
		}
	}
	if _, err := parseTimestamp("tomorrow"); err == nil {
		t.Fatalf("expected an error for a free text date")
	}
}

func TestPagination_RejectsNonNumeric(t *testing.T) {
	app := newTestApp(nil)
	app.Get("/p", func(c fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return err
		}
		return response.Page(c, []int{}, limit, offset, 0)
	})

	env := doJSON(t, app, "GET", "/p", nil)
	if env.Meta == nil || env.Meta.Limit != 20 || env.Meta.Offset != 0 {
		t.Fatalf("expected default page, got %+v", env.Meta)
	}
	if env := doJSON(t, app, "GET", "/p?limit=ten", nil); env.Status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", env.Status)
	}
}

type fakeAuthUsecase struct {
	usecase.AuthUsecase
	login   func(email, secret string) (usecase.Session, usecase.Tokens, error)
	refresh func(tok string) (usecase.Session, usecase.Tokens, error)
	session func(a usecase.Actor) (usecase.Session, error)
}

func (f *fakeAuthUsecase) Login(_ context.Context, email, secret string) (usecase.Session, usecase.Tokens, error) {
	return f.login(email, secret)
}

func (f *fakeAuthUsecase) Refresh(_ context.Context, tok string) (usecase.Session, usecase.Tokens, error) {
	return f.refresh(tok)
}

func (f *fakeAuthUsecase) Session(_ context.Context, a usecase.Actor) (usecase.Session, error) {
	return f.session(a)
}

func TestAuthHandler_Login(t *testing.T) {
	talentID := uuid.New()
	uc := &fakeAuthUsecase{
		login: func(email, secret string) (usecase.Session, usecase.Tokens, error) {
			if secret != "FSTI-KEY" {
				return usecase.Session{}, usecase.Tokens{}, usecase.ErrInvalidCredentials
			}
			return usecase.Session{Role: account.RoleTalent, PrincipalID: talentID, Email: email, Dashboard: account.RoleTalent.Dashboard()},
				usecase.Tokens{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
	}
	app := newTestApp(nil)
	NewAuthHandler(uc).RegisterRoutes(app.Group("/auth"), nil)

	env := doJSON(t, app, "POST", "/auth/login", map[string]string{"email": "a@example.com", "secret": "FSTI-KEY"})
	if env.Status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", env.Status, env.Message)
	}
	var out struct {
		AccessToken string `json:"access_token"`
		Session     struct {
			Role        string    `json:"role"`
			PrincipalID uuid.UUID `json:"principal_id"`
		} `json:"session"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out.AccessToken != "access" || out.Session.Role != "talent" || out.Session.PrincipalID != talentID {
		t.Fatalf("unexpected login payload: %+v", out)
	}

	env = doJSON(t, app, "POST", "/auth/login", map[string]string{"email": "a@example.com", "secret": "wrong"})
	if env.Status != fiber.StatusUnauthorized || env.Message != "Invalid email or access key" {
		t.Fatalf("expected 401 invalid credentials, got %d %q", env.Status, env.Message)
	}

	env = doJSON(t, app, "POST", "/auth/login", "{not json")
	if env.Status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 on malformed body, got %d", env.Status)
	}
}

func TestAuthHandler_RefreshFromBearer(t *testing.T) {
	var got string
	uc := &fakeAuthUsecase{
		refresh: func(tok string) (usecase.Session, usecase.Tokens, error) {
			got = tok
			if tok == "expired" {
				return usecase.Session{}, usecase.Tokens{}, usecase.ErrRefreshTokenExpired
			}
			return usecase.Session{Role: account.RoleAdmin}, usecase.Tokens{AccessToken: "a2", RefreshToken: "r2"}, nil
		},
	}
	app := newTestApp(nil)
	NewAuthHandler(uc).RegisterRoutes(app.Group("/auth"), nil)

	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK || got != "header-token" {
		t.Fatalf("expected 200 with the bearer token, got %d %q", resp.StatusCode, got)
	}

	env := doJSON(t, app, "POST", "/auth/refresh", map[string]string{"refresh_token": "expired"})
	if env.Status != fiber.StatusUnauthorized || env.Message != "Refresh token expired" {
		t.Fatalf("expected 401 expired, got %d %q", env.Status, env.Message)
	}

	env = doJSON(t, app, "POST", "/auth/refresh", nil)
	if env.Status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", env.Status)
	}
}

func TestAuthHandler_SessionNeedsPrincipal(t *testing.T) {
	uc := &fakeAuthUsecase{
		session: func(a usecase.Actor) (usecase.Session, error) {
			return usecase.Session{Role: a.Role, PrincipalID: a.ID, Email: a.Email}, nil
		},
	}

	anon := newTestApp(nil)
	NewAuthHandler(uc).RegisterSessionRoutes(anon.Group("/auth"))
	if env := doJSON(t, anon, "GET", "/auth/session", nil); env.Status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", env.Status)
	}

	p := principal(account.RoleCoach)
	app := newTestApp(p)
	NewAuthHandler(uc).RegisterSessionRoutes(app.Group("/auth"))
	env := doJSON(t, app, "GET", "/auth/session", nil)
	var out struct {
		Role        string    `json:"role"`
		PrincipalID uuid.UUID `json:"principal_id"`
	}
	_ = json.Unmarshal(env.Data, &out)
	if env.Status != fiber.StatusOK || out.Role != "coach" || out.PrincipalID != p.ID {
		t.Fatalf("unexpected session: %d %+v", env.Status, out)
	}
}

type fakeApplicationUsecase struct {
	apply  func(a usecase.Actor, jobID uuid.UUID) (job.Application, error)
	list   func(a usecase.Actor, jobID *uuid.UUID, limit, offset int) ([]job.ApplicationDetail, int, error)
	decide func(a usecase.Actor, id uuid.UUID, status string) (usecase.Decision, error)
}

func (f *fakeApplicationUsecase) Apply(_ context.Context, a usecase.Actor, jobID uuid.UUID) (job.Application, error) {
	return f.apply(a, jobID)
}

func (f *fakeApplicationUsecase) ListMine(context.Context, usecase.Actor) ([]job.Application, error) {
	return nil, nil
}

func (f *fakeApplicationUsecase) ListForRecruiter(_ context.Context, a usecase.Actor, jobID *uuid.UUID, limit, offset int) ([]job.ApplicationDetail, int, error) {
	return f.list(a, jobID, limit, offset)
}

func (f *fakeApplicationUsecase) Decide(_ context.Context, a usecase.Actor, id uuid.UUID, status string) (usecase.Decision, error) {
	return f.decide(a, id, status)
}

func TestApplicationHandler_Apply(t *testing.T) {
	p := principal(account.RoleTalent)
	open, closed := uuid.New(), uuid.New()
	uc := &fakeApplicationUsecase{
		apply: func(a usecase.Actor, jobID uuid.UUID) (job.Application, error) {
			if a.ID != p.ID {
				t.Fatalf("actor not forwarded: %v", a.ID)
			}
			switch jobID {
			case open:
				return job.Application{ID: uuid.New(), JobID: jobID, TalentID: a.ID, Status: job.ApplicationPending}, nil
			case closed:
				return job.Application{}, usecase.ErrJobClosed
			default:
				return job.Application{}, usecase.ErrAlreadyApplied
			}
		},
	}
	app := newTestApp(p)
	NewApplicationHandler(uc).RegisterTalentRoutes(app.Group("/applications"))

	env := doJSON(t, app, "POST", "/applications", map[string]any{"job_id": open})
	if env.Status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", env.Status, env.Message)
	}
	var created struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(env.Data, &created)
	if created.Status != "pending" {
		t.Fatalf("expected pending, got %q", created.Status)
	}

	if env := doJSON(t, app, "POST", "/applications", map[string]any{}); env.Status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without job_id, got %d", env.Status)
	}
	if env := doJSON(t, app, "POST", "/applications", map[string]any{"job_id": closed}); env.Status != fiber.StatusConflict || env.Message != "Job is closed" {
		t.Fatalf("expected 409 closed, got %d %q", env.Status, env.Message)
	}
	if env := doJSON(t, app, "POST", "/applications", map[string]any{"job_id": uuid.New()}); env.Status != fiber.StatusConflict {
		t.Fatalf("expected 409 duplicate, got %d", env.Status)
	}
}

func TestApplicationHandler_RecruiterReview(t *testing.T) {
	p := principal(account.RoleRecruiter)
	appID := uuid.New()
	jobID := uuid.New()
	var gotJob *uuid.UUID
	uc := &fakeApplicationUsecase{
		list: func(_ usecase.Actor, j *uuid.UUID, limit, offset int) ([]job.ApplicationDetail, int, error) {
			gotJob = j
			return []job.ApplicationDetail{{
				Application: job.Application{ID: appID, JobID: jobID, Status: job.ApplicationPending},
				TalentName:  "Aline",
			}}, 7, nil
		},
		decide: func(_ usecase.Actor, id uuid.UUID, status string) (usecase.Decision, error) {
			if id != appID {
				return usecase.Decision{}, usecase.ErrNotFound
			}
			if status == "accepted" {
				return usecase.Decision{
					Application: job.ApplicationDetail{Application: job.Application{ID: id, Status: job.ApplicationAccepted}},
					ContactLink: "https://wa.me/25779000111",
				}, nil
			}
			return usecase.Decision{}, usecase.ErrInvalidTransition
		},
	}
	app := newTestApp(p)
	NewApplicationHandler(uc).RegisterRecruiterRoutes(app.Group("/applications"))

	env := doJSON(t, app, "GET", "/applications?job_id="+jobID.String()+"&limit=5", nil)
	if env.Status != fiber.StatusOK || env.Meta == nil || env.Meta.Count != 7 || env.Meta.Limit != 5 {
		t.Fatalf("unexpected page: %d %+v", env.Status, env.Meta)
	}
	if gotJob == nil || *gotJob != jobID {
		t.Fatalf("job filter not forwarded: %v", gotJob)
	}
	if env := doJSON(t, app, "GET", "/applications?job_id=nope", nil); env.Status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 on bad job_id, got %d", env.Status)
	}

	env = doJSON(t, app, "PATCH", "/applications/"+appID.String(), map[string]string{"status": "accepted"})
	var d struct {
		ContactLink string `json:"contact_link"`
		Application struct {
			Status string `json:"status"`
		} `json:"application"`
	}
	_ = json.Unmarshal(env.Data, &d)
	if env.Status != fiber.StatusOK || d.ContactLink == "" || d.Application.Status != "accepted" {
		t.Fatalf("unexpected decision: %d %+v", env.Status, d)
	}

	if env := doJSON(t, app, "PATCH", "/applications/"+appID.String(), map[string]string{"status": "rejected"}); env.Status != fiber.StatusConflict {
		t.Fatalf("expected 409 on a decided application, got %d", env.Status)
	}
	if env := doJSON(t, app, "PATCH", "/applications/not-a-uuid", map[string]string{"status": "accepted"}); env.Status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 on bad id, got %d", env.Status)
	}
	if env := doJSON(t, app, "PATCH", "/applications/"+uuid.NewString(), map[string]string{"status": "accepted"}); env.Status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", env.Status)
	}
}

type fakeAssistantUsecase struct {
	chat func(in usecase.ChatInput) (usecase.ChatReply, error)
}

func (f fakeAssistantUsecase) Chat(_ context.Context, in usecase.ChatInput) (usecase.ChatReply, error) {
	return f.chat(in)
}

func TestAssistantHandler_Chat(t *testing.T) {
	var got usecase.ChatInput
	reply := usecase.ChatReply{Reply: "Amahoro", Provider: "gemini"}
	var replyErr error
	uc := fakeAssistantUsecase{chat: func(in usecase.ChatInput) (usecase.ChatReply, error) {
		got = in
		return reply, replyErr
	}}
	app := newTestApp(nil)
	NewAssistantHandler(uc).RegisterRoutes(app.Group("/assistant"), nil)

	env := doJSON(t, app, "POST", "/assistant/chat", map[string]any{
		"message":  "Route to Gitega?",
		"history":  []map[string]string{{"role": "user", "text": "hi"}, {"role": "model", "text": "Amahoro"}},
		"view":     "traffic",
		"province": "Gitega",
		"advanced": true,
	})
	if env.Status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", env.Status)
	}
	if got.Message != "Route to Gitega?" || len(got.History) != 2 || got.History[1].Role != "model" || !got.Advanced || got.Province != "Gitega" {
		t.Fatalf("input not forwarded: %+v", got)
	}

	reply, replyErr = usecase.ChatReply{}, usecase.ErrAssistantDisabled
	if env := doJSON(t, app, "POST", "/assistant/chat", map[string]string{"message": "hi"}); env.Status != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503 when disabled, got %d", env.Status)
	}

	replyErr = context.DeadlineExceeded
	if env := doJSON(t, app, "POST", "/assistant/chat", map[string]string{"message": "hi"}); env.Status != fiber.StatusGatewayTimeout {
		t.Fatalf("expected 504 on timeout, got %d", env.Status)
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	var dbErr error
	h := NewHealthHandler(map[string]HealthCheck{
		"postgres": func(context.Context) error { return dbErr },
	})
	app := newTestApp(nil)
	h.RegisterRoutes(app)

	if env := doJSON(t, app, "GET", "/health", nil); env.Status != fiber.StatusOK {
		t.Fatalf("live: expected 200, got %d", env.Status)
	}

	env := doJSON(t, app, "GET", "/health/ready", nil)
	if env.Status != fiber.StatusOK {
		t.Fatalf("ready: expected 200, got %d", env.Status)
	}

	dbErr = errors.New("connection refused")
	env = doJSON(t, app, "GET", "/health/ready", nil)
	var checks map[string]string
	_ = json.Unmarshal(env.Data, &checks)
	if env.Status != fiber.StatusServiceUnavailable || checks["postgres"] != "down" {
		t.Fatalf("ready: expected 503 with postgres down, got %d %v", env.Status, checks)
	}
}
