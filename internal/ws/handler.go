package ws

import (
	"errors"
	"net/http"
	"strings"

	"fsti-hub/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var errTopicForbidden = errors.New("topic not allowed for this session")

type Handler struct {
	hub      *Hub
	tokens   jwt.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint. allowedOrigins empty or containing
// "*" accepts any origin.
func NewHandler(hub *Hub, tokens jwt.Service, allowedOrigins []string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{hub: hub, tokens: tokens, logger: logger.With(zap.String("component", "ws_handler"))}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws", h.Handle)
}

func (h *Handler) Handle(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	return adaptor.HTTPHandlerFunc(h.ServeHTTP)(c)
}

// ServeHTTP authorizes the requested topic and upgrades the connection.
// Private topics need an access token in the token query parameter.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		topic = TopicJobs
	}
	if err := h.authorize(topic, r.URL.Query().Get("token")); err != nil {
		status := http.StatusForbidden
		if errors.Is(err, ErrInvalidTopic) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, topic)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) authorize(topic, token string) error {
	kind, owner, err := ParseTopic(topic)
	if err != nil {
		return err
	}
	if kind == TopicJobs {
		return nil
	}
	if h.tokens == nil || strings.TrimSpace(token) == "" {
		return errTopicForbidden
	}
	claims, err := h.tokens.ValidateAccessToken(token)
	if err != nil {
		return errTopicForbidden
	}
	if claims.Role == "admin" {
		return nil
	}
	if claims.Role != kind || claims.PrincipalID != owner {
		return errTopicForbidden
	}
	return nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[o] = struct{}{}
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}
