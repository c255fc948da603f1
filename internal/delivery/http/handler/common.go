package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/pkg/response"
	"fsti-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func actorFrom(c fiber.Ctx) (usecase.Actor, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return usecase.Actor{ID: p.ID, Role: p.Role, Email: p.Email}, nil
}

// viewerFrom returns the signed-in actor on public routes, or nil.
func viewerFrom(c fiber.Ctx) *usecase.Actor {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil
	}
	return &usecase.Actor{ID: p.ID, Role: p.Role, Email: p.Email}
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseQueryBool(c fiber.Ctx, key string) (*bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func pagination(c fiber.Ctx) (int, int, error) {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return 0, 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return 0, 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return limit, offset, nil
}

// parseTimestamp accepts RFC 3339 and the minute precision value of an HTML
// datetime-local input, read as UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", s)
}

// uploads collects the files of a multipart request and closes them when done.
type uploads struct {
	form    *multipart.Form
	closers []io.Closer
}

func multipartUploads(c fiber.Ctx) *uploads {
	form, err := c.MultipartForm()
	if err != nil {
		return &uploads{}
	}
	return &uploads{form: form}
}

// file returns nil when the field carries no file.
func (u *uploads) file(field string) (*usecase.Upload, error) {
	if u.form == nil {
		return nil, nil
	}
	headers := u.form.File[field]
	if len(headers) == 0 || headers[0].Size == 0 {
		return nil, nil
	}
	f, err := headers[0].Open()
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	u.closers = append(u.closers, f)
	return &usecase.Upload{Filename: headers[0].Filename, Reader: f}, nil
}

func (u *uploads) Close() {
	for _, c := range u.closers {
		_ = c.Close()
	}
}

// formString returns nil when the field is absent.
func formString(c fiber.Ctx, key string) *string {
	if c.Request().PostArgs().Has(key) {
		v := c.FormValue(key)
		return &v
	}
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return &vals[0]
		}
	}
	return nil
}

// mapCommonUsecaseError covers the errors every usecase shares.
func mapCommonUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrFileRejected):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "File rejected", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Conflict", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
