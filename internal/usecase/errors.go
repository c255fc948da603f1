package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrForbidden           = errors.New("forbidden")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")

	ErrEmailTaken         = errors.New("email already registered")
	ErrFileRejected       = errors.New("file rejected")
	ErrRecruiterPending   = errors.New("recruiter not verified yet")
	ErrJobClosed          = errors.New("job is closed")
	ErrAlreadyApplied     = errors.New("already applied to this job")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyAssigned    = errors.New("coach already assigned to this talent")
	ErrNotAssigned        = errors.New("no coach assignment between these members")
	ErrAssistantDisabled  = errors.New("assistant not configured")
	ErrAssistantFailed    = errors.New("assistant unavailable")
	ErrNewsImportDisabled = errors.New("news import not configured")
)
