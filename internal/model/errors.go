package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode is a short machine-checkable reason tag carried on error
// responses.
type ErrorCode string

const (
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeEmailAlreadyExists ErrorCode = "email_already_exists"
	CodeCreateFailed       ErrorCode = "create_failed"
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	CodeInvalidToken       ErrorCode = "invalid_token"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeRateLimited        ErrorCode = "rate_limited"
	CodeInternal           ErrorCode = "internal_error"
)

// ProblemDetails is the RFC 9457 error envelope returned by every failed
// request. CreateFailed responses additionally carry the credential
// store's human-readable rejection messages in Reasons.
type ProblemDetails struct {
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Status  int       `json:"status"`
	Detail  string    `json:"detail,omitempty"`
	Code    ErrorCode `json:"code,omitempty"`
	Reasons []string  `json:"reasons,omitempty"`
}

// Error implements the error interface.
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as an application/problem+json
// response.
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

const errTypeBase = "https://drivers-api.openfleet.dev/errors/"

func NewValidationError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   errTypeBase + "validation",
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   CodeValidationFailed,
	}
}

func NewEmailExistsError() *ProblemDetails {
	return &ProblemDetails{
		Type:   errTypeBase + "email-exists",
		Title:  "Conflict",
		Status: http.StatusConflict,
		Detail: "email already registered",
		Code:   CodeEmailAlreadyExists,
	}
}

func NewCreateFailedError(reasons []string) *ProblemDetails {
	return &ProblemDetails{
		Type:    errTypeBase + "create-failed",
		Title:   "Account Creation Failed",
		Status:  http.StatusBadRequest,
		Detail:  "the credential store rejected the account",
		Code:    CodeCreateFailed,
		Reasons: reasons,
	}
}

// NewInvalidCredentialsError has one fixed shape regardless of whether
// the email was unknown or the password wrong.
func NewInvalidCredentialsError() *ProblemDetails {
	return &ProblemDetails{
		Type:   errTypeBase + "invalid-credentials",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: "invalid email or password",
		Code:   CodeInvalidCredentials,
	}
}

// NewInvalidTokenError has one fixed shape for every refresh failure:
// missing fields, bad signature, wrong algorithm, identity mismatch or an
// expired refresh token.
func NewInvalidTokenError() *ProblemDetails {
	return &ProblemDetails{
		Type:   errTypeBase + "invalid-token",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: "invalid token",
		Code:   CodeInvalidToken,
	}
}

func NewUnauthorizedError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   errTypeBase + "unauthorized",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
		Code:   CodeUnauthorized,
	}
}

func NewRateLimitedError() *ProblemDetails {
	return &ProblemDetails{
		Type:   errTypeBase + "rate-limited",
		Title:  "Too Many Requests",
		Status: http.StatusTooManyRequests,
		Detail: "too many attempts, retry later",
		Code:   CodeRateLimited,
	}
}

func NewInternalError() *ProblemDetails {
	return &ProblemDetails{
		Type:   errTypeBase + "internal",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: "an unexpected error occurred",
		Code:   CodeInternal,
	}
}

func NewBadRequestError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   errTypeBase + "bad-request",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   CodeValidationFailed,
	}
}
