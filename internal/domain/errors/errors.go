package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrUnauthorized       = errors.New("error.unauthorized")
	ErrForbidden          = errors.New("error.forbidden")
	ErrUserBanned         = errors.New("error.user_banned")
	ErrCannotModifySelf   = errors.New("error.cannot_modify_self")
	ErrRateLimited        = errors.New("error.rate_limited")

	ErrCategoryNotFound = errors.New("error.category_not_found")
	ErrCategoryExists   = errors.New("error.category_exists")

	ErrEventNotFound   = errors.New("error.event_not_found")
	ErrEventNotPending = errors.New("error.event_not_pending")

	ErrPostNotFound     = errors.New("error.post_not_found")
	ErrReplyNotFound    = errors.New("error.reply_not_found")
	ErrPostLocked       = errors.New("error.post_locked")
	ErrCannotVoteOwn    = errors.New("error.cannot_vote_own")
	ErrNotDeleted       = errors.New("error.not_deleted")
	ErrBusinessNotFound = errors.New("error.business_not_found")
	ErrBusinessExists   = errors.New("error.business_exists")

	ErrAlertNotFound = errors.New("error.alert_not_found")

	ErrReportNotFound   = errors.New("error.report_not_found")
	ErrReportDuplicate  = errors.New("error.report_duplicate")
	ErrReportNotPending = errors.New("error.report_not_pending")
	ErrTargetNotFound   = errors.New("error.report_target_not_found")

	ErrInvalidDirection = errors.New("error.invalid_direction")
)

// Domain errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrInvalidEmail      = errors.New("error.invalid_email")
	ErrInvalidPostalCode = errors.New("error.invalid_postal_code")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
	ProblemTypeRateLimited  = "/problems/rate-limited"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// ValidationError indica um campo inválido. Message é uma chave i18n.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError cria um ValidationError para o campo
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Chaves i18n usadas pelas validações das entidades
const (
	MsgRequired     = "error.validation.required"
	MsgTooLong      = "error.validation.too_long"
	MsgInvalid      = "error.validation.invalid"
	MsgEndBefore    = "error.validation.end_before_start"
	MsgMustBeFuture = "error.validation.must_be_future"
)
