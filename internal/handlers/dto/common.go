package dto

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/logging"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	*problems.Problem
	RequestID string            `json:"request_id,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// problemKind descreve como um erro vira resposta HTTP
type problemKind struct {
	status      int
	problemType string
	titleKey    string
}

var (
	kindValidation   = problemKind{http.StatusBadRequest, errors.ProblemTypeValidation, "error.validation.title"}
	kindBadRequest   = problemKind{http.StatusBadRequest, errors.ProblemTypeBadRequest, "error.bad_request.title"}
	kindNotFound     = problemKind{http.StatusNotFound, errors.ProblemTypeNotFound, "error.not_found.title"}
	kindConflict     = problemKind{http.StatusConflict, errors.ProblemTypeConflict, "error.conflict.title"}
	kindUnauthorized = problemKind{http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized.title"}
	kindForbidden    = problemKind{http.StatusForbidden, errors.ProblemTypeForbidden, "error.forbidden.title"}
	kindRateLimited  = problemKind{http.StatusTooManyRequests, errors.ProblemTypeRateLimited, "error.rate_limited.title"}
	kindInternal     = problemKind{http.StatusInternalServerError, errors.ProblemTypeInternal, "error.internal.title"}
)

// sentinelKinds associa cada erro de negócio ao seu tipo de problema
var sentinelKinds = []struct {
	err  error
	kind problemKind
}{
	{errors.ErrUserNotFound, kindNotFound},
	{errors.ErrCategoryNotFound, kindNotFound},
	{errors.ErrEventNotFound, kindNotFound},
	{errors.ErrPostNotFound, kindNotFound},
	{errors.ErrReplyNotFound, kindNotFound},
	{errors.ErrBusinessNotFound, kindNotFound},
	{errors.ErrAlertNotFound, kindNotFound},
	{errors.ErrReportNotFound, kindNotFound},
	{errors.ErrTargetNotFound, kindNotFound},

	{errors.ErrEmailAlreadyExists, kindConflict},
	{errors.ErrCategoryExists, kindConflict},
	{errors.ErrBusinessExists, kindConflict},
	{errors.ErrReportDuplicate, kindConflict},
	{errors.ErrEventNotPending, kindConflict},
	{errors.ErrReportNotPending, kindConflict},
	{errors.ErrNotDeleted, kindConflict},
	{errors.ErrPostLocked, kindConflict},

	{errors.ErrUnauthorized, kindUnauthorized},
	{errors.ErrInvalidCredentials, kindUnauthorized},

	{errors.ErrForbidden, kindForbidden},
	{errors.ErrUserBanned, kindForbidden},
	{errors.ErrCannotModifySelf, kindForbidden},
	{errors.ErrCannotVoteOwn, kindForbidden},

	{errors.ErrInvalidDirection, kindBadRequest},
	{errors.ErrInvalidEmail, kindBadRequest},
	{errors.ErrInvalidPostalCode, kindBadRequest},

	{errors.ErrRateLimited, kindRateLimited},
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detail string, status int) ErrorResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewDetailedProblem(status, detail)
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{
		Problem:   problem,
		RequestID: middleware.GetRequestID(c),
	}
}

// ValidationErrorResponseI18n cria uma resposta de erro de validação
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		kindValidation.problemType,
		kindValidation.titleKey,
		T(c, "error.validation.detail"),
		kindValidation.status,
	)
	response.Errors = validationErrors
	return response
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404 para um recurso.
// resourceKey é a chave i18n do nome do recurso (ex: "resource.event").
func NotFoundErrorResponseI18n(c *gin.Context, resourceKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		kindNotFound.problemType,
		kindNotFound.titleKey,
		T(c, "error.not_found.detail", map[string]interface{}{"Resource": T(c, resourceKey)}),
		kindNotFound.status,
	)
}

// RespondNotFound responde 404 para o recurso indicado
func RespondNotFound(c *gin.Context, resourceKey string) {
	writeProblem(c, NotFoundErrorResponseI18n(c, resourceKey))
}

// RespondError converte err em uma resposta RFC 7807 e aborta a requisição.
// Erros desconhecidos viram 500 e são registrados com o request_id.
func RespondError(c *gin.Context, err error) {
	var (
		verr *errors.ValidationError
		derr *errors.DomainError
	)

	var response ErrorResponse
	switch {
	case errs.As(err, &verr):
		response = ValidationErrorResponseI18n(c, []ValidationError{{
			Field:   verr.Field,
			Message: T(c, verr.Message, map[string]interface{}{"Field": verr.Field}),
		}})
	case errs.As(err, &derr):
		response = domainErrorResponse(c, derr)
	default:
		kind, ok := kindOf(err)
		if !ok {
			logInternal(c, err)
			response = NewErrorResponseI18n(c, kindInternal.problemType, kindInternal.titleKey,
				T(c, "error.internal.detail"), kindInternal.status)
			break
		}
		response = NewErrorResponseI18n(c, kind.problemType, kind.titleKey, T(c, err.Error()), kind.status)
	}

	writeProblem(c, response)
}

func writeProblem(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

func domainErrorResponse(c *gin.Context, derr *errors.DomainError) ErrorResponse {
	kind := kindBadRequest
	if derr.Err != nil {
		if k, ok := kindOf(derr.Err); ok {
			kind = k
		}
	}
	if derr.Type != "" {
		kind.problemType = derr.Type
	}
	if derr.Title != "" {
		kind.titleKey = derr.Title
	}
	return NewErrorResponseI18n(c, kind.problemType, kind.titleKey, T(c, derr.Message), kind.status)
}

func kindOf(err error) (problemKind, bool) {
	for _, s := range sentinelKinds {
		if errs.Is(err, s.err) {
			return s.kind, true
		}
	}
	return problemKind{}, false
}

func logInternal(c *gin.Context, err error) {
	logger := middleware.GetLogger(c, logging.NewNopLogger())
	logger.Error("unhandled error",
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}
