package dto

import (
	errs "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
)

var registerOnce sync.Once

// RegisterValidators registra as validações customizadas no validator do gin
// e faz os erros usarem o nome JSON dos campos. Pode ser chamada várias vezes.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
			_, err := valueobjects.NewPostalCode(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
			return entities.Severity(fl.Field().String()).Valid()
		})
	})
}

// BindJSON faz o bind do corpo e responde 400 em caso de erro.
// Retorna false quando a resposta de erro já foi escrita.
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondBindingError(c, err)
		return false
	}
	return true
}

// BindQuery faz o bind da query string e responde 400 em caso de erro
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		respondBindingError(c, err)
		return false
	}
	return true
}

func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) {
		RespondError(c, &errors.DomainError{
			Type:    errors.ProblemTypeBadRequest,
			Title:   "error.bad_request.title",
			Message: "error.bad_request.detail",
			Err:     err,
		})
		return
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, translateFieldError(c, fe))
	}
	writeProblem(c, ValidationErrorResponseI18n(c, out))
}

func translateFieldError(c *gin.Context, fe validator.FieldError) ValidationError {
	key := "error.validation." + fe.Tag()
	if !hasTranslation(c, key) {
		key = errors.MsgInvalid
	}
	return ValidationError{
		Field: fe.Field(),
		Message: T(c, key, map[string]interface{}{
			"Field": fe.Field(),
			"Param": fe.Param(),
		}),
		Tag: fe.Tag(),
	}
}
