package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

var validate = validator.New()

// ValidateStruct validates s by its `validate` tags and returns user-facing errors.
func ValidateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: errorMessage(fe),
		})
	}
	return out
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "gt":
		return err.Field() + " must be greater than " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}

// RespondWithValidationErrors sends the first error as the message and all of them as details.
func RespondWithValidationErrors(c *gin.Context, errs []ValidationError) {
	msg := "validation failed"
	if len(errs) > 0 {
		msg = errs[0].Message
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": msg,
		"details": errs,
	})
}

// BindAndValidate decodes a JSON body into req and validates it.
// On failure it writes a 400 response and returns false.
func BindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if errs := ValidateStruct(req); len(errs) > 0 {
		RespondWithValidationErrors(c, errs)
		return false
	}
	return true
}
