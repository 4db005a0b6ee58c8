package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes binding errors report wire names instead of Go
// field names, so a failed `binding:"oneof=base mask all"` on Target shows
// up as "target" in the details. JSON tags win; query filters fall back to
// their form tag.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
}

// HandleValidationError answers a failed ShouldBind with 400. Binding
// failures carry per-field details; anything else (malformed JSON, type
// mismatches) is reported as an unparseable body.
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed",
			requestID,
			ValidationDetails(fieldErrs),
		))
		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInvalidJSON,
		"Request body could not be parsed",
		requestID,
	))
}

// ValidationDetails flattens validator errors into the envelope's detail
// entries.
func ValidationDetails(errs validator.ValidationErrors) []dto.ValidationDetail {
	details := make([]dto.ValidationDetail, 0, len(errs))
	for _, e := range errs {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: fieldMessage(e),
		})
	}
	return details
}

// fieldMessage covers the binding tags the request DTOs use. New tags fall
// through to a generic message rather than leaking validator internals.
func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid":
		return "Must be a valid UUID"
	case "url":
		return "Must be a valid URL"
	case "email":
		return "Must be a valid email address"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "min":
		switch e.Kind() {
		case reflect.String:
			return "Must be at least " + e.Param() + " characters"
		case reflect.Slice, reflect.Map:
			return "Must have at least " + e.Param() + " entries"
		default:
			return "Must be at least " + e.Param()
		}
	case "max":
		switch e.Kind() {
		case reflect.String:
			return "Must be at most " + e.Param() + " characters"
		case reflect.Slice, reflect.Map:
			return "Must have at most " + e.Param() + " entries"
		default:
			return "Must be at most " + e.Param()
		}
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be at least " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	case "lte":
		return "Must be at most " + e.Param()
	default:
		return "Invalid value"
	}
}
