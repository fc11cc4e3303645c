package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	. "projecthub/internal/adapter/http/validation"
	"projecthub/internal/core/domain"
	"projecthub/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := FormatValidationErrors(err)
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErrors)
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors, details...)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "auth",
			Message: message,
		},
	}

	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", errors)
}

func SendForbiddenError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "auth",
			Message: message,
		},
	}

	SendError(c, http.StatusForbidden, "FORBIDDEN", errors)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "resource",
			Message: message,
		},
	}

	SendError(c, http.StatusNotFound, "NOT_FOUND", errors)
}

func SendConflictError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "resource",
			Message: message,
		},
	}

	SendError(c, http.StatusConflict, "CONFLICT", errors)
}

// SendDomainError maps a classified domain error onto the matching
// HTTP status. Unclassified errors come back as 500 without leaking
// their message.
func SendDomainError(c *gin.Context, err error) {
	var domainErr *domain.Error

	if !errors.As(err, &domainErr) {
		SendInternalError(c, "Internal server error")
		return
	}

	message := domainErr.Error()

	switch domainErr.Kind() {
	case domain.KindValidation:
		SendBadRequestError(c, "request", message)
	case domain.KindBadRequest:
		SendBadRequestError(c, "request", message)
	case domain.KindUnauthorized:
		SendUnauthorizedError(c, message)
	case domain.KindForbidden:
		SendForbiddenError(c, message)
	case domain.KindNotFound:
		SendNotFoundError(c, message)
	case domain.KindConflict:
		SendConflictError(c, message)
	default:
		SendInternalError(c, "Internal server error")
	}
}
