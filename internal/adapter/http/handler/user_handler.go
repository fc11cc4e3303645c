package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "projecthub/internal/adapter/http/helper"
	"projecthub/internal/adapter/http/middleware"
	. "projecthub/internal/adapter/http/validation"
	"projecthub/internal/core/model/request"
	"projecthub/internal/core/port"
	"projecthub/internal/core/util"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	query, err := util.QueryToMap[request.ListUsersQuery](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid query parameters")
		return
	}

	if err := Validator.Struct(query); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := h.svc.List(ctx, &query)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *UserHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	result, err := h.svc.Stats(ctx, userId)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}
