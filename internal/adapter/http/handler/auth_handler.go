package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	. "projecthub/internal/adapter/http/helper"
	"projecthub/internal/adapter/http/middleware"
	. "projecthub/internal/adapter/http/validation"
	"projecthub/internal/core/model/request"
	"projecthub/internal/core/port"
	"projecthub/internal/core/util"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.RegisterRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := a.svc.Register(ctx, &params)

	if err != nil {
		slog.Error("Auth#Register", "register", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, result)
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := a.svc.Login(ctx, &params)

	if err != nil {
		slog.Error("Auth#Login", "login", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (a *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.RefreshRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := a.svc.Refresh(ctx, &params)

	if err != nil {
		slog.Error("Auth#Refresh", "refresh", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

// Logout only acknowledges. Tokens are stateless, so invalidation is
// the client discarding them.
func (a *AuthHandler) Logout(c *gin.Context) {
	SendSuccess(c, http.StatusOK, nil, "Logged out")
}

func (a *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	result, err := a.svc.CurrentUser(ctx, userId)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}
