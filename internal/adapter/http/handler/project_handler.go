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

type ProjectHandler struct {
	svc port.ProjectService
}

func NewProjectHandler(svc port.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		svc: svc,
	}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	params, err := util.ParamsToMap[request.CreateProjectRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := h.svc.Create(ctx, &params, userId)

	if err != nil {
		slog.Error("Project#Create", "create", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, result)
}

func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	query, err := util.QueryToMap[request.ListProjectsQuery](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid query parameters")
		return
	}

	if err := Validator.Struct(query); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := h.svc.List(ctx, &query, userId)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	projectId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid project id")
		return
	}

	result, err := h.svc.GetByID(ctx, projectId, userId)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	projectId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid project id")
		return
	}

	params, err := util.ParamsToMap[request.UpdateProjectRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := h.svc.Update(ctx, projectId, &params, userId)

	if err != nil {
		slog.Error("Project#Update", "update", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	projectId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid project id")
		return
	}

	result, err := h.svc.Delete(ctx, projectId, userId)

	if err != nil {
		slog.Error("Project#Delete", "delete", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	projectId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid project id")
		return
	}

	params, err := util.ParamsToMap[request.MemberRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := h.svc.AddMember(ctx, projectId, &params, userId)

	if err != nil {
		slog.Error("Project#AddMember", "add_member", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	projectId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid project id")
		return
	}

	params, err := util.ParamsToMap[request.MemberRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := h.svc.RemoveMember(ctx, projectId, &params, userId)

	if err != nil {
		slog.Error("Project#RemoveMember", "remove_member", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *ProjectHandler) Members(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	projectId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid project id")
		return
	}

	result, err := h.svc.Members(ctx, projectId, userId)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}
