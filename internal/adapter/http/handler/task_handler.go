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

type TaskHandler struct {
	svc port.TaskService
}

func NewTaskHandler(svc port.TaskService) *TaskHandler {
	return &TaskHandler{
		svc: svc,
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	params, err := util.ParamsToMap[request.CreateTaskRequest](c)

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
		slog.Error("Task#Create", "create", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, result)
}

func (h *TaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	query, err := util.QueryToMap[request.ListTasksQuery](c)

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

func (h *TaskHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	taskId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid task id")
		return
	}

	result, err := h.svc.GetByID(ctx, taskId, userId)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *TaskHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	taskId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid task id")
		return
	}

	params, err := util.ParamsToMap[request.UpdateTaskRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := h.svc.Update(ctx, taskId, &params, userId)

	if err != nil {
		slog.Error("Task#Update", "update", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	taskId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid task id")
		return
	}

	result, err := h.svc.Delete(ctx, taskId, userId)

	if err != nil {
		slog.Error("Task#Delete", "delete", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *TaskHandler) AssignUser(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	taskId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid task id")
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

	result, err := h.svc.AssignUser(ctx, taskId, &params, userId)

	if err != nil {
		slog.Error("Task#AssignUser", "assign", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *TaskHandler) UnassignUser(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	taskId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid task id")
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

	result, err := h.svc.UnassignUser(ctx, taskId, &params, userId)

	if err != nil {
		slog.Error("Task#UnassignUser", "unassign", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (h *TaskHandler) AssignedUsers(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.CurrentUserID(c)

	taskId, err := util.IntParam(c, "id")

	if err != nil {
		SendBadRequestError(c, "id", "Invalid task id")
		return
	}

	result, err := h.svc.AssignedUsers(ctx, taskId, userId)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}
