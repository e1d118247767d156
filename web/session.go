package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/codestudio_arena/client"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/model"
	"github.com/to404hanga/codestudio_arena/pkg/gintool"
	"github.com/to404hanga/codestudio_arena/service"
	"github.com/to404hanga/codestudio_arena/service/exporter/factory"
	"github.com/to404hanga/codestudio_arena/session"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type SessionHandler struct {
	manager    *session.Manager
	attemptSvc service.AttemptService
	log        loggerv2.Logger
}

var _ Handler = (*SessionHandler)(nil)

func NewSessionHandler(manager *session.Manager, attemptSvc service.AttemptService, log loggerv2.Logger) *SessionHandler {
	return &SessionHandler{
		manager:    manager,
		attemptSvc: attemptSvc,
		log:        log,
	}
}

func (h *SessionHandler) Register(r *gin.Engine) {
	r.POST(constants.OpenSessionPath, gintool.WrapHandler(h.OpenSession, h.log))
	r.GET(constants.GetSessionPath, gintool.WrapQueryHandler(h.GetSession, h.log))
	r.POST(constants.SelectProblemPath, gintool.WrapHandler(h.SelectProblem, h.log))
	r.POST(constants.NextProblemPath, gintool.WrapHandler(h.NextProblem, h.log))
	r.POST(constants.EditCodePath, gintool.WrapHandler(h.EditCode, h.log))
	r.POST(constants.SetLanguagePath, gintool.WrapHandler(h.SetLanguage, h.log))
	r.POST(constants.SetPanePath, gintool.WrapHandler(h.SetPane, h.log))
	r.POST(constants.RunCodePath, gintool.WrapHandler(h.RunCode, h.log))
	r.POST(constants.SubmitCodePath, gintool.WrapHandler(h.SubmitCode, h.log))
	r.POST(constants.ExitSessionPath, gintool.WrapHandler(h.ExitSession, h.log))
	r.GET(constants.BeforeUnloadPath, gintool.WrapQueryHandler(h.BeforeUnload, h.log))
	r.GET(constants.GetAttemptListPath, gintool.WrapQueryHandler(h.GetAttemptList, h.log))
	r.GET(constants.ExportAttemptsPath, gintool.WrapQueryHandler(h.ExportAttempts, h.log))
}

// requestContext 请求 id 同时透传给日志与后端
func requestContext(c *gin.Context, param model.SessionCommonParamInterface) context.Context {
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.String("event_id", param.GetEventID()))
	return client.ContextWithRequestID(ctx, gintool.RequestID(c))
}

func (h *SessionHandler) success(c *gin.Context, data any) {
	sessionRequestsTotal.WithLabelValues(c.FullPath(), strconv.Itoa(http.StatusOK)).Inc()
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// fail 将会话错误映射为业务状态码
func (h *SessionHandler) fail(c *gin.Context, ctx context.Context, op string, err error) int {
	resp := &gintool.Response{
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("%s failed: %s", op, err.Error()),
	}

	var notConfirmed *session.NotConfirmedError
	switch {
	case errors.As(err, &notConfirmed):
		resp.Code = http.StatusConflict
		resp.Data = model.ConfirmRequiredResponse{Prompt: notConfirmed.Prompt}
	case errors.Is(err, session.ErrAccessDenied):
		resp.Code = http.StatusForbidden
		resp.Data = model.ExitSessionResponse{Exited: true, Redirect: h.manager.ArenaPath()}
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrProblemNotFound):
		resp.Code = http.StatusNotFound
	case errors.Is(err, session.ErrNavigationInFlight),
		errors.Is(err, session.ErrExecutionInFlight),
		errors.Is(err, session.ErrSuperseded):
		resp.Code = http.StatusConflict
	case errors.Is(err, session.ErrNoProblemReady),
		errors.Is(err, session.ErrNoNextProblem),
		errors.Is(err, session.ErrLanguageRequired),
		errors.Is(err, session.ErrInvalidPane),
		errors.Is(err, session.ErrSessionClosed):
		resp.Code = http.StatusBadRequest
	default:
		h.log.ErrorContext(ctx, op+" failed", logger.Error(err))
	}

	sessionRequestsTotal.WithLabelValues(c.FullPath(), strconv.Itoa(resp.Code)).Inc()
	gintool.GinResponse(c, resp)
	return resp.Code
}

// current 获取会话, 失败时已写入响应
func (h *SessionHandler) current(c *gin.Context, ctx context.Context, op string, eventID string) (*session.Controller, bool) {
	ctrl, err := h.manager.Get(eventID)
	if err != nil {
		h.fail(c, ctx, op, err)
		return nil, false
	}
	return ctrl, true
}

func (h *SessionHandler) OpenSession(c *gin.Context, param *model.OpenSessionParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.String("event_id", param.EventID))
	ctx = client.ContextWithRequestID(ctx, param.RequestID)

	ctrl, err := h.manager.Open(ctx, param.EventID, param.Language)
	activeSessions.Set(float64(h.manager.Len()))
	if err != nil {
		h.fail(c, ctx, "OpenSession", err)
		return
	}
	h.success(c, ctrl.Snapshot())
}

func (h *SessionHandler) GetSession(c *gin.Context, param *model.GetSessionParam) {
	ctx := requestContext(c, param)
	ctrl, ok := h.current(c, ctx, "GetSession", param.EventID)
	if !ok {
		return
	}
	h.success(c, ctrl.Snapshot())
}

func (h *SessionHandler) SelectProblem(c *gin.Context, param *model.SelectProblemParam) {
	ctx := loggerv2.ContextWithFields(requestContext(c, param), logger.String("problem_id", param.ProblemID))
	ctrl, ok := h.current(c, ctx, "SelectProblem", param.EventID)
	if !ok {
		return
	}
	if err := ctrl.SelectProblem(ctx, param.ProblemID, session.Confirmed(param.Confirm)); err != nil {
		h.fail(c, ctx, "SelectProblem", err)
		return
	}
	h.success(c, ctrl.Snapshot())
}

func (h *SessionHandler) NextProblem(c *gin.Context, param *model.NextProblemParam) {
	ctx := requestContext(c, param)
	ctrl, ok := h.current(c, ctx, "NextProblem", param.EventID)
	if !ok {
		return
	}
	if err := ctrl.NextProblem(ctx, session.Confirmed(param.Confirm)); err != nil {
		h.fail(c, ctx, "NextProblem", err)
		return
	}
	h.success(c, ctrl.Snapshot())
}

func (h *SessionHandler) EditCode(c *gin.Context, param *model.EditCodeParam) {
	ctx := requestContext(c, param)
	ctrl, ok := h.current(c, ctx, "EditCode", param.EventID)
	if !ok {
		return
	}
	if err := ctrl.Edit(ctx, param.Code); err != nil {
		h.fail(c, ctx, "EditCode", err)
		return
	}
	h.success(c, nil)
}

func (h *SessionHandler) SetLanguage(c *gin.Context, param *model.SetLanguageParam) {
	ctx := requestContext(c, param)
	ctrl, ok := h.current(c, ctx, "SetLanguage", param.EventID)
	if !ok {
		return
	}
	if err := ctrl.SetLanguage(ctx, param.Language); err != nil {
		h.fail(c, ctx, "SetLanguage", err)
		return
	}
	h.success(c, ctrl.Snapshot())
}

func (h *SessionHandler) SetPane(c *gin.Context, param *model.SetPaneParam) {
	ctx := requestContext(c, param)
	ctrl, ok := h.current(c, ctx, "SetPane", param.EventID)
	if !ok {
		return
	}
	if err := ctrl.SetPane(param.Pane); err != nil {
		h.fail(c, ctx, "SetPane", err)
		return
	}
	h.success(c, nil)
}

func (h *SessionHandler) RunCode(c *gin.Context, param *model.RunCodeParam) {
	ctx := requestContext(c, param)
	ctrl, ok := h.current(c, ctx, "RunCode", param.EventID)
	if !ok {
		return
	}
	language := ctrl.Snapshot().Language

	start := time.Now()
	result, err := ctrl.Run(ctx)
	code := http.StatusOK
	switch {
	case errors.Is(err, session.ErrNoTestCases):
		h.success(c, model.RunCodeResponse{Ran: false})
	case err != nil:
		code = h.fail(c, ctx, "RunCode", err)
	default:
		h.success(c, model.RunCodeResponse{Ran: true, Result: result})
	}
	runCodeDurationSeconds.WithLabelValues(strconv.Itoa(code), language).Observe(time.Since(start).Seconds())
}

func (h *SessionHandler) SubmitCode(c *gin.Context, param *model.SubmitCodeParam) {
	ctx := requestContext(c, param)
	ctrl, ok := h.current(c, ctx, "SubmitCode", param.EventID)
	if !ok {
		return
	}

	start := time.Now()
	result, err := ctrl.Submit(ctx)
	if err != nil {
		code := h.fail(c, ctx, "SubmitCode", err)
		submitCodeDurationSeconds.WithLabelValues(strconv.Itoa(code), "").Observe(time.Since(start).Seconds())
		return
	}
	h.success(c, result)
	submitCodeDurationSeconds.WithLabelValues(strconv.Itoa(http.StatusOK), string(result.Submit.Class)).Observe(time.Since(start).Seconds())
}

func (h *SessionHandler) ExitSession(c *gin.Context, param *model.ExitSessionParam) {
	ctx := requestContext(c, param)
	ctrl, ok := h.current(c, ctx, "ExitSession", param.EventID)
	if !ok {
		return
	}
	exited, err := ctrl.RequestExit(ctx, session.Confirmed(param.Confirm))
	if err != nil {
		h.fail(c, ctx, "ExitSession", err)
		return
	}
	if exited {
		h.manager.Remove(ctrl)
		activeSessions.Set(float64(h.manager.Len()))
	}
	h.success(c, model.ExitSessionResponse{Exited: exited, Redirect: ctrl.ArenaPath()})
}

func (h *SessionHandler) BeforeUnload(c *gin.Context, param *model.BeforeUnloadParam) {
	ctx := requestContext(c, param)
	ctrl, err := h.manager.Get(param.EventID)
	if err != nil {
		// 会话已不存在时没有需要保护的内容
		if errors.Is(err, session.ErrSessionNotFound) {
			h.success(c, model.BeforeUnloadResponse{Warn: false})
			return
		}
		h.fail(c, ctx, "BeforeUnload", err)
		return
	}
	h.success(c, model.BeforeUnloadResponse{Warn: ctrl.ShouldWarnOnUnload()})
}

func (h *SessionHandler) GetAttemptList(c *gin.Context, param *model.GetAttemptListParam) {
	ctx := requestContext(c, param)
	attempts, total, err := h.attemptSvc.GetAttemptList(ctx, param.EventID, param.Page, param.PageSize)
	if err != nil {
		h.fail(c, ctx, "GetAttemptList", err)
		return
	}
	h.success(c, model.GetAttemptListResponse{
		List:     attempts,
		Total:    total,
		Page:     param.Page,
		PageSize: param.PageSize,
	})
}

func (h *SessionHandler) ExportAttempts(c *gin.Context, param *model.ExportAttemptsParam) {
	ctx := loggerv2.ContextWithFields(requestContext(c, param), logger.String("format", param.Format))
	exporterType := factory.AttemptExporterType(param.Format)

	var buf bytes.Buffer
	if err := h.attemptSvc.ExportAttempts(ctx, param.EventID, exporterType, &buf); err != nil {
		h.fail(c, ctx, "ExportAttempts", err)
		return
	}

	title := param.EventID
	if ctrl, err := h.manager.Get(param.EventID); err == nil {
		if ev := ctrl.Snapshot().Event; ev != nil && ev.Title != "" {
			title = ev.Title
		}
	}
	filename := factory.FileName(title, exporterType, time.Now())

	sessionRequestsTotal.WithLabelValues(c.FullPath(), strconv.Itoa(http.StatusOK)).Inc()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, factory.ExporterContentTypeMap[exporterType], buf.Bytes())
}
