package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ArenaClient CodeStudio 后端比赛相关接口
type ArenaClient interface {
	// GetEvent 获取比赛元信息
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	// CheckAccess 检查当前用户是否仍有比赛访问权限, 无权限时返回的 error 满足 errors.Is(err, ErrAccessDenied)
	CheckAccess(ctx context.Context, eventID string) error
	// ListProblems 获取比赛题目列表(按 order 排序)
	ListProblems(ctx context.Context, eventID string) ([]model.ProblemSummary, error)
	// GetProblem 获取题目详情
	GetProblem(ctx context.Context, eventID, problemID string) (*model.ProblemDetail, error)
	// Run 运行样例
	Run(ctx context.Context, eventID, problemID string, req model.ExecutionRequest) ([]model.CaseResult, error)
	// Submit 提交评测
	Submit(ctx context.Context, eventID, problemID string, req model.ExecutionRequest) (*model.SubmitResponse, error)
}

type RestyArenaClient struct {
	rc    *resty.Client
	token TokenSource
	log   loggerv2.Logger
}

var _ ArenaClient = (*RestyArenaClient)(nil)

func NewArenaClient(baseURL string, timeout time.Duration, token TokenSource, log loggerv2.Logger) ArenaClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader(constants.HeaderUserAgentKey, constants.ServiceName).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}

	c := &RestyArenaClient{
		rc:    rc,
		token: token,
		log:   log,
	}
	rc.OnBeforeRequest(c.beforeRequest)
	return c
}

type requestIDKey struct{}

// ContextWithRequestID 将上游请求 id 透传给后端
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func (c *RestyArenaClient) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if c.token != nil {
		tok, err := c.token.Token()
		if err != nil {
			return err
		}
		if tok != "" {
			r.SetAuthToken(tok)
		}
	}

	requestID, _ := r.Context().Value(requestIDKey{}).(string)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	r.SetHeader(constants.HeaderRequestIDKey, requestID)
	return nil
}

// do 发送请求, 返回 2xx 响应体; 非 2xx 统一转换为 *APIError
func (c *RestyArenaClient) do(ctx context.Context, method, path string, pathParams map[string]string, body any) ([]byte, error) {
	req := c.rc.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetError(&errorBody{})
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.ErrorContext(ctx, "arena api request failed",
			logger.String("method", method),
			logger.String("path", path),
			logger.Error(err))
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}

	c.log.DebugContext(ctx, "arena api request done",
		logger.String("method", method),
		logger.String("url", resp.Request.URL),
		logger.Int("status", resp.StatusCode()),
		logger.Int64("elapsed_ms", time.Since(start).Milliseconds()))

	if resp.IsError() {
		eb, _ := resp.Error().(*errorBody)
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: eb.text()}
	}
	return resp.Body(), nil
}

// unwrapEnvelope 后端部分接口会包一层 {"<key>": ...}, 存在时取内层
func unwrapEnvelope(body []byte, key string) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	node, err := json.Get(trimmed, key)
	if err != nil || !node.Exists() {
		return trimmed
	}
	raw, err := node.Raw()
	if err != nil {
		return trimmed
	}
	return []byte(raw)
}

// GetEvent 获取比赛元信息
func (c *RestyArenaClient) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	body, err := c.do(ctx, http.MethodGet, constants.APIEventPath, map[string]string{"eventId": eventID}, nil)
	if err != nil {
		return nil, fmt.Errorf("GetEvent failed: %w", err)
	}
	var event model.Event
	if err = json.Unmarshal(unwrapEnvelope(body, "event"), &event); err != nil {
		return nil, fmt.Errorf("GetEvent failed at unmarshal: %w", err)
	}
	return &event, nil
}

type accessBody struct {
	HasAccess *bool `json:"hasAccess"`
}

// CheckAccess 检查比赛访问权限, 401/403 以及 hasAccess=false 都视为无权限
func (c *RestyArenaClient) CheckAccess(ctx context.Context, eventID string) error {
	body, err := c.do(ctx, http.MethodGet, constants.APIEventAccessPath, map[string]string{"eventId": eventID}, nil)
	if err != nil {
		var ae *APIError
		if errors.As(err, &ae) && ae.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("CheckAccess failed: %w: %w", ErrAccessDenied, err)
		}
		return fmt.Errorf("CheckAccess failed: %w", err)
	}

	var ab accessBody
	if len(bytes.TrimSpace(body)) > 0 {
		if err = json.Unmarshal(body, &ab); err == nil && ab.HasAccess != nil && !*ab.HasAccess {
			return fmt.Errorf("CheckAccess failed: %w", ErrAccessDenied)
		}
	}
	return nil
}

// ListProblems 获取比赛题目列表
func (c *RestyArenaClient) ListProblems(ctx context.Context, eventID string) ([]model.ProblemSummary, error) {
	body, err := c.do(ctx, http.MethodGet, constants.APIContestProblemsPath, map[string]string{"eventId": eventID}, nil)
	if err != nil {
		return nil, fmt.Errorf("ListProblems failed: %w", err)
	}
	problems := make([]model.ProblemSummary, 0)
	if err = json.Unmarshal(unwrapEnvelope(body, "problems"), &problems); err != nil {
		return nil, fmt.Errorf("ListProblems failed at unmarshal: %w", err)
	}
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Order < problems[j].Order
	})
	return problems, nil
}

// GetProblem 获取题目详情
func (c *RestyArenaClient) GetProblem(ctx context.Context, eventID, problemID string) (*model.ProblemDetail, error) {
	body, err := c.do(ctx, http.MethodGet, constants.APIContestProblemPath,
		map[string]string{"eventId": eventID, "problemId": problemID}, nil)
	if err != nil {
		return nil, fmt.Errorf("GetProblem failed: %w", err)
	}
	var problem model.ProblemDetail
	if err = json.Unmarshal(unwrapEnvelope(body, "problem"), &problem); err != nil {
		return nil, fmt.Errorf("GetProblem failed at unmarshal: %w", err)
	}
	return &problem, nil
}

// Run 运行样例, 返回逐个用例的结果
func (c *RestyArenaClient) Run(ctx context.Context, eventID, problemID string, req model.ExecutionRequest) ([]model.CaseResult, error) {
	body, err := c.do(ctx, http.MethodPost, constants.APIRunPath,
		map[string]string{"eventId": eventID, "problemId": problemID}, req)
	if err != nil {
		return nil, fmt.Errorf("Run failed: %w", err)
	}
	results := make([]model.CaseResult, 0)
	if err = json.Unmarshal(unwrapEnvelope(body, "results"), &results); err != nil {
		return nil, fmt.Errorf("Run failed at unmarshal: %w", err)
	}
	return results, nil
}

// Submit 提交评测
func (c *RestyArenaClient) Submit(ctx context.Context, eventID, problemID string, req model.ExecutionRequest) (*model.SubmitResponse, error) {
	body, err := c.do(ctx, http.MethodPost, constants.APISubmitPath,
		map[string]string{"eventId": eventID, "problemId": problemID}, req)
	if err != nil {
		return nil, fmt.Errorf("Submit failed: %w", err)
	}
	var submission model.SubmitResponse
	if err = json.Unmarshal(unwrapEnvelope(body, "submission"), &submission); err != nil {
		return nil, fmt.Errorf("Submit failed at unmarshal: %w", err)
	}
	return &submission, nil
}
