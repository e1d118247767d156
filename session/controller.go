package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/to404hanga/codestudio_arena/client"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/draft"
	"github.com/to404hanga/codestudio_arena/event"
	"github.com/to404hanga/codestudio_arena/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

type Config struct {
	ArenaPath       string
	DefaultLanguage string
}

// Deps 控制器依赖, Presenter / Publisher / Journal 可以为空
type Deps struct {
	API       client.ArenaClient
	Drafts    draft.Repository
	Presenter Presenter
	Publisher Publisher
	Journal   Journal
	Log       loggerv2.Logger
	Config    Config
}

// Controller 一场比赛的答题会话
type Controller struct {
	eventID   string
	api       client.ArenaClient
	drafts    draft.Repository
	presenter Presenter
	publisher Publisher
	journal   Journal
	log       loggerv2.Logger
	arenaPath string

	// saveMu 保证草稿按编辑顺序落盘, savedSeq 记录每道题已写入的最新编辑序号
	saveMu   sync.Mutex
	savedSeq map[string]uint64

	mu         sync.Mutex
	event      *model.Event
	problems   []model.ProblemSummary
	state      model.NavState
	selectedID string
	problem    *model.ProblemDetail
	language   string
	code       string
	dirty      bool
	editSeq    uint64
	pane       model.Pane
	result     *model.ExecutionResult
	generation uint64
	settled    navState
	closed     bool

	// navigating 覆盖确认与权限校验阶段; executing 覆盖 run / submit 请求
	navigating atomic.Bool
	executing  atomic.Bool
}

func NewController(eventID string, deps Deps) *Controller {
	c := &Controller{
		eventID:   eventID,
		api:       deps.API,
		drafts:    deps.Drafts,
		presenter: deps.Presenter,
		publisher: deps.Publisher,
		journal:   deps.Journal,
		log:       deps.Log,
		arenaPath: deps.Config.ArenaPath,
		language:  model.NormalizeLanguage(deps.Config.DefaultLanguage),
		state:     model.NavStateNoProblemSelected,
		pane:      model.PaneDescription,
		savedSeq:  make(map[string]uint64),
	}
	if c.drafts == nil {
		c.drafts = draft.NewMemoryRepository()
	}
	if c.presenter == nil {
		c.presenter = nopPresenter{}
	}
	if c.publisher == nil {
		c.publisher = nopPublisher{}
	}
	if c.journal == nil {
		c.journal = nopJournal{}
	}
	if c.log == nil {
		c.log = loggerv2.NewZapLogger(zap.NewNop())
	}
	if c.arenaPath == "" {
		c.arenaPath = constants.DefaultArenaPath
	}
	if c.language == "" {
		c.language = constants.DefaultLanguage
	}
	return c
}

func (c *Controller) EventID() string {
	return c.eventID
}

// Open 进入比赛页面: 拉取比赛信息与题目列表, 自动选中第一题(不经过确认与权限校验)
func (c *Controller) Open(ctx context.Context, language string) error {
	if lang := model.NormalizeLanguage(language); lang != "" {
		c.mu.Lock()
		c.language = lang
		c.mu.Unlock()
	}

	ev, err := c.api.GetEvent(ctx, c.eventID)
	if err != nil {
		return c.failOpen(ctx, "get event", err)
	}
	problems, err := c.api.ListProblems(ctx, c.eventID)
	if err != nil {
		return c.failOpen(ctx, "list problems", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrSessionClosed
	}
	c.event = ev
	c.problems = problems
	var (
		first string
		gen   uint64
		prev  navState
	)
	if c.selectedID == "" && len(problems) > 0 {
		first = problems[0].ID
		gen, prev = c.beginLoadLocked(first)
	}
	language = c.language
	c.mu.Unlock()

	c.log.InfoContext(ctx, "session opened", logger.Int("problems", len(problems)))
	c.publisher.Publish(ctx, &event.SessionMessage{
		Type:     event.SessionOpened,
		EventID:  c.eventID,
		Language: language,
	})

	if first == "" {
		return nil
	}
	// 首题加载失败时页面仍然可用, 用户可以手动重新选择
	if err = c.load(ctx, gen, first, prev); err != nil && errors.Is(err, ErrAccessDenied) {
		return err
	}
	return nil
}

func (c *Controller) failOpen(ctx context.Context, step string, err error) error {
	if errors.Is(err, client.ErrAccessDenied) {
		c.denyAccess(ctx, err)
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}
	c.log.ErrorContext(ctx, "open session failed", logger.String("step", step), logger.Error(err))
	c.presenter.Notify(ctx, c.eventID, Notice{Level: NoticeError, Message: "Failed to load contest."})
	return fmt.Errorf("Open failed at %s: %w", step, err)
}

// SelectProblem 切换题目: 有未保存修改时先确认, 再校验访问权限, 最后拉取题目详情
func (c *Controller) SelectProblem(ctx context.Context, problemID string, confirmer Confirmer) error {
	if !c.navigating.CompareAndSwap(false, true) {
		return ErrNavigationInFlight
	}
	gen, prev, err := c.guard(ctx, problemID, confirmer)
	if err != nil {
		return err
	}
	return c.load(ctx, gen, problemID, prev)
}

// NextProblem 按题目列表顺序切换到下一题
func (c *Controller) NextProblem(ctx context.Context, confirmer Confirmer) error {
	c.mu.Lock()
	current := c.selectedID
	next, ok := nextProblem(c.problems, current)
	c.mu.Unlock()

	if current == "" {
		return ErrNoProblemReady
	}
	if !ok {
		return ErrNoNextProblem
	}
	return c.SelectProblem(ctx, next, confirmer)
}

// guard 确认与权限校验阶段, 期间拒绝其它切换请求
func (c *Controller) guard(ctx context.Context, problemID string, confirmer Confirmer) (uint64, navState, error) {
	defer c.navigating.Store(false)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, navState{}, ErrSessionClosed
	}
	if !containsProblem(c.problems, problemID) {
		c.mu.Unlock()
		return 0, navState{}, ErrProblemNotFound
	}
	dirty := c.dirty
	c.mu.Unlock()

	if dirty {
		if err := c.confirm(ctx, confirmer, PromptDiscardChanges); err != nil {
			return 0, navState{}, err
		}
	}

	if err := c.api.CheckAccess(ctx, c.eventID); err != nil {
		c.denyAccess(ctx, err)
		return 0, navState{}, fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, navState{}, ErrSessionClosed
	}
	gen, prev := c.beginLoadLocked(problemID)
	// 用户已确认放弃修改, 加载期间再次切换不再询问; 加载失败时随 prev 恢复
	c.dirty = false
	return gen, prev, nil
}

func (c *Controller) confirm(ctx context.Context, confirmer Confirmer, prompt string) error {
	if confirmer == nil {
		return &NotConfirmedError{Prompt: prompt}
	}
	ok, err := confirmer.Confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("confirm failed: %w", err)
	}
	if !ok {
		return &NotConfirmedError{Prompt: prompt}
	}
	return nil
}

// navState 切换前的状态, 拉取失败时回滚
type navState struct {
	state      model.NavState
	selectedID string
	problem    *model.ProblemDetail
	code       string
	dirty      bool
	editSeq    uint64
	pane       model.Pane
	result     *model.ExecutionResult
}

// beginLoadLocked 进入 Loading; 连续切换时回滚目标始终是最后一个稳定状态
func (c *Controller) beginLoadLocked(problemID string) (uint64, navState) {
	if c.state != model.NavStateLoading {
		c.settled = navState{
			state:      c.state,
			selectedID: c.selectedID,
			problem:    c.problem,
			code:       c.code,
			dirty:      c.dirty,
			pane:       c.pane,
			result:     c.result,
		}
	}
	c.generation++
	c.state = model.NavStateLoading
	c.selectedID = problemID
	return c.generation, c.settled
}

// load 拉取题目详情并初始化编辑器; 过期的响应直接丢弃
func (c *Controller) load(ctx context.Context, gen uint64, problemID string, prev navState) error {
	ctx = loggerv2.ContextWithFields(ctx, logger.String("problem_id", problemID))

	detail, err := c.api.GetProblem(ctx, c.eventID, problemID)
	if err != nil {
		c.mu.Lock()
		current := gen == c.generation
		if current {
			c.state = prev.state
			c.selectedID = prev.selectedID
			c.problem = prev.problem
			c.code = prev.code
			c.dirty = prev.dirty
			c.pane = prev.pane
			c.result = prev.result
		}
		c.mu.Unlock()

		if !current {
			return ErrSuperseded
		}
		if errors.Is(err, client.ErrAccessDenied) {
			c.denyAccess(ctx, err)
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
		c.log.ErrorContext(ctx, "fetch problem failed", logger.Error(err))
		c.presenter.Notify(ctx, c.eventID, Notice{Level: NoticeError, Message: "Failed to load problem."})
		return fmt.Errorf("SelectProblem failed at get problem: %w", err)
	}

	c.mu.Lock()
	language := c.language
	c.mu.Unlock()
	code, fromDraft := c.seed(ctx, problemID, detail, language)

	c.mu.Lock()
	if gen != c.generation || c.closed {
		c.mu.Unlock()
		c.log.DebugContext(ctx, "drop stale problem response")
		return ErrSuperseded
	}
	// 加载期间切换了语言, 初始代码按新语言重新取
	if !fromDraft && c.language != language {
		language = c.language
		code, _ = detail.StarterCode.Resolve(language)
	}
	c.problem = detail
	c.code = code
	c.dirty = false
	c.result = nil
	c.pane = model.PaneDescription
	c.state = model.NavStateReady
	c.mu.Unlock()

	c.publisher.Publish(ctx, &event.SessionMessage{
		Type:      event.SessionProblemSelected,
		EventID:   c.eventID,
		ProblemID: problemID,
		Language:  language,
	})
	return nil
}

// seed 编辑器初始内容: 本地草稿 > 对应语言的初始代码 > 空
func (c *Controller) seed(ctx context.Context, problemID string, detail *model.ProblemDetail, language string) (string, bool) {
	text, ok, err := c.drafts.Load(ctx, c.eventID, problemID)
	if err != nil {
		c.log.WarnContext(ctx, "load draft failed", logger.Error(err))
	} else if ok {
		return text, true
	}
	starter, _ := detail.StarterCode.Resolve(language)
	return starter, false
}

func (c *Controller) denyAccess(ctx context.Context, cause error) {
	c.log.WarnContext(ctx, "contest access denied", logger.Error(cause))

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.presenter.Notify(ctx, c.eventID, Notice{
		Level:   NoticeError,
		Message: "Access denied: you are no longer allowed to participate in this contest.",
	})
	c.presenter.Redirect(ctx, c.eventID, c.arenaPath)
	c.publisher.Publish(ctx, &event.SessionMessage{
		Type:    event.SessionAccessDenied,
		EventID: c.eventID,
	})
}

// Edit 更新编辑器内容, 标记为未保存并写入草稿
func (c *Controller) Edit(ctx context.Context, code string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrSessionClosed
	}
	if c.state != model.NavStateReady {
		c.mu.Unlock()
		return ErrNoProblemReady
	}
	if code == c.code {
		c.mu.Unlock()
		return nil
	}
	c.code = code
	c.dirty = true
	c.editSeq++
	pending := pendingDraft{problemID: c.selectedID, code: code, seq: c.editSeq}
	c.mu.Unlock()

	c.persistDraft(ctx, pending)
	return nil
}

// pendingDraft 编辑时刻的题目与内容, 之后切换题目不影响这次写入
type pendingDraft struct {
	problemID string
	code      string
	seq       uint64
}

// persistDraft 写入编辑时的内容, 已有更新的编辑写入时跳过; 失败只记录日志
func (c *Controller) persistDraft(ctx context.Context, d pendingDraft) {
	if c.eventID == "" || d.problemID == "" {
		return
	}

	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	if d.seq <= c.savedSeq[d.problemID] {
		return
	}
	if err := c.drafts.Save(ctx, c.eventID, d.problemID, d.code); err != nil {
		c.log.WarnContext(ctx, "save draft failed",
			logger.String("problem_id", d.problemID),
			logger.Error(err))
		return
	}
	c.savedSeq[d.problemID] = d.seq
}

// SetLanguage 切换语言; 编辑器内容仍是原语言的初始代码时替换为新语言的初始代码
func (c *Controller) SetLanguage(_ context.Context, language string) error {
	lang := model.NormalizeLanguage(language)
	if lang == "" {
		return ErrLanguageRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSessionClosed
	}
	old := c.language
	c.language = lang
	if c.state != model.NavStateReady || c.problem == nil || c.dirty || old == lang {
		return nil
	}
	oldStarter, _ := c.problem.StarterCode.Resolve(old)
	if c.code != oldStarter {
		return nil
	}
	c.code, _ = c.problem.StarterCode.Resolve(lang)
	return nil
}

func (c *Controller) SetPane(pane model.Pane) error {
	if !pane.Valid() {
		return ErrInvalidPane
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSessionClosed
	}
	c.pane = pane
	return nil
}

// execution 发起 run / submit 时的会话状态
type execution struct {
	gen       uint64
	problemID string
	problem   *model.ProblemDetail
	request   model.ExecutionRequest
}

func (c *Controller) beginExecution() (execution, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return execution{}, ErrSessionClosed
	}
	if c.state != model.NavStateReady || c.problem == nil {
		return execution{}, ErrNoProblemReady
	}
	return execution{
		gen:       c.generation,
		problemID: c.selectedID,
		problem:   c.problem,
		request:   model.ExecutionRequest{Code: c.code, Language: c.language},
	}, nil
}

// applyResult 题目未切换时才写回结果并切换到结果面板
func (c *Controller) applyResult(exec execution, result *model.ExecutionResult) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || exec.gen != c.generation || c.selectedID != exec.problemID {
		return false
	}
	c.result = result
	c.pane = model.PaneResult
	return true
}

// Run 运行样例; 没有测试用例时不发请求
func (c *Controller) Run(ctx context.Context) (*model.ExecutionResult, error) {
	exec, err := c.beginExecution()
	if err != nil {
		return nil, err
	}
	ctx = loggerv2.ContextWithFields(ctx, logger.String("problem_id", exec.problemID))

	if len(exec.problem.TestCases) == 0 {
		c.presenter.Notify(ctx, c.eventID, Notice{Level: NoticeInfo, Message: "This problem has no test cases to run."})
		return nil, ErrNoTestCases
	}
	if !c.executing.CompareAndSwap(false, true) {
		return nil, ErrExecutionInFlight
	}
	defer c.executing.Store(false)

	cases, err := c.api.Run(ctx, c.eventID, exec.problemID, exec.request)
	if err != nil {
		c.log.ErrorContext(ctx, "run code failed", logger.Error(err))
		c.presenter.Notify(ctx, c.eventID, Notice{Level: NoticeError, Message: "Run failed. Please try again."})
		return nil, fmt.Errorf("Run failed at execute: %w", err)
	}

	run := AggregateRun(cases)
	result := &model.ExecutionResult{Type: model.ResultTypeRun, Run: run}
	if !c.applyResult(exec, result) {
		c.log.InfoContext(ctx, "run result not applied, problem switched")
	}

	passed := 0
	for _, r := range cases {
		if r.Passed() {
			passed++
		}
	}
	status := "PASSED"
	if run.ExitCode != 0 {
		status = "FAILED"
	}
	c.record(ctx, &model.Attempt{
		EventID:   c.eventID,
		ProblemID: exec.problemID,
		Type:      model.ResultTypeRun,
		Language:  exec.request.Language,
		Code:      exec.request.Code,
		Status:    status,
		Passed:    passed,
		Total:     len(cases),
		Accepted:  run.ExitCode == 0,
	})
	c.publisher.Publish(ctx, &event.SessionMessage{
		Type:      event.SessionRun,
		EventID:   c.eventID,
		ProblemID: exec.problemID,
		Language:  exec.request.Language,
		Status:    status,
		Passed:    passed,
		Total:     len(cases),
	})
	return result, nil
}

// Submit 提交评测, Accepted 时给出下一题或完成状态
func (c *Controller) Submit(ctx context.Context) (*model.ExecutionResult, error) {
	exec, err := c.beginExecution()
	if err != nil {
		return nil, err
	}
	ctx = loggerv2.ContextWithFields(ctx, logger.String("problem_id", exec.problemID))

	if !c.executing.CompareAndSwap(false, true) {
		return nil, ErrExecutionInFlight
	}
	defer c.executing.Store(false)

	resp, err := c.api.Submit(ctx, c.eventID, exec.problemID, exec.request)
	if err != nil {
		c.log.ErrorContext(ctx, "submit code failed", logger.Error(err))
		c.presenter.Notify(ctx, c.eventID, Notice{Level: NoticeError, Message: "Submission failed. Please try again."})
		return nil, fmt.Errorf("Submit failed at execute: %w", err)
	}

	c.mu.Lock()
	problems := c.problems
	c.mu.Unlock()
	submit := MapSubmit(resp, problems, exec.problemID)
	result := &model.ExecutionResult{Type: model.ResultTypeSubmit, Submit: submit}
	if !c.applyResult(exec, result) {
		c.log.InfoContext(ctx, "submit result not applied, problem switched")
	}

	level := NoticeWarn
	if submit.Success() {
		level = NoticeSuccess
	}
	c.presenter.Notify(ctx, c.eventID, Notice{
		Level:   level,
		Message: fmt.Sprintf("%s (%d/%d)", submit.Caption, submit.Passed, submit.Total),
	})

	c.record(ctx, &model.Attempt{
		EventID:   c.eventID,
		ProblemID: exec.problemID,
		Type:      model.ResultTypeSubmit,
		Language:  exec.request.Language,
		Code:      exec.request.Code,
		Status:    submit.Status,
		Passed:    submit.Passed,
		Total:     submit.Total,
		Accepted:  submit.Success(),
	})
	c.publisher.Publish(ctx, &event.SessionMessage{
		Type:      event.SessionSubmit,
		EventID:   c.eventID,
		ProblemID: exec.problemID,
		Language:  exec.request.Language,
		Status:    submit.Status,
		Passed:    submit.Passed,
		Total:     submit.Total,
	})
	return result, nil
}

func (c *Controller) record(ctx context.Context, attempt *model.Attempt) {
	if err := c.journal.Record(ctx, attempt); err != nil {
		c.log.WarnContext(ctx, "record attempt failed", logger.Error(err))
	}
}

// RequestExit 退出比赛; 有未保存修改时需要确认, 拒绝则会话保持不变
func (c *Controller) RequestExit(ctx context.Context, confirmer Confirmer) (bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return true, nil
	}
	dirty := c.dirty
	c.mu.Unlock()

	if dirty {
		if err := c.confirm(ctx, confirmer, PromptExit); err != nil {
			return false, err
		}
	}

	c.mu.Lock()
	c.closed = true
	problemID := c.selectedID
	c.mu.Unlock()

	c.presenter.Redirect(ctx, c.eventID, c.arenaPath)
	c.publisher.Publish(ctx, &event.SessionMessage{
		Type:      event.SessionExit,
		EventID:   c.eventID,
		ProblemID: problemID,
	})
	c.log.InfoContext(ctx, "session exited")
	return true, nil
}

// ShouldWarnOnUnload 关闭或刷新页面前是否需要提示
func (c *Controller) ShouldWarnOnUnload() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty && !c.closed
}

// Close 直接销毁会话, 不做任何确认
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) ArenaPath() string {
	return c.arenaPath
}

func (c *Controller) Snapshot() model.SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := model.SessionSnapshot{
		EventID:           c.eventID,
		Event:             c.event,
		Problems:          append([]model.ProblemSummary(nil), c.problems...),
		State:             c.state,
		SelectedProblemID: c.selectedID,
		Language:          c.language,
		Code:              c.code,
		Dirty:             c.dirty,
		Pane:              c.pane,
		Result:            c.result,
		Navigating:        c.navigating.Load(),
		Executing:         c.executing.Load(),
	}
	if c.state == model.NavStateReady && c.problem != nil {
		snap.Problem = c.problem
		snap.VisibleTestCases = c.problem.VisibleTestCases()
	}
	return snap
}

func containsProblem(problems []model.ProblemSummary, problemID string) bool {
	for _, p := range problems {
		if p.ID == problemID {
			return true
		}
	}
	return false
}
