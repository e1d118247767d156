package model

type NavState string

const (
	NavStateNoProblemSelected NavState = "no_problem_selected"
	NavStateLoading           NavState = "loading"
	NavStateReady             NavState = "ready"
)

// Pane 结果面板当前展示的标签页
type Pane string

const (
	PaneDescription Pane = "description"
	PaneResult      Pane = "result"
)

func (p Pane) Valid() bool {
	return p == PaneDescription || p == PaneResult
}

// SessionSnapshot 会话当前状态的只读快照
type SessionSnapshot struct {
	EventID           string           `json:"event_id"`
	Event             *Event           `json:"event,omitempty"`
	Problems          []ProblemSummary `json:"problems"`
	State             NavState         `json:"state"`
	SelectedProblemID string           `json:"selected_problem_id,omitempty"`
	Problem           *ProblemDetail   `json:"problem,omitempty"`
	VisibleTestCases  []TestCase       `json:"visible_test_cases,omitempty"`
	Language          string           `json:"language"`
	Code              string           `json:"code"`
	Dirty             bool             `json:"dirty"`
	Pane              Pane             `json:"pane"`
	Result            *ExecutionResult `json:"result,omitempty"`
	Navigating        bool             `json:"navigating"`
	Executing         bool             `json:"executing"`
}

type OpenSessionParam struct {
	CommonParam `json:"-"`

	EventID  string `json:"event_id" binding:"required"`
	Language string `json:"language"`
}

type GetSessionParam struct {
	SessionCommonParam `json:",inline"`
}

type SelectProblemParam struct {
	SessionCommonParam `json:",inline"`

	ProblemID string `json:"problem_id" binding:"required"`
	Confirm   bool   `json:"confirm"`
}

type NextProblemParam struct {
	SessionCommonParam `json:",inline"`

	Confirm bool `json:"confirm"`
}

type EditCodeParam struct {
	SessionCommonParam `json:",inline"`

	Code string `json:"code"`
}

type SetLanguageParam struct {
	SessionCommonParam `json:",inline"`

	Language string `json:"language" binding:"required"`
}

type SetPaneParam struct {
	SessionCommonParam `json:",inline"`

	Pane Pane `json:"pane" binding:"required,oneof=description result"`
}

type RunCodeParam struct {
	SessionCommonParam `json:",inline"`
}

type RunCodeResponse struct {
	Ran    bool             `json:"ran"`
	Result *ExecutionResult `json:"result,omitempty"`
}

type SubmitCodeParam struct {
	SessionCommonParam `json:",inline"`
}

type ExitSessionParam struct {
	SessionCommonParam `json:",inline"`

	Confirm bool `json:"confirm"`
}

type ExitSessionResponse struct {
	Exited   bool   `json:"exited"`
	Redirect string `json:"redirect,omitempty"`
}

type BeforeUnloadParam struct {
	SessionCommonParam `json:",inline"`
}

type BeforeUnloadResponse struct {
	Warn bool `json:"warn"`
}

// ConfirmRequiredResponse 需要用户确认时返回的提示信息
type ConfirmRequiredResponse struct {
	Prompt string `json:"prompt"`
}

type GetAttemptListParam struct {
	SessionCommonParam `json:",inline"`

	Page     int `form:"page" binding:"required,min=1"`
	PageSize int `form:"page_size" binding:"required,min=10,max=100"`
}

type GetAttemptListResponse struct {
	List     []Attempt `json:"list"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

type ExportAttemptsParam struct {
	SessionCommonParam `json:",inline"`

	Format string `form:"format" binding:"required,oneof=csv xlsx"`
}
