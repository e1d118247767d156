package constants

const (
	OpenSessionPath    = "/OpenSession"    // 打开比赛会话(进入比赛页面)
	GetSessionPath     = "/GetSession"     // 获取会话快照
	SelectProblemPath  = "/SelectProblem"  // 切换题目
	NextProblemPath    = "/NextProblem"    // 切换到下一题
	EditCodePath       = "/EditCode"       // 编辑代码
	SetLanguagePath    = "/SetLanguage"    // 切换语言
	SetPanePath        = "/SetPane"        // 切换结果面板
	RunCodePath        = "/RunCode"        // 运行样例
	SubmitCodePath     = "/SubmitCode"     // 提交评测
	ExitSessionPath    = "/ExitSession"    // 退出比赛
	BeforeUnloadPath   = "/BeforeUnload"   // 关闭页面前检查
	GetAttemptListPath = "/GetAttemptList" // 获取本地运行/提交记录
	ExportAttemptsPath = "/ExportAttempts" // 导出本地运行/提交记录
	WebsocketPath      = "/ws"             // 通知推送
	HealthPath         = "/health"
	MetricsPath        = "/metrics"
)

// CodeStudio 后端 API 路径
const (
	APIEventPath           = "/events/{eventId}"
	APIEventAccessPath     = "/events/{eventId}/access"
	APIContestProblemsPath = "/contests/{eventId}/problems"
	APIContestProblemPath  = "/contests/{eventId}/problems/{problemId}"
	APIRunPath             = "/contests/{eventId}/problems/{problemId}/run"
	APISubmitPath          = "/contests/{eventId}/problems/{problemId}/submit"
)
