package constants

const (
	HeaderRequestIDKey = "X-Request-ID"
	HeaderUserAgentKey = "User-Agent"
)

const ServiceName = "CodeStudio-Arena"

// 未配置时使用的默认值
const (
	DefaultArenaPath = "/arena"
	DefaultLanguage  = "cpp"
)
