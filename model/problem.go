package model

import (
	"bytes"
	"strings"

	json "github.com/bytedance/sonic"
)

// ProblemSummary 比赛题目列表项, 会话内只拉取一次
type ProblemSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Order      int    `json:"order"`
	Difficulty string `json:"difficulty,omitempty"`
	Points     int    `json:"points,omitempty"`
}

type ProblemListResponse struct {
	Problems []ProblemSummary `json:"problems"`
}

// TestCase 题目测试用例, IsHidden 为 true 的用例不展示给用户
type TestCase struct {
	Input    string `json:"input"`
	Output   string `json:"output"`
	IsHidden bool   `json:"isHidden"`
}

// ProblemDetail 题目详情, 每次选中题目时重新完整拉取
type ProblemDetail struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Difficulty  string      `json:"difficulty"`
	Points      int         `json:"points"`
	TimeLimit   float64     `json:"timeLimit"`   // 单位: 秒
	MemoryLimit int         `json:"memoryLimit"` // 单位: MB
	Constraints string      `json:"constraints"`
	Description string      `json:"description"`
	StarterCode StarterCode `json:"starterCode"`
	TestCases   []TestCase  `json:"testCases"`
}

// VisibleTestCases 返回可以展示给用户的样例
func (p *ProblemDetail) VisibleTestCases() []TestCase {
	visible := make([]TestCase, 0, len(p.TestCases))
	for _, tc := range p.TestCases {
		if !tc.IsHidden {
			visible = append(visible, tc)
		}
	}
	return visible
}

type StarterCodeKind string

const (
	StarterCodeNone       StarterCodeKind = ""
	StarterCodeByLanguage StarterCodeKind = "byLanguage"
	StarterCodePlain      StarterCodeKind = "plain"
)

// StarterCode 初始代码, 后端既可能下发 {lang: code} 映射, 也可能下发 JSON 字符串或纯文本
type StarterCode struct {
	Kind       StarterCodeKind
	ByLanguage map[string]string
	Text       string
}

func NewStarterCodeByLanguage(m map[string]string) StarterCode {
	normalized := make(map[string]string, len(m))
	for lang, code := range m {
		normalized[NormalizeLanguage(lang)] = code
	}
	return StarterCode{Kind: StarterCodeByLanguage, ByLanguage: normalized}
}

func NewPlainStarterCode(text string) StarterCode {
	return StarterCode{Kind: StarterCodePlain, Text: text}
}

// Resolve 按语言取初始代码, 纯文本形式与语言无关
func (s StarterCode) Resolve(language string) (string, bool) {
	switch s.Kind {
	case StarterCodeByLanguage:
		code, ok := s.ByLanguage[NormalizeLanguage(language)]
		return code, ok
	case StarterCodePlain:
		return s.Text, true
	}
	return "", false
}

func (s *StarterCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = StarterCode{}
		return nil
	}

	if data[0] == '{' {
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*s = NewStarterCodeByLanguage(m)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	// 数据库里存的是 JSON 字符串形式的映射
	if trimmed := strings.TrimSpace(text); strings.HasPrefix(trimmed, "{") {
		var m map[string]string
		if err := json.UnmarshalString(trimmed, &m); err == nil {
			*s = NewStarterCodeByLanguage(m)
			return nil
		}
	}
	if text == "" {
		*s = StarterCode{}
		return nil
	}
	*s = NewPlainStarterCode(text)
	return nil
}

func (s StarterCode) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case StarterCodeByLanguage:
		return json.Marshal(s.ByLanguage)
	case StarterCodePlain:
		return json.Marshal(s.Text)
	}
	return []byte("null"), nil
}

// NormalizeLanguage 统一语言标识, 例如 "C++" / "CPP" -> "cpp"
func NormalizeLanguage(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch l {
	case "c++", "cplusplus", "cpp17", "cpp20":
		return "cpp"
	case "py", "python3":
		return "python"
	case "js", "node", "nodejs":
		return "javascript"
	}
	return l
}
