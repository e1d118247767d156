package session

import (
	"fmt"
	"strings"

	"github.com/to404hanga/codestudio_arena/model"
)

// ClassifyVerdict ACCEPTED 为成功; WRONG_ANSWER / WA / REJECTED 为答案错误; 其余原样展示
func ClassifyVerdict(label string) (model.VerdictClass, string) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "ACCEPTED":
		return model.VerdictClassAccepted, "Accepted"
	case "WRONG_ANSWER", "WA", "REJECTED":
		return model.VerdictClassWrongAnswer, "Wrong Answer"
	}
	return model.VerdictClassOther, fmt.Sprintf("Verdict: %s", label)
}

// MapSubmit 将 submit 响应转换为展示结果; problems 用于计算下一题
func MapSubmit(resp *model.SubmitResponse, problems []model.ProblemSummary, problemID string) *model.SubmitResult {
	label := resp.Status
	if strings.TrimSpace(label) == "" {
		label = resp.Verdict
	}
	class, caption := ClassifyVerdict(label)

	result := &model.SubmitResult{
		Status:  resp.Status,
		Verdict: resp.Verdict,
		Class:   class,
		Caption: caption,
		Passed:  resp.TestCasesPassed,
		Total:   resp.TotalTestCases,
	}
	if class == model.VerdictClassAccepted {
		if next, ok := nextProblem(problems, problemID); ok {
			result.NextProblemID = next
		} else {
			result.Completed = true
		}
	}
	return result
}

func nextProblem(problems []model.ProblemSummary, problemID string) (string, bool) {
	for i, p := range problems {
		if p.ID == problemID {
			if i+1 < len(problems) {
				return problems[i+1].ID, true
			}
			return "", false
		}
	}
	return "", false
}

// AggregateRun 按用例顺序拼接成一段输出, stderr 单独拼接; 全部通过时退出码为 0
func AggregateRun(results []model.CaseResult) *model.RunResult {
	var stdout, stderr strings.Builder
	exitCode := 0
	for i, r := range results {
		status := r.Status
		if status == "" {
			status = "UNKNOWN"
		}
		if !r.Passed() {
			exitCode = 1
		}
		if i > 0 {
			stdout.WriteString("\n")
		}
		fmt.Fprintf(&stdout, "Case %d: %s\nInput:\n%s\nExpected:\n%s\nActual:\n%s\n",
			i+1, status, r.Input, r.Expected, r.Actual)

		if r.Stderr != "" {
			if stderr.Len() > 0 {
				stderr.WriteString("\n")
			}
			fmt.Fprintf(&stderr, "Case %d:\n%s", i+1, r.Stderr)
		}
	}
	return &model.RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}
