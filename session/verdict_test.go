package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/to404hanga/codestudio_arena/model"
)

func TestMapSubmit(t *testing.T) {
	problems := []model.ProblemSummary{{ID: "p1", Order: 1}, {ID: "p2", Order: 2}}

	testCases := []struct {
		name        string
		status      string
		problemID   string
		wantClass   model.VerdictClass
		wantCaption string
		wantSuccess bool
		wantNext    string
		wantDone    bool
	}{
		{
			name:        "accepted offers next problem",
			status:      "ACCEPTED",
			problemID:   "p1",
			wantClass:   model.VerdictClassAccepted,
			wantCaption: "Accepted",
			wantSuccess: true,
			wantNext:    "p2",
		},
		{
			name:        "accepted on last problem completes",
			status:      "accepted",
			problemID:   "p2",
			wantClass:   model.VerdictClassAccepted,
			wantCaption: "Accepted",
			wantSuccess: true,
			wantDone:    true,
		},
		{
			name:        "WA is wrong answer",
			status:      "WA",
			problemID:   "p1",
			wantClass:   model.VerdictClassWrongAnswer,
			wantCaption: "Wrong Answer",
		},
		{
			name:        "WRONG_ANSWER is wrong answer",
			status:      "WRONG_ANSWER",
			problemID:   "p1",
			wantClass:   model.VerdictClassWrongAnswer,
			wantCaption: "Wrong Answer",
		},
		{
			name:        "REJECTED is wrong answer",
			status:      "REJECTED",
			problemID:   "p1",
			wantClass:   model.VerdictClassWrongAnswer,
			wantCaption: "Wrong Answer",
		},
		{
			name:        "unknown verdict passes through",
			status:      "TLE",
			problemID:   "p1",
			wantClass:   model.VerdictClassOther,
			wantCaption: "Verdict: TLE",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapSubmit(&model.SubmitResponse{
				Status:          tc.status,
				TestCasesPassed: 2,
				TotalTestCases:  5,
			}, problems, tc.problemID)

			assert.Equal(t, tc.wantClass, got.Class)
			assert.Equal(t, tc.wantCaption, got.Caption)
			assert.Equal(t, tc.wantSuccess, got.Success())
			assert.Equal(t, tc.wantNext, got.NextProblemID)
			assert.Equal(t, tc.wantDone, got.Completed)
			assert.Equal(t, 2, got.Passed)
			assert.Equal(t, 5, got.Total)
		})
	}
}

func TestMapSubmitFallsBackToVerdict(t *testing.T) {
	got := MapSubmit(&model.SubmitResponse{Verdict: "MEMORY_LIMIT_EXCEEDED"}, nil, "p1")
	assert.Equal(t, model.VerdictClassOther, got.Class)
	assert.Equal(t, "Verdict: MEMORY_LIMIT_EXCEEDED", got.Caption)
	assert.False(t, got.Completed)
}

func TestAggregateRun(t *testing.T) {
	run := AggregateRun([]model.CaseResult{
		{Input: "1 2", Expected: "3", Actual: "3", Status: "PASSED"},
		{Input: "2 2", Expected: "4", Actual: "5", Status: "FAILED", Stderr: "warning: overflow"},
	})

	assert.Equal(t, "Case 1: PASSED\nInput:\n1 2\nExpected:\n3\nActual:\n3\n"+
		"\nCase 2: FAILED\nInput:\n2 2\nExpected:\n4\nActual:\n5\n", run.Stdout)
	assert.Equal(t, "Case 2:\nwarning: overflow", run.Stderr)
	assert.Equal(t, 1, run.ExitCode)

	allPassed := AggregateRun([]model.CaseResult{{Status: "ACCEPTED"}, {Status: "ok"}})
	assert.Equal(t, 0, allPassed.ExitCode)
	assert.Empty(t, allPassed.Stderr)
}
