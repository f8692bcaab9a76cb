// Package judge is the verdict source the scoring evaluator delegates to.
// It grades one test case per call; a real sandboxed executor and the
// in-process stub are interchangeable behind Client.
package judge

import "context"

type Verdict string

const (
	VerdictPassed            Verdict = "passed"
	VerdictWrongAnswer       Verdict = "wrong_answer"
	VerdictTimeLimitExceeded Verdict = "time_limit_exceeded"
	VerdictRuntimeError      Verdict = "runtime_error"
	VerdictInternalError     Verdict = "internal_error"
)

type Request struct {
	SourceCode       string `json:"source_code"`
	Language         string `json:"language"`
	Stdin            string `json:"stdin"`
	ExpectedOutput   string `json:"expected_output"`
	TimeLimitSeconds int    `json:"time_limit_seconds"`
	MemoryLimitBytes int64  `json:"memory_limit_bytes"`
}

type Client interface {
	Judge(ctx context.Context, req Request) (Verdict, error)
}
