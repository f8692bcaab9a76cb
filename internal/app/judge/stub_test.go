package judge_test

import (
	"context"
	"testing"

	"contesthub/internal/app/judge"
)

func TestStubClientVerdicts(t *testing.T) {
	client := judge.NewStubClient()

	tests := []struct {
		name     string
		code     string
		expected string
		want     judge.Verdict
	}{
		{"panic means runtime error", "func main() { panic(1) }", "42", judge.VerdictRuntimeError},
		{"throw means runtime error", "throw new Error()", "42", judge.VerdictRuntimeError},
		{"busy loop times out", "while(true) {}", "42", judge.VerdictTimeLimitExceeded},
		{"sleep times out", "sleep(1000)", "42", judge.VerdictTimeLimitExceeded},
		{"contains expected output passes", "print(42)", "42", judge.VerdictPassed},
		{"wrong output", "print(41)", "42", judge.VerdictWrongAnswer},
		{"empty expected output never passes by accident", "print(anything)", "", judge.VerdictWrongAnswer},
		{"runtime error beats matching output", "panic(42)", "42", judge.VerdictRuntimeError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := client.Judge(context.Background(), judge.Request{SourceCode: tc.code, ExpectedOutput: tc.expected})
			if err != nil {
				t.Fatalf("judge failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
