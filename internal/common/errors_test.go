package common_test

import (
	"fmt"
	"net/http"
	"testing"

	"contesthub/internal/common"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"contest not found", common.ErrContestNotFound, http.StatusNotFound},
		{"question not found", common.ErrQuestionNotFound, http.StatusNotFound},
		{"unauthenticated", common.ErrUnauthenticated, http.StatusUnauthorized},
		{"contest not active", common.ErrContestNotActive, http.StatusForbidden},
		{"creator forbidden", common.ErrCreatorForbidden, http.StatusForbidden},
		{"validation", common.ErrInvalidRequest, http.StatusBadRequest},
		{"already submitted", common.ErrAlreadySubmitted, http.StatusConflict},
		{"email taken", common.ErrEmailTaken, http.StatusConflict},
		{"wrapped coded error", fmt.Errorf("submit mcq: %w", common.ErrAlreadySubmitted), http.StatusConflict},
		{"unique violation from the driver", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, http.StatusInternalServerError},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := common.HTTPStatusFromError(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded error", common.ErrContestNotActive, "CONTEST_NOT_ACTIVE"},
		{"wrapped coded error", fmt.Errorf("admit: %w", common.ErrContestNotFound), "CONTEST_NOT_FOUND"},
		{"bare sentinel", common.ErrNotFound, "INTERNAL_ERROR"},
		{"unknown error", fmt.Errorf("boom"), "INTERNAL_ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := common.CodeFromError(tc.err); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
