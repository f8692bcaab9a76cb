package database

import "context"

// Schema is idempotent so `contesthub migrate` can run on every deploy.
// The unique keys on mcq_submissions and dsa_submissions are the final
// authority for one-submission-per-key; application locks only reduce
// contention on them.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id              UUID PRIMARY KEY,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    role            TEXT NOT NULL DEFAULT 'contestee',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contests (
    id          UUID PRIMARY KEY,
    slug        TEXT NOT NULL UNIQUE,
    creator_id  UUID NOT NULL REFERENCES users(id),
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_time  TIMESTAMPTZ NOT NULL,
    end_time    TIMESTAMPTZ NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    CHECK (start_time < end_time)
);

CREATE TABLE IF NOT EXISTS mcq_questions (
    id            UUID PRIMARY KEY,
    contest_id    UUID NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
    question_text TEXT NOT NULL,
    options       JSONB NOT NULL,
    correct_index INT NOT NULL,
    points        INT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS dsa_problems (
    id                 UUID PRIMARY KEY,
    contest_id         UUID NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
    slug               TEXT NOT NULL,
    title              TEXT NOT NULL,
    description        TEXT NOT NULL DEFAULT '',
    points             INT NOT NULL,
    time_limit_seconds INT NOT NULL,
    memory_limit_bytes BIGINT NOT NULL,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (contest_id, slug)
);

CREATE TABLE IF NOT EXISTS test_cases (
    id              UUID PRIMARY KEY,
    problem_id      UUID NOT NULL REFERENCES dsa_problems(id) ON DELETE CASCADE,
    input           TEXT NOT NULL,
    expected_output TEXT NOT NULL,
    is_hidden       BOOLEAN NOT NULL DEFAULT TRUE,
    sort_order      INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS mcq_submissions (
    id             UUID PRIMARY KEY,
    user_id        UUID NOT NULL REFERENCES users(id),
    question_id    UUID NOT NULL REFERENCES mcq_questions(id) ON DELETE CASCADE,
    selected_index INT NOT NULL,
    is_correct     BOOLEAN NOT NULL,
    points_earned  INT NOT NULL,
    submitted_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, question_id)
);

CREATE TABLE IF NOT EXISTS dsa_submissions (
    id                UUID PRIMARY KEY,
    user_id           UUID NOT NULL REFERENCES users(id),
    problem_id        UUID NOT NULL REFERENCES dsa_problems(id) ON DELETE CASCADE,
    code              TEXT NOT NULL,
    language          TEXT NOT NULL,
    status            TEXT NOT NULL,
    points_earned     INT NOT NULL,
    test_cases_passed INT NOT NULL,
    total_test_cases  INT NOT NULL,
    submitted_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, problem_id)
);
`

// Migrate applies the schema against the connected database.
func Migrate(ctx context.Context) error {
	_, err := DB.ExecContext(ctx, Schema)
	return err
}
