package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vidstats/vidstats/internal/domain"
	"github.com/vidstats/vidstats/internal/port"
	"github.com/vidstats/vidstats/internal/sqlguard"
)

// ScalarExecutor runs a validated query and returns its single cell.
type ScalarExecutor interface {
	QueryScalar(ctx context.Context, q sqlguard.ValidatedQuery) (domain.ScalarResult, error)
}

// AnswerService turns a free-form question into one number: translate to SQL,
// extract, validate, execute, coerce. Every internal failure is logged with
// its cause and collapsed into port.ErrCannotAnswer — raw model output, query
// text and store errors stay on this side of the trust boundary.
type AnswerService struct {
	translator       port.SQLTranslator
	executor         ScalarExecutor
	translateTimeout time.Duration
	queryTimeout     time.Duration
}

// NewAnswerService creates a new answer service.
func NewAnswerService(translator port.SQLTranslator, executor ScalarExecutor, translateTimeout, queryTimeout time.Duration) *AnswerService {
	return &AnswerService{
		translator:       translator,
		executor:         executor,
		translateTimeout: translateTimeout,
		queryTimeout:     queryTimeout,
	}
}

// Answer handles one question end to end. The pipeline is strictly linear and
// holds no cross-request state; cancelling ctx aborts whichever of the two
// I/O stages (model call, store call) is in flight.
func (s *AnswerService) Answer(ctx context.Context, question string) (float64, error) {
	slog.Info("answering question", "model", s.translator.ModelName(), "question", question)

	tctx, cancel := context.WithTimeout(ctx, s.translateTimeout)
	defer cancel()

	raw, err := s.translator.GenerateSQL(tctx, question)
	if err != nil {
		return 0, s.fail("translate", err)
	}

	gen := domain.GeneratedQuery{Raw: raw, SQL: sqlguard.Extract(raw)}
	if gen.SQL == "" {
		return 0, s.fail("extract", port.ErrExtractionEmpty)
	}

	validated, err := sqlguard.Validate(gen.SQL)
	if err != nil {
		gen.Rejection = err.Error()
		slog.Warn("candidate rejected", "sql", oneline(gen.SQL), "reason", gen.Rejection)
		return 0, s.fail("validate", err)
	}
	gen.Accepted = true

	slog.Info("executing generated query", "sql", oneline(validated.SQL()))

	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.executor.QueryScalar(qctx, validated)
	if err != nil {
		return 0, s.fail("execute", err)
	}

	value, err := coerceScalar(result)
	if err != nil {
		return 0, s.fail("coerce", err)
	}

	slog.Info("question answered", "result", value)
	return value, nil
}

// fail logs the specific cause and returns the one opaque error the caller
// is allowed to see.
func (s *AnswerService) fail(stage string, err error) error {
	slog.Error("answer pipeline failed", "stage", stage, "error", err)
	return port.ErrCannotAnswer
}

func oneline(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
