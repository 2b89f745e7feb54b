package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/vidstats/vidstats/internal/domain"
	"github.com/vidstats/vidstats/internal/service"
	"github.com/vidstats/vidstats/internal/sqlguard"
)

type stubTranslator struct {
	completion string
	err        error
}

func (s *stubTranslator) ModelName() string { return "stub" }

func (s *stubTranslator) GenerateSQL(ctx context.Context, question string) (string, error) {
	return s.completion, s.err
}

type stubExecutor struct {
	result domain.ScalarResult
}

func (s *stubExecutor) QueryScalar(ctx context.Context, q sqlguard.ValidatedQuery) (domain.ScalarResult, error) {
	return s.result, nil
}

func newTestApp(tr *stubTranslator, ex *stubExecutor) *fiber.App {
	svc := service.NewAnswerService(tr, ex, time.Second, time.Second)
	app := fiber.New()
	NewAskHandler(svc).Register(app.Group("/api/v1"))
	return app
}

func askRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAskReturnsNumber(t *testing.T) {
	app := newTestApp(
		&stubTranslator{completion: "```sql\nSELECT COUNT(*) AS result FROM videos;\n```"},
		&stubExecutor{result: domain.ScalarResult{Value: int64(3), Present: true}},
	)

	resp, err := app.Test(askRequest(`{"question":"сколько всего видео есть в системе"}`))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Result float64 `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Result != 3 {
		t.Fatalf("result = %v, want 3", body.Result)
	}
}

func TestAskBlankQuestionRejected(t *testing.T) {
	app := newTestApp(&stubTranslator{}, &stubExecutor{})

	resp, err := app.Test(askRequest(`{"question":"   "}`))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAskFailureIsGeneric(t *testing.T) {
	// A rejected query must collapse to one generic message with no trace of
	// the model output or SQL.
	app := newTestApp(
		&stubTranslator{completion: "```sql\nDROP TABLE videos;\n```"},
		&stubExecutor{},
	)

	resp, err := app.Test(askRequest(`{"question":"drop the table"}`))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, leaked := range []string{"DROP", "videos", "sql"} {
		if strings.Contains(body.Error, leaked) {
			t.Errorf("error message leaks %q: %s", leaked, body.Error)
		}
	}
}
