package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

type auditRecord struct {
	question string
	outcome  string
}

type fakeAuditWriter struct {
	records chan auditRecord
}

func (f *fakeAuditWriter) WriteAskAudit(question, outcome string, durationMS int64, ip, userAgent string) error {
	f.records <- auditRecord{question: question, outcome: outcome}
	return nil
}

func (f *fakeAuditWriter) wait(t *testing.T) auditRecord {
	t.Helper()
	select {
	case rec := <-f.records:
		return rec
	case <-time.After(time.Second):
		t.Fatal("audit record was never written")
		return auditRecord{}
	}
}

func TestAskAuditRecordsOutcome(t *testing.T) {
	writer := &fakeAuditWriter{records: make(chan auditRecord, 1)}

	app := fiber.New()
	app.Use(AskAuditMiddleware(writer))
	app.Post("/ask", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"result": 3})
	})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"how many videos"}`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("Test() error = %v", err)
	}

	rec := writer.wait(t)
	if rec.outcome != "answered" {
		t.Fatalf("outcome = %q, want answered", rec.outcome)
	}
	if !strings.Contains(rec.question, "how many videos") {
		t.Fatalf("question = %q", rec.question)
	}
}

func TestAskAuditRecordsFailure(t *testing.T) {
	writer := &fakeAuditWriter{records: make(chan auditRecord, 1)}

	app := fiber.New()
	app.Use(AskAuditMiddleware(writer))
	app.Post("/ask", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "nope"})
	})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("Test() error = %v", err)
	}

	if rec := writer.wait(t); rec.outcome != "failed" {
		t.Fatalf("outcome = %q, want failed", rec.outcome)
	}
}
