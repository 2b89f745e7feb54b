package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
)

const maxAuditedQuestionLen = 2000

// AuditWriter defines how audit records are persisted.
type AuditWriter interface {
	WriteAskAudit(question, outcome string, durationMS int64, ip, userAgent string) error
}

// AskAuditMiddleware records every handled question with its outcome and
// duration. The question text is kept for internal diagnostics only; it is
// never echoed back to the caller.
func AskAuditMiddleware(writer AuditWriter) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		// Capture request data BEFORE handler execution (Fiber reuses context objects)
		question := string(c.Body())
		if len(question) > maxAuditedQuestionLen {
			question = question[:maxAuditedQuestionLen]
		}
		ip := c.IP()
		userAgent := c.Get("User-Agent")

		err := c.Next()

		outcome := "answered"
		if err != nil || c.Response().StatusCode() >= 400 {
			outcome = "failed"
		}
		durationMS := time.Since(start).Milliseconds()

		// Write asynchronously — all values are captured, safe to use in goroutine
		go func() {
			if writeErr := writer.WriteAskAudit(question, outcome, durationMS, ip, userAgent); writeErr != nil {
				slog.Error("failed to write ask audit", "error", writeErr)
			}
		}()

		return err
	}
}
