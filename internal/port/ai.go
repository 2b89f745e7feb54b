package port

import "context"

// SQLTranslator abstracts the text-generation backend that turns a natural
// language question into SQL. Implementations target Mistral today; any
// chat-completions-compatible API can be added as another adapter and
// selected by configuration.
type SQLTranslator interface {
	// ModelName returns the identifier of the model being used.
	ModelName() string

	// GenerateSQL sends the question with the schema system prompt and
	// returns the raw completion text, untouched. It must not retry.
	GenerateSQL(ctx context.Context, question string) (string, error)
}
