package service

import (
	"fmt"
	"strconv"

	"github.com/vidstats/vidstats/internal/domain"
	"github.com/vidstats/vidstats/internal/port"
)

// coerceScalar normalizes the cell read from the store into a number. An
// absent row or NULL cell means "no data" and coerces to zero. Numeric types
// pass through; text is parsed (lib/pq hands NUMERIC aggregates back as
// bytes). Anything unparsable means the generated query violated the output
// contract and must not be surfaced as a number.
func coerceScalar(res domain.ScalarResult) (float64, error) {
	if !res.Present || res.Value == nil {
		return 0, nil
	}

	switch v := res.Value.(type) {
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case []byte:
		return parseNumeric(string(v))
	case string:
		return parseNumeric(v)
	default:
		return 0, fmt.Errorf("%w: unexpected type %T", port.ErrNonNumericResult, res.Value)
	}
}

func parseNumeric(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", port.ErrNonNumericResult, s)
	}
	return f, nil
}
