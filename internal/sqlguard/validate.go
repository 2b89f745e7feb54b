package sqlguard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vidstats/vidstats/internal/port"
)

// RejectionReason codes for validation failures.
const (
	ReasonMutationKeyword    = "mutation_keyword"
	ReasonMultipleStatements = "multiple_statements"
	ReasonNotReadOnly        = "not_read_only"
	ReasonMissingResultAlias = "missing_result_alias"
)

// ValidatedQuery is the only form of SQL the executor accepts. The sql field
// is unexported so a value can only be produced by Validate.
type ValidatedQuery struct {
	sql string
}

// SQL returns the validated query text.
func (q ValidatedQuery) SQL() string { return q.sql }

var (
	// Data- and schema-mutating keywords, matched on token boundaries so a
	// legitimate identifier that merely contains one as an infix (updated_at,
	// delta_views_count) does not trip the gate.
	mutationRE = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|truncate|create|grant|revoke|merge|copy)\b`)

	lineCommentRE  = regexp.MustCompile(`--[^\n]*`)
	blockCommentRE = regexp.MustCompile(`(?s)/\*.*?\*/`)

	resultAliasRE = regexp.MustCompile(`(?i)\bas\s+result\b`)
)

// Validate applies the read-only safety policy to a candidate query. It is
// pure: no I/O, no state, same verdict for the same input. A non-nil error
// always wraps port.ErrValidationRejected and names the reason code.
//
// The single-scalar contract is only half-checkable here (the alias); the
// executor enforces the one-row, one-column half at runtime. Matching is
// textual, not a grammar parse — keywords smuggled through exotic quoting
// would need a real SQL parser to catch, so the policy stays conservative.
func Validate(candidate string) (ValidatedQuery, error) {
	// Comments are stripped before matching so a blocked keyword cannot hide
	// inside one and so commented-out text cannot cause a false reject.
	stripped := blockCommentRE.ReplaceAllString(candidate, " ")
	stripped = lineCommentRE.ReplaceAllString(stripped, " ")
	stripped = strings.TrimSpace(stripped)

	if m := mutationRE.FindString(stripped); m != "" {
		return ValidatedQuery{}, reject(ReasonMutationKeyword, strings.ToLower(m))
	}

	if i := strings.Index(stripped, ";"); i >= 0 && strings.TrimSpace(stripped[i+1:]) != "" {
		return ValidatedQuery{}, reject(ReasonMultipleStatements, "statement after terminator")
	}

	first := leadingKeyword(stripped)
	if first != "select" && first != "with" {
		return ValidatedQuery{}, reject(ReasonNotReadOnly, fmt.Sprintf("leading keyword %q", first))
	}

	if n := len(resultAliasRE.FindAllString(stripped, -1)); n != 1 {
		return ValidatedQuery{}, reject(ReasonMissingResultAlias, fmt.Sprintf("%d result aliases", n))
	}

	return ValidatedQuery{sql: stripped}, nil
}

func reject(reason, detail string) error {
	return fmt.Errorf("%w: %s (%s)", port.ErrValidationRejected, reason, detail)
}

func leadingKeyword(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
