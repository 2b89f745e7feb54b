package domain

// GeneratedQuery is the per-request record of one translation attempt: the
// raw model completion, the candidate SQL pulled out of it, and whether the
// candidate passed validation. A rejected candidate never reaches the store.
type GeneratedQuery struct {
	Raw       string `json:"raw"`
	SQL       string `json:"sql"`
	Accepted  bool   `json:"accepted"`
	Rejection string `json:"rejection,omitempty"`
}

// ScalarResult is the single cell read back from the store. Present is false
// when the query returned no rows, which is a defined absence (coerced to
// zero downstream), not an error.
type ScalarResult struct {
	Value   any
	Present bool
}
