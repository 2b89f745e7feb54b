// Package sqlguard turns an untrusted model completion into SQL the store is
// allowed to run: Extract pulls the candidate text out of the completion and
// Validate gates it against a deterministic read-only policy. Nothing reaches
// the store without passing through Validate.
package sqlguard

import (
	"regexp"
	"strings"
)

var sqlFenceRE = regexp.MustCompile("(?is)```sql(.*?)```")

// Extract pulls a single candidate query out of raw completion text. When the
// completion carries a ```sql fenced block the trimmed interior is returned;
// otherwise the trimmed whole text is. The fallback tolerates models that
// skip the fence, which means the result may still be conversational noise —
// Validate must not assume it is well-formed SQL.
func Extract(raw string) string {
	m := sqlFenceRE.FindStringSubmatch(raw)
	if m == nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(m[1])
}
