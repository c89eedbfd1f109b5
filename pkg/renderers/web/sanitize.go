package web

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	snapshotPolicyOnce sync.Once
	snapshotPolicy     *bluemonday.Policy
)

func sanitizeSnapshot(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(snapshotSanitizer().Sanitize(trimmed))
}

// snapshotSanitizer allows only the markup snapshot.tmpl emits.
func snapshotSanitizer() *bluemonday.Policy {
	snapshotPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("section", "h3", "p", "div", "strong", "span")
		policy.AllowAttrs("class").Globally()
		policy.AllowDataAttributes()
		snapshotPolicy = policy
	})
	return snapshotPolicy
}
