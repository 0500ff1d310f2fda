package identity

import (
	"fmt"
	"strings"
	"time"

	"kaziid/pkg/domain"
)

const (
	domainNameLimit = 20
	domainSuffix    = ".ke"
)

// GenerateDomain derives the public domain handle for a new identity:
// the name lowercased and stripped to [a-z0-9], truncated to 20 runes,
// followed by the low-order four digits of the creation instant in
// milliseconds, under the fixed top-level suffix. Non-youth roles get a
// three-letter prefix.
//
// Deterministic given (name, role, instant). NOT globally unique: two
// signups sharing a name within the same millisecond collide. Uniqueness
// would need a collision-checked allocation against the directory.
func GenerateDomain(name string, role domain.Role, now time.Time) string {
	slug := slugify(name)
	if len(slug) > domainNameLimit {
		slug = slug[:domainNameLimit]
	}
	stamp := now.UnixMilli() % 10000
	return fmt.Sprintf("%s%s%04d%s", role.DomainPrefix(), slug, stamp, domainSuffix)
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
