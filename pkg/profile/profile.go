// Package profile holds the open attribute bag attached to an identity.
// Its shape depends on the account role (youth carries fullName/nationalId,
// employers orgName/kraPin, and so on); the bag itself enforces no
// cross-field rules.
package profile

// Profile is a role-shaped key-value bag. Values survive a JSON round-trip,
// so consumers should expect strings, numbers, bools, and nested maps.
type Profile map[string]any

// Merge returns a copy of p with keys from partial overwriting same-named
// keys. Keys absent from partial are retained untouched; the merge is
// shallow, nested maps are replaced wholesale.
func (p Profile) Merge(partial Profile) Profile {
	merged := p.Clone()
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy so callers can mutate without aliasing the
// stored bag.
func (p Profile) Clone() Profile {
	clone := make(Profile, len(p))
	for k, v := range p {
		clone[k] = v
	}
	return clone
}

// String extracts a string attribute.
// Returns empty string if the key is absent or the value is not a string.
func (p Profile) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}
