package identity

import "strings"

// Canonical normalizes the spelling variants a user identity can arrive in.
// Legacy records carry the super-admin account as both "SuperAdmin" and
// "Super Admin"; every comparison boundary (connect, dispatch match, durable
// store lookup) must go through this function so the two spellings resolve to
// the same account. All other identities pass through unchanged apart from
// surrounding whitespace; matching stays case-sensitive.
func Canonical(id string) string {
	id = strings.TrimSpace(id)
	if strings.EqualFold(strings.ReplaceAll(id, " ", ""), "superadmin") {
		return "SuperAdmin"
	}
	return id
}

// CanonicalAll maps Canonical over a list, dropping empties.
func CanonicalAll(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if c := Canonical(id); c != "" {
			out = append(out, c)
		}
	}
	return out
}
