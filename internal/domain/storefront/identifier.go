package storefront

import "strings"

// IdentifierCandidates expands a buyer-entered order identifier into the
// forms it may take upstream: exactly as given, with a leading "#" stripped,
// and with a leading "#" added. Duplicates are removed, order preserved.
// The expansion is idempotent: expanding any candidate yields the same set.
func IdentifierCandidates(identifier string) []string {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	bare := strings.TrimPrefix(trimmed, "#")
	candidates := []string{trimmed, bare, "#" + bare}

	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if c == "" || c == "#" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// MatchesIdentifier reports whether any candidate form equals the order's
// display number, alternate number or raw platform id, compared
// case-insensitively
func (o *Order) MatchesIdentifier(candidates []string) bool {
	for _, c := range candidates {
		if equalFold(c, o.OrderNumber) || equalFold(c, o.AltOrderNumber) || equalFold(c, o.PlatformOrderID) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	return b != "" && strings.EqualFold(a, b)
}
