package mention

import "strings"

// MaxSuggestions caps the popup so it never overwhelms the editor.
const MaxSuggestions = 6

// Match ranks candidates against a partial mention query: case-insensitive
// substring match on the display name, archived entities excluded. Input
// order is preserved (no secondary ranking), so repeated calls with the same
// input are deterministic. An empty query yields no suggestions rather than
// the whole collection.
func Match(candidates []Candidate, query string) []Candidate {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	out := make([]Candidate, 0, MaxSuggestions)
	for _, c := range candidates {
		if c.Archived {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}
