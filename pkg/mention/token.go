package mention

import (
	"regexp"
	"strings"
)

// Reference token syntax, as persisted inside note content:
//
//	{person:42}  {habit:h9}  {project:q3-launch}
//
// The type tag is the entity type lower-cased; the id is an opaque
// identifier (letters, digits, hyphen, underscore). Note content stores the
// reference, never the display name, so renames stay consistent.
var tokenPattern = regexp.MustCompile(`\{(\w+):([a-zA-Z0-9_-]+)\}`)

// Candidate is the minimal entity projection the mention pipeline needs.
type Candidate struct {
	Id       string
	Name     string
	Icon     string
	TypeTag  string // entity type, e.g. "habit"
	Archived bool
}

// Token renders the candidate's persisted reference syntax.
func (c Candidate) Token() string {
	return "{" + strings.ToLower(c.TypeTag) + ":" + c.Id + "}"
}

// Resolver maps a reference id to its display attributes.
type Resolver func(id string) (Candidate, bool)

// ToStorage converts display text to the persisted form. The edit buffer's
// native format is the storage format (tokens are typed directly), so this
// is a pass-through; it exists as a named seam should the two ever diverge.
func ToStorage(display string) string {
	return display
}

// ToDisplay rewrites every resolvable reference token as "<icon> <name>"
// (icon omitted when absent) in a single left-to-right pass. Tokens whose id
// does not resolve, and any substring not matching the exact token syntax,
// are left verbatim. Malformed input never fails.
func ToDisplay(storage string, resolve Resolver) string {
	if resolve == nil {
		return storage
	}
	return tokenPattern.ReplaceAllStringFunc(storage, func(tok string) string {
		m := tokenPattern.FindStringSubmatch(tok)
		c, ok := resolve(m[2])
		if !ok {
			return tok
		}
		if c.Icon != "" {
			return c.Icon + " " + c.Name
		}
		return c.Name
	})
}

// Tokens returns the (typeTag, id) pairs of every reference token in the
// storage text, in order of occurrence.
func Tokens(storage string) []Candidate {
	matches := tokenPattern.FindAllStringSubmatch(storage, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, Candidate{TypeTag: m[1], Id: m[2]})
	}
	return refs
}
