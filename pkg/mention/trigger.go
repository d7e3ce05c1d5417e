package mention

// The opening brace of the token syntax doubles as the live-typing trigger:
// there is no separate mention glyph.

// TriggerIndex scans backward from cursor for the nearest unterminated
// trigger character on the current line. It returns -1 when the cursor is
// not inside a potential mention: no trigger on this line, the nearest
// trigger already closed, or whitespace between trigger and cursor.
func TriggerIndex(text string, cursor int) int {
	if cursor < 0 || cursor > len(text) {
		return -1
	}
	for i := cursor - 1; i >= 0; i-- {
		switch text[i] {
		case '{':
			return i
		case '}', '\n', ' ', '\t':
			return -1
		}
	}
	return -1
}

// Detect inspects the cursor position and reports the in-progress mention
// query, i.e. the span between an unterminated trigger and the cursor.
// ok is false when no suggestion popup should be open.
func Detect(text string, cursor int) (query string, ok bool) {
	i := TriggerIndex(text, cursor)
	if i < 0 {
		return "", false
	}
	return text[i+1 : cursor], true
}
