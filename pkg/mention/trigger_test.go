package mention

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cursor    int
		wantQuery string
		wantOk    bool
	}{
		{
			name:   "no trigger before cursor",
			text:   "hello world",
			cursor: 5,
			wantOk: false,
		},
		{
			name:      "open trigger with partial query",
			text:      "hello {ru",
			cursor:    9,
			wantQuery: "ru",
			wantOk:    true,
		},
		{
			name:      "trigger just typed",
			text:      "hello {",
			cursor:    7,
			wantQuery: "",
			wantOk:    true,
		},
		{
			name:   "nearest trigger already closed",
			text:   "hello {person:42} more",
			cursor: 22,
			wantOk: false,
		},
		{
			name:   "whitespace ends the mention context",
			text:   "{run fast",
			cursor: 9,
			wantOk: false,
		},
		{
			name:      "closed token followed by open trigger",
			text:      "hello {person:42}{ru",
			cursor:    20,
			wantQuery: "ru",
			wantOk:    true,
		},
		{
			name:   "lookback stops at line start",
			text:   "{open\nsecondline",
			cursor: 16,
			wantOk: false,
		},
		{
			name:      "query may contain a colon",
			text:      "{habit:h",
			cursor:    8,
			wantQuery: "habit:h",
			wantOk:    true,
		},
		{
			name:   "cursor inside closed token",
			text:   "{person:42}",
			cursor: 7,
			wantOk: true, // closing brace is after the cursor, so still open from its view
			wantQuery: "person",
		},
		{
			name:   "cursor out of range",
			text:   "abc",
			cursor: 10,
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, ok := Detect(tt.text, tt.cursor)
			if ok != tt.wantOk {
				t.Fatalf("Detect(%q, %d) ok = %v, want %v", tt.text, tt.cursor, ok, tt.wantOk)
			}
			if ok && query != tt.wantQuery {
				t.Errorf("Detect(%q, %d) query = %q, want %q", tt.text, tt.cursor, query, tt.wantQuery)
			}
		})
	}
}

func TestTriggerIndex(t *testing.T) {
	if i := TriggerIndex("hello {ru", 9); i != 6 {
		t.Errorf("TriggerIndex = %d, want 6", i)
	}
	if i := TriggerIndex("hello {person:42}{ru", 20); i != 17 {
		t.Errorf("TriggerIndex = %d, want 17", i)
	}
	if i := TriggerIndex("no trigger", 5); i != -1 {
		t.Errorf("TriggerIndex = %d, want -1", i)
	}
}
