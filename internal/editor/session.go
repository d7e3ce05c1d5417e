package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"entity-journal-cli/internal/localstore"
	"entity-journal-cli/internal/model"
	"entity-journal-cli/internal/pkg/logger"
	"entity-journal-cli/internal/service"
	"entity-journal-cli/pkg/mention"
)

const logModule = "editor"

// State of the draft relative to the last persisted version.
type State string

const (
	StateIdle   State = "idle"   // no unsaved edits
	StateDirty  State = "dirty"  // keystroke occurred
	StateSaving State = "saving" // save request in flight
)

// DefaultDebounce is how long the session waits after the last keystroke
// before autosaving an existing note.
const DefaultDebounce = 1500 * time.Millisecond

// Popup is the suggestion popup state the UI renders next to the caret.
type Popup struct {
	Open        bool
	Query       string
	Suggestions []mention.Candidate
}

// Session owns one note's draft: it runs the mention pipeline on every
// keystroke, debounces autosave, and snapshots the draft on forced close.
//
// Autosave only applies to existing notes; a new note has no identity to
// save against until the first explicit save. A keystroke while a save is in
// flight does not cancel the request, it re-dirties the draft so a follow-up
// save runs after the current one resolves.
type Session struct {
	mu sync.Mutex

	noteId         string // empty until first explicit save of a new note
	content        string
	cursor         int
	folderId       string // save target
	loadedFolderId string

	state    State
	seq      uint64 // bumped per edit; a save captures it to detect concurrent keystrokes
	popup    Popup
	closed   bool

	candidates []mention.Candidate

	notes    service.INoteService
	entities service.IEntityService
	local    localstore.ILocalStore
	log      logger.ILogger

	debounce         *time.Timer
	debounceInterval time.Duration
}

func NewSession(notes service.INoteService, entities service.IEntityService, local localstore.ILocalStore, log logger.ILogger, debounce time.Duration) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Session{
		state:            StateIdle,
		notes:            notes,
		entities:         entities,
		local:            local,
		log:              log,
		debounceInterval: debounce,
	}
}

// Open loads an existing note into the session and primes the mention
// candidates. A failed candidate fetch is not fatal: the popup just stays
// empty until RefreshCandidates succeeds.
func (s *Session) Open(ctx context.Context, noteId string) error {
	note, err := s.notes.Get(ctx, noteId)
	if err != nil {
		return fmt.Errorf("open note: %w", err)
	}

	s.mu.Lock()
	s.noteId = note.Id
	s.content = note.Content
	s.cursor = len(note.Content)
	s.folderId = note.FolderId
	s.loadedFolderId = note.FolderId
	s.state = StateIdle
	s.mu.Unlock()

	s.RefreshCandidates(ctx)
	return nil
}

// NewNote starts an empty, not-yet-persisted draft.
func (s *Session) NewNote(ctx context.Context, folderId string) {
	s.mu.Lock()
	s.noteId = ""
	s.content = ""
	s.cursor = 0
	s.folderId = folderId
	s.loadedFolderId = ""
	s.state = StateIdle
	s.mu.Unlock()

	s.RefreshCandidates(ctx)
}

// RefreshCandidates reloads the entity collection behind the popup.
func (s *Session) RefreshCandidates(ctx context.Context) {
	candidates, err := s.entities.Candidates(ctx)
	if err != nil {
		s.log.Warn(logModule, "failed to load mention candidates", map[string]interface{}{"error": err.Error()})
		return
	}
	s.mu.Lock()
	s.candidates = candidates
	s.mu.Unlock()
}

// Keystroke applies an edit: updates the draft, re-runs the trigger
// detector, and resets the autosave debounce. Superseded timers are
// canceled; only the most recent one may fire.
func (s *Session) Keystroke(content string, cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.content = content
	s.cursor = cursor
	s.seq++
	s.state = StateDirty

	s.detectMentionLocked()

	if s.noteId != "" {
		s.scheduleAutosaveLocked()
	}
}

func (s *Session) detectMentionLocked() {
	query, ok := mention.Detect(s.content, s.cursor)
	if !ok {
		s.popup = Popup{}
		return
	}
	s.popup = Popup{
		Open:        true,
		Query:       query,
		Suggestions: mention.Match(s.candidates, query),
	}
}

func (s *Session) scheduleAutosaveLocked() {
	if s.debounce != nil {
		s.debounce.Stop()
	}
	seq := s.seq
	s.debounce = time.AfterFunc(s.debounceInterval, func() {
		s.autosave(seq)
	})
}

// autosave persists the draft if no newer keystroke superseded this timer.
// Failures are silent by design (logged only); the draft stays dirty and the
// next keystroke or explicit save picks it up.
func (s *Session) autosave(seq uint64) {
	s.mu.Lock()
	if s.closed || s.noteId == "" || s.state != StateDirty || s.seq != seq {
		s.mu.Unlock()
		return
	}
	noteId := s.noteId
	content := s.content
	s.state = StateSaving
	s.mu.Unlock()

	_, err := s.notes.Update(context.Background(), noteId, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != seq {
		// A keystroke landed while the request was in flight. That edit's
		// own save decides the final state; this one changes nothing.
		return
	}
	if err != nil {
		s.log.Warn(logModule, "autosave failed", map[string]interface{}{
			"note_id": noteId, "error": err.Error(),
		})
		s.state = StateDirty
		return
	}
	s.state = StateIdle
}

// InsertSuggestion replaces the span from the trigger character to the
// cursor with the entity's reference token, places the cursor right after
// the token, and closes the popup. Returns the new cursor offset.
func (s *Session) InsertSuggestion(c mention.Candidate) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := mention.TriggerIndex(s.content, s.cursor)
	if i < 0 {
		s.popup = Popup{}
		return s.cursor
	}

	token := c.Token()
	s.content = s.content[:i] + token + s.content[s.cursor:]
	s.cursor = i + len(token)
	s.seq++
	s.state = StateDirty
	s.popup = Popup{}

	if s.noteId != "" {
		s.scheduleAutosaveLocked()
	}
	return s.cursor
}

// Save is the explicit, user-invoked save. It fires immediately regardless
// of the debounce timer, creates the note on first save, relocates it if the
// target folder changed since load, and clears any recovery snapshot.
func (s *Session) Save(ctx context.Context) (*model.Note, error) {
	s.mu.Lock()
	content := s.content
	noteId := s.noteId
	folderId := s.folderId
	loadedFolderId := s.loadedFolderId
	seq := s.seq
	s.state = StateSaving
	s.mu.Unlock()

	var note *model.Note
	var err error
	if noteId == "" {
		note, err = s.notes.Create(ctx, content, folderId)
	} else {
		note, err = s.notes.Update(ctx, noteId, content)
		if err == nil && folderId != loadedFolderId {
			target := &folderId
			if folderId == "" {
				target = nil
			}
			err = s.notes.Move(ctx, noteId, target)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateDirty
		return nil, err
	}

	if noteId == "" {
		s.noteId = note.Id
	}
	s.loadedFolderId = folderId
	if s.seq == seq {
		s.state = StateIdle
	} else {
		s.state = StateDirty
	}

	if clearErr := s.local.ClearDraft(s.noteId); clearErr != nil {
		s.log.Warn(logModule, "failed to clear draft snapshot", map[string]interface{}{"error": clearErr.Error()})
	}
	return note, nil
}

// Close is forced navigation away. Unsaved edits are snapshotted to the
// local store keyed by note identity, fire-and-forget: the write must not
// block whatever is tearing the session down. In-flight saves are left to
// complete naturally.
func (s *Session) Close() {
	s.mu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.closed = true
	noteId := s.noteId
	content := s.content
	dirty := s.state != StateIdle
	s.mu.Unlock()

	if noteId == "" || !dirty {
		return
	}
	go func() {
		if err := s.local.SaveDraft(noteId, content); err != nil {
			s.log.Warn(logModule, "draft snapshot failed", map[string]interface{}{
				"note_id": noteId, "error": err.Error(),
			})
		}
	}()
}

// RecoverDraft returns the snapshot written by a previous forced close,
// if one exists.
func (s *Session) RecoverDraft() (string, bool) {
	s.mu.Lock()
	noteId := s.noteId
	s.mu.Unlock()
	if noteId == "" {
		return "", false
	}
	return s.local.Draft(noteId)
}

// Render returns the draft in display form, resolving reference tokens
// against the loaded candidates. Unresolvable tokens render verbatim.
func (s *Session) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	byId := make(map[string]mention.Candidate, len(s.candidates))
	for _, c := range s.candidates {
		byId[c.Id] = c
	}
	return mention.ToDisplay(s.content, func(id string) (mention.Candidate, bool) {
		c, ok := byId[id]
		return c, ok
	})
}

func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Popup() Popup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popup
}

func (s *Session) NoteId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noteId
}

// SetFolder retargets where the next explicit save relocates the note.
func (s *Session) SetFolder(folderId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderId = folderId
}
