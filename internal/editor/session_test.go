package editor

import (
	"context"
	"sync"
	"testing"
	"time"

	"entity-journal-cli/internal/localstore"
	"entity-journal-cli/internal/model"
	"entity-journal-cli/internal/pkg/logger"
	"entity-journal-cli/internal/service"
	"entity-journal-cli/pkg/mention"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type updateCall struct {
	id      string
	content string
}

type fakeNotes struct {
	service.INoteService

	mu         sync.Mutex
	note       *model.Note
	updates    []updateCall
	creates    []string
	moves      []*string
	updateGate chan struct{} // when set, Update blocks until the channel is closed
}

func (f *fakeNotes) Get(ctx context.Context, id string) (*model.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := *f.note
	return &n, nil
}

func (f *fakeNotes) Update(ctx context.Context, id, content string) (*model.Note, error) {
	f.mu.Lock()
	gate := f.updateGate
	f.updateGate = nil // only the first update blocks
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{id: id, content: content})
	n := *f.note
	n.Content = content
	return &n, nil
}

func (f *fakeNotes) Create(ctx context.Context, content, folderId string) (*model.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, content)
	return &model.Note{Id: "created-1", Content: content, FolderId: folderId}, nil
}

func (f *fakeNotes) Move(ctx context.Context, id string, folderId *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, folderId)
	return nil
}

func (f *fakeNotes) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

type fakeEntities struct {
	service.IEntityService
	candidates []mention.Candidate
}

func (f *fakeEntities) Candidates(ctx context.Context) ([]mention.Candidate, error) {
	return f.candidates, nil
}

func testCandidates() []mention.Candidate {
	return []mention.Candidate{
		{Id: "42", Name: "Alice", Icon: "👩", TypeTag: "person"},
		{Id: "h9", Name: "Run", TypeTag: "habit"},
		{Id: "p1", Name: "Rust Study", TypeTag: "project"},
	}
}

func newTestSession(t *testing.T, notes *fakeNotes, debounce time.Duration) (*Session, localstore.ILocalStore) {
	t.Helper()
	local, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	entities := &fakeEntities{candidates: testCandidates()}
	s := NewSession(notes, entities, local, logger.Noop{}, debounce)
	return s, local
}

func openExisting(t *testing.T, s *Session, note *model.Note) {
	t.Helper()
	require.NoError(t, s.Open(context.Background(), note.Id))
}

func TestMentionInsertionScenario(t *testing.T) {
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: "hello {person:42}"}}
	s, _ := newTestSession(t, notes, time.Hour) // debounce irrelevant here
	openExisting(t, s, notes.note)

	// User types "{ru" at the end of the note.
	s.Keystroke("hello {person:42}{ru", 20)

	popup := s.Popup()
	require.True(t, popup.Open)
	assert.Equal(t, "ru", popup.Query)
	require.NotEmpty(t, popup.Suggestions)
	assert.Equal(t, "Run", popup.Suggestions[0].Name)

	cursor := s.InsertSuggestion(mention.Candidate{Id: "h9", Name: "Run", TypeTag: "HABIT"})

	assert.Equal(t, "hello {person:42}{habit:h9}", s.Content())
	assert.Equal(t, len("hello {person:42}{habit:h9}"), cursor, "cursor sits right after the inserted token")
	assert.False(t, s.Popup().Open)
}

func TestPopupClosesWhenContextLeft(t *testing.T) {
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: ""}}
	s, _ := newTestSession(t, notes, time.Hour)
	openExisting(t, s, notes.note)

	s.Keystroke("{ru", 3)
	require.True(t, s.Popup().Open)

	// A space ends the mention context.
	s.Keystroke("{ru n", 5)
	assert.False(t, s.Popup().Open)
}

func TestAutosaveDebounceSingleFire(t *testing.T) {
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: ""}}
	s, _ := newTestSession(t, notes, 60*time.Millisecond)
	openExisting(t, s, notes.note)

	// Three keystrokes in quick succession, each inside the debounce window.
	s.Keystroke("h", 1)
	time.Sleep(10 * time.Millisecond)
	s.Keystroke("he", 2)
	time.Sleep(10 * time.Millisecond)
	s.Keystroke("hey", 3)

	assert.Eventually(t, func() bool { return notes.updateCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	notes.mu.Lock()
	defer notes.mu.Unlock()
	require.Len(t, notes.updates, 1, "superseded timers must not fire")
	assert.Equal(t, updateCall{id: "N", content: "hey"}, notes.updates[0])
}

func TestNewNotesAreNotAutosaved(t *testing.T) {
	notes := &fakeNotes{}
	s, _ := newTestSession(t, notes, 20*time.Millisecond)
	s.NewNote(context.Background(), "")

	s.Keystroke("draft of a new note", 19)
	time.Sleep(100 * time.Millisecond)

	assert.Zero(t, notes.updateCount(), "a note without identity cannot be autosaved")
	assert.Equal(t, StateDirty, s.State())
}

func TestKeystrokeDuringSaveKeepsDraftDirty(t *testing.T) {
	gate := make(chan struct{})
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: ""}, updateGate: gate}
	s, _ := newTestSession(t, notes, 10*time.Millisecond)
	openExisting(t, s, notes.note)

	s.Keystroke("first", 5)
	require.Eventually(t, func() bool { return s.State() == StateSaving }, 2*time.Second, 5*time.Millisecond)

	// Edit while the save request is in flight.
	s.Keystroke("first second", 12)
	assert.Equal(t, StateDirty, s.State())

	close(gate)

	// The in-flight request was not canceled, and the newer edit gets its
	// own save; once both resolve the draft is clean.
	assert.Eventually(t, func() bool { return notes.updateCount() == 2 }, 2*time.Second, 10*time.Millisecond)
	notes.mu.Lock()
	var contents []string
	for _, u := range notes.updates {
		contents = append(contents, u.content)
	}
	notes.mu.Unlock()
	assert.Contains(t, contents, "first second")
	assert.Eventually(t, func() bool { return s.State() == StateIdle }, 2*time.Second, 10*time.Millisecond)
}

func TestExplicitSaveCreatesNewNote(t *testing.T) {
	notes := &fakeNotes{}
	s, _ := newTestSession(t, notes, time.Hour)
	s.NewNote(context.Background(), "folder-1")

	s.Keystroke("brand new", 9)
	note, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "created-1", note.Id)
	assert.Equal(t, "created-1", s.NoteId(), "session adopts the server-assigned identity")
	assert.Equal(t, StateIdle, s.State())
}

func TestExplicitSaveRelocatesOnFolderChange(t *testing.T) {
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: "text", FolderId: "old"}}
	s, _ := newTestSession(t, notes, time.Hour)
	openExisting(t, s, notes.note)

	s.Keystroke("text more", 9)
	s.SetFolder("new")

	_, err := s.Save(context.Background())
	require.NoError(t, err)

	notes.mu.Lock()
	require.Len(t, notes.moves, 1)
	require.NotNil(t, notes.moves[0])
	assert.Equal(t, "new", *notes.moves[0])
	notes.mu.Unlock()

	// Saving again without another folder change must not move again.
	s.Keystroke("text more!", 10)
	_, err = s.Save(context.Background())
	require.NoError(t, err)
	notes.mu.Lock()
	assert.Len(t, notes.moves, 1)
	notes.mu.Unlock()
}

func TestCloseSnapshotsDirtyDraft(t *testing.T) {
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: "saved"}}
	s, local := newTestSession(t, notes, time.Hour)
	openExisting(t, s, notes.note)

	s.Keystroke("saved plus unsaved", 18)
	s.Close()

	assert.Eventually(t, func() bool {
		draft, ok := local.Draft("N")
		return ok && draft == "saved plus unsaved"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCloseWithNoEditsWritesNothing(t *testing.T) {
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: "saved"}}
	s, local := newTestSession(t, notes, time.Hour)
	openExisting(t, s, notes.note)

	s.Close()
	time.Sleep(50 * time.Millisecond)
	if _, ok := local.Draft("N"); ok {
		t.Fatal("idle close should not snapshot")
	}
}

func TestExplicitSaveClearsSnapshot(t *testing.T) {
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: "v1"}}
	s, local := newTestSession(t, notes, time.Hour)
	openExisting(t, s, notes.note)
	require.NoError(t, local.SaveDraft("N", "recovered content"))

	draft, ok := s.RecoverDraft()
	require.True(t, ok)
	assert.Equal(t, "recovered content", draft)

	s.Keystroke("v2", 2)
	_, err := s.Save(context.Background())
	require.NoError(t, err)

	if _, ok := local.Draft("N"); ok {
		t.Fatal("snapshot should be cleared on successful explicit save")
	}
}

func TestRenderResolvesTokens(t *testing.T) {
	notes := &fakeNotes{note: &model.Note{Id: "N", Content: "met {person:42} after {habit:h9}, see {goal:gone}"}}
	s, _ := newTestSession(t, notes, time.Hour)
	openExisting(t, s, notes.note)

	assert.Equal(t, "met 👩 Alice after Run, see {goal:gone}", s.Render())
}
