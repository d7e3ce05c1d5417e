package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotesEncodesFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notes", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "f1", q.Get("folderId"))
		assert.Equal(t, "7", q.Get("days"))
		assert.Empty(t, q.Get("rootOnly"))
		_ = json.NewEncoder(w).Encode([]model.NoteIndex{{Id: "n1", Title: "Monday"}})
	})

	f := newFixture(t, mux)
	svc := NewNoteService(f.api)

	notes, err := svc.List(context.Background(), dto.ListNotesQuery{FolderId: "f1", Days: 7})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Monday", notes[0].Title)
}

func TestMoveToRootSendsExplicitNull(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/notes/n1/move", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		val, present := body["folderId"]
		assert.True(t, present, "folderId key must be sent")
		assert.Nil(t, val)
		w.WriteHeader(http.StatusNoContent)
	})

	f := newFixture(t, mux)
	svc := NewNoteService(f.api)

	require.NoError(t, svc.Move(context.Background(), "n1", nil))
}

func TestMoveToFolderSendsId(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/notes/n1/move", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "f2", body["folderId"])
		w.WriteHeader(http.StatusNoContent)
	})

	f := newFixture(t, mux)
	svc := NewNoteService(f.api)

	target := "f2"
	require.NoError(t, svc.Move(context.Background(), "n1", &target))
}

func TestArchiveNote(t *testing.T) {
	var called bool
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/notes/n1", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	f := newFixture(t, mux)
	svc := NewNoteService(f.api)

	require.NoError(t, svc.Archive(context.Background(), "n1"))
	assert.True(t, called)
}
