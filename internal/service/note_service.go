package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/gateway"
	"entity-journal-cli/internal/model"
)

type INoteService interface {
	Create(ctx context.Context, content, folderId string) (*model.Note, error)
	Update(ctx context.Context, id, content string) (*model.Note, error)
	Get(ctx context.Context, id string) (*model.Note, error)
	List(ctx context.Context, q dto.ListNotesQuery) ([]model.NoteIndex, error)
	Recent(ctx context.Context) ([]model.NoteIndex, error)
	Archive(ctx context.Context, id string) error
	Move(ctx context.Context, id string, folderId *string) error
}

type noteService struct {
	api *gateway.Gateway
}

func NewNoteService(api *gateway.Gateway) INoteService {
	return &noteService{api: api}
}

func (s *noteService) Create(ctx context.Context, content, folderId string) (*model.Note, error) {
	var note model.Note
	err := s.api.Post(ctx, "/api/notes", dto.CreateNoteRequest{Content: content, FolderId: folderId}, &note)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

func (s *noteService) Update(ctx context.Context, id, content string) (*model.Note, error) {
	var note model.Note
	err := s.api.Put(ctx, "/api/notes/"+id, dto.UpdateNoteRequest{Content: content}, &note)
	if err != nil {
		return nil, fmt.Errorf("update note %s: %w", id, err)
	}
	return &note, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*model.Note, error) {
	var note model.Note
	if err := s.api.Get(ctx, "/api/notes/"+id, nil, &note); err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, err)
	}
	return &note, nil
}

func (s *noteService) List(ctx context.Context, q dto.ListNotesQuery) ([]model.NoteIndex, error) {
	params := url.Values{}
	if q.FolderId != "" {
		params.Set("folderId", q.FolderId)
	}
	if q.RootOnly {
		params.Set("rootOnly", "true")
	}
	if q.Days > 0 {
		params.Set("days", strconv.Itoa(q.Days))
	}

	var notes []model.NoteIndex
	if err := s.api.Get(ctx, "/api/notes", params, &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) Recent(ctx context.Context) ([]model.NoteIndex, error) {
	var notes []model.NoteIndex
	if err := s.api.Get(ctx, "/api/notes/recent", nil, &notes); err != nil {
		return nil, fmt.Errorf("recent notes: %w", err)
	}
	return notes, nil
}

// Archive soft-deletes the note server-side.
func (s *noteService) Archive(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "/api/notes/"+id, nil); err != nil {
		return fmt.Errorf("archive note %s: %w", id, err)
	}
	return nil
}

// Move relocates the note; a nil folderId moves it to the root.
func (s *noteService) Move(ctx context.Context, id string, folderId *string) error {
	err := s.api.Patch(ctx, "/api/notes/"+id+"/move", dto.MoveNoteRequest{FolderId: folderId}, nil)
	if err != nil {
		return fmt.Errorf("move note %s: %w", id, err)
	}
	return nil
}
