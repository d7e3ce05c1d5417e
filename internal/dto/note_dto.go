package dto

type CreateNoteRequest struct {
	Content  string `json:"content"`
	FolderId string `json:"folderId,omitempty"`
}

type UpdateNoteRequest struct {
	Content string `json:"content"`
}

type MoveNoteRequest struct {
	// FolderId is a pointer so "move to root" serializes as an explicit null.
	FolderId *string `json:"folderId"`
}

// ListNotesQuery maps to the query string of GET /api/notes.
type ListNotesQuery struct {
	FolderId string
	RootOnly bool
	Days     int
}
