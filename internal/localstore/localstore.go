package localstore

import (
	"errors"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// ILocalStore is the keyed on-disk state the client keeps between runs:
// the bearer credential and best-effort per-note draft snapshots.
type ILocalStore interface {
	SaveCredential(token string) error
	Credential() (string, bool)
	ClearCredential() error

	SaveDraft(noteId, content string) error
	Draft(noteId string) (string, bool)
	ClearDraft(noteId string) error
}

const (
	credentialKey = "credential"
	draftPrefix   = "draft."
)

type diskStore struct {
	d *diskv.Diskv
}

func New(baseDir string) (ILocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, err
	}
	return &diskStore{d: diskv.New(diskv.Options{
		BasePath:     baseDir,
		CacheSizeMax: 64 * 1024,
	})}, nil
}

func (s *diskStore) SaveCredential(token string) error {
	return s.d.Write(credentialKey, []byte(token))
}

func (s *diskStore) Credential() (string, bool) {
	val, err := s.d.Read(credentialKey)
	if err != nil || len(val) == 0 {
		return "", false
	}
	return string(val), true
}

func (s *diskStore) ClearCredential() error {
	err := s.d.Erase(credentialKey)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *diskStore) SaveDraft(noteId, content string) error {
	return s.d.Write(draftPrefix+noteId, []byte(content))
}

func (s *diskStore) Draft(noteId string) (string, bool) {
	val, err := s.d.Read(draftPrefix + noteId)
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (s *diskStore) ClearDraft(noteId string) error {
	err := s.d.Erase(draftPrefix + noteId)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
