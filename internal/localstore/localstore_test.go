package localstore

import "testing"

func newStore(t *testing.T) ILocalStore {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestCredentialRoundTrip(t *testing.T) {
	s := newStore(t)

	if _, ok := s.Credential(); ok {
		t.Fatal("fresh store should have no credential")
	}
	if err := s.SaveCredential("tok-123"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}
	got, ok := s.Credential()
	if !ok || got != "tok-123" {
		t.Fatalf("Credential = %q, %v", got, ok)
	}
	if err := s.ClearCredential(); err != nil {
		t.Fatalf("ClearCredential: %v", err)
	}
	if _, ok := s.Credential(); ok {
		t.Fatal("credential survived ClearCredential")
	}
	// Clearing twice must be a no-op, not an error.
	if err := s.ClearCredential(); err != nil {
		t.Fatalf("second ClearCredential: %v", err)
	}
}

func TestDraftSnapshots(t *testing.T) {
	s := newStore(t)

	if _, ok := s.Draft("n1"); ok {
		t.Fatal("fresh store should have no draft")
	}
	if err := s.SaveDraft("n1", "hello {person:42}"); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if err := s.SaveDraft("n2", "other note"); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	got, ok := s.Draft("n1")
	if !ok || got != "hello {person:42}" {
		t.Fatalf("Draft(n1) = %q, %v", got, ok)
	}

	if err := s.ClearDraft("n1"); err != nil {
		t.Fatalf("ClearDraft: %v", err)
	}
	if _, ok := s.Draft("n1"); ok {
		t.Fatal("draft survived ClearDraft")
	}
	if _, ok := s.Draft("n2"); !ok {
		t.Fatal("unrelated draft was cleared")
	}
}
