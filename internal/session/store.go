package session

import (
	"sync"
	"time"

	"entity-journal-cli/internal/localstore"
	"entity-journal-cli/internal/model"
	"entity-journal-cli/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

const logModule = "session"

// Phase is the authentication state of the process.
type Phase string

const (
	PhaseAnonymous     Phase = "anonymous"
	PhaseHydrating     Phase = "hydrating"
	PhaseAuthenticated Phase = "authenticated"
)

// Snapshot is the read-only view consumers get. Consumers never mutate
// session state directly; all mutations go through the store's transitions.
type Snapshot struct {
	Phase         Phase
	User          *model.User
	Plan          model.PlanType
	Authenticated bool
}

// Store is the process-wide authentication state machine. It owns the
// bearer credential (persisted through the local store) and the fetched
// profile. The gateway reads the credential through the CredentialSource
// interface and invalidates it synchronously on unauthorized responses;
// that invalidation is idempotent with a user-initiated logout.
type Store struct {
	mu    sync.RWMutex
	phase Phase
	token string
	user  *model.User
	plan  model.PlanType

	local localstore.ILocalStore
	log   logger.ILogger
}

func NewStore(local localstore.ILocalStore, log logger.ILogger) *Store {
	s := &Store{
		phase: PhaseAnonymous,
		local: local,
		log:   log,
	}
	if token, ok := local.Credential(); ok {
		s.token = token
	}
	return s
}

// Credential implements gateway.CredentialSource.
func (s *Store) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Invalidate implements gateway.CredentialSource: clears credential and
// profile and returns to anonymous. Safe to call from any state, any number
// of times; only the first call from a non-anonymous state does work.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseAnonymous && s.token == "" {
		return
	}
	s.phase = PhaseAnonymous
	s.token = ""
	s.user = nil
	s.plan = ""
	if err := s.local.ClearCredential(); err != nil {
		s.log.Warn(logModule, "failed to clear persisted credential", map[string]interface{}{"error": err.Error()})
	}
}

// BeginHydration moves anonymous→hydrating when a persisted credential
// exists. Returns false (no-op) otherwise.
func (s *Store) BeginHydration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return false
	}
	s.phase = PhaseHydrating
	return true
}

// SetAuthenticated stores the credential, persists it, and moves to
// authenticated. user may be nil immediately after login; the profile is
// attached by UpdateUser once fetched.
func (s *Store) SetAuthenticated(token string, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.phase = PhaseAuthenticated
	s.user = user
	if user != nil {
		s.plan = user.Plan
	}
	if err := s.local.SaveCredential(token); err != nil {
		s.log.Warn(logModule, "failed to persist credential", map[string]interface{}{"error": err.Error()})
	}
}

// UpdateUser attaches or refreshes the profile of the authenticated session.
func (s *Store) UpdateUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseAuthenticated {
		return
	}
	s.user = user
	if user != nil {
		s.plan = user.Plan
	}
}

// HydrationFailed clears the stale credential and returns to anonymous.
func (s *Store) HydrationFailed() {
	s.Invalidate()
}

// Logout is the user-initiated session reset.
func (s *Store) Logout() {
	s.Invalidate()
}

func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Phase:         s.phase,
		User:          s.user,
		Plan:          s.plan,
		Authenticated: s.phase == PhaseAuthenticated,
	}
}

// CredentialExpired inspects the persisted JWT's exp claim without verifying
// the signature (verification is the server's job). A malformed token or a
// missing claim is treated as not-expired and left for the server to reject.
func (s *Store) CredentialExpired() bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
