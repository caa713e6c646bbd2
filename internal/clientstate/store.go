// Package clientstate persists the per-session console state: the auth
// session, the branch scope and onboarding progress. All three are cleared
// together by ClearAll.
package clientstate

import (
	"encoding/json"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/branchscope"
	"github.com/yukikurage/flock-console/internal/constants"
	"github.com/yukikurage/flock-console/internal/models"
)

// AuthState is the auth session blob.
type AuthState struct {
	User          *models.User `json:"user,omitempty"`
	Token         string       `json:"token,omitempty"`
	Authenticated bool         `json:"authenticated"`
	// SessionID namespaces this login's query cache entries.
	SessionID string `json:"sessionId,omitempty"`
}

// BranchState is the branch scope blob. The branch list is not stored.
type BranchState struct {
	Scope   branchscope.Scope  `json:"scope"`
	Pending *branchscope.Scope `json:"pending,omitempty"`
}

// OnboardingState is the onboarding wizard blob.
type OnboardingState struct {
	Step           int                        `json:"step"`
	Answers        map[string]json.RawMessage `json:"answers,omitempty"`
	OrganizationID string                     `json:"organizationId,omitempty"`
}

// persistedKeys lists every key ClearAll removes.
var persistedKeys = []string{
	constants.SessionKeyAuth,
	constants.SessionKeyBranchScope,
	constants.SessionKeyOnboarding,
}

// Store reads and writes the blobs of one session. Values are stored as JSON
// strings so any session backend can hold them without gob registration.
type Store struct {
	session sessions.Session
}

func New(session sessions.Session) *Store {
	return &Store{session: session}
}

// FromContext wraps the default gin session.
func FromContext(c *gin.Context) *Store {
	return New(sessions.Default(c))
}

func (s *Store) Auth() AuthState {
	return load[AuthState](s, constants.SessionKeyAuth)
}

func (s *Store) SetAuth(st AuthState) error {
	return s.put(constants.SessionKeyAuth, st)
}

func (s *Store) Branch() BranchState {
	return load[BranchState](s, constants.SessionKeyBranchScope)
}

func (s *Store) SetBranch(st BranchState) error {
	return s.put(constants.SessionKeyBranchScope, st)
}

func (s *Store) Onboarding() OnboardingState {
	st := load[OnboardingState](s, constants.SessionKeyOnboarding)
	if st.Answers == nil {
		st.Answers = map[string]json.RawMessage{}
	}
	return st
}

func (s *Store) SetOnboarding(st OnboardingState) error {
	return s.put(constants.SessionKeyOnboarding, st)
}

// ClearOnboarding drops only the onboarding blob.
func (s *Store) ClearOnboarding() {
	s.session.Delete(constants.SessionKeyOnboarding)
}

// ClearAll removes the auth, branch scope and onboarding blobs. It is the
// only logout path, so no user's scope or progress reaches the next login on
// the same device.
func (s *Store) ClearAll() {
	for _, key := range persistedKeys {
		s.session.Delete(key)
	}
}

// Save flushes pending changes to the session backend.
func (s *Store) Save() error {
	if err := s.session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// load returns the zero value when the key is missing; a corrupt blob
// behaves like an empty one.
func load[T any](s *Store, key string) T {
	var v T
	raw, ok := s.session.Get(key).(string)
	if !ok || raw == "" {
		return v
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero
	}
	return v
}

func (s *Store) put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	s.session.Set(key, string(data))
	return nil
}

// BranchManager restores the session's branch scope manager. Its branch
// list is empty until the caller supplies one.
func (s *Store) BranchManager() *branchscope.Manager {
	st := s.Branch()
	return branchscope.NewManager(st.Scope, st.Pending)
}

// SetBranchManager persists the manager's scope and pending change.
func (s *Store) SetBranchManager(m *branchscope.Manager) error {
	return s.SetBranch(BranchState{Scope: m.Scope(), Pending: m.Pending()})
}
