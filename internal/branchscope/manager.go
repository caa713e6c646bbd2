package branchscope

import "github.com/yukikurage/flock-console/internal/models"

// Manager owns a session's known branch list and its active scope. The
// branch list is never persisted; callers refill it with SetBranches on
// every load. A Manager is not safe for concurrent use; each request
// restores its own from the session.
type Manager struct {
	branches []models.Branch
	scope    Scope
	pending  *Scope
}

// NewManager restores a manager from persisted state.
func NewManager(scope Scope, pending *Scope) *Manager {
	return &Manager{scope: scope, pending: pending}
}

// SetBranches replaces the known branch list and repairs the scope against
// it. A sole branch is auto-selected only when no scope was ever chosen. A
// selected branch that disappeared resets the scope to all branches. It
// reports whether the scope changed.
func (m *Manager) SetBranches(list []models.Branch) bool {
	m.branches = append([]models.Branch(nil), list...)
	before := m.scope

	switch {
	case len(list) == 1 && m.scope.Selection == SelectionUnset:
		m.scope = ForBranch(list[0].ID)
	case m.scope.IsBranch():
		if _, ok := m.Branch(m.scope.BranchID); !ok {
			m.scope = All()
		}
	}

	if m.pending != nil && m.pending.IsBranch() {
		if _, ok := m.Branch(m.pending.BranchID); !ok {
			m.pending = nil
		}
	}

	return before != m.scope
}

// SelectBranch sets the scope directly. nil selects all branches. The id is
// not checked against the known list.
func (m *Manager) SelectBranch(id *string) {
	m.scope = FromID(id)
}

// SelectedBranchID is the active branch id, or nil for all branches.
func (m *Manager) SelectedBranchID() *string {
	return m.scope.ID()
}

func (m *Manager) Scope() Scope {
	return m.scope
}

func (m *Manager) Branches() []models.Branch {
	return append([]models.Branch(nil), m.branches...)
}

// Branch looks up a known branch by id.
func (m *Manager) Branch(id string) (models.Branch, bool) {
	for _, b := range m.branches {
		if b.ID == id {
			return b, true
		}
	}
	return models.Branch{}, false
}
