// Package branchscope tracks which branch of an organization a session is
// working in and binds that choice into record forms.
package branchscope

// Selection distinguishes a scope that was never chosen from an explicit
// "all branches" choice.
type Selection string

const (
	SelectionUnset  Selection = ""
	SelectionAll    Selection = "all"
	SelectionBranch Selection = "branch"
)

// Scope is the active branch selection of a session.
type Scope struct {
	Selection Selection `json:"selection"`
	BranchID  string    `json:"branchId,omitempty"`
}

func Unset() Scope { return Scope{} }

func All() Scope { return Scope{Selection: SelectionAll} }

func ForBranch(id string) Scope { return Scope{Selection: SelectionBranch, BranchID: id} }

// FromID maps the external nullable form (nil or "" = all branches) to a Scope.
func FromID(id *string) Scope {
	if id == nil || *id == "" {
		return All()
	}
	return ForBranch(*id)
}

// ID is the branch id, or nil for all branches (including unset).
func (s Scope) ID() *string {
	if s.Selection != SelectionBranch {
		return nil
	}
	id := s.BranchID
	return &id
}

// IsBranch reports whether the scope names a specific branch.
func (s Scope) IsBranch() bool {
	return s.Selection == SelectionBranch
}

// SameTarget reports whether both scopes show the same data. Unset and All
// both mean every branch.
func (s Scope) SameTarget(o Scope) bool {
	if s.IsBranch() || o.IsBranch() {
		return s.IsBranch() && o.IsBranch() && s.BranchID == o.BranchID
	}
	return true
}
