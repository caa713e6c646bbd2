package branchscope

// SwitchResult describes the outcome of confirming a staged scope change.
type SwitchResult struct {
	Committed bool  `json:"committed"`
	Reload    bool  `json:"reload"`
	Scope     Scope `json:"scope"`
}

// Stage records target as the pending scope. Staging the scope that is
// already active clears any pending change and reports false. Choosing all
// branches from an unset scope is committed at once: the data shown does not
// change, but the explicit choice stops a later auto-select.
func (m *Manager) Stage(target *string) bool {
	next := FromID(target)
	if next.SameTarget(m.scope) {
		m.pending = nil
		if m.scope.Selection == SelectionUnset {
			m.scope = next
		}
		return false
	}
	m.pending = &next
	return true
}

// Pending is the staged scope awaiting confirmation, if any.
func (m *Manager) Pending() *Scope {
	if m.pending == nil {
		return nil
	}
	p := *m.pending
	return &p
}

// Confirm commits the pending scope, then calls invalidate so no data
// fetched under the old scope survives, and asks the client to reload.
// With nothing pending it does nothing.
func (m *Manager) Confirm(invalidate func()) SwitchResult {
	if m.pending == nil {
		return SwitchResult{Scope: m.scope}
	}

	m.scope = *m.pending
	m.pending = nil
	if invalidate != nil {
		invalidate()
	}
	return SwitchResult{Committed: true, Reload: true, Scope: m.scope}
}

// Cancel discards the pending scope. The active scope is untouched.
func (m *Manager) Cancel() {
	m.pending = nil
}
