package branchscope

import "github.com/yukikurage/flock-console/internal/models"

type FieldMode string

const (
	// FieldLocked shows the scoped branch as a read-only indicator.
	FieldLocked FieldMode = "locked"
	// FieldSelect asks the user to pick a branch.
	FieldSelect FieldMode = "select"
)

// ErrBranchRequired is the inline message for an empty required branch.
const ErrBranchRequired = "Branch is required"

type Option struct {
	Value        string `json:"value"`
	Label        string `json:"label"`
	IsHeadOffice bool   `json:"isHeadOffice,omitempty"`
}

// Field is the rendered state of a form's branch field.
type Field struct {
	Mode        FieldMode `json:"mode"`
	Value       string    `json:"value"`
	ReadOnly    bool      `json:"readOnly"`
	Required    bool      `json:"required"`
	DisplayName string    `json:"displayName,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Valid reports whether the field can be submitted.
func (f Field) Valid() bool {
	return f.Error == ""
}

// BindField derives the branch field for a form. Under a specific scope the
// value is forced to the scoped branch, whatever was submitted. Otherwise the
// submitted value is kept and the known branches are offered.
func BindField(scope Scope, branches []models.Branch, submitted string, required bool) Field {
	if scope.IsBranch() {
		name := scope.BranchID
		for _, b := range branches {
			if b.ID == scope.BranchID {
				name = b.Name
				break
			}
		}
		return Field{
			Mode:        FieldLocked,
			Value:       scope.BranchID,
			ReadOnly:    true,
			Required:    required,
			DisplayName: name,
		}
	}

	options := make([]Option, 0, len(branches))
	for _, b := range branches {
		options = append(options, Option{Value: b.ID, Label: b.Name, IsHeadOffice: b.IsHeadOffice})
	}
	field := Field{
		Mode:     FieldSelect,
		Value:    submitted,
		Required: required,
		Options:  options,
	}
	if required && submitted == "" {
		field.Error = ErrBranchRequired
	}
	return field
}

// BindField binds against the manager's current scope and branch list.
func (m *Manager) BindField(submitted string, required bool) Field {
	return BindField(m.scope, m.branches, submitted, required)
}
