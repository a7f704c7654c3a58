// Package selector computes the objective and ODS checkbox lists shown for an
// action and the membership updates produced when a box is toggled. It holds
// no state: the action's membership lists are owned by the caller.
package selector

import "fpadmin/pkg/domain"

// Kind distinguishes the two objective-like collections.
type Kind string

// Selectable collections.
const (
	KindObjectives Kind = "objectives"
	KindODS        Kind = "ods"
)

// Action carries the membership lists of an action being edited.
type Action struct {
	Objectives []string `json:"objectives,omitempty"`
	ODS        []string `json:"ods,omitempty"`
}

// ActionPatch reports a new membership list for one collection. Exactly one
// field is set.
type ActionPatch struct {
	Objectives *[]string `json:"objectives,omitempty"`
	ODS        *[]string `json:"ods,omitempty"`
}

// Apply merges the patch into a.
func (p ActionPatch) Apply(a *Action) {
	if p.Objectives != nil {
		a.Objectives = append([]string(nil), (*p.Objectives)...)
	}
	if p.ODS != nil {
		a.ODS = append([]string(nil), (*p.ODS)...)
	}
}

// Option is one rendered checkbox.
type Option struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Priority      domain.Priority `json:"priority,omitempty"`
	PriorityLabel string          `json:"priorityLabel,omitempty"`
	Checked       bool            `json:"checked"`
}

// Options groups the checkboxes for both collections.
type Options struct {
	Objectives []Option `json:"objectives"`
	ODS        []Option `json:"ods"`
}

// Active returns the active entries of objs in their original order.
func Active(objs []domain.Objective) []domain.Objective {
	out := make([]domain.Objective, 0, len(objs))
	for _, o := range objs {
		if o.IsActive {
			out = append(out, o)
		}
	}
	return out
}

// Toggle returns the membership list after checking or unchecking id. A
// checked id is appended unless already present; an unchecked id is removed
// wherever it occurs. current is never modified.
func Toggle(current []string, id string, checked bool) []string {
	out := make([]string, 0, len(current)+1)
	if checked {
		out = append(out, current...)
		if !contains(current, id) {
			out = append(out, id)
		}
		return out
	}
	for _, v := range current {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// PriorityLabel returns the display label for p.
func PriorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "Alta"
	case domain.PriorityMedium:
		return "Media"
	case domain.PriorityLow:
		return "Baja"
	}
	return ""
}

// Selector renders the checkboxes for an action and reports membership
// changes through OnChange.
type Selector struct {
	Objectives []domain.Objective
	ODS        []domain.Objective
	OnChange   func(ActionPatch)
}

// Options renders the active objectives and ODS with their checked state.
func (s Selector) Options(action Action) Options {
	return Options{
		Objectives: render(s.Objectives, action.Objectives, true),
		ODS:        render(s.ODS, action.ODS, false),
	}
}

func render(objs []domain.Objective, selected []string, withPriority bool) []Option {
	active := Active(objs)
	out := make([]Option, 0, len(active))
	for _, o := range active {
		opt := Option{
			ID:          o.ID,
			Name:        o.Name,
			Description: o.Description,
			Checked:     contains(selected, o.ID),
		}
		if withPriority {
			opt.Priority = o.Priority
			opt.PriorityLabel = PriorityLabel(o.Priority)
		}
		out = append(out, opt)
	}
	return out
}

// Toggle computes the new membership for kind, reports it through OnChange
// and returns the patch.
func (s Selector) Toggle(action Action, kind Kind, id string, checked bool) ActionPatch {
	var patch ActionPatch
	switch kind {
	case KindODS:
		next := Toggle(action.ODS, id, checked)
		patch.ODS = &next
	default:
		next := Toggle(action.Objectives, id, checked)
		patch.Objectives = &next
	}
	if s.OnChange != nil {
		s.OnChange(patch)
	}
	return patch
}
