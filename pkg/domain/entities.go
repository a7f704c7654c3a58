// Package domain defines the master records, configuration value types, and
// rule evaluation primitives used by fpadmin.
package domain

// EntityType identifies the type of record stored in the master records store.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityNetwork identifies a network of centers.
	EntityNetwork EntityType = "network"
	// EntityCenter identifies a center that belongs to a network.
	EntityCenter EntityType = "center"
	// EntityFamily identifies a professional family record.
	EntityFamily EntityType = "professional_family"
	// EntityDepartment identifies a department record.
	EntityDepartment EntityType = "department"
	// EntityObjective identifies a network objective.
	EntityObjective EntityType = "objective"
	// EntityODS identifies a sustainable development goal tag.
	EntityODS EntityType = "ods"
	// EntityRole identifies a role definition.
	EntityRole EntityType = "role"
	// EntityPermission identifies a permission definition.
	EntityPermission EntityType = "permission"
	// EntityMeetingConfig identifies the stored video meeting configuration.
	EntityMeetingConfig EntityType = "meeting_config"
)

// Network groups centers under a shared code. CenterCount is derived: it always
// equals the number of centers whose Network field matches Code.
type Network struct {
	ID          string `json:"id" yaml:"id"`
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	CenterCount int    `json:"centerCount" yaml:"centerCount"`
}

// Center is a training center referencing its network by code.
type Center struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Network string `json:"network" yaml:"network"`
}

// ProfessionalFamily is a vocational training family.
type ProfessionalFamily struct {
	ID          string `json:"id" yaml:"id"`
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Department is an organizational department.
type Department struct {
	ID          string `json:"id" yaml:"id"`
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Priority ranks network objectives.
type Priority string

// Objective priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is empty or one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Objective models both network objectives and ODS (sustainable development
// goal) tags. Priority is only meaningful for network objectives.
type Objective struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	IsActive    bool     `json:"isActive" yaml:"isActive"`
}

// CRUDAction names an operation a permission can grant.
type CRUDAction string

// Permission actions.
const (
	CRUDCreate CRUDAction = "create"
	CRUDRead   CRUDAction = "read"
	CRUDUpdate CRUDAction = "update"
	CRUDDelete CRUDAction = "delete"
)

// Permission describes the actions available on one application module.
type Permission struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Module      string       `json:"module" yaml:"module"`
	Actions     []CRUDAction `json:"actions" yaml:"actions" validate:"dive,oneof=create read update delete"`
}

// RoleGrant assigns a subset of a permission's actions to a role.
type RoleGrant struct {
	PermissionID string       `json:"permissionId" yaml:"permissionId"`
	Actions      []CRUDAction `json:"actions" yaml:"actions" validate:"dive,oneof=create read update delete"`
}

// Role bundles permission grants. System roles cannot be removed.
type Role struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Permissions []RoleGrant `json:"permissions" yaml:"permissions" validate:"dive"`
	Level       int         `json:"level" yaml:"level" validate:"oneof=1 2 3"`
	IsSystem    bool        `json:"isSystem,omitempty" yaml:"isSystem,omitempty"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in the change log.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionReplace indicates a whole collection was replaced.
	ActionReplace Action = "replace"
)

// Severity captures rule outcomes.
type Severity string

// Rule severities.
const (
	SeverityBlock Severity = "block"
	SeverityWarn  Severity = "warn"
	SeverityLog   Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}
