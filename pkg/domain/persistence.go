package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope. Every mutation either commits together
// with the rest of the transaction or not at all.
type Transaction interface {
	Snapshot() TransactionView

	SetNetworks([]Network)
	CreateNetwork(Network) (Network, error)
	UpdateNetwork(id string, patch NetworkPatch) (Network, error)
	DeleteNetwork(id string) error

	SetCenters([]Center)
	CreateCenter(Center) (Center, error)
	UpdateCenter(id string, patch CenterPatch) (Center, error)
	DeleteCenter(id string) error

	SetFamilies([]ProfessionalFamily)
	CreateFamily(ProfessionalFamily) (ProfessionalFamily, error)
	UpdateFamily(id string, patch FamilyPatch) (ProfessionalFamily, error)
	DeleteFamily(id string) error

	SetDepartments([]Department)
	CreateDepartment(Department) (Department, error)
	UpdateDepartment(id string, patch DepartmentPatch) (Department, error)
	DeleteDepartment(id string) error

	SetObjectives([]Objective)
	CreateObjective(Objective) (Objective, error)
	UpdateObjective(id string, patch ObjectivePatch) (Objective, error)
	DeleteObjective(id string) error
	ToggleObjectiveActive(id string) (Objective, error)

	SetODS([]Objective)
	CreateODS(Objective) (Objective, error)
	UpdateODS(id string, patch ObjectivePatch) (Objective, error)
	DeleteODS(id string) error
	ToggleODSActive(id string) (Objective, error)

	SetPermissions([]Permission)
	SetRoles([]Role)
	CreateRole(Role) (Role, error)
	UpdateRole(id string, patch RolePatch) (Role, error)
	DeleteRole(id string) error
}

// TransactionView provides read-only access to snapshot data.
type TransactionView interface {
	RuleView
	FindNetworkByCode(code string) (Network, bool)
	FindCenterByName(name string) (Center, bool)
	FindDepartmentByCode(code string) (Department, bool)
	FindFamilyByCode(code string) (ProfessionalFamily, bool)
	FindObjective(id string) (Objective, bool)
	FindRole(id string) (Role, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	ListNetworks() []Network
	ListCenters() []Center
	ListFamilies() []ProfessionalFamily
	ListDepartments() []Department
	ListObjectives() []Objective
	ListODS() []Objective
	ListRoles() []Role
	ListPermissions() []Permission
}
