package memory

import "context"

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListNetworks returns all networks within the snapshot.
func (v transactionView) ListNetworks() []Network {
	return networkRecord.cloneAll(v.state.networks)
}

// ListCenters returns all centers within the snapshot.
func (v transactionView) ListCenters() []Center {
	return centerRecord.cloneAll(v.state.centers)
}

// ListFamilies returns all professional families.
func (v transactionView) ListFamilies() []ProfessionalFamily {
	return familyRecord.cloneAll(v.state.families)
}

// ListDepartments returns all departments.
func (v transactionView) ListDepartments() []Department {
	return departmentRecord.cloneAll(v.state.departments)
}

// ListObjectives returns all network objectives.
func (v transactionView) ListObjectives() []Objective {
	return objectiveRecord.cloneAll(v.state.objectives)
}

// ListODS returns all ODS tags.
func (v transactionView) ListODS() []Objective {
	return odsRecord.cloneAll(v.state.ods)
}

// ListRoles returns all roles.
func (v transactionView) ListRoles() []Role {
	return roleRecord.cloneAll(v.state.roles)
}

// ListPermissions returns the permission catalogue.
func (v transactionView) ListPermissions() []Permission {
	return permissionRecord.cloneAll(v.state.permissions)
}

// FindNetworkByCode returns the first network carrying code.
func (v transactionView) FindNetworkByCode(code string) (Network, bool) {
	for _, n := range v.state.networks {
		if n.Code == code {
			return n, true
		}
	}
	return Network{}, false
}

// FindCenterByName returns the first center named name.
func (v transactionView) FindCenterByName(name string) (Center, bool) {
	for _, c := range v.state.centers {
		if c.Name == name {
			return c, true
		}
	}
	return Center{}, false
}

// FindDepartmentByCode returns the first department carrying code.
func (v transactionView) FindDepartmentByCode(code string) (Department, bool) {
	for _, d := range v.state.departments {
		if d.Code == code {
			return d, true
		}
	}
	return Department{}, false
}

// FindFamilyByCode returns the first professional family carrying code.
func (v transactionView) FindFamilyByCode(code string) (ProfessionalFamily, bool) {
	for _, f := range v.state.families {
		if f.Code == code {
			return f, true
		}
	}
	return ProfessionalFamily{}, false
}

// FindObjective retrieves a network objective by ID.
func (v transactionView) FindObjective(id string) (Objective, bool) {
	if idx := objectiveRecord.indexOf(v.state.objectives, id); idx >= 0 {
		return v.state.objectives[idx], true
	}
	return Objective{}, false
}

// FindRole retrieves a role by ID.
func (v transactionView) FindRole(id string) (Role, bool) {
	if idx := roleRecord.indexOf(v.state.roles, id); idx >= 0 {
		return cloneRole(v.state.roles[idx]), true
	}
	return Role{}, false
}

// Store-level read helpers mirror the view so callers that only need a list
// do not have to open one.

func (s *Store) readView(fn func(TransactionView)) {
	_ = s.View(context.Background(), func(v TransactionView) error {
		fn(v)
		return nil
	})
}

// ListNetworks returns all networks.
func (s *Store) ListNetworks() (out []Network) {
	s.readView(func(v TransactionView) { out = v.ListNetworks() })
	return out
}

// ListCenters returns all centers.
func (s *Store) ListCenters() (out []Center) {
	s.readView(func(v TransactionView) { out = v.ListCenters() })
	return out
}

// ListFamilies returns all professional families.
func (s *Store) ListFamilies() (out []ProfessionalFamily) {
	s.readView(func(v TransactionView) { out = v.ListFamilies() })
	return out
}

// ListDepartments returns all departments.
func (s *Store) ListDepartments() (out []Department) {
	s.readView(func(v TransactionView) { out = v.ListDepartments() })
	return out
}

// ListObjectives returns all network objectives.
func (s *Store) ListObjectives() (out []Objective) {
	s.readView(func(v TransactionView) { out = v.ListObjectives() })
	return out
}

// ListODS returns all ODS tags.
func (s *Store) ListODS() (out []Objective) {
	s.readView(func(v TransactionView) { out = v.ListODS() })
	return out
}

// ListRoles returns all roles.
func (s *Store) ListRoles() (out []Role) {
	s.readView(func(v TransactionView) { out = v.ListRoles() })
	return out
}

// ListPermissions returns the permission catalogue.
func (s *Store) ListPermissions() (out []Permission) {
	s.readView(func(v TransactionView) { out = v.ListPermissions() })
	return out
}
