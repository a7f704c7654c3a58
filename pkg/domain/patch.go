package domain

// NetworkPatch lists the mutable fields of a Network. Nil fields are left
// untouched by Apply. CenterCount is derived and cannot be patched.
type NetworkPatch struct {
	Code *string `json:"code,omitempty"`
	Name *string `json:"name,omitempty"`
}

// Apply merges the non-nil fields into n.
func (p NetworkPatch) Apply(n *Network) {
	if p.Code != nil {
		n.Code = *p.Code
	}
	if p.Name != nil {
		n.Name = *p.Name
	}
}

// CenterPatch lists the mutable fields of a Center.
type CenterPatch struct {
	Name    *string `json:"name,omitempty"`
	Network *string `json:"network,omitempty"`
}

// Apply merges the non-nil fields into c.
func (p CenterPatch) Apply(c *Center) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Network != nil {
		c.Network = *p.Network
	}
}

// FamilyPatch lists the mutable fields of a ProfessionalFamily.
type FamilyPatch struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the non-nil fields into f.
func (p FamilyPatch) Apply(f *ProfessionalFamily) {
	if p.Code != nil {
		f.Code = *p.Code
	}
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
}

// DepartmentPatch lists the mutable fields of a Department.
type DepartmentPatch struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the non-nil fields into d.
func (p DepartmentPatch) Apply(d *Department) {
	if p.Code != nil {
		d.Code = *p.Code
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
}

// ObjectivePatch lists the mutable fields of an Objective.
type ObjectivePatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

// Apply merges the non-nil fields into o.
func (p ObjectivePatch) Apply(o *Objective) {
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Priority != nil {
		o.Priority = *p.Priority
	}
	if p.IsActive != nil {
		o.IsActive = *p.IsActive
	}
}

// RolePatch lists the mutable fields of a Role. IsSystem is fixed at creation.
type RolePatch struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Permissions *[]RoleGrant `json:"permissions,omitempty"`
	Level       *int         `json:"level,omitempty"`
}

// Apply merges the non-nil fields into r.
func (p RolePatch) Apply(r *Role) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Permissions != nil {
		r.Permissions = CloneGrants(*p.Permissions)
	}
	if p.Level != nil {
		r.Level = *p.Level
	}
}

// CloneGrants deep copies a grant list.
func CloneGrants(in []RoleGrant) []RoleGrant {
	if in == nil {
		return nil
	}
	out := make([]RoleGrant, len(in))
	for i, g := range in {
		out[i] = RoleGrant{PermissionID: g.PermissionID, Actions: append([]CRUDAction(nil), g.Actions...)}
	}
	return out
}
