// Package memory provides an in-memory implementation of the master records
// persistence store used for tests, ephemeral environments, and as the
// transactional engine behind the durable backends.
package memory

import (
	"context"
	"sync"

	"fpadmin/pkg/domain"
)

// Compile-time contract assertions ensuring memory.Store adheres to the domain persistence interfaces.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Network aliases domain.Network for in-memory persistence operations.
	Network = domain.Network
	// Center aliases domain.Center.
	Center = domain.Center
	// ProfessionalFamily aliases domain.ProfessionalFamily.
	ProfessionalFamily = domain.ProfessionalFamily
	// Department aliases domain.Department.
	Department = domain.Department
	// Objective aliases domain.Objective.
	Objective = domain.Objective
	// Role aliases domain.Role.
	Role = domain.Role
	// Permission aliases domain.Permission.
	Permission = domain.Permission
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

// Collections are slices rather than maps: list order is observable and
// lookups return the first match in insertion order.
type memoryState struct {
	networks    []Network
	centers     []Center
	families    []ProfessionalFamily
	departments []Department
	objectives  []Objective
	ods         []Objective
	roles       []Role
	permissions []Permission
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Networks    []Network            `json:"networks" yaml:"networks"`
	Centers     []Center             `json:"centers" yaml:"centers"`
	Families    []ProfessionalFamily `json:"families" yaml:"families"`
	Departments []Department         `json:"departments" yaml:"departments"`
	Objectives  []Objective          `json:"objectives" yaml:"objectives"`
	ODS         []Objective          `json:"ods" yaml:"ods"`
	Roles       []Role               `json:"roles" yaml:"roles"`
	Permissions []Permission         `json:"permissions" yaml:"permissions"`
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	cloned := state.clone()
	return Snapshot{
		Networks:    cloned.networks,
		Centers:     cloned.centers,
		Families:    cloned.families,
		Departments: cloned.departments,
		Objectives:  cloned.objectives,
		ODS:         cloned.ods,
		Roles:       cloned.roles,
		Permissions: cloned.permissions,
	}
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := memoryState{
		networks:    s.Networks,
		centers:     s.Centers,
		families:    s.Families,
		departments: s.Departments,
		objectives:  s.Objectives,
		ods:         s.ODS,
		roles:       s.Roles,
		permissions: s.Permissions,
	}
	return state.clone()
}

// normalizeSnapshot repairs derived fields of an imported snapshot so that
// stored data written by older builds, fixtures, or hand edits cannot break
// the center count invariant.
func normalizeSnapshot(state *memoryState) {
	recomputeCenterCounts(state)
}

func (s memoryState) clone() memoryState {
	cloned := memoryState{
		networks:    append([]Network(nil), s.networks...),
		centers:     append([]Center(nil), s.centers...),
		families:    append([]ProfessionalFamily(nil), s.families...),
		departments: append([]Department(nil), s.departments...),
		objectives:  append([]Objective(nil), s.objectives...),
		ods:         append([]Objective(nil), s.ods...),
	}
	if s.roles != nil {
		cloned.roles = make([]Role, len(s.roles))
		for i, r := range s.roles {
			cloned.roles[i] = cloneRole(r)
		}
	}
	if s.permissions != nil {
		cloned.permissions = make([]Permission, len(s.permissions))
		for i, p := range s.permissions {
			cloned.permissions[i] = clonePermission(p)
		}
	}
	return cloned
}

func cloneRole(r Role) Role {
	cp := r
	cp.Permissions = domain.CloneGrants(r.Permissions)
	return cp
}

func clonePermission(p Permission) Permission {
	cp := p
	cp.Actions = append([]domain.CRUDAction(nil), p.Actions...)
	return cp
}

func countCenters(centers []Center, code string) int {
	n := 0
	for _, c := range centers {
		if c.Network == code {
			n++
		}
	}
	return n
}

func recomputeCenterCounts(state *memoryState) {
	for i := range state.networks {
		state.networks[i].CenterCount = countCenters(state.centers, state.networks[i].Code)
	}
}

// Store provides an in-memory transactional store for master records.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	newID  IDGenerator
	// loaded is the last imported snapshot before normalization, kept until
	// the next commit replaces it.
	loaded *Snapshot
}

// Option customizes a Store at construction time.
type Option func(*Store)

// WithIDGenerator overrides the record id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine, opts ...Option) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		engine: engine,
		newID:  UUIDGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	state := memoryStateFromSnapshot(snapshot)
	raw := snapshotFromMemoryState(state)
	normalizeSnapshot(&state)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.loaded = &raw
}

// LoadedState returns the last imported snapshot as it was before derived
// counts were recomputed. ok is false when nothing was imported or a commit
// has happened since.
func (s *Store) LoadedState() (snapshot Snapshot, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loaded == nil {
		return Snapshot{}, false
	}
	return snapshotFromMemoryState(memoryStateFromSnapshot(*s.loaded)), true
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
}

// RunInTransaction executes fn within a transactional copy of the store state.
// The copy replaces the committed state only when fn succeeds and no blocking
// rule violation is reported, so readers never observe a partial mutation.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	s.loaded = nil
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return fn(newTransactionView(&snapshot))
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// record bundles the per-entity accessors the generic collection helpers need.
type record[T any] struct {
	entity domain.EntityType
	id     func(*T) *string
	clone  func(T) T
}

func identity[T any](v T) T { return v }

var (
	networkRecord    = record[Network]{entity: domain.EntityNetwork, id: func(v *Network) *string { return &v.ID }, clone: identity[Network]}
	centerRecord     = record[Center]{entity: domain.EntityCenter, id: func(v *Center) *string { return &v.ID }, clone: identity[Center]}
	familyRecord     = record[ProfessionalFamily]{entity: domain.EntityFamily, id: func(v *ProfessionalFamily) *string { return &v.ID }, clone: identity[ProfessionalFamily]}
	departmentRecord = record[Department]{entity: domain.EntityDepartment, id: func(v *Department) *string { return &v.ID }, clone: identity[Department]}
	objectiveRecord  = record[Objective]{entity: domain.EntityObjective, id: func(v *Objective) *string { return &v.ID }, clone: identity[Objective]}
	odsRecord        = record[Objective]{entity: domain.EntityODS, id: func(v *Objective) *string { return &v.ID }, clone: identity[Objective]}
	roleRecord       = record[Role]{entity: domain.EntityRole, id: func(v *Role) *string { return &v.ID }, clone: cloneRole}
	permissionRecord = record[Permission]{entity: domain.EntityPermission, id: func(v *Permission) *string { return &v.ID }, clone: clonePermission}
)

func (r record[T]) indexOf(items []T, id string) int {
	for i := range items {
		if *r.id(&items[i]) == id {
			return i
		}
	}
	return -1
}

func (r record[T]) replace(tx *transaction, items *[]T, list []T) {
	next := make([]T, 0, len(list))
	for _, v := range list {
		v = r.clone(v)
		if *r.id(&v) == "" {
			*r.id(&v) = tx.store.newID()
		}
		next = append(next, v)
	}
	before := *items
	*items = next
	tx.recordChange(Change{Entity: r.entity, Action: domain.ActionReplace, Before: before, After: r.cloneAll(next)})
}

func (r record[T]) cloneAll(items []T) []T {
	out := make([]T, len(items))
	for i, v := range items {
		out[i] = r.clone(v)
	}
	return out
}

func (r record[T]) create(tx *transaction, items *[]T, v T) (T, error) {
	var zero T
	v = r.clone(v)
	id := r.id(&v)
	if *id == "" {
		*id = tx.store.newID()
	}
	if r.indexOf(*items, *id) >= 0 {
		return zero, domain.DuplicateIDError{Entity: r.entity, ID: *id}
	}
	*items = append(*items, v)
	tx.recordChange(Change{Entity: r.entity, Action: domain.ActionCreate, After: r.clone(v)})
	return r.clone(v), nil
}

func (r record[T]) update(tx *transaction, items []T, id string, mutate func(*T) error) (before, after T, err error) {
	idx := r.indexOf(items, id)
	if idx < 0 {
		return before, after, domain.ErrNotFound{Entity: r.entity, ID: id}
	}
	before = r.clone(items[idx])
	current := r.clone(items[idx])
	if err := mutate(&current); err != nil {
		return before, after, err
	}
	*r.id(&current) = id
	items[idx] = current
	tx.recordChange(Change{Entity: r.entity, Action: domain.ActionUpdate, Before: before, After: r.clone(current)})
	return before, r.clone(current), nil
}

func (r record[T]) remove(tx *transaction, items *[]T, id string) (T, error) {
	var zero T
	idx := r.indexOf(*items, id)
	if idx < 0 {
		return zero, domain.ErrNotFound{Entity: r.entity, ID: id}
	}
	removed := (*items)[idx]
	*items = append((*items)[:idx:idx], (*items)[idx+1:]...)
	tx.recordChange(Change{Entity: r.entity, Action: domain.ActionDelete, Before: r.clone(removed)})
	return removed, nil
}

// adjustCenterCount shifts the count of every network whose code matches.
// Unknown codes leave the networks untouched.
func (tx *transaction) adjustCenterCount(code string, delta int) {
	for i := range tx.state.networks {
		n := &tx.state.networks[i]
		if n.Code != code {
			continue
		}
		before := *n
		n.CenterCount += delta
		tx.recordChange(Change{Entity: domain.EntityNetwork, Action: domain.ActionUpdate, Before: before, After: *n})
	}
}

// Networks -------------------------------------------------------------------

// SetNetworks replaces the network collection and recomputes center counts.
func (tx *transaction) SetNetworks(list []Network) {
	networkRecord.replace(tx, &tx.state.networks, list)
	recomputeCenterCounts(&tx.state)
}

// CreateNetwork appends a network. Its center count reflects any centers that
// already reference its code.
func (tx *transaction) CreateNetwork(n Network) (Network, error) {
	n.CenterCount = countCenters(tx.state.centers, n.Code)
	return networkRecord.create(tx, &tx.state.networks, n)
}

// UpdateNetwork merges patch into the network with the given id.
func (tx *transaction) UpdateNetwork(id string, patch domain.NetworkPatch) (Network, error) {
	_, after, err := networkRecord.update(tx, tx.state.networks, id, func(n *Network) error {
		prevCode := n.Code
		patch.Apply(n)
		if n.Code != prevCode {
			n.CenterCount = countCenters(tx.state.centers, n.Code)
		}
		return nil
	})
	return after, err
}

// DeleteNetwork removes a network. Centers referencing it are kept.
func (tx *transaction) DeleteNetwork(id string) error {
	_, err := networkRecord.remove(tx, &tx.state.networks, id)
	return err
}

// Centers --------------------------------------------------------------------

// SetCenters replaces the center collection and recomputes center counts.
func (tx *transaction) SetCenters(list []Center) {
	centerRecord.replace(tx, &tx.state.centers, list)
	recomputeCenterCounts(&tx.state)
}

// CreateCenter appends a center and increments its network's count.
func (tx *transaction) CreateCenter(c Center) (Center, error) {
	created, err := centerRecord.create(tx, &tx.state.centers, c)
	if err != nil {
		return Center{}, err
	}
	tx.adjustCenterCount(created.Network, 1)
	return created, nil
}

// UpdateCenter merges patch into the center; moving it to another network
// moves one unit of center count with it.
func (tx *transaction) UpdateCenter(id string, patch domain.CenterPatch) (Center, error) {
	before, after, err := centerRecord.update(tx, tx.state.centers, id, func(c *Center) error {
		patch.Apply(c)
		return nil
	})
	if err != nil {
		return Center{}, err
	}
	if before.Network != after.Network {
		tx.adjustCenterCount(before.Network, -1)
		tx.adjustCenterCount(after.Network, 1)
	}
	return after, nil
}

// DeleteCenter removes a center and decrements the network it referenced.
func (tx *transaction) DeleteCenter(id string) error {
	removed, err := centerRecord.remove(tx, &tx.state.centers, id)
	if err != nil {
		return err
	}
	tx.adjustCenterCount(removed.Network, -1)
	return nil
}

// Families -------------------------------------------------------------------

// SetFamilies replaces the professional family collection.
func (tx *transaction) SetFamilies(list []ProfessionalFamily) {
	familyRecord.replace(tx, &tx.state.families, list)
}

// CreateFamily appends a professional family.
func (tx *transaction) CreateFamily(f ProfessionalFamily) (ProfessionalFamily, error) {
	return familyRecord.create(tx, &tx.state.families, f)
}

// UpdateFamily merges patch into the family with the given id.
func (tx *transaction) UpdateFamily(id string, patch domain.FamilyPatch) (ProfessionalFamily, error) {
	_, after, err := familyRecord.update(tx, tx.state.families, id, func(f *ProfessionalFamily) error {
		patch.Apply(f)
		return nil
	})
	return after, err
}

// DeleteFamily removes a professional family.
func (tx *transaction) DeleteFamily(id string) error {
	_, err := familyRecord.remove(tx, &tx.state.families, id)
	return err
}

// Departments ----------------------------------------------------------------

// SetDepartments replaces the department collection.
func (tx *transaction) SetDepartments(list []Department) {
	departmentRecord.replace(tx, &tx.state.departments, list)
}

// CreateDepartment appends a department.
func (tx *transaction) CreateDepartment(d Department) (Department, error) {
	return departmentRecord.create(tx, &tx.state.departments, d)
}

// UpdateDepartment merges patch into the department with the given id.
func (tx *transaction) UpdateDepartment(id string, patch domain.DepartmentPatch) (Department, error) {
	_, after, err := departmentRecord.update(tx, tx.state.departments, id, func(d *Department) error {
		patch.Apply(d)
		return nil
	})
	return after, err
}

// DeleteDepartment removes a department.
func (tx *transaction) DeleteDepartment(id string) error {
	_, err := departmentRecord.remove(tx, &tx.state.departments, id)
	return err
}

// Objectives and ODS ---------------------------------------------------------

// SetObjectives replaces the network objective collection.
func (tx *transaction) SetObjectives(list []Objective) {
	objectiveRecord.replace(tx, &tx.state.objectives, list)
}

// CreateObjective appends a network objective.
func (tx *transaction) CreateObjective(o Objective) (Objective, error) {
	if !o.Priority.Valid() {
		return Objective{}, domain.InvalidPriorityError{Priority: o.Priority}
	}
	return objectiveRecord.create(tx, &tx.state.objectives, o)
}

// UpdateObjective merges patch into the objective with the given id.
func (tx *transaction) UpdateObjective(id string, patch domain.ObjectivePatch) (Objective, error) {
	_, after, err := objectiveRecord.update(tx, tx.state.objectives, id, func(o *Objective) error {
		patch.Apply(o)
		if !o.Priority.Valid() {
			return domain.InvalidPriorityError{Priority: o.Priority}
		}
		return nil
	})
	return after, err
}

// DeleteObjective removes a network objective.
func (tx *transaction) DeleteObjective(id string) error {
	_, err := objectiveRecord.remove(tx, &tx.state.objectives, id)
	return err
}

// ToggleObjectiveActive flips IsActive on the objective in place.
func (tx *transaction) ToggleObjectiveActive(id string) (Objective, error) {
	_, after, err := objectiveRecord.update(tx, tx.state.objectives, id, toggleActive)
	return after, err
}

// SetODS replaces the ODS collection.
func (tx *transaction) SetODS(list []Objective) {
	odsRecord.replace(tx, &tx.state.ods, list)
}

// CreateODS appends an ODS tag.
func (tx *transaction) CreateODS(o Objective) (Objective, error) {
	return odsRecord.create(tx, &tx.state.ods, o)
}

// UpdateODS merges patch into the ODS tag with the given id.
func (tx *transaction) UpdateODS(id string, patch domain.ObjectivePatch) (Objective, error) {
	_, after, err := odsRecord.update(tx, tx.state.ods, id, func(o *Objective) error {
		patch.Apply(o)
		return nil
	})
	return after, err
}

// DeleteODS removes an ODS tag.
func (tx *transaction) DeleteODS(id string) error {
	_, err := odsRecord.remove(tx, &tx.state.ods, id)
	return err
}

// ToggleODSActive flips IsActive on the ODS tag in place.
func (tx *transaction) ToggleODSActive(id string) (Objective, error) {
	_, after, err := odsRecord.update(tx, tx.state.ods, id, toggleActive)
	return after, err
}

func toggleActive(o *Objective) error {
	o.IsActive = !o.IsActive
	return nil
}

// Roles and permissions ------------------------------------------------------

// SetPermissions replaces the permission catalogue.
func (tx *transaction) SetPermissions(list []Permission) {
	permissionRecord.replace(tx, &tx.state.permissions, list)
}

// SetRoles replaces the role collection.
func (tx *transaction) SetRoles(list []Role) {
	roleRecord.replace(tx, &tx.state.roles, list)
}

// CreateRole appends a role.
func (tx *transaction) CreateRole(r Role) (Role, error) {
	return roleRecord.create(tx, &tx.state.roles, r)
}

// UpdateRole merges patch into the role with the given id.
func (tx *transaction) UpdateRole(id string, patch domain.RolePatch) (Role, error) {
	_, after, err := roleRecord.update(tx, tx.state.roles, id, func(r *Role) error {
		patch.Apply(r)
		return nil
	})
	return after, err
}

// DeleteRole removes a role unless it is a system role.
func (tx *transaction) DeleteRole(id string) error {
	if idx := roleRecord.indexOf(tx.state.roles, id); idx >= 0 && tx.state.roles[idx].IsSystem {
		return domain.ProtectedRoleError{ID: id}
	}
	_, err := roleRecord.remove(tx, &tx.state.roles, id)
	return err
}
