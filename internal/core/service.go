package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fpadmin/internal/infra/persistence/memory"
	"fpadmin/pkg/domain"
)

// RecordsService exposes transactional operations over the master records
// (networks, centers, families, departments, objectives, ODS, roles).
type RecordsService struct {
	store   PersistentStore
	logger  *zap.Logger
	metrics MetricsRecorder
}

// NewRecordsService constructs a service backed by the supplied store.
func NewRecordsService(store PersistentStore, opts ...Option) *RecordsService {
	o := buildOptions(opts)
	return &RecordsService{
		store:   store,
		logger:  o.logger.Named("records"),
		metrics: o.metrics,
	}
}

// Store returns the underlying storage implementation.
func (s *RecordsService) Store() PersistentStore {
	return s.store
}

func (s *RecordsService) run(ctx context.Context, op string, fn func(Transaction) error) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	res, err := s.store.RunInTransaction(ctx, fn)
	elapsed := time.Since(start)
	s.metrics.ObserveOperation(op, elapsed, err)

	for _, v := range res.Violations {
		s.metrics.ObserveViolation(v.Rule, string(v.Severity))
		s.logger.Warn("rule violation",
			zap.String("operation", op),
			zap.String("rule", v.Rule),
			zap.String("severity", string(v.Severity)),
			zap.String("entity_id", v.EntityID),
			zap.String("message", v.Message))
	}
	switch {
	case err == nil:
		s.logger.Debug("transaction committed", zap.String("operation", op), zap.Duration("elapsed", elapsed))
	case domain.IsNotFound(err):
		s.logger.Debug("transaction skipped", zap.String("operation", op), zap.Error(err))
	default:
		s.logger.Warn("transaction failed", zap.String("operation", op), zap.Error(err))
	}
	return res, err
}

// mutate runs fn in a transaction and returns the record it produced.
func mutate[T any](ctx context.Context, s *RecordsService, op string, fn func(Transaction) (T, error)) (T, Result, error) {
	var out T
	res, err := s.run(ctx, op, func(tx Transaction) error {
		var err error
		out, err = fn(tx)
		return err
	})
	return out, res, err
}

// view runs fn against a read-only snapshot.
func (s *RecordsService) view(ctx context.Context, fn func(TransactionView)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.View(ctx, func(v TransactionView) error {
		fn(v)
		return nil
	})
}

// Networks -------------------------------------------------------------------

// Networks lists networks in insertion order.
func (s *RecordsService) Networks() []Network { return s.store.ListNetworks() }

// SetNetworks replaces the network collection.
func (s *RecordsService) SetNetworks(ctx context.Context, list []Network) (Result, error) {
	return s.run(ctx, "set_networks", func(tx Transaction) error {
		tx.SetNetworks(list)
		return nil
	})
}

// CreateNetwork persists a new network.
func (s *RecordsService) CreateNetwork(ctx context.Context, n Network) (Network, Result, error) {
	return mutate(ctx, s, "create_network", func(tx Transaction) (Network, error) { return tx.CreateNetwork(n) })
}

// UpdateNetwork merges patch into a network.
func (s *RecordsService) UpdateNetwork(ctx context.Context, id string, patch domain.NetworkPatch) (Network, Result, error) {
	return mutate(ctx, s, "update_network", func(tx Transaction) (Network, error) { return tx.UpdateNetwork(id, patch) })
}

// DeleteNetwork removes a network.
func (s *RecordsService) DeleteNetwork(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_network", func(tx Transaction) error { return tx.DeleteNetwork(id) })
}

// NetworkByCode returns the first network carrying code.
func (s *RecordsService) NetworkByCode(ctx context.Context, code string) (n Network, ok bool, err error) {
	err = s.view(ctx, func(v TransactionView) { n, ok = v.FindNetworkByCode(code) })
	return n, ok, err
}

// Centers --------------------------------------------------------------------

// Centers lists centers in insertion order.
func (s *RecordsService) Centers() []Center { return s.store.ListCenters() }

// SetCenters replaces the center collection; network counts are recomputed.
func (s *RecordsService) SetCenters(ctx context.Context, list []Center) (Result, error) {
	return s.run(ctx, "set_centers", func(tx Transaction) error {
		tx.SetCenters(list)
		return nil
	})
}

// CreateCenter persists a center and bumps its network's count atomically.
func (s *RecordsService) CreateCenter(ctx context.Context, c Center) (Center, Result, error) {
	return mutate(ctx, s, "create_center", func(tx Transaction) (Center, error) { return tx.CreateCenter(c) })
}

// UpdateCenter merges patch into a center.
func (s *RecordsService) UpdateCenter(ctx context.Context, id string, patch domain.CenterPatch) (Center, Result, error) {
	return mutate(ctx, s, "update_center", func(tx Transaction) (Center, error) { return tx.UpdateCenter(id, patch) })
}

// DeleteCenter removes a center and decrements its network's count atomically.
func (s *RecordsService) DeleteCenter(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_center", func(tx Transaction) error { return tx.DeleteCenter(id) })
}

// CenterByName returns the first center named name.
func (s *RecordsService) CenterByName(ctx context.Context, name string) (c Center, ok bool, err error) {
	err = s.view(ctx, func(v TransactionView) { c, ok = v.FindCenterByName(name) })
	return c, ok, err
}

// Families -------------------------------------------------------------------

// Families lists professional families.
func (s *RecordsService) Families() []ProfessionalFamily { return s.store.ListFamilies() }

// SetFamilies replaces the professional family collection.
func (s *RecordsService) SetFamilies(ctx context.Context, list []ProfessionalFamily) (Result, error) {
	return s.run(ctx, "set_families", func(tx Transaction) error {
		tx.SetFamilies(list)
		return nil
	})
}

// CreateFamily persists a professional family.
func (s *RecordsService) CreateFamily(ctx context.Context, f ProfessionalFamily) (ProfessionalFamily, Result, error) {
	return mutate(ctx, s, "create_family", func(tx Transaction) (ProfessionalFamily, error) { return tx.CreateFamily(f) })
}

// UpdateFamily merges patch into a professional family.
func (s *RecordsService) UpdateFamily(ctx context.Context, id string, patch domain.FamilyPatch) (ProfessionalFamily, Result, error) {
	return mutate(ctx, s, "update_family", func(tx Transaction) (ProfessionalFamily, error) { return tx.UpdateFamily(id, patch) })
}

// DeleteFamily removes a professional family.
func (s *RecordsService) DeleteFamily(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_family", func(tx Transaction) error { return tx.DeleteFamily(id) })
}

// FamilyByCode returns the first professional family carrying code.
func (s *RecordsService) FamilyByCode(ctx context.Context, code string) (f ProfessionalFamily, ok bool, err error) {
	err = s.view(ctx, func(v TransactionView) { f, ok = v.FindFamilyByCode(code) })
	return f, ok, err
}

// Departments ----------------------------------------------------------------

// Departments lists departments.
func (s *RecordsService) Departments() []Department { return s.store.ListDepartments() }

// SetDepartments replaces the department collection.
func (s *RecordsService) SetDepartments(ctx context.Context, list []Department) (Result, error) {
	return s.run(ctx, "set_departments", func(tx Transaction) error {
		tx.SetDepartments(list)
		return nil
	})
}

// CreateDepartment persists a department.
func (s *RecordsService) CreateDepartment(ctx context.Context, d Department) (Department, Result, error) {
	return mutate(ctx, s, "create_department", func(tx Transaction) (Department, error) { return tx.CreateDepartment(d) })
}

// UpdateDepartment merges patch into a department.
func (s *RecordsService) UpdateDepartment(ctx context.Context, id string, patch domain.DepartmentPatch) (Department, Result, error) {
	return mutate(ctx, s, "update_department", func(tx Transaction) (Department, error) { return tx.UpdateDepartment(id, patch) })
}

// DeleteDepartment removes a department.
func (s *RecordsService) DeleteDepartment(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_department", func(tx Transaction) error { return tx.DeleteDepartment(id) })
}

// DepartmentByCode returns the first department carrying code.
func (s *RecordsService) DepartmentByCode(ctx context.Context, code string) (d Department, ok bool, err error) {
	err = s.view(ctx, func(v TransactionView) { d, ok = v.FindDepartmentByCode(code) })
	return d, ok, err
}

// Objectives -----------------------------------------------------------------

// Objectives lists network objectives.
func (s *RecordsService) Objectives() []Objective { return s.store.ListObjectives() }

// SetObjectives replaces the network objective collection.
func (s *RecordsService) SetObjectives(ctx context.Context, list []Objective) (Result, error) {
	return s.run(ctx, "set_objectives", func(tx Transaction) error {
		tx.SetObjectives(list)
		return nil
	})
}

// CreateObjective persists a network objective.
func (s *RecordsService) CreateObjective(ctx context.Context, o Objective) (Objective, Result, error) {
	return mutate(ctx, s, "create_objective", func(tx Transaction) (Objective, error) { return tx.CreateObjective(o) })
}

// UpdateObjective merges patch into a network objective.
func (s *RecordsService) UpdateObjective(ctx context.Context, id string, patch domain.ObjectivePatch) (Objective, Result, error) {
	return mutate(ctx, s, "update_objective", func(tx Transaction) (Objective, error) { return tx.UpdateObjective(id, patch) })
}

// DeleteObjective removes a network objective.
func (s *RecordsService) DeleteObjective(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_objective", func(tx Transaction) error { return tx.DeleteObjective(id) })
}

// ToggleObjective flips a network objective's active flag.
func (s *RecordsService) ToggleObjective(ctx context.Context, id string) (Objective, Result, error) {
	return mutate(ctx, s, "toggle_objective", func(tx Transaction) (Objective, error) { return tx.ToggleObjectiveActive(id) })
}

// ObjectiveByID returns the network objective with id.
func (s *RecordsService) ObjectiveByID(ctx context.Context, id string) (o Objective, ok bool, err error) {
	err = s.view(ctx, func(v TransactionView) { o, ok = v.FindObjective(id) })
	return o, ok, err
}

// ODS ------------------------------------------------------------------------

// ODS lists sustainable development goal tags.
func (s *RecordsService) ODS() []Objective { return s.store.ListODS() }

// SetODS replaces the ODS collection.
func (s *RecordsService) SetODS(ctx context.Context, list []Objective) (Result, error) {
	return s.run(ctx, "set_ods", func(tx Transaction) error {
		tx.SetODS(list)
		return nil
	})
}

// CreateODS persists an ODS tag.
func (s *RecordsService) CreateODS(ctx context.Context, o Objective) (Objective, Result, error) {
	return mutate(ctx, s, "create_ods", func(tx Transaction) (Objective, error) { return tx.CreateODS(o) })
}

// UpdateODS merges patch into an ODS tag.
func (s *RecordsService) UpdateODS(ctx context.Context, id string, patch domain.ObjectivePatch) (Objective, Result, error) {
	return mutate(ctx, s, "update_ods", func(tx Transaction) (Objective, error) { return tx.UpdateODS(id, patch) })
}

// DeleteODS removes an ODS tag.
func (s *RecordsService) DeleteODS(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_ods", func(tx Transaction) error { return tx.DeleteODS(id) })
}

// ToggleODS flips an ODS tag's active flag.
func (s *RecordsService) ToggleODS(ctx context.Context, id string) (Objective, Result, error) {
	return mutate(ctx, s, "toggle_ods", func(tx Transaction) (Objective, error) { return tx.ToggleODSActive(id) })
}

// Roles and permissions ------------------------------------------------------

// Roles lists roles.
func (s *RecordsService) Roles() []Role { return s.store.ListRoles() }

// Permissions lists the permission catalogue.
func (s *RecordsService) Permissions() []Permission { return s.store.ListPermissions() }

// SetPermissions replaces the permission catalogue.
func (s *RecordsService) SetPermissions(ctx context.Context, list []Permission) (Result, error) {
	if err := ValidateStruct(permissionCatalogue{Permissions: list}); err != nil {
		return Result{}, err
	}
	return s.run(ctx, "set_permissions", func(tx Transaction) error {
		tx.SetPermissions(list)
		return nil
	})
}

// CreateRole persists a role.
func (s *RecordsService) CreateRole(ctx context.Context, r Role) (Role, Result, error) {
	if err := ValidateStruct(r); err != nil {
		return Role{}, Result{}, err
	}
	return mutate(ctx, s, "create_role", func(tx Transaction) (Role, error) { return tx.CreateRole(r) })
}

// UpdateRole merges patch into a role.
func (s *RecordsService) UpdateRole(ctx context.Context, id string, patch domain.RolePatch) (Role, Result, error) {
	return mutate(ctx, s, "update_role", func(tx Transaction) (Role, error) {
		updated, err := tx.UpdateRole(id, patch)
		if err != nil {
			return Role{}, err
		}
		// An invalid merged role aborts the transaction.
		if err := ValidateStruct(updated); err != nil {
			return Role{}, err
		}
		return updated, nil
	})
}

// DeleteRole removes a non-system role.
func (s *RecordsService) DeleteRole(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_role", func(tx Transaction) error { return tx.DeleteRole(id) })
}

// Bulk -----------------------------------------------------------------------

// Dataset is a complete set of master records, used for seeding.
type Dataset struct {
	Networks    []Network            `json:"networks" yaml:"networks"`
	Centers     []Center             `json:"centers" yaml:"centers"`
	Families    []ProfessionalFamily `json:"families" yaml:"families"`
	Departments []Department         `json:"departments" yaml:"departments"`
	Objectives  []Objective          `json:"objectives" yaml:"objectives"`
	ODS         []Objective          `json:"ods" yaml:"ods"`
	Permissions []Permission         `json:"permissions" yaml:"permissions"`
	Roles       []Role               `json:"roles" yaml:"roles"`
}

// permissionCatalogue and roleSet wrap collections for ValidateStruct.
type permissionCatalogue struct {
	Permissions []Permission `json:"permissions" validate:"dive"`
}

type roleSet struct {
	Roles []Role `json:"roles" validate:"dive"`
}

// ReplaceAll swaps every collection for the dataset's in one transaction.
func (s *RecordsService) ReplaceAll(ctx context.Context, ds Dataset) (Result, error) {
	if err := ValidateStruct(permissionCatalogue{Permissions: ds.Permissions}); err != nil {
		return Result{}, err
	}
	if err := ValidateStruct(roleSet{Roles: ds.Roles}); err != nil {
		return Result{}, err
	}
	return s.run(ctx, "replace_all", func(tx Transaction) error {
		tx.SetCenters(ds.Centers)
		tx.SetNetworks(ds.Networks)
		tx.SetFamilies(ds.Families)
		tx.SetDepartments(ds.Departments)
		tx.SetObjectives(ds.Objectives)
		tx.SetODS(ds.ODS)
		tx.SetPermissions(ds.Permissions)
		tx.SetRoles(ds.Roles)
		return nil
	})
}

// loadedStater is implemented by stores that remember the snapshot they were
// opened from.
type loadedStater interface {
	LoadedState() (memory.Snapshot, bool)
}

// VerifyCenterCounts reports networks whose stored count drifted from the
// centers that reference them. Stores opened from a snapshot are checked as
// loaded, before counts were recomputed, and then in their live state. An
// empty result means the invariant holds. Nothing is written.
func (s *RecordsService) VerifyCenterCounts(ctx context.Context) ([]Drift, error) {
	var live []Drift
	if err := s.view(ctx, func(v TransactionView) {
		live = CenterCountDrift(v.ListNetworks(), v.ListCenters())
	}); err != nil {
		return nil, err
	}
	var drift []Drift
	if ls, ok := s.store.(loadedStater); ok {
		if snap, found := ls.LoadedState(); found {
			drift = CenterCountDrift(snap.Networks, snap.Centers)
		}
	}
	reported := make(map[string]bool, len(drift))
	for _, d := range drift {
		reported[d.NetworkID] = true
	}
	for _, d := range live {
		if !reported[d.NetworkID] {
			drift = append(drift, d)
		}
	}
	return drift, nil
}
