package memory_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"fpadmin/internal/infra/persistence/memory"
	"fpadmin/pkg/domain"
)

func strPtr(v string) *string {
	return &v
}

func sequentialIDs() memory.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.NewStore(nil, memory.WithIDGenerator(sequentialIDs()))
}

func run(t *testing.T, store *memory.Store, fn func(tx domain.Transaction) error) {
	t.Helper()
	if _, err := store.RunInTransaction(context.Background(), fn); err != nil {
		t.Fatalf("transaction: %v", err)
	}
}

func assertCenterCounts(t *testing.T, store *memory.Store) {
	t.Helper()
	centers := store.ListCenters()
	for _, n := range store.ListNetworks() {
		want := 0
		for _, c := range centers {
			if c.Network == n.Code {
				want++
			}
		}
		if n.CenterCount != want {
			t.Fatalf("network %s: expected centerCount %d, got %d", n.Code, want, n.CenterCount)
		}
	}
}

func TestCreateCenterIncrementsNetworkCount(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		tx.SetNetworks([]domain.Network{{ID: "1", Code: "RED-1", Name: "Red Norte"}})
		_, err := tx.CreateCenter(domain.Center{Name: "IES A", Network: "RED-1"})
		return err
	})

	networks := store.ListNetworks()
	if len(networks) != 1 || networks[0].CenterCount != 1 {
		t.Fatalf("expected one network with count 1, got %+v", networks)
	}
	centers := store.ListCenters()
	if len(centers) != 1 || centers[0].ID == "" {
		t.Fatalf("expected created center with generated id, got %+v", centers)
	}
}

func TestDeleteCenterDecrementsNetworkCount(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		tx.SetNetworks([]domain.Network{{ID: "1", Code: "RED-1", Name: "Red Norte", CenterCount: 2}})
		tx.SetCenters([]domain.Center{
			{ID: "c1", Name: "IES A", Network: "RED-1"},
			{ID: "c2", Name: "IES B", Network: "RED-1"},
		})
		return tx.DeleteCenter("c1")
	})

	networks := store.ListNetworks()
	if networks[0].CenterCount != 1 {
		t.Fatalf("expected count 1 after delete, got %d", networks[0].CenterCount)
	}
	if centers := store.ListCenters(); len(centers) != 1 || centers[0].ID != "c2" {
		t.Fatalf("unexpected centers after delete: %+v", centers)
	}
}

func TestDeleteMissingCenterLeavesStateUnchanged(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		tx.SetNetworks([]domain.Network{{ID: "1", Code: "RED-1", Name: "Red Norte"}})
		_, err := tx.CreateCenter(domain.Center{Name: "IES A", Network: "RED-1"})
		return err
	})
	before := store.ExportState()

	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteCenter("missing")
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	after := store.ExportState()
	if len(after.Centers) != len(before.Centers) || after.Networks[0].CenterCount != before.Networks[0].CenterCount {
		t.Fatalf("state changed after failed delete: before=%+v after=%+v", before, after)
	}
}

func TestCenterWithUnknownNetworkLeavesCountsAlone(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		tx.SetNetworks([]domain.Network{{ID: "1", Code: "RED-1", Name: "Red Norte"}})
		_, err := tx.CreateCenter(domain.Center{Name: "IES X", Network: "RED-9"})
		return err
	})
	if got := store.ListNetworks()[0].CenterCount; got != 0 {
		t.Fatalf("expected count 0, got %d", got)
	}
	assertCenterCounts(t, store)
}

func TestUpdateCenterMovesCountBetweenNetworks(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		tx.SetNetworks([]domain.Network{
			{ID: "1", Code: "RED-1", Name: "Red Norte"},
			{ID: "2", Code: "RED-2", Name: "Red Sur"},
		})
		tx.SetCenters([]domain.Center{{ID: "c1", Name: "IES A", Network: "RED-1"}})
		_, err := tx.UpdateCenter("c1", domain.CenterPatch{Network: strPtr("RED-2")})
		return err
	})

	networks := store.ListNetworks()
	if networks[0].CenterCount != 0 || networks[1].CenterCount != 1 {
		t.Fatalf("expected counts 0/1, got %d/%d", networks[0].CenterCount, networks[1].CenterCount)
	}
}

func TestSetNetworksRecomputesCounts(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		tx.SetCenters([]domain.Center{
			{ID: "c1", Name: "IES A", Network: "RED-1"},
			{ID: "c2", Name: "IES B", Network: "RED-1"},
		})
		tx.SetNetworks([]domain.Network{{ID: "1", Code: "RED-1", Name: "Red Norte", CenterCount: 42}})
		return nil
	})
	if got := store.ListNetworks()[0].CenterCount; got != 2 {
		t.Fatalf("expected recomputed count 2, got %d", got)
	}
}

func TestUpdateNetworkCodeRecomputesCount(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		tx.SetNetworks([]domain.Network{{ID: "1", Code: "RED-1", Name: "Red Norte"}})
		tx.SetCenters([]domain.Center{
			{ID: "c1", Name: "IES A", Network: "RED-1"},
			{ID: "c2", Name: "IES B", Network: "RED-3"},
		})
		_, err := tx.UpdateNetwork("1", domain.NetworkPatch{Code: strPtr("RED-3")})
		return err
	})
	got := store.ListNetworks()[0]
	if got.Code != "RED-3" || got.CenterCount != 1 {
		t.Fatalf("unexpected network after code change: %+v", got)
	}
}

func TestCenterCountInvariantHoldsUnderRandomOperations(t *testing.T) {
	store := newStore(t)
	codes := []string{"RED-1", "RED-2", "RED-3"}
	run(t, store, func(tx domain.Transaction) error {
		tx.SetNetworks([]domain.Network{
			{ID: "n1", Code: codes[0], Name: "Norte"},
			{ID: "n2", Code: codes[1], Name: "Sur"},
		})
		return nil
	})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
			centers := tx.Snapshot().ListCenters()
			switch op := rng.Intn(3); {
			case op == 0 || len(centers) == 0:
				_, err := tx.CreateCenter(domain.Center{Name: fmt.Sprintf("IES %d", i), Network: codes[rng.Intn(len(codes))]})
				return err
			case op == 1:
				return tx.DeleteCenter(centers[rng.Intn(len(centers))].ID)
			default:
				_, err := tx.UpdateCenter(centers[rng.Intn(len(centers))].ID, domain.CenterPatch{Network: strPtr(codes[rng.Intn(len(codes))])})
				return err
			}
		})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		assertCenterCounts(t, store)
	}
}

func TestUpdateAndDeleteMissingRecordsReturnNotFound(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	cases := map[string]func(tx domain.Transaction) error{
		"network": func(tx domain.Transaction) error {
			_, err := tx.UpdateNetwork("missing", domain.NetworkPatch{Name: strPtr("x")})
			return err
		},
		"family":     func(tx domain.Transaction) error { return tx.DeleteFamily("missing") },
		"department": func(tx domain.Transaction) error { return tx.DeleteDepartment("missing") },
		"objective": func(tx domain.Transaction) error {
			_, err := tx.ToggleObjectiveActive("missing")
			return err
		},
		"ods": func(tx domain.Transaction) error {
			_, err := tx.ToggleODSActive("missing")
			return err
		},
		"role": func(tx domain.Transaction) error { return tx.DeleteRole("missing") },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := store.RunInTransaction(ctx, fn); !domain.IsNotFound(err) {
				t.Fatalf("expected not found, got %v", err)
			}
		})
	}
}

func TestToggleObjectiveTwiceRestoresState(t *testing.T) {
	store := newStore(t)
	var id string
	run(t, store, func(tx domain.Transaction) error {
		o, err := tx.CreateObjective(domain.Objective{Name: "Innovación", Priority: domain.PriorityHigh, IsActive: true})
		id = o.ID
		return err
	})

	run(t, store, func(tx domain.Transaction) error {
		toggled, err := tx.ToggleObjectiveActive(id)
		if err != nil {
			return err
		}
		if toggled.IsActive {
			t.Fatalf("expected objective to be inactive after first toggle")
		}
		_, err = tx.ToggleObjectiveActive(id)
		return err
	})

	objectives := store.ListObjectives()
	if len(objectives) != 1 || !objectives[0].IsActive || objectives[0].Name != "Innovación" {
		t.Fatalf("expected original objective after double toggle, got %+v", objectives)
	}
}

func TestCreateObjectiveRejectsUnknownPriority(t *testing.T) {
	store := newStore(t)
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateObjective(domain.Objective{Name: "x", Priority: "urgent"})
		return err
	})
	if err == nil {
		t.Fatalf("expected invalid priority error")
	}
	if len(store.ListObjectives()) != 0 {
		t.Fatalf("expected no objectives to be stored")
	}
}

func TestCRUDFamiliesDepartmentsAndODS(t *testing.T) {
	store := newStore(t)
	var familyID, deptID, odsID string
	run(t, store, func(tx domain.Transaction) error {
		f, err := tx.CreateFamily(domain.ProfessionalFamily{Code: "IFC", Name: "Informática"})
		if err != nil {
			return err
		}
		familyID = f.ID
		d, err := tx.CreateDepartment(domain.Department{Code: "DEP-1", Name: "Orientación"})
		if err != nil {
			return err
		}
		deptID = d.ID
		o, err := tx.CreateODS(domain.Objective{Name: "ODS 4", Priority: domain.PriorityMedium})
		odsID = o.ID
		return err
	})

	run(t, store, func(tx domain.Transaction) error {
		if _, err := tx.UpdateFamily(familyID, domain.FamilyPatch{Description: strPtr("Sistemas")}); err != nil {
			return err
		}
		if _, err := tx.UpdateDepartment(deptID, domain.DepartmentPatch{Name: strPtr("Innovación")}); err != nil {
			return err
		}
		_, err := tx.UpdateODS(odsID, domain.ObjectivePatch{Name: strPtr("ODS 4 - Educación")})
		return err
	})

	err := store.View(context.Background(), func(v domain.TransactionView) error {
		f, ok := v.FindFamilyByCode("IFC")
		if !ok || f.Description != "Sistemas" || f.Name != "Informática" {
			t.Fatalf("unexpected family: %+v", f)
		}
		d, ok := v.FindDepartmentByCode("DEP-1")
		if !ok || d.Name != "Innovación" {
			t.Fatalf("unexpected department: %+v", d)
		}
		if ods := v.ListODS(); len(ods) != 1 || ods[0].Name != "ODS 4 - Educación" {
			t.Fatalf("unexpected ods: %+v", ods)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	run(t, store, func(tx domain.Transaction) error {
		if err := tx.DeleteFamily(familyID); err != nil {
			return err
		}
		if err := tx.DeleteDepartment(deptID); err != nil {
			return err
		}
		return tx.DeleteODS(odsID)
	})
	if len(store.ListFamilies())+len(store.ListDepartments())+len(store.ListODS()) != 0 {
		t.Fatalf("expected collections to be empty after deletes")
	}
}

func TestFindersReturnFirstMatch(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		tx.SetNetworks([]domain.Network{
			{ID: "1", Code: "DUP", Name: "First"},
			{ID: "2", Code: "DUP", Name: "Second"},
		})
		tx.SetCenters([]domain.Center{
			{ID: "c1", Name: "IES", Network: "DUP"},
			{ID: "c2", Name: "IES", Network: "DUP"},
		})
		return nil
	})
	_ = store.View(context.Background(), func(v domain.TransactionView) error {
		if n, ok := v.FindNetworkByCode("DUP"); !ok || n.ID != "1" {
			t.Fatalf("expected first network, got %+v", n)
		}
		if c, ok := v.FindCenterByName("IES"); !ok || c.ID != "c1" {
			t.Fatalf("expected first center, got %+v", c)
		}
		if _, ok := v.FindCenterByName("missing"); ok {
			t.Fatalf("expected missing center lookup to fail")
		}
		return nil
	})
}

func TestSystemRolesCannotBeDeleted(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		_, err := tx.CreateRole(domain.Role{ID: "admin", Name: "Administrador", Level: 1, IsSystem: true})
		return err
	})
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteRole("admin")
	})
	var protected domain.ProtectedRoleError
	if !errors.As(err, &protected) {
		t.Fatalf("expected protected role error, got %v", err)
	}
	if len(store.ListRoles()) != 1 {
		t.Fatalf("expected role to remain")
	}
}

func TestRoleUpdateDoesNotAliasGrants(t *testing.T) {
	store := newStore(t)
	grants := []domain.RoleGrant{{PermissionID: "p1", Actions: []domain.CRUDAction{domain.CRUDRead}}}
	run(t, store, func(tx domain.Transaction) error {
		_, err := tx.CreateRole(domain.Role{ID: "r1", Name: "Coordinador", Level: 2, Permissions: grants})
		return err
	})
	grants[0].Actions[0] = domain.CRUDDelete

	role := store.ListRoles()[0]
	if role.Permissions[0].Actions[0] != domain.CRUDRead {
		t.Fatalf("stored role aliased caller slice: %+v", role.Permissions)
	}
}

func TestCreateDuplicateIDFails(t *testing.T) {
	store := newStore(t)
	run(t, store, func(tx domain.Transaction) error {
		_, err := tx.CreateNetwork(domain.Network{ID: "n1", Code: "RED-1"})
		return err
	})
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateNetwork(domain.Network{ID: "n1", Code: "RED-2"})
		return err
	})
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

type blockingRule struct{}

func (blockingRule) Name() string { return "always_block" }

func (blockingRule) Evaluate(context.Context, domain.RuleView, []domain.Change) (domain.Result, error) {
	return domain.Result{Violations: []domain.Violation{{Rule: "always_block", Severity: domain.SeverityBlock, Message: "blocked"}}}, nil
}

func TestBlockingRuleRollsBackTransaction(t *testing.T) {
	engine := domain.NewRulesEngine()
	engine.Register(blockingRule{})
	store := memory.NewStore(engine)

	res, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateNetwork(domain.Network{Code: "RED-1"})
		return err
	})
	var violation domain.RuleViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected rule violation, got %v", err)
	}
	if !res.HasBlocking() {
		t.Fatalf("expected blocking result")
	}
	if len(store.ListNetworks()) != 0 {
		t.Fatalf("expected rollback")
	}
}

func TestImportStateNormalizesCenterCounts(t *testing.T) {
	store := newStore(t)
	store.ImportState(memory.Snapshot{
		Networks: []domain.Network{{ID: "1", Code: "RED-1", CenterCount: 9}},
		Centers:  []domain.Center{{ID: "c1", Network: "RED-1"}},
	})
	if got := store.ListNetworks()[0].CenterCount; got != 1 {
		t.Fatalf("expected normalized count 1, got %d", got)
	}
	exported := store.ExportState()
	exported.Networks[0].Name = "mutated"
	if store.ListNetworks()[0].Name == "mutated" {
		t.Fatalf("exported snapshot aliases store state")
	}
}

func TestLoadedStateKeepsRawSnapshotUntilCommit(t *testing.T) {
	store := newStore(t)
	if _, ok := store.LoadedState(); ok {
		t.Fatalf("fresh store should have no loaded snapshot")
	}
	store.ImportState(memory.Snapshot{
		Networks: []domain.Network{{ID: "1", Code: "RED-1", CenterCount: 9}},
		Centers:  []domain.Center{{ID: "c1", Network: "RED-1"}},
	})
	loaded, ok := store.LoadedState()
	if !ok || loaded.Networks[0].CenterCount != 9 {
		t.Fatalf("expected raw count 9, got %+v (ok=%v)", loaded.Networks, ok)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateFamily(domain.ProfessionalFamily{Code: "IFC"})
		return err
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, ok := store.LoadedState(); ok {
		t.Fatalf("commit should drop the loaded snapshot")
	}
}

func TestTimestampGeneratorIsStrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	gen := memory.TimestampGenerator(func() time.Time { return fixed })
	first, second := gen(), gen()
	if first != "1700000000000" || second != "1700000000001" {
		t.Fatalf("unexpected ids %s %s", first, second)
	}
}
