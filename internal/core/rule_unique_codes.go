package core

import (
	"context"
	"fmt"

	"fpadmin/pkg/domain"
)

// NewUniqueCodesRule returns a warning rule flagging codes shared by several
// networks, departments or professional families. Lookups by code return the
// first match, so a duplicate hides the later records.
func NewUniqueCodesRule() domain.Rule {
	return uniqueCodesRule{}
}

type uniqueCodesRule struct{}

func (uniqueCodesRule) Name() string { return "unique_codes" }

type coded struct {
	id, code string
}

func (r uniqueCodesRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	var networks, departments, families []coded
	for _, n := range view.ListNetworks() {
		networks = append(networks, coded{n.ID, n.Code})
	}
	for _, d := range view.ListDepartments() {
		departments = append(departments, coded{d.ID, d.Code})
	}
	for _, f := range view.ListFamilies() {
		families = append(families, coded{f.ID, f.Code})
	}

	res := domain.Result{}
	res.Merge(duplicates(domain.EntityNetwork, networks))
	res.Merge(duplicates(domain.EntityDepartment, departments))
	res.Merge(duplicates(domain.EntityFamily, families))
	return res, nil
}

func duplicates(entity domain.EntityType, items []coded) domain.Result {
	res := domain.Result{}
	first := make(map[string]string, len(items))
	for _, it := range items {
		if it.code == "" {
			continue
		}
		owner, seen := first[it.code]
		if !seen {
			first[it.code] = it.id
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "unique_codes",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%s %s reuses code %s already held by %s", entity, it.id, it.code, owner),
			Entity:   entity,
			EntityID: it.id,
		})
	}
	return res
}
