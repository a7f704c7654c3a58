package core

import (
	"context"
	"fmt"

	"fpadmin/pkg/domain"
)

// NewCenterCountRule returns the blocking rule that keeps every network's
// CenterCount equal to the number of centers referencing its code.
func NewCenterCountRule() domain.Rule {
	return centerCountRule{}
}

type centerCountRule struct{}

func (centerCountRule) Name() string { return "center_count" }

func (centerCountRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, d := range CenterCountDrift(view.ListNetworks(), view.ListCenters()) {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "center_count",
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf("network %s (%s) reports %d centers, %d reference it", d.Code, d.NetworkID, d.Stored, d.Actual),
			Entity:   domain.EntityNetwork,
			EntityID: d.NetworkID,
		})
	}
	return res, nil
}

// Drift describes a network whose stored count disagrees with its centers.
type Drift struct {
	NetworkID string `json:"networkId"`
	Code      string `json:"code"`
	Stored    int    `json:"stored"`
	Actual    int    `json:"actual"`
}

// CenterCountDrift recomputes every network's center count and returns the
// networks whose stored value differs.
func CenterCountDrift(networks []Network, centers []Center) []Drift {
	actual := make(map[string]int, len(networks))
	for _, c := range centers {
		actual[c.Network]++
	}
	var drift []Drift
	for _, n := range networks {
		if n.CenterCount != actual[n.Code] {
			drift = append(drift, Drift{NetworkID: n.ID, Code: n.Code, Stored: n.CenterCount, Actual: actual[n.Code]})
		}
	}
	return drift
}
