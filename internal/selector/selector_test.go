package selector

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"fpadmin/pkg/domain"
)

func TestToggleUncheckAndCheck(t *testing.T) {
	current := []string{"a", "b"}
	if diff := cmp.Diff([]string{"b"}, Toggle(current, "a", false)); diff != "" {
		t.Fatalf("uncheck (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, Toggle(current, "c", true)); diff != "" {
		t.Fatalf("check (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, current); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestToggleSetSemantics(t *testing.T) {
	if got := Toggle([]string{"a", "b"}, "a", true); len(got) != 2 {
		t.Fatalf("checking a present id must not duplicate it, got %v", got)
	}
	if got := Toggle([]string{"a", "b", "a"}, "a", false); len(got) != 1 || got[0] != "b" {
		t.Fatalf("unchecking must remove every occurrence, got %v", got)
	}
	if got := Toggle(nil, "x", false); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestActiveKeepsOrder(t *testing.T) {
	objs := []domain.Objective{
		{ID: "1", IsActive: true},
		{ID: "2"},
		{ID: "3", IsActive: true},
	}
	got := Active(objs)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected active list %+v", got)
	}
}

func TestSelectorOptionsAndToggle(t *testing.T) {
	var patches []ActionPatch
	sel := Selector{
		Objectives: []domain.Objective{
			{ID: "o1", Name: "Innovar", Priority: domain.PriorityHigh, IsActive: true},
			{ID: "o2", Name: "Archivado", Priority: domain.PriorityLow},
			{ID: "o3", Name: "Movilidad", Priority: domain.PriorityMedium, IsActive: true},
		},
		ODS:      []domain.Objective{{ID: "s4", Name: "ODS 4", IsActive: true}},
		OnChange: func(p ActionPatch) { patches = append(patches, p) },
	}
	action := Action{Objectives: []string{"o3"}}

	opts := sel.Options(action)
	want := Options{
		Objectives: []Option{
			{ID: "o1", Name: "Innovar", Priority: domain.PriorityHigh, PriorityLabel: "Alta"},
			{ID: "o3", Name: "Movilidad", Priority: domain.PriorityMedium, PriorityLabel: "Media", Checked: true},
		},
		ODS: []Option{{ID: "s4", Name: "ODS 4"}},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("options (-want +got):\n%s", diff)
	}

	patch := sel.Toggle(action, KindODS, "s4", true)
	if len(patches) != 1 || patch.Objectives != nil || patch.ODS == nil {
		t.Fatalf("unexpected patch %+v", patch)
	}
	patch.Apply(&action)
	if diff := cmp.Diff(Action{Objectives: []string{"o3"}, ODS: []string{"s4"}}, action); diff != "" {
		t.Fatalf("applied action (-want +got):\n%s", diff)
	}

	sel.Toggle(action, KindObjectives, "o3", false)
	if got := *patches[1].Objectives; len(got) != 0 {
		t.Fatalf("expected empty objectives, got %v", got)
	}
}

func TestPriorityLabel(t *testing.T) {
	cases := map[domain.Priority]string{
		domain.PriorityHigh:   "Alta",
		domain.PriorityMedium: "Media",
		domain.PriorityLow:    "Baja",
		"":                    "",
	}
	for p, want := range cases {
		if got := PriorityLabel(p); got != want {
			t.Fatalf("PriorityLabel(%q) = %q, want %q", p, got, want)
		}
	}
}
