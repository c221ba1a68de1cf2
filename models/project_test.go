package models

import "testing"

func TestProjectStatusTransitions(t *testing.T) {
	cases := []struct {
		from   ProjectStatus
		to     ProjectStatus
		expect bool
	}{
		{ProjectPending, ProjectApproved, true},
		{ProjectPending, ProjectRejected, true},
		{ProjectPending, ProjectCancelled, true},
		{ProjectPending, ProjectRunning, false},
		{ProjectApproved, ProjectRunning, true},
		{ProjectApproved, ProjectCancelled, true},
		{ProjectApproved, ProjectCompleted, false},
		{ProjectRunning, ProjectCompleted, true},
		{ProjectRunning, ProjectCancelled, false},
		{ProjectRejected, ProjectApproved, false},
		{ProjectCompleted, ProjectRunning, false},
		{ProjectCancelled, ProjectPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.expect {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.expect)
		}
	}
}

func TestProjectUpdateFieldsChanges(t *testing.T) {
	name := "Boro Rice 2026"
	price := 2500.0
	units := 80

	f := &ProjectUpdateFields{
		ProjectName:  &name,
		PerUnitPrice: &price,
		TotalUnits:   &units,
	}
	changes := f.Changes()

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d: %v", len(changes), changes)
	}
	if changes["project_name"] != name {
		t.Errorf("project_name = %v", changes["project_name"])
	}
	if changes["per_unit_price"] != price {
		t.Errorf("per_unit_price = %v", changes["per_unit_price"])
	}
	if changes["total_units"] != units {
		t.Errorf("total_units = %v", changes["total_units"])
	}

	empty := &ProjectUpdateFields{}
	if len(empty.Changes()) != 0 {
		t.Error("empty update should produce no changes")
	}
}
