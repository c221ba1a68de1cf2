package models

import (
	"testing"
)

func TestInvestmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from   InvestmentStatus
		to     InvestmentStatus
		expect bool
	}{
		{InvestmentPending, InvestmentConfirmed, true},
		{InvestmentPending, InvestmentCancelled, true},
		{InvestmentPending, InvestmentCompleted, false},
		{InvestmentConfirmed, InvestmentCompleted, true},
		{InvestmentConfirmed, InvestmentCancelled, true},
		{InvestmentConfirmed, InvestmentPending, false},
		{InvestmentCancelled, InvestmentPending, false},
		{InvestmentCancelled, InvestmentConfirmed, false},
		{InvestmentCompleted, InvestmentConfirmed, false},
		{InvestmentCompleted, InvestmentCancelled, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.expect {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.expect)
		}
	}
}

func TestInvestmentStatusValid(t *testing.T) {
	for _, s := range []InvestmentStatus{InvestmentPending, InvestmentConfirmed, InvestmentCancelled, InvestmentCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if InvestmentStatus("refunded").Valid() {
		t.Error("refunded should not be a valid status")
	}
	if InvestmentStatus("").Valid() {
		t.Error("empty string should not be a valid status")
	}
}

func TestNewInvestmentSnapshotsProjectTerms(t *testing.T) {
	project := &Project{
		ID:                     7,
		PerUnitPrice:           5000,
		TotalReturnablePerUnit: 5600,
		TotalUnits:             100,
	}
	ref := "BKASH-123"
	inv := NewInvestment(42, project, 3, "bkash", &ref, nil)

	if inv.UserID != 42 || inv.ProjectID != 7 {
		t.Fatalf("unexpected ownership: user=%d project=%d", inv.UserID, inv.ProjectID)
	}
	if inv.Status != InvestmentPending || inv.PaymentStatus != PaymentPending {
		t.Fatalf("new investment must start pending/pending, got %s/%s", inv.Status, inv.PaymentStatus)
	}
	if inv.AmountPerUnit != 5000 {
		t.Errorf("amount_per_unit = %v, want 5000", inv.AmountPerUnit)
	}
	if inv.TotalAmount != 15000 {
		t.Errorf("total_amount = %v, want 15000", inv.TotalAmount)
	}
	if inv.ExpectedReturnAmount != 16800 {
		t.Errorf("expected_return_amount = %v, want 16800", inv.ExpectedReturnAmount)
	}

	// Later term changes must not affect the snapshot.
	project.PerUnitPrice = 9000
	project.TotalReturnablePerUnit = 9900
	if inv.AmountPerUnit != 5000 || inv.TotalAmount != 15000 || inv.ExpectedReturnAmount != 16800 {
		t.Error("snapshot changed after project terms were edited")
	}
}

func TestMergeInto(t *testing.T) {
	project := &Project{ID: 1, PerUnitPrice: 1000, TotalReturnablePerUnit: 1150}
	confirmed := NewInvestment(5, project, 4, "bank", nil, nil)
	confirmed.Status = InvestmentConfirmed
	candidate := NewInvestment(5, project, 2, "bkash", nil, nil)

	candidate.MergeInto(confirmed)

	if confirmed.UnitsInvested != 6 {
		t.Errorf("units = %d, want 6", confirmed.UnitsInvested)
	}
	if confirmed.TotalAmount != 6000 {
		t.Errorf("total_amount = %v, want 6000", confirmed.TotalAmount)
	}
	if confirmed.ExpectedReturnAmount != 6900 {
		t.Errorf("expected_return_amount = %v, want 6900", confirmed.ExpectedReturnAmount)
	}
	if confirmed.Status != InvestmentConfirmed {
		t.Errorf("merge must not change status, got %s", confirmed.Status)
	}
}

func TestAppendNote(t *testing.T) {
	inv := &Investment{}

	inv.AppendNote("  ")
	if inv.Notes != nil {
		t.Fatal("blank note should be ignored")
	}

	inv.AppendNote("first deposit via bKash")
	if inv.Notes == nil || *inv.Notes != "first deposit via bKash" {
		t.Fatalf("notes = %v", inv.Notes)
	}

	inv.AppendNote("[Cancelled 2026-01-15] changed my mind")
	want := "first deposit via bKash [Cancelled 2026-01-15] changed my mind"
	if *inv.Notes != want {
		t.Errorf("notes = %q, want %q", *inv.Notes, want)
	}
}

func TestAvailableUnits(t *testing.T) {
	stats := &ProjectInvestmentStats{
		ConfirmedUnits:   60,
		TotalBookedUnits: 110,
	}

	// Capacity binds on confirmed units only.
	if got := stats.AvailableUnits(100); got != 40 {
		t.Errorf("AvailableUnits = %d, want 40", got)
	}

	// The public figure subtracts booked units and never goes negative.
	if got := stats.DisplayAvailableUnits(100); got != 0 {
		t.Errorf("DisplayAvailableUnits = %d, want 0", got)
	}
	stats.TotalBookedUnits = 70
	if got := stats.DisplayAvailableUnits(100); got != 30 {
		t.Errorf("DisplayAvailableUnits = %d, want 30", got)
	}
}

// Walks one holding through a typical season: two pending entries, one merged
// at confirmation, capacity tightening along the way.
func TestConfirmedOnlyCapacityScenario(t *testing.T) {
	project := &Project{ID: 3, PerUnitPrice: 2000, TotalReturnablePerUnit: 2300, TotalUnits: 10}

	first := NewInvestment(9, project, 6, "bank", nil, nil)
	second := NewInvestment(9, project, 4, "bkash", nil, nil)

	// Both pending: nothing confirmed yet, so the full capacity is investable
	// even though bookings already cover it.
	stats := &ProjectInvestmentStats{
		TotalUnitsInvested: 10,
		TotalBookedUnits:   10,
	}
	if stats.AvailableUnits(project.TotalUnits) != 10 {
		t.Fatal("pending entries must not consume capacity")
	}
	if stats.DisplayAvailableUnits(project.TotalUnits) != 0 {
		t.Fatal("public listing should show bookings as taken")
	}

	// First entry confirmed.
	first.Status = InvestmentConfirmed
	stats.ConfirmedUnits = 6
	if stats.AvailableUnits(project.TotalUnits) != 4 {
		t.Fatal("confirmed units must reduce capacity")
	}

	// Second entry confirmed and merged into the first.
	second.MergeInto(first)
	if first.UnitsInvested != 10 || first.TotalAmount != 20000 || first.ExpectedReturnAmount != 23000 {
		t.Fatalf("merged holding wrong: units=%d amount=%v return=%v",
			first.UnitsInvested, first.TotalAmount, first.ExpectedReturnAmount)
	}
	stats.ConfirmedUnits = 10
	if stats.AvailableUnits(project.TotalUnits) != 0 {
		t.Fatal("fully confirmed project must have zero available units")
	}
}
