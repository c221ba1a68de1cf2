package models

import (
	"testing"
	"time"
)

func TestReportUpdateFieldsChanges(t *testing.T) {
	period := "2026-08"
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	feedback := "Paddy ahead of schedule"

	f := &ReportUpdateFields{
		ReportPeriod:   &period,
		ReportDate:     &date,
		FarmerFeedback: &feedback,
	}
	changes := f.Changes()

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d: %v", len(changes), changes)
	}
	if changes["report_period"] != period {
		t.Errorf("report_period = %v", changes["report_period"])
	}
	if changes["report_date"] != date {
		t.Errorf("report_date = %v", changes["report_date"])
	}
	if changes["farmer_feedback"] != feedback {
		t.Errorf("farmer_feedback = %v", changes["farmer_feedback"])
	}

	if len((&ReportUpdateFields{}).Changes()) != 0 {
		t.Error("empty update should produce no changes")
	}
}
