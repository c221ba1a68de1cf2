package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, APIResponse{Success: true, Message: "Created", Data: map[string]int{"id": 5}})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !resp.Success || resp.Message != "Created" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, limit int
		totalRows   int64
		wantPages   int
	}{
		{1, 10, 0, 0},
		{1, 10, 1, 1},
		{1, 10, 10, 1},
		{2, 10, 11, 2},
		{3, 25, 120, 5},
	}
	for _, c := range cases {
		p := NewPagination(c.page, c.limit, c.totalRows)
		if p.TotalPages != c.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).TotalPages = %d, want %d",
				c.page, c.limit, c.totalRows, p.TotalPages, c.wantPages)
		}
		if p.Page != c.page || p.Limit != c.limit || p.TotalRows != c.totalRows {
			t.Errorf("envelope fields not carried through: %+v", p)
		}
	}
}

func TestGeneratePaymentReference(t *testing.T) {
	re := regexp.MustCompile(`^KB-[0-9]{6}[0-9]{3}42$`)
	ref := GeneratePaymentReference(42)
	if !re.MatchString(ref) {
		t.Errorf("reference %q does not match expected shape", ref)
	}

	// The user ID suffix keeps references from different users distinct.
	if GeneratePaymentReference(1) == GeneratePaymentReference(2) {
		t.Error("references for different users should differ")
	}
}
