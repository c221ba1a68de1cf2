package admins

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

func investmentColumns() []string {
	return []string{"id", "user_id", "project_id", "units_invested", "amount_per_unit",
		"total_amount", "expected_return_amount", "status", "payment_status"}
}

// Confirming a pending entry while the investor already holds a confirmed row
// must lock both rows, fold the candidate into the holding, and delete the
// candidate, all before commit. The locking reads are what keep two racing
// confirms from computing the merge from the same stale snapshot.
func TestConfirmInvestmentMergeLocksRows(t *testing.T) {
	gdb, mock := newMockDB(t)
	database.DB = gdb

	pending := sqlmock.NewRows(investmentColumns()).
		AddRow(2, 9, 3, 20, 500.0, 10000.0, 12000.0, "pending", "pending")
	pendingAgain := sqlmock.NewRows(investmentColumns()).
		AddRow(2, 9, 3, 20, 500.0, 10000.0, 12000.0, "pending", "pending")
	confirmed := sqlmock.NewRows(investmentColumns()).
		AddRow(1, 9, 3, 30, 500.0, 15000.0, 18000.0, "confirmed", "paid")

	mock.ExpectQuery("SELECT (.+) FROM `investments` WHERE `investments`\\.`id` =(.+)").
		WillReturnRows(pending)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `investments` WHERE `investments`\\.`id` =(.+)FOR UPDATE").
		WillReturnRows(pendingAgain)
	mock.ExpectQuery("SELECT (.+) FROM `investments` WHERE user_id(.+)FOR UPDATE").
		WillReturnRows(confirmed)
	mock.ExpectExec("UPDATE `investments` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `investments`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// the post-commit notification lookup is best-effort
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodPut, "/v1/admin/investments/2/confirm",
		strings.NewReader(`{"payment_reference":"TRX-1001","payment_method":"bank"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "2"})
	rec := httptest.NewRecorder()

	ConfirmInvestment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp utils.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !strings.Contains(resp.Message, "merged") {
		t.Errorf("message = %q, want merge message", resp.Message)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", resp.Data)
	}
	if got := data["units_invested"].(float64); got != 50 {
		t.Errorf("merged units = %v, want 50", got)
	}
	if got := data["total_amount"].(float64); got != 25000 {
		t.Errorf("merged total = %v, want 25000", got)
	}
	if got := data["expected_return_amount"].(float64); got != 30000 {
		t.Errorf("merged expected return = %v, want 30000", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A second admin whose pre-check saw the candidate as pending must lose at
// the locked re-read once the first admin's commit has landed.
func TestConfirmInvestmentAlreadyDecided(t *testing.T) {
	gdb, mock := newMockDB(t)
	database.DB = gdb

	stale := sqlmock.NewRows(investmentColumns()).
		AddRow(2, 9, 3, 20, 500.0, 10000.0, 12000.0, "pending", "pending")
	decided := sqlmock.NewRows(investmentColumns()).
		AddRow(2, 9, 3, 20, 500.0, 10000.0, 12000.0, "confirmed", "paid")

	mock.ExpectQuery("SELECT (.+) FROM `investments` WHERE `investments`\\.`id` =(.+)").
		WillReturnRows(stale)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `investments` WHERE `investments`\\.`id` =(.+)FOR UPDATE").
		WillReturnRows(decided)
	mock.ExpectRollback()

	req := httptest.NewRequest(http.MethodPut, "/v1/admin/investments/2/confirm", strings.NewReader(`{}`))
	req = mux.SetURLVars(req, map[string]string{"id": "2"})
	rec := httptest.NewRecorder()

	ConfirmInvestment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp utils.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Success || !strings.Contains(resp.Message, "pending") {
		t.Errorf("unexpected response: %+v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
