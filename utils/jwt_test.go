package utils

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/K4Y35/krishibazar-backend/database"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Token rotation revokes the old row and mints the new one in one transaction,
// so the mint must go through the caller's handle, never the global one. The
// nil global proves the function cannot fall back to it.
func TestGenerateRefreshTokenTxUsesCallerTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	database.DB = nil

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `refresh_tokens`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	tx := gdb.Begin()
	token, err := GenerateRefreshTokenTx(tx, 5)
	if err != nil {
		t.Fatalf("GenerateRefreshTokenTx: %v", err)
	}
	tx.Rollback()

	if !strings.HasPrefix(token, "rt_") {
		t.Errorf("token %q missing rt_ prefix", token)
	}
	if len(token) != len("rt_")+64 {
		t.Errorf("token length = %d, want %d", len(token), len("rt_")+64)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
