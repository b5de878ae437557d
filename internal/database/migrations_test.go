package database

import (
	"testing"

	"github.com/mquintal/aitutor/internal/models"
)

func TestAutoMigrateCreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	for _, table := range []string{
		"users", "invite_links", "quizzes", "questions",
		"quiz_attempts", "question_responses", "progress_reports",
	} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %q to exist", table)
		}
	}
}

func TestAutoMigrateIsIdempotentAndPreservesRows(t *testing.T) {
	db := openTestDB(t)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	user := models.User{Username: "alice", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("repeated auto migrate: %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected existing row to survive, got %d", count)
	}
}
