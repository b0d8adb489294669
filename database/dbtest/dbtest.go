// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/model"
	"gorm.io/gorm"
)

var (
	seq      atomic.Int64
	unsafeRE = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// New returns a migrated records database private to the calling test
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db := open(t, "records")
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate records: %v", err)
	}
	return db
}

// NewQuestions returns a migrated question bank database private to the
// calling test
func NewQuestions(t testing.TB) *gorm.DB {
	t.Helper()
	db := open(t, "questions")
	if err := db.AutoMigrate(&model.Question{}); err != nil {
		t.Fatalf("migrate questions: %v", err)
	}
	return db
}

func open(t testing.TB, suffix string) *gorm.DB {
	t.Helper()
	name := fmt.Sprintf("%s_%s_%d", unsafeRE.ReplaceAllString(t.Name(), "_"), suffix, seq.Add(1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)

	db, err := database.OpenSQLite(dsn, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
