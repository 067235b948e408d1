//go:build integration

package rankings

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupRankingsDB connects to the database named by STORESCOUT_TEST_DB_DSN
// and creates the two tables the aggregations read inside a throwaway
// schema. The pool is pinned to one connection so search_path sticks.
func setupRankingsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("STORESCOUT_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("STORESCOUT_TEST_DB_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	schema := fmt.Sprintf("rankings_test_%d", time.Now().UnixNano())
	statements := []string{
		"CREATE SCHEMA " + schema,
		"SET search_path TO " + schema,
		`CREATE TABLE stores (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			photo TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE reviews (
			id UUID PRIMARY KEY,
			store_id UUID NOT NULL REFERENCES stores(id),
			rating INT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}
	t.Cleanup(func() {
		if err := db.Exec("DROP SCHEMA " + schema + " CASCADE").Error; err != nil {
			t.Errorf("drop schema: %v", err)
		}
	})
	return db
}

func seedStore(t *testing.T, db *gorm.DB, name, slug string, tags []string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	if tags == nil {
		tags = []string{}
	}
	if err := db.Exec(
		"INSERT INTO stores (id, name, slug, tags) VALUES (?, ?, ?, ?)",
		id, name, slug, pq.StringArray(tags),
	).Error; err != nil {
		t.Fatalf("seed store %s: %v", name, err)
	}
	return id
}

func seedReview(t *testing.T, db *gorm.DB, storeID uuid.UUID, rating int) {
	t.Helper()
	if err := db.Exec(
		"INSERT INTO reviews (id, store_id, rating) VALUES (?, ?, ?)",
		uuid.New(), storeID, rating,
	).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}
}

func TestTagCountsAggregation(t *testing.T) {
	db := setupRankingsDB(t)
	repo := NewRepository(db)

	seedStore(t, db, "Coffee Heaven", "coffee-heaven", []string{"coffee", "cozy"})
	seedStore(t, db, "Bean There", "bean-there", []string{"coffee"})

	rows, err := repo.TagCounts(context.Background())
	if err != nil {
		t.Fatalf("TagCounts: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 tags, got %d: %+v", len(rows), rows)
	}
	if rows[0].Tag != "coffee" || rows[0].Count != 2 {
		t.Fatalf("expected coffee first with count 2, got %+v", rows[0])
	}
	if rows[1].Tag != "cozy" || rows[1].Count != 1 {
		t.Fatalf("expected cozy with count 1, got %+v", rows[1])
	}
}

func TestTopStoresAggregation(t *testing.T) {
	db := setupRankingsDB(t)
	repo := NewRepository(db)

	ranked := seedStore(t, db, "Coffee Heaven", "coffee-heaven", nil)
	seedReview(t, db, ranked, 4)
	seedReview(t, db, ranked, 5)

	single := seedStore(t, db, "Bean There", "bean-there", nil)
	seedReview(t, db, single, 5)

	rows, err := repo.TopStores(context.Background())
	if err != nil {
		t.Fatalf("TopStores: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("single-review stores must be excluded, got %+v", rows)
	}
	if rows[0].ID != ranked {
		t.Fatalf("expected store %s ranked, got %+v", ranked, rows[0])
	}
	if rows[0].ReviewCount != 2 || rows[0].AverageRating != 4.5 {
		t.Fatalf("expected 2 reviews averaging 4.5, got %+v", rows[0])
	}
}
