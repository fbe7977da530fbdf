package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/types"
)

func testDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.AcqClassRecord{}, &types.AcqGlobalRecord{}, &types.SchoolProfile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return db, log
}

func classRecord(t *testing.T, level string, uploaded time.Time) *types.AcqClassRecord {
	t.Helper()
	students, err := json.Marshal([]types.AcqStudent{
		{ID: uuid.NewString(), FullName: "بن يحيى أمين", Results: map[string]map[int]types.Grade{
			"reading_performance": {1: types.GradeA, 2: types.GradeB},
		}},
	})
	if err != nil {
		t.Fatalf("marshal students: %v", err)
	}
	return &types.AcqClassRecord{
		ID:         uuid.New(),
		School:     "مدرسة الأمير عبد القادر",
		ClassName:  "السنة الثانية أ",
		Level:      level,
		Subject:    "اللغة العربية",
		UploadDate: uploaded,
		Students:   students,
	}
}

func TestAcqClassRecordRepo_CreateAndGet(t *testing.T) {
	db, log := testDB(t)
	repo := NewAcqClassRecordRepo(db, log)
	ctx := context.Background()

	rec := classRecord(t, "2", time.Now().UTC())
	if _, err := repo.Create(ctx, nil, []*types.AcqClassRecord{rec}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, rec.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ClassName != rec.ClassName || got.Level != "2" || got.Subject != rec.Subject {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	var students []types.AcqStudent
	if err := json.Unmarshal(got.Students, &students); err != nil {
		t.Fatalf("unmarshal students: %v", err)
	}
	if len(students) != 1 || students[0].FullName != "بن يحيى أمين" {
		t.Fatalf("students payload mismatch: %+v", students)
	}
	if g, ok := students[0].GradeAt("reading_performance", 2); !ok || g != types.GradeB {
		t.Fatalf("nested grade lost in storage: %v %v", g, ok)
	}
}

func TestAcqClassRecordRepo_ListOrderAndLevelFilter(t *testing.T) {
	db, log := testDB(t)
	repo := NewAcqClassRecordRepo(db, log)
	ctx := context.Background()

	old := classRecord(t, "2", time.Now().UTC().Add(-48*time.Hour))
	recent := classRecord(t, "4", time.Now().UTC())
	if _, err := repo.Create(ctx, nil, []*types.AcqClassRecord{old, recent}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != recent.ID {
		t.Fatalf("expected newest upload first, got %d records", len(all))
	}

	year2, err := repo.ListByLevel(ctx, nil, "2")
	if err != nil {
		t.Fatalf("ListByLevel: %v", err)
	}
	if len(year2) != 1 || year2[0].ID != old.ID {
		t.Fatalf("level filter returned %d records", len(year2))
	}
}

func TestAcqClassRecordRepo_SoftDeleteHidesRecords(t *testing.T) {
	db, log := testDB(t)
	repo := NewAcqClassRecordRepo(db, log)
	ctx := context.Background()

	rec := classRecord(t, "5", time.Now().UTC())
	if _, err := repo.Create(ctx, nil, []*types.AcqClassRecord{rec}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{rec.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}

	if _, err := repo.GetByID(ctx, nil, rec.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("deleted record still visible, err = %v", err)
	}

	// The row survives physically for audit, only hidden by the scope.
	var count int64
	if err := db.Unscoped().Model(&types.AcqClassRecord{}).Where("id = ?", rec.ID).Count(&count).Error; err != nil {
		t.Fatalf("unscoped count: %v", err)
	}
	if count != 1 {
		t.Fatalf("row was hard deleted")
	}
}

func TestSchoolProfileRepo_GetNilThenUpsert(t *testing.T) {
	db, log := testDB(t)
	repo := NewSchoolProfileRepo(db, log)
	ctx := context.Background()

	got, err := repo.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get on empty table: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil profile before configuration, got %+v", got)
	}

	first, err := repo.Upsert(ctx, nil, &types.SchoolProfile{
		ID:              uuid.New(),
		Name:            "مدرسة الأمير عبد القادر",
		District:        "مقاطعة وهران 3",
		TamazightTaught: true,
	})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, nil, &types.SchoolProfile{
		Name:            "مدرسة الأمير عبد القادر",
		District:        "مقاطعة وهران 3",
		TamazightTaught: false,
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a second row: %s vs %s", second.ID, first.ID)
	}
	if second.TamazightTaught {
		t.Fatalf("flag update lost")
	}

	stored, err := repo.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get after upsert: %v", err)
	}
	if stored == nil || stored.TamazightTaught {
		t.Fatalf("stored profile = %+v", stored)
	}
}
