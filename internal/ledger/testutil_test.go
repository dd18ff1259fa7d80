package ledger

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javlon0607/learning-center-sub000/models"
)

var testDBSeq atomic.Int64

// newTestService opens an isolated in-memory SQLite database.
// A single connection keeps concurrent test transactions serialized
// the same way the pair lock does in production.
func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:ledger_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.Group{},
		&models.Enrollment{},
		&models.Payment{},
		&models.PaymentApplication{},
		&models.SalarySlip{},
		&models.GroupTransfer{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return NewService(db, nil)
}

func seedStudent(t *testing.T, s *Service) *models.Student {
	t.Helper()
	student := models.Student{FirstName: "Aziz", LastName: "Karimov"}
	if err := s.db.Create(&student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return &student
}

func seedTeacher(t *testing.T, s *Service, salaryType string, percentage int, fixedMajor float64) *models.Teacher {
	t.Helper()
	teacher := models.Teacher{
		FirstName:        "Dilnoza",
		LastName:         "Yusupova",
		SalaryType:       salaryType,
		SalaryPercentage: percentage,
		SalaryAmount:     int64(FromMajor(fixedMajor)),
	}
	if err := s.db.Create(&teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	return &teacher
}

func seedGroup(t *testing.T, s *Service, name string, priceMajor float64, teacherID uint, status string) *models.Group {
	t.Helper()
	group := models.Group{
		Name:      name,
		Price:     int64(FromMajor(priceMajor)),
		TeacherID: teacherID,
		Status:    status,
	}
	if err := s.db.Create(&group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	return &group
}

func seedEnrollment(t *testing.T, s *Service, studentID, groupID uint, discountBp int) *models.Enrollment {
	t.Helper()
	enr := models.Enrollment{
		StudentID:  studentID,
		GroupID:    groupID,
		DiscountBp: discountBp,
		EnrolledAt: time.Now().UTC(),
	}
	if err := s.db.Create(&enr).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return &enr
}

func mustMonth(t *testing.T, s string) Month {
	t.Helper()
	m, err := ParseMonth(s)
	if err != nil {
		t.Fatalf("parse month %q: %v", s, err)
	}
	return m
}
