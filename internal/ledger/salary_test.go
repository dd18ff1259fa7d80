package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javlon0607/learning-center-sub000/models"
)

// Сценарий D: per_student, процент 30, сборы месяца 900000 —
// база 270000.
func TestSalaryPreviewPerStudent(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	group := seedGroup(t, s, "Английский B1", 450000, teacher.ID, models.GroupStatusActive)

	month := mustMonth(t, "2026-03")
	for i := 0; i < 2; i++ {
		student := seedStudent(t, s)
		seedEnrollment(t, s, student.ID, group.ID, 0)
		_, err := s.RecordPayment(context.Background(), RecordPaymentInput{
			StudentID:   student.ID,
			GroupID:     group.ID,
			Amount:      FromMajor(450000),
			Months:      []Month{month},
			PaymentDate: time.Now(),
			Actor:       "kassir",
		})
		require.NoError(t, err)
	}

	preview, err := s.SalaryPreview(teacher.ID, month)
	require.NoError(t, err)
	require.Equal(t, models.SalaryTypePerStudent, preview.SalaryType)
	require.Equal(t, 30, preview.SalaryPercentage)
	require.Equal(t, FromMajor(900000), preview.CollectedAmount)
	require.Equal(t, FromMajor(270000), preview.BaseAmount)
}

// fixed: база равна окладу и не зависит от платежей.
func TestSalaryPreviewFixed(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypeFixed, 0, 3000000)
	group := seedGroup(t, s, "Математика", 400000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)
	seedEnrollment(t, s, student.ID, group.ID, 0)

	month := mustMonth(t, "2026-03")
	_, err := s.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:   student.ID,
		GroupID:     group.ID,
		Amount:      FromMajor(400000),
		Months:      []Month{month},
		PaymentDate: time.Now(),
		Actor:       "kassir",
	})
	require.NoError(t, err)

	preview, err := s.SalaryPreview(teacher.ID, month)
	require.NoError(t, err)
	require.Equal(t, models.SalaryTypeFixed, preview.SalaryType)
	require.Equal(t, Money(0), preview.CollectedAmount)
	require.Equal(t, FromMajor(3000000), preview.BaseAmount)
}

// Преподавателю засчитывается только зачтённая в его месяц часть
// платежа: платёж на два месяца делит зачёт между месяцами.
func TestSalaryPreviewAppliedPortionOnly(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 50, 0)
	group := seedGroup(t, s, "Физика", 450000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)
	seedEnrollment(t, s, student.ID, group.ID, 0)

	march, april := mustMonth(t, "2026-03"), mustMonth(t, "2026-04")
	_, err := s.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:   student.ID,
		GroupID:     group.ID,
		Amount:      FromMajor(600000),
		Months:      []Month{march, april},
		PaymentDate: time.Now(),
		Actor:       "kassir",
	})
	require.NoError(t, err)

	marchPreview, err := s.SalaryPreview(teacher.ID, march)
	require.NoError(t, err)
	require.Equal(t, FromMajor(450000), marchPreview.CollectedAmount)

	aprilPreview, err := s.SalaryPreview(teacher.ID, april)
	require.NoError(t, err)
	require.Equal(t, FromMajor(150000), aprilPreview.CollectedAmount)
}

func TestSalaryPreviewUnknownTeacher(t *testing.T) {
	s := newTestService(t)
	_, err := s.SalaryPreview(42, mustMonth(t, "2026-03"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSalarySlip(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	slip, err := s.CreateSalarySlip(context.Background(), CreateSalarySlipInput{
		TeacherID:   teacher.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		BaseAmount:  FromMajor(270000),
		Bonus:       FromMajor(50000),
		Deduction:   FromMajor(20000),
		Actor:       "admin",
	})
	require.NoError(t, err)
	require.Equal(t, int64(FromMajor(300000)), slip.TotalAmount)
	require.Equal(t, models.SalarySlipStatusPending, slip.Status)

	// Повторная ведомость за тот же период отклоняется.
	_, err = s.CreateSalarySlip(context.Background(), CreateSalarySlipInput{
		TeacherID:   teacher.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		BaseAmount:  FromMajor(1),
		Actor:       "admin",
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

// Суммы ведомости замораживаются при создании: новые платежи меняют
// предпросмотр, но не созданную ведомость.
func TestSalarySlipFrozenAfterCreation(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	group := seedGroup(t, s, "Английский B1", 450000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)
	seedEnrollment(t, s, student.ID, group.ID, 0)

	month := mustMonth(t, "2026-03")
	preview, err := s.SalaryPreview(teacher.ID, month)
	require.NoError(t, err)

	slip, err := s.CreateSalarySlip(context.Background(), CreateSalarySlipInput{
		TeacherID:   teacher.ID,
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		BaseAmount:  preview.BaseAmount,
		Actor:       "admin",
	})
	require.NoError(t, err)

	_, err = s.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:   student.ID,
		GroupID:     group.ID,
		Amount:      FromMajor(450000),
		Months:      []Month{month},
		PaymentDate: time.Now(),
		Actor:       "kassir",
	})
	require.NoError(t, err)

	updatedPreview, err := s.SalaryPreview(teacher.ID, month)
	require.NoError(t, err)
	require.NotEqual(t, preview.BaseAmount, updatedPreview.BaseAmount)

	var stored models.SalarySlip
	require.NoError(t, s.db.First(&stored, slip.ID).Error)
	require.Equal(t, slip.BaseAmount, stored.BaseAmount)
	require.Equal(t, slip.TotalAmount, stored.TotalAmount)
}

func TestSalarySlipValidation(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   CreateSalarySlipInput
	}{
		{
			name: "period end before start",
			in: CreateSalarySlipInput{
				TeacherID:   teacher.ID,
				PeriodStart: start,
				PeriodEnd:   start.AddDate(0, 0, -1),
				BaseAmount:  FromMajor(100),
			},
		},
		{
			name: "negative base",
			in: CreateSalarySlipInput{
				TeacherID:   teacher.ID,
				PeriodStart: start,
				PeriodEnd:   start.AddDate(0, 1, 0),
				BaseAmount:  -1,
			},
		},
		{
			name: "deduction exceeds accrual",
			in: CreateSalarySlipInput{
				TeacherID:   teacher.ID,
				PeriodStart: start,
				PeriodEnd:   start.AddDate(0, 1, 0),
				BaseAmount:  FromMajor(100),
				Deduction:   FromMajor(200),
			},
		},
		{
			name: "bad status",
			in: CreateSalarySlipInput{
				TeacherID:   teacher.ID,
				PeriodStart: start,
				PeriodEnd:   start.AddDate(0, 1, 0),
				BaseAmount:  FromMajor(100),
				Status:      "archived",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateSalarySlip(context.Background(), tt.in)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}
}

func TestSalarySlipLifecycle(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypeFixed, 0, 3000000)

	slip, err := s.CreateSalarySlip(context.Background(), CreateSalarySlipInput{
		TeacherID:   teacher.ID,
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		BaseAmount:  FromMajor(3000000),
		Actor:       "admin",
	})
	require.NoError(t, err)

	require.NoError(t, s.MarkSalarySlipPaid(context.Background(), slip.ID, "admin"))

	// Повторная отметка об оплате — ошибка.
	err = s.MarkSalarySlipPaid(context.Background(), slip.ID, "admin")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	// Мягкое удаление: запись исчезает из выборок, но остаётся в базе.
	require.NoError(t, s.DeleteSalarySlip(context.Background(), slip.ID, "admin"))
	err = s.MarkSalarySlipPaid(context.Background(), slip.ID, "admin")
	require.ErrorIs(t, err, ErrNotFound)

	var unscoped models.SalarySlip
	require.NoError(t, s.db.Unscoped().First(&unscoped, slip.ID).Error)
	require.True(t, unscoped.DeletedAt.Valid)
}
