package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javlon0607/learning-center-sub000/models"
)

func TestMonthlyReport(t *testing.T) {
	s := newTestService(t)
	perStudent := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	fixed := seedTeacher(t, s, models.SalaryTypeFixed, 0, 3000000)

	english := seedGroup(t, s, "Английский B1", 500000, perStudent.ID, models.GroupStatusActive)
	math := seedGroup(t, s, "Математика", 400000, fixed.ID, models.GroupStatusActive)
	seedGroup(t, s, "Архив", 400000, fixed.ID, models.GroupStatusCompleted)

	first := seedStudent(t, s)
	second := seedStudent(t, s)
	third := seedStudent(t, s)
	seedEnrollment(t, s, first.ID, english.ID, 1000) // ставка 450000
	seedEnrollment(t, s, second.ID, english.ID, 0)   // ставка 500000
	seedEnrollment(t, s, third.ID, math.ID, 0)

	month := mustMonth(t, "2026-03")
	_, err := s.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:   first.ID,
		GroupID:     english.ID,
		Amount:      FromMajor(450000),
		Months:      []Month{month},
		PaymentDate: time.Now(),
		Actor:       "kassir",
	})
	require.NoError(t, err)
	_, err = s.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:   third.ID,
		GroupID:     math.ID,
		Amount:      FromMajor(100000),
		Months:      []Month{month},
		PaymentDate: time.Now(),
		Actor:       "kassir",
	})
	require.NoError(t, err)

	report, err := s.MonthlyReport(month)
	require.NoError(t, err)
	require.Equal(t, month, report.Month)
	// Завершённая группа в отчёт не попадает; сортировка по имени.
	require.Len(t, report.Groups, 2)

	english2 := report.Groups[0]
	require.Equal(t, "Английский B1", english2.GroupName)
	require.Equal(t, FromMajor(950000), english2.ExpectedAmount)
	require.Equal(t, FromMajor(450000), english2.CollectedAmount)
	require.Equal(t, FromMajor(500000), english2.RemainingDebt)
	require.Equal(t, 47, english2.PaymentPercentage) // 450/950 = 47.37 -> 47
	require.Equal(t, FromMajor(135000), english2.TeacherPortion)
	require.Equal(t, FromMajor(315000), english2.CenterPortion)

	math2 := report.Groups[1]
	require.Equal(t, "Математика", math2.GroupName)
	require.Equal(t, FromMajor(400000), math2.ExpectedAmount)
	require.Equal(t, FromMajor(100000), math2.CollectedAmount)
	require.Equal(t, 25, math2.PaymentPercentage)
	// Оклад fixed не выводится из сборов группы.
	require.Equal(t, Money(0), math2.TeacherPortion)
	require.Equal(t, FromMajor(100000), math2.CenterPortion)

	require.Equal(t, FromMajor(1350000), report.Totals.ExpectedAmount)
	require.Equal(t, FromMajor(550000), report.Totals.CollectedAmount)
	require.Equal(t, FromMajor(800000), report.Totals.RemainingDebt)
	require.Equal(t, FromMajor(135000), report.Totals.TeacherPortion)
	require.Equal(t, FromMajor(415000), report.Totals.CenterPortion)
	require.Equal(t, 41, report.Totals.PaymentPercentage) // 550/1350 = 40.74 -> 41
}

// Группа без зачислений: ожидаемое 0, процент 0, деления на ноль нет.
func TestMonthlyReportEmptyGroup(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	seedGroup(t, s, "Новая группа", 500000, teacher.ID, models.GroupStatusActive)

	report, err := s.MonthlyReport(mustMonth(t, "2026-03"))
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	require.Equal(t, Money(0), report.Groups[0].ExpectedAmount)
	require.Equal(t, 0, report.Groups[0].PaymentPercentage)
	require.Equal(t, 0, report.Totals.PaymentPercentage)
}

func TestReportPercentageRounding(t *testing.T) {
	tests := []struct {
		name      string
		collected Money
		expected  Money
		want      int
	}{
		{"zero expected", 100, 0, 0},
		{"zero collected", 0, 100, 0},
		{"exact half rounds up", 1, 200, 1}, // 0.5%
		{"below half rounds down", 1, 300, 0},
		{"full", 450, 450, 100},
		{"one third", 100, 300, 33},
		{"two thirds", 200, 300, 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentage(tt.collected, tt.expected); got != tt.want {
				t.Errorf("percentage(%d, %d) = %d, want %d", tt.collected, tt.expected, got, tt.want)
			}
		})
	}
}

// Остаток группы не уходит в минус, если зачтено больше ожидаемого
// (переплата в месяц после снижения скидки).
func TestMonthlyReportRemainingClamped(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	group := seedGroup(t, s, "Немецкий", 500000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)
	enr := seedEnrollment(t, s, student.ID, group.ID, 0)

	month := mustMonth(t, "2026-03")
	_, err := s.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:   student.ID,
		GroupID:     group.ID,
		Amount:      FromMajor(500000),
		Months:      []Month{month},
		PaymentDate: time.Now(),
		Actor:       "kassir",
	})
	require.NoError(t, err)

	require.NoError(t, s.db.Model(enr).Update("discount_bp", 2000).Error)

	report, err := s.MonthlyReport(month)
	require.NoError(t, err)
	require.Equal(t, FromMajor(400000), report.Groups[0].ExpectedAmount)
	require.Equal(t, FromMajor(500000), report.Groups[0].CollectedAmount)
	require.Equal(t, Money(0), report.Groups[0].RemainingDebt)
}
