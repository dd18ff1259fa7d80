package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javlon0607/learning-center-sub000/models"
)

// Сценарий: цена 500000, скидка 10% — ставка 450000; без платежей
// остаток равен полной ставке.
func TestDebtWithoutPayments(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	group := seedGroup(t, s, "Английский B1", 500000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)
	seedEnrollment(t, s, student.ID, group.ID, 1000)

	debt, err := s.Debt(student.ID, group.ID, []Month{mustMonth(t, "2026-03")})
	require.NoError(t, err)
	require.Equal(t, FromMajor(500000), debt.GroupPrice)
	require.Equal(t, 1000, debt.DiscountBp)
	require.Len(t, debt.Months, 1)

	d := debt.Months[0]
	require.Equal(t, FromMajor(450000), d.MonthlyRate)
	require.Equal(t, Money(0), d.PaidAmount)
	require.Equal(t, FromMajor(450000), d.RemainingDebt)
	require.Equal(t, FromMajor(450000), debt.TotalRemaining)
}

func TestDebtIsIdempotent(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	group := seedGroup(t, s, "Математика", 300000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)
	seedEnrollment(t, s, student.ID, group.ID, 0)

	months := []Month{mustMonth(t, "2026-03"), mustMonth(t, "2026-04")}
	_, err := s.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:   student.ID,
		GroupID:     group.ID,
		Amount:      FromMajor(100000),
		Months:      months[:1],
		PaymentDate: time.Now(),
		Actor:       "tester",
	})
	require.NoError(t, err)

	first, err := s.Debt(student.ID, group.ID, months)
	require.NoError(t, err)
	second, err := s.Debt(student.ID, group.ID, months)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDebtBatchedMonths(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	group := seedGroup(t, s, "Физика", 400000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)
	seedEnrollment(t, s, student.ID, group.ID, 0)

	_, err := s.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID:   student.ID,
		GroupID:     group.ID,
		Amount:      FromMajor(400000),
		Months:      []Month{mustMonth(t, "2026-03")},
		PaymentDate: time.Now(),
		Actor:       "tester",
	})
	require.NoError(t, err)

	debt, err := s.Debt(student.ID, group.ID, []Month{
		mustMonth(t, "2026-03"),
		mustMonth(t, "2026-04"),
		mustMonth(t, "2026-05"),
	})
	require.NoError(t, err)
	require.Len(t, debt.Months, 3)
	require.Equal(t, Money(0), debt.Months[0].RemainingDebt)
	require.Equal(t, FromMajor(400000), debt.Months[1].RemainingDebt)
	require.Equal(t, FromMajor(400000), debt.Months[2].RemainingDebt)
	require.Equal(t, FromMajor(800000), debt.TotalRemaining)
}

func TestDebtNoActiveEnrollment(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	group := seedGroup(t, s, "Химия", 400000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)

	_, err := s.Debt(student.ID, group.ID, []Month{mustMonth(t, "2026-03")})
	require.ErrorIs(t, err, ErrNotFound)
}

// Смена скидки зачисления переоценивает ещё не оплаченные месяцы:
// ставка всегда берётся из текущей скидки, а не из снимка на момент
// зачисления.
func TestDebtUsesCurrentDiscount(t *testing.T) {
	s := newTestService(t)
	teacher := seedTeacher(t, s, models.SalaryTypePerStudent, 30, 0)
	group := seedGroup(t, s, "Немецкий", 500000, teacher.ID, models.GroupStatusActive)
	student := seedStudent(t, s)
	enr := seedEnrollment(t, s, student.ID, group.ID, 0)

	month := []Month{mustMonth(t, "2026-03")}
	before, err := s.Debt(student.ID, group.ID, month)
	require.NoError(t, err)
	require.Equal(t, FromMajor(500000), before.Months[0].RemainingDebt)

	require.NoError(t, s.db.Model(enr).Update("discount_bp", 2000).Error)

	after, err := s.Debt(student.ID, group.ID, month)
	require.NoError(t, err)
	require.Equal(t, FromMajor(400000), after.Months[0].RemainingDebt)
}
