package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/models"
)

// RecordPaymentInput — проверенный на уровне HTTP ввод кассира.
// Amount уже в тийинах, Months отвалидированы ParseMonths.
type RecordPaymentInput struct {
	StudentID   uint
	GroupID     uint
	Amount      Money
	Months      []Month
	PaymentDate time.Time
	Method      string
	Notes       string
	Actor       string
}

// RecordPayment принимает платёж и распределяет его по выбранным
// месяцам. Чтение остатков, проверка переплаты, запись платежа,
// строк распределения и аудита выполняются одной транзакцией под
// блокировкой пары (ученик, группа): две одновременные оплаты не
// могут пройти проверку по одному и тому же устаревшему остатку.
func (s *Service) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, &ValidationError{Msg: "сумма платежа должна быть больше нуля"}
	}
	if len(in.Months) == 0 {
		return nil, &ValidationError{Msg: "не выбран ни один месяц"}
	}
	if in.Method == "" {
		in.Method = models.MethodCash
	}

	key := pairKey(in.StudentID, in.GroupID)
	if err := s.locks.acquire(ctx, key); err != nil {
		return nil, err
	}
	defer s.locks.release(key)

	var (
		payment   models.Payment
		teacherID uint
	)
	err := s.runInTx(ctx, func(tx *gorm.DB) error {
		enr, grp, err := activeEnrollment(tx, in.StudentID, in.GroupID)
		if err != nil {
			return err
		}
		teacherID = grp.TeacherID

		debts, err := monthlyDebts(tx, enr, Money(grp.Price), in.Months)
		if err != nil {
			return err
		}
		remaining := totalRemaining(debts)
		if in.Amount > remaining+epsilon {
			return &DebtExceededError{MaxAllowed: remaining}
		}

		allocations := allocateGreedy(in.Amount, debts)

		payment = models.Payment{
			InvoiceNo:   newInvoiceNo(in.PaymentDate),
			StudentID:   in.StudentID,
			GroupID:     in.GroupID,
			Amount:      int64(in.Amount),
			PaymentDate: in.PaymentDate,
			Method:      in.Method,
			Notes:       in.Notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		for _, a := range allocations {
			app := models.PaymentApplication{
				PaymentID: payment.ID,
				StudentID: in.StudentID,
				GroupID:   in.GroupID,
				Month:     a.Month.String(),
				Amount:    int64(a.Amount),
			}
			if err := tx.Create(&app).Error; err != nil {
				return err
			}
			payment.Applications = append(payment.Applications, app)
		}

		after, err := monthlyDebts(tx, enr, Money(grp.Price), in.Months)
		if err != nil {
			return err
		}
		return writeAudit(tx, in.Actor, "payment.created", "payments", payment.ID,
			debtSnapshot(debts), debtSnapshot(after))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("платёж принят",
		"invoice", payment.InvoiceNo,
		"student", in.StudentID,
		"group", in.GroupID,
		"amount", in.Amount.String(),
	)
	s.invalidateCaches(ctx, teacherID, in.Months...)
	return &payment, nil
}

// newInvoiceNo генерирует номер квитанции вида INV-202603-9F3A41C2.
// Случайный суффикс вместо счётчика: номера уникальны без общей
// последовательности и не конфликтуют между парами.
func newInvoiceNo(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", date.Format("200601"), suffix)
}
