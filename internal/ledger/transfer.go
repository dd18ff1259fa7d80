package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/models"
)

// TransferInput — запрос перевода ученика между группами.
type TransferInput struct {
	StudentID   uint
	FromGroupID uint
	ToGroupID   uint
	Reason      string
	DiscountBp  int
	Actor       string
}

// Transfer атомарно закрывает зачисление в исходной группе, открывает
// новое в группе назначения и переносит оплаченный остаток текущего
// месяца: credited = min(оплачено в источнике, ставка назначения).
// Кредит записывается синтетическим платежом, чтобы леджер новой
// группы отражал перенос без ручного ввода кассиром. Либо выполняется
// всё, либо ничего.
func (s *Service) Transfer(ctx context.Context, in TransferInput) (*models.GroupTransfer, error) {
	if in.FromGroupID == in.ToGroupID {
		return nil, &ValidationError{Msg: "группа назначения совпадает с исходной"}
	}
	if in.DiscountBp < 0 || in.DiscountBp > 10000 {
		return nil, &ValidationError{Msg: "скидка должна быть от 0 до 100 процентов"}
	}

	keys, err := s.locks.acquireAll(ctx, []string{
		pairKey(in.StudentID, in.FromGroupID),
		pairKey(in.StudentID, in.ToGroupID),
	})
	if err != nil {
		return nil, err
	}
	defer s.locks.releaseAll(keys)

	month := CurrentMonth()
	var (
		transfer      models.GroupTransfer
		fromTeacherID uint
		toTeacherID   uint
	)
	err = s.runInTx(ctx, func(tx *gorm.DB) error {
		var src models.Enrollment
		err := tx.Where("student_id = ? AND group_id = ?", in.StudentID, in.FromGroupID).First(&src).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &TransferError{Msg: "у ученика нет активного зачисления в исходной группе"}
		}
		if err != nil {
			return err
		}

		var dst models.Group
		err = tx.First(&dst, in.ToGroupID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &TransferError{Msg: "группа назначения не найдена"}
		}
		if err != nil {
			return err
		}
		if dst.Status != models.GroupStatusActive {
			return &TransferError{Msg: "группа назначения неактивна"}
		}

		var existing int64
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND group_id = ?", in.StudentID, in.ToGroupID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return &TransferError{Msg: "ученик уже зачислен в группу назначения"}
		}

		var fromGroup models.Group
		if err := tx.First(&fromGroup, in.FromGroupID).Error; err != nil {
			return err
		}
		fromTeacherID = fromGroup.TeacherID
		toTeacherID = dst.TeacherID

		paid, err := paidForMonth(tx, in.StudentID, in.FromGroupID, month)
		if err != nil {
			return err
		}

		if err := tx.Delete(&src).Error; err != nil {
			return err
		}
		enr := models.Enrollment{
			StudentID:  in.StudentID,
			GroupID:    in.ToGroupID,
			DiscountBp: in.DiscountBp,
			EnrolledAt: time.Now().UTC(),
		}
		if err := tx.Create(&enr).Error; err != nil {
			return err
		}

		// Остаток сверх ставки новой группы не переносится: излишек
		// остаётся на закрытом леджере исходной группы.
		destRate := MonthlyRate(Money(dst.Price), in.DiscountBp)
		credited := paid
		if credited > destRate {
			credited = destRate
		}

		transfer = models.GroupTransfer{
			StudentID:      in.StudentID,
			FromGroupID:    in.FromGroupID,
			ToGroupID:      in.ToGroupID,
			Reason:         in.Reason,
			DiscountBp:     in.DiscountBp,
			CreditedAmount: int64(credited),
		}
		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}

		if credited > 0 {
			credit := models.Payment{
				InvoiceNo:   newInvoiceNo(time.Now().UTC()),
				StudentID:   in.StudentID,
				GroupID:     in.ToGroupID,
				Amount:      int64(credited),
				PaymentDate: time.Now().UTC(),
				Method:      models.MethodTransferCredit,
				Notes:       in.Reason,
				TransferID:  &transfer.ID,
			}
			if err := tx.Create(&credit).Error; err != nil {
				return err
			}
			app := models.PaymentApplication{
				PaymentID: credit.ID,
				StudentID: in.StudentID,
				GroupID:   in.ToGroupID,
				Month:     month.String(),
				Amount:    int64(credited),
			}
			if err := tx.Create(&app).Error; err != nil {
				return err
			}
		}

		before := map[string]any{
			"group_id":    in.FromGroupID,
			"discount_bp": src.DiscountBp,
			"paid_month":  int64(paid),
		}
		after := map[string]any{
			"group_id":    in.ToGroupID,
			"discount_bp": in.DiscountBp,
			"credited":    int64(credited),
		}
		return writeAudit(tx, in.Actor, "group.transferred", "group_transfers", transfer.ID, before, after)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("ученик переведён",
		"student", in.StudentID,
		"from", in.FromGroupID,
		"to", in.ToGroupID,
		"credited", Money(transfer.CreditedAmount).String(),
	)
	s.invalidateCaches(ctx, fromTeacherID, month)
	s.invalidateCaches(ctx, toTeacherID, month)
	return &transfer, nil
}
