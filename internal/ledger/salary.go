package ledger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/models"
)

// SalaryPreview — рекомендательный расчёт базы оклада за месяц.
// В ведомость попадает та сумма, которую в итоге внёс оператор;
// после создания ведомость никогда не пересчитывается.
type SalaryPreview struct {
	SalaryType       string
	SalaryPercentage int
	CollectedAmount  Money
	BaseAmount       Money
}

// SalaryPreview считает базу оклада преподавателя за месяц.
// fixed: база равна окладу, сборы не учитываются. per_student:
// преподавателю засчитывается зачтённая в месяц часть платежей его
// групп (платёж на два месяца делит зачёт между ними), база — процент
// от сборов с округлением половины вверх до тийина.
func (s *Service) SalaryPreview(teacherID uint, month Month) (*SalaryPreview, error) {
	var teacher models.Teacher
	err := s.db.First(&teacher, teacherID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if teacher.SalaryType == models.SalaryTypeFixed {
		return &SalaryPreview{
			SalaryType: models.SalaryTypeFixed,
			BaseAmount: Money(teacher.SalaryAmount),
		}, nil
	}

	collected, err := collectedForTeacher(s.db, teacherID, month)
	if err != nil {
		return nil, err
	}
	return &SalaryPreview{
		SalaryType:       models.SalaryTypePerStudent,
		SalaryPercentage: teacher.SalaryPercentage,
		CollectedAmount:  collected,
		BaseAmount:       PercentOf(collected, teacher.SalaryPercentage),
	}, nil
}

// collectedForTeacher — сборы месяца по всем группам преподавателя.
func collectedForTeacher(tx *gorm.DB, teacherID uint, month Month) (Money, error) {
	var collected int64
	err := tx.Model(&models.PaymentApplication{}).
		Select("COALESCE(SUM(payment_applications.amount), 0)").
		Joins("JOIN groups ON groups.id = payment_applications.group_id").
		Where("groups.teacher_id = ? AND groups.deleted_at IS NULL", teacherID).
		Where("payment_applications.month = ?", month.String()).
		Scan(&collected).Error
	return Money(collected), err
}

// CreateSalarySlipInput — данные новой ведомости. Суммы в тийинах.
type CreateSalarySlipInput struct {
	TeacherID   uint
	PeriodStart time.Time
	PeriodEnd   time.Time
	BaseAmount  Money
	Bonus       Money
	Deduction   Money
	Status      string
	Notes       string
	Actor       string
}

// CreateSalarySlip создаёт ведомость за период. Итог считается на
// сервере: total = base + bonus - deduction. Повторная ведомость за
// тот же период отклоняется.
func (s *Service) CreateSalarySlip(ctx context.Context, in CreateSalarySlipInput) (*models.SalarySlip, error) {
	if in.BaseAmount < 0 || in.Bonus < 0 || in.Deduction < 0 {
		return nil, &ValidationError{Msg: "суммы ведомости не могут быть отрицательными"}
	}
	if in.PeriodEnd.Before(in.PeriodStart) {
		return nil, &ValidationError{Msg: "конец периода раньше начала"}
	}
	total := in.BaseAmount + in.Bonus - in.Deduction
	if total < 0 {
		return nil, &ValidationError{Msg: "удержание больше начисления"}
	}
	switch in.Status {
	case "":
		in.Status = models.SalarySlipStatusPending
	case models.SalarySlipStatusPending, models.SalarySlipStatusPaid:
	default:
		return nil, &ValidationError{Msg: "недопустимый статус ведомости: " + in.Status}
	}

	var slip models.SalarySlip
	err := s.runInTx(ctx, func(tx *gorm.DB) error {
		var teacher models.Teacher
		err := tx.First(&teacher, in.TeacherID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.SalarySlip{}).
			Where("teacher_id = ? AND period_start = ? AND period_end = ?",
				in.TeacherID, in.PeriodStart, in.PeriodEnd).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return &ValidationError{Msg: "ведомость за этот период уже существует"}
		}

		slip = models.SalarySlip{
			TeacherID:   in.TeacherID,
			PeriodStart: in.PeriodStart,
			PeriodEnd:   in.PeriodEnd,
			BaseAmount:  int64(in.BaseAmount),
			Bonus:       int64(in.Bonus),
			Deduction:   int64(in.Deduction),
			TotalAmount: int64(total),
			Status:      in.Status,
			Notes:       in.Notes,
		}
		if err := tx.Create(&slip).Error; err != nil {
			return err
		}
		return writeAudit(tx, in.Actor, "salary_slip.created", "salary_slips", slip.ID,
			nil, map[string]any{"total": int64(total), "status": slip.Status})
	})
	if err != nil {
		return nil, err
	}
	return &slip, nil
}

// MarkSalarySlipPaid переводит ведомость pending -> paid.
func (s *Service) MarkSalarySlipPaid(ctx context.Context, id uint, actor string) error {
	return s.runInTx(ctx, func(tx *gorm.DB) error {
		var slip models.SalarySlip
		err := tx.First(&slip, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if slip.Status == models.SalarySlipStatusPaid {
			return &ValidationError{Msg: "ведомость уже выплачена"}
		}
		if err := tx.Model(&slip).Update("status", models.SalarySlipStatusPaid).Error; err != nil {
			return err
		}
		return writeAudit(tx, actor, "salary_slip.paid", "salary_slips", slip.ID,
			map[string]any{"status": models.SalarySlipStatusPending},
			map[string]any{"status": models.SalarySlipStatusPaid})
	})
}

// DeleteSalarySlip мягко удаляет ведомость: она исключается из сумм,
// но остаётся в базе для аудита.
func (s *Service) DeleteSalarySlip(ctx context.Context, id uint, actor string) error {
	return s.runInTx(ctx, func(tx *gorm.DB) error {
		var slip models.SalarySlip
		err := tx.First(&slip, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&slip).Error; err != nil {
			return err
		}
		return writeAudit(tx, actor, "salary_slip.deleted", "salary_slips", slip.ID,
			map[string]any{"status": slip.Status, "total": slip.TotalAmount}, nil)
	})
}
