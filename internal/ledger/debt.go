package ledger

import (
	"errors"

	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/models"
)

// MonthlyDebt — расчётный (никогда не хранимый) долг пары
// (зачисление, месяц).
type MonthlyDebt struct {
	Month         Month
	MonthlyRate   Money
	PaidAmount    Money
	RemainingDebt Money
}

// StudentDebt — ответ на запрос долга с контекстом группы.
type StudentDebt struct {
	GroupPrice Money
	DiscountBp int
	Months     []MonthlyDebt
	// TotalRemaining — сумма остатков по запрошенным месяцам.
	TotalRemaining Money
}

// Debt считает долг ученика в группе за перечисленные месяцы одним
// запросом. Ставка месяца использует текущую скидку зачисления;
// месяц без платежей возвращает полную ставку как остаток долга.
func (s *Service) Debt(studentID, groupID uint, months []Month) (*StudentDebt, error) {
	var out *StudentDebt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		enr, grp, err := activeEnrollment(tx, studentID, groupID)
		if err != nil {
			return err
		}
		debts, err := monthlyDebts(tx, enr, Money(grp.Price), months)
		if err != nil {
			return err
		}
		out = &StudentDebt{
			GroupPrice: Money(grp.Price),
			DiscountBp: enr.DiscountBp,
			Months:     debts,
		}
		for _, d := range debts {
			out.TotalRemaining += d.RemainingDebt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// activeEnrollment находит активное зачисление пары и его группу.
func activeEnrollment(tx *gorm.DB, studentID, groupID uint) (*models.Enrollment, *models.Group, error) {
	var enr models.Enrollment
	err := tx.Where("student_id = ? AND group_id = ?", studentID, groupID).First(&enr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	var grp models.Group
	if err := tx.First(&grp, enr.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return &enr, &grp, nil
}

// monthlyDebts — ядро калькулятора: одна группировка по месяцам вместо
// запроса на каждый месяц. Детерминирован относительно снимка БД.
func monthlyDebts(tx *gorm.DB, enr *models.Enrollment, price Money, months []Month) ([]MonthlyDebt, error) {
	rate := MonthlyRate(price, enr.DiscountBp)

	type row struct {
		Month string
		Paid  int64
	}
	var rows []row
	err := tx.Model(&models.PaymentApplication{}).
		Select("month, COALESCE(SUM(amount), 0) AS paid").
		Where("student_id = ? AND group_id = ? AND month IN ?", enr.StudentID, enr.GroupID, monthStrings(months)).
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	paidByMonth := make(map[Month]Money, len(rows))
	for _, r := range rows {
		paidByMonth[Month(r.Month)] = Money(r.Paid)
	}

	debts := make([]MonthlyDebt, 0, len(months))
	for _, m := range months {
		paid := paidByMonth[m]
		remaining := rate - paid
		if remaining < 0 {
			remaining = 0
		}
		debts = append(debts, MonthlyDebt{
			Month:         m,
			MonthlyRate:   rate,
			PaidAmount:    paid,
			RemainingDebt: remaining,
		})
	}
	return debts, nil
}

// paidForMonth — оплаченная часть одного месяца по паре (ученик, группа).
func paidForMonth(tx *gorm.DB, studentID, groupID uint, month Month) (Money, error) {
	var paid int64
	err := tx.Model(&models.PaymentApplication{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("student_id = ? AND group_id = ? AND month = ?", studentID, groupID, month.String()).
		Scan(&paid).Error
	return Money(paid), err
}

func monthStrings(months []Month) []string {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.String()
	}
	return out
}
