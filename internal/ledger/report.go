package ledger

import (
	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/models"
)

// GroupReport — месячный срез по одной активной группе.
type GroupReport struct {
	GroupID     uint
	GroupName   string
	TeacherID   uint
	TeacherName string
	SalaryType  string

	// ExpectedAmount — сумма месячных ставок активных зачислений.
	ExpectedAmount Money
	// CollectedAmount — зачтённые в месяц части платежей группы.
	CollectedAmount Money
	RemainingDebt   Money
	// PaymentPercentage = round(collected/expected*100), 0 при expected=0.
	PaymentPercentage int

	// TeacherPortion считается только для per_student: оклад fixed
	// не выводится из сборов отдельной группы.
	TeacherPortion Money
	CenterPortion  Money
}

// ReportTotals — посуммированные поля по всем группам.
type ReportTotals struct {
	ExpectedAmount    Money
	CollectedAmount   Money
	RemainingDebt     Money
	TeacherPortion    Money
	CenterPortion     Money
	PaymentPercentage int
}

// MonthlyReport — сводка месяца по центру.
type MonthlyReport struct {
	Month  Month
	Groups []GroupReport
	Totals ReportTotals
}

// MonthlyReport собирает помесячный отчёт: ожидаемое, собранное,
// остаток и доли преподавателя/центра по каждой активной группе.
// Отчёт только читает леджер и композиционно повторяет расчёты долга
// и зарплатной базы — расхождение с предпросмотрами невозможно.
func (s *Service) MonthlyReport(month Month) (*MonthlyReport, error) {
	report := &MonthlyReport{Month: month}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var groups []models.Group
		if err := tx.Preload("Teacher").
			Where("status = ?", models.GroupStatusActive).
			Order("name").
			Find(&groups).Error; err != nil {
			return err
		}

		collectedMap, err := collectedByGroup(tx, month)
		if err != nil {
			return err
		}

		for _, grp := range groups {
			var enrollments []models.Enrollment
			if err := tx.Where("group_id = ?", grp.ID).Find(&enrollments).Error; err != nil {
				return err
			}

			var expected Money
			for _, enr := range enrollments {
				expected += MonthlyRate(Money(grp.Price), enr.DiscountBp)
			}
			collected := collectedMap[grp.ID]
			remaining := expected - collected
			if remaining < 0 {
				remaining = 0
			}

			gr := GroupReport{
				GroupID:           grp.ID,
				GroupName:         grp.Name,
				TeacherID:         grp.TeacherID,
				ExpectedAmount:    expected,
				CollectedAmount:   collected,
				RemainingDebt:     remaining,
				PaymentPercentage: percentage(collected, expected),
				CenterPortion:     collected,
			}
			if grp.Teacher != nil {
				gr.TeacherName = grp.Teacher.FullName()
				gr.SalaryType = grp.Teacher.SalaryType
				if grp.Teacher.SalaryType == models.SalaryTypePerStudent {
					gr.TeacherPortion = PercentOf(collected, grp.Teacher.SalaryPercentage)
					gr.CenterPortion = collected - gr.TeacherPortion
				}
			}

			report.Groups = append(report.Groups, gr)
			report.Totals.ExpectedAmount += gr.ExpectedAmount
			report.Totals.CollectedAmount += gr.CollectedAmount
			report.Totals.RemainingDebt += gr.RemainingDebt
			report.Totals.TeacherPortion += gr.TeacherPortion
			report.Totals.CenterPortion += gr.CenterPortion
		}
		report.Totals.PaymentPercentage = percentage(report.Totals.CollectedAmount, report.Totals.ExpectedAmount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// collectedByGroup — одна группировка по всем группам вместо запроса
// на каждую.
func collectedByGroup(tx *gorm.DB, month Month) (map[uint]Money, error) {
	type row struct {
		GroupID uint
		Total   int64
	}
	var rows []row
	err := tx.Model(&models.PaymentApplication{}).
		Select("group_id, COALESCE(SUM(amount), 0) AS total").
		Where("month = ?", month.String()).
		Group("group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]Money, len(rows))
	for _, r := range rows {
		out[r.GroupID] = Money(r.Total)
	}
	return out, nil
}

// percentage = round(collected/expected*100), целыми процентами.
func percentage(collected, expected Money) int {
	if expected <= 0 {
		return 0
	}
	num := int64(collected) * 100
	pct := num / int64(expected)
	if num%int64(expected)*2 >= int64(expected) {
		pct++
	}
	return int(pct)
}
