package models

import "gorm.io/gorm"

// Типы оплаты труда преподавателя.
const (
	SalaryTypeFixed      = "fixed"       // фиксированный оклад
	SalaryTypePerStudent = "per_student" // процент от собранных денег
)

// Teacher представляет преподавателя учебного центра.
type Teacher struct {
	gorm.Model
	FirstName string `json:"firstName" gorm:"not null"`
	LastName  string `json:"lastName" gorm:"not null"`
	Phone     string `json:"phone"`

	// SalaryType определяет модель оплаты: fixed или per_student.
	SalaryType string `json:"salaryType" gorm:"default:'per_student'"`

	// SalaryAmount — оклад в тийинах, используется только при SalaryType = fixed.
	SalaryAmount int64 `json:"salaryAmount" gorm:"type:bigint;default:0"`

	// SalaryPercentage — процент (0–100) от собранных платежей,
	// используется только при SalaryType = per_student.
	SalaryPercentage int `json:"salaryPercentage" gorm:"default:0"`

	Groups []Group `json:"groups,omitempty" gorm:"foreignKey:TeacherID"`
}

func (t Teacher) FullName() string {
	return t.LastName + " " + t.FirstName
}
