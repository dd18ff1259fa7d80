package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы зарплатной ведомости.
const (
	SalarySlipStatusPending = "pending"
	SalarySlipStatusPaid    = "paid"
)

// SalarySlip — зарплатная ведомость преподавателя за период.
// Суммы фиксируются при создании и никогда не пересчитываются,
// даже если предпросмотр (preview) после новых платежей изменился.
// Удаление мягкое: запись остаётся для аудита, но исключается из сумм.
type SalarySlip struct {
	gorm.Model
	TeacherID uint     `json:"teacherId" gorm:"index;not null"`
	Teacher   *Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	PeriodStart time.Time `json:"periodStart" gorm:"not null"`
	PeriodEnd   time.Time `json:"periodEnd" gorm:"not null"`

	// Все суммы в тийинах. TotalAmount = BaseAmount + Bonus - Deduction.
	BaseAmount  int64 `json:"baseAmount" gorm:"type:bigint;not null"`
	Bonus       int64 `json:"bonus" gorm:"type:bigint;default:0"`
	Deduction   int64 `json:"deduction" gorm:"type:bigint;default:0"`
	TotalAmount int64 `json:"totalAmount" gorm:"type:bigint;not null"`

	Status string `json:"status" gorm:"default:'pending'"`
	Notes  string `json:"notes"`
}
