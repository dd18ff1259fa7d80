package models

import "gorm.io/gorm"

// Статусы учебной группы.
const (
	GroupStatusActive    = "active"
	GroupStatusInactive  = "inactive"
	GroupStatusCompleted = "completed"
)

// Group представляет учебную группу с месячной ценой обучения.
type Group struct {
	gorm.Model
	Name string `json:"name" gorm:"not null"`

	// Price — месячная стоимость обучения в тийинах.
	// Все денежные поля хранятся в минорных единицах, см. internal/ledger.
	Price int64 `json:"price" gorm:"type:bigint;not null"`

	TeacherID uint     `json:"teacherId" gorm:"index"`
	Teacher   *Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	Status string `json:"status" gorm:"default:'active';index"`
}
