package models

import "gorm.io/gorm"

// Student хранит только идентификационные данные ученика.
// Вся финансовая информация живёт в зачислениях и платежах.
type Student struct {
	gorm.Model
	FirstName string `json:"firstName" gorm:"not null"`
	LastName  string `json:"lastName" gorm:"not null"`
	Phone     string `json:"phone"`

	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:StudentID"`
}

func (s Student) FullName() string {
	return s.LastName + " " + s.FirstName
}
