package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment — зачисление ученика в группу.
// Активное зачисление — запись без deleted_at; закрывается отчислением
// или переводом в другую группу (см. GroupTransfer). На пару
// (student_id, group_id) одновременно существует не больше одного
// активного зачисления.
type Enrollment struct {
	gorm.Model
	StudentID uint     `json:"studentId" gorm:"index:idx_enrollment_pair;not null"`
	Student   *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	GroupID uint   `json:"groupId" gorm:"index:idx_enrollment_pair;not null"`
	Group   *Group `json:"group,omitempty" gorm:"foreignKey:GroupID"`

	// DiscountBp — скидка в базисных пунктах (0–10000), чтобы не копить
	// ошибку плавающей точки. 1000 bp = 10%.
	DiscountBp int `json:"discountBp" gorm:"not null;default:0"`

	EnrolledAt time.Time `json:"enrolledAt"`
}
