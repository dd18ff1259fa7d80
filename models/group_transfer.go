package models

import "gorm.io/gorm"

// GroupTransfer — событие перевода ученика из группы в группу.
// Перевод атомарно закрывает старое зачисление, открывает новое и
// переносит оплаченный остаток текущего месяца в виде синтетического
// платежа-кредита (Payment.TransferID указывает на эту запись).
type GroupTransfer struct {
	gorm.Model
	StudentID uint     `json:"studentId" gorm:"index;not null"`
	Student   *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	FromGroupID uint   `json:"fromGroupId" gorm:"not null"`
	FromGroup   *Group `json:"fromGroup,omitempty" gorm:"foreignKey:FromGroupID"`

	ToGroupID uint   `json:"toGroupId" gorm:"not null"`
	ToGroup   *Group `json:"toGroup,omitempty" gorm:"foreignKey:ToGroupID"`

	Reason string `json:"reason"`

	// DiscountBp — скидка нового зачисления в базисных пунктах.
	DiscountBp int `json:"discountBp" gorm:"not null;default:0"`

	// CreditedAmount — перенесённый остаток в тийинах,
	// min(оплачено в старой группе за текущий месяц, ставка новой группы).
	CreditedAmount int64 `json:"creditedAmount" gorm:"type:bigint;not null"`
}
