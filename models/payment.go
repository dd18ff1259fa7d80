package models

import (
	"time"

	"gorm.io/gorm"
)

// Методы оплаты. Список не закрыт: клиент может прислать свой,
// но перевод между группами всегда помечается MethodTransferCredit.
const (
	MethodCash           = "cash"
	MethodCard           = "card"
	MethodBankTransfer   = "bank_transfer"
	MethodTransferCredit = "transfer_credit"
)

// Payment — факт оплаты обучения. Запись неизменяемая: финансовые
// события только добавляются, исправление — новой записью.
// Распределение суммы по месяцам хранится в Applications; инвариант:
// сумма Applications.Amount всегда равна Amount.
type Payment struct {
	gorm.Model
	InvoiceNo string `json:"invoiceNo" gorm:"uniqueIndex;not null"`

	StudentID uint     `json:"studentId" gorm:"index:idx_payment_pair;not null"`
	Student   *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	GroupID uint   `json:"groupId" gorm:"index:idx_payment_pair;not null"`
	Group   *Group `json:"group,omitempty" gorm:"foreignKey:GroupID"`

	// Amount — сумма платежа в тийинах.
	Amount int64 `json:"amount" gorm:"type:bigint;not null"`

	PaymentDate time.Time `json:"paymentDate" gorm:"not null"`
	Method      string    `json:"method"`
	Notes       string    `json:"notes"`

	// TransferID заполняется только у синтетических платежей-кредитов,
	// созданных при переводе ученика в другую группу.
	TransferID *uint `json:"transferId,omitempty"`

	Applications []PaymentApplication `json:"applications,omitempty" gorm:"foreignKey:PaymentID"`
}

// PaymentApplication — одна строка распределения платежа: сколько из
// суммы платежа зачтено в конкретный месяц (YYYY-MM) по паре
// (ученик, группа). Все расчёты долга, зарплат и отчётов суммируют
// именно эти строки.
type PaymentApplication struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	PaymentID uint `json:"paymentId" gorm:"index;not null"`

	// StudentID и GroupID дублируются с платежа, чтобы агрегирующие
	// запросы не требовали join на payments.
	StudentID uint `json:"studentId" gorm:"index:idx_application_ledger;not null"`
	GroupID   uint `json:"groupId" gorm:"index:idx_application_ledger;not null"`

	// Month в формате YYYY-MM.
	Month string `json:"month" gorm:"index:idx_application_ledger;size:7;not null"`

	// Amount — зачтённая в месяц часть платежа, в тийинах.
	Amount int64 `json:"amount" gorm:"type:bigint;not null"`
}
