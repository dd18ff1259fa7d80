package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog — запись журнала аудита финансовой операции.
// Пишется в той же транзакции, что и сама операция: либо фиксируются
// обе записи, либо ни одной. Отображение журнала — внешняя система.
type AuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	// EventID — внешний идентификатор события для сквозной трассировки.
	EventID string `json:"eventId" gorm:"uniqueIndex;size:36;not null"`

	// Actor — логин сотрудника из JWT-токена.
	Actor string `json:"actor"`

	// Action вида "payment.created", "group.transferred".
	Action string `json:"action" gorm:"index;not null"`

	Entity   string `json:"entity" gorm:"not null"`
	EntityID uint   `json:"entityId" gorm:"index"`

	// Before и After — снимки состояния до и после операции.
	Before datatypes.JSON `json:"before"`
	After  datatypes.JSON `json:"after"`
}
