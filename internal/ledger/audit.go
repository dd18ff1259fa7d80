package ledger

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/models"
)

// writeAudit пишет запись журнала в ту же транзакцию, что и сама
// операция: финансовая мутация без записи аудита не фиксируется.
func writeAudit(tx *gorm.DB, actor, action, entity string, entityID uint, before, after any) error {
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return err
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return err
	}
	entry := models.AuditLog{
		EventID:  uuid.NewString(),
		Actor:    actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Before:   datatypes.JSON(beforeJSON),
		After:    datatypes.JSON(afterJSON),
	}
	return tx.Create(&entry).Error
}

// debtSnapshot — снимок долга по месяцам для before/after аудита.
func debtSnapshot(debts []MonthlyDebt) map[string]int64 {
	snap := make(map[string]int64, len(debts))
	for _, d := range debts {
		snap[d.Month.String()] = int64(d.RemainingDebt)
	}
	return snap
}
