package ledger

import (
	"errors"
	"fmt"
)

// Ошибки бухгалтерского ядра. Обработчики HTTP переводят их в коды
// ответов, ничего в этом пакете не фатально для процесса.

var (
	// ErrNotFound — нет ученика/группы/преподавателя/активного зачисления.
	ErrNotFound = errors.New("запись не найдена")

	// ErrConcurrencyConflict — конкурентная операция над тем же учеником
	// и группой не уступила место за отведённое время. Транзиентная
	// ошибка: вызывающая сторона может просто повторить запрос.
	ErrConcurrencyConflict = errors.New("параллельная операция ещё выполняется, повторите запрос")
)

// ValidationError — некорректный ввод, исправляется пользователем.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DebtExceededError — платёж больше суммарного остатка долга по
// выбранным месяцам. MaxAllowed сообщает клиенту допустимый максимум.
type DebtExceededError struct {
	MaxAllowed Money
}

func (e *DebtExceededError) Error() string {
	return fmt.Sprintf("сумма превышает остаток долга, максимум %s", e.MaxAllowed)
}

// TransferError — перевод невозможен: неактивная или несуществующая
// группа назначения, нет активного зачисления в исходной группе.
type TransferError struct {
	Msg string
}

func (e *TransferError) Error() string { return e.Msg }
