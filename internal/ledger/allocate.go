package ledger

// Allocation — часть платежа, зачтённая в конкретный месяц.
type Allocation struct {
	Month  Month
	Amount Money
}

// epsilon — допуск в один тийин при проверке переплаты, поглощает
// округление ставки со скидкой.
const epsilon = Money(1)

// allocateGreedy распределяет сумму платежа по месяцам жадно, по
// возрастанию: каждый месяц получает min(его остаток, остаток суммы).
// Месяцы, получившие ноль (уже оплаченные или после исчерпания суммы),
// в результат не попадают — так сохраняется точный инвариант
// sum(allocations) == amount и не появляются записи «зачтено 0».
// Если после обхода остался хвост в пределах epsilon (платёж на тийин
// больше остатка прошёл проверку), он зачитывается в последний месяц:
// инвариант сохранения важнее идеально ровной последней строки.
func allocateGreedy(amount Money, debts []MonthlyDebt) []Allocation {
	left := amount
	out := make([]Allocation, 0, len(debts))
	for _, d := range debts {
		if left == 0 {
			break
		}
		applied := d.RemainingDebt
		if applied > left {
			applied = left
		}
		if applied == 0 {
			continue
		}
		out = append(out, Allocation{Month: d.Month, Amount: applied})
		left -= applied
	}
	if left > 0 {
		if len(out) == 0 {
			out = append(out, Allocation{Month: debts[len(debts)-1].Month, Amount: left})
		} else {
			out[len(out)-1].Amount += left
		}
	}
	return out
}

// totalRemaining суммирует остатки долга по месяцам.
func totalRemaining(debts []MonthlyDebt) Money {
	var total Money
	for _, d := range debts {
		total += d.RemainingDebt
	}
	return total
}
