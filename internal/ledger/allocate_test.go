package ledger

import "testing"

func debtsFor(months []Month, rate Money, paid map[Month]Money) []MonthlyDebt {
	out := make([]MonthlyDebt, 0, len(months))
	for _, m := range months {
		p := paid[m]
		remaining := rate - p
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, MonthlyDebt{Month: m, MonthlyRate: rate, PaidAmount: p, RemainingDebt: remaining})
	}
	return out
}

func TestAllocateGreedy(t *testing.T) {
	march, april, may := Month("2026-03"), Month("2026-04"), Month("2026-05")
	rate := Money(45000000) // 450000 som

	tests := []struct {
		name   string
		amount Money
		debts  []MonthlyDebt
		want   []Allocation
	}{
		{
			name:   "exact single month",
			amount: rate,
			debts:  debtsFor([]Month{march}, rate, nil),
			want:   []Allocation{{march, rate}},
		},
		{
			name:   "partial spills into next month",
			amount: 60000000,
			debts:  debtsFor([]Month{march, april}, rate, nil),
			want:   []Allocation{{march, rate}, {april, 15000000}},
		},
		{
			name:   "fully paid month skipped",
			amount: rate,
			debts:  debtsFor([]Month{march, april}, rate, map[Month]Money{march: rate}),
			want:   []Allocation{{april, rate}},
		},
		{
			name:   "partially paid month topped up first",
			amount: 40000000,
			debts:  debtsFor([]Month{march, april}, rate, map[Month]Money{march: 30000000}),
			want:   []Allocation{{march, 15000000}, {april, 25000000}},
		},
		{
			name:   "epsilon tail lands on last allocation",
			amount: rate + 1,
			debts:  debtsFor([]Month{march}, rate, nil),
			want:   []Allocation{{march, rate + 1}},
		},
		{
			name:   "all months paid, epsilon payment",
			amount: 1,
			debts:  debtsFor([]Month{march, april}, rate, map[Month]Money{march: rate, april: rate}),
			want:   []Allocation{{april, 1}},
		},
		{
			name:   "amount exhausted before last month",
			amount: 10000000,
			debts:  debtsFor([]Month{march, april, may}, rate, nil),
			want:   []Allocation{{march, 10000000}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := allocateGreedy(tt.amount, tt.debts)
			if len(got) != len(tt.want) {
				t.Fatalf("allocateGreedy() = %v, want %v", got, tt.want)
			}
			var total Money
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("allocation[%d] = %v, want %v", i, got[i], tt.want[i])
				}
				total += got[i].Amount
			}
			// Закон сохранения: распределено ровно столько, сколько внесено.
			if total != tt.amount {
				t.Errorf("allocated total = %d, want %d", total, tt.amount)
			}
		})
	}
}
