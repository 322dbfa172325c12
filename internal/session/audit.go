package session

import "host-ledger/internal/chips"

type Verdict string

const (
	VerdictBalanced Verdict = "balanced"
	VerdictShortage Verdict = "shortage"
	VerdictSurplus  Verdict = "surplus"
)

// AuditReport reconciles money that entered the game against money
// currently accounted for. Discrepancy > 0 means a shortage (value
// unaccounted for, usually miscounted chips), < 0 a surplus.
type AuditReport struct {
	TotalInflow       int64   `json:"total_inflow"`
	ChipsOnTable      int64   `json:"chips_on_table"`
	FinalStacksOut    int64   `json:"final_stacks_out"`
	FeesAlreadyInRake int64   `json:"fees_already_in_rake"`
	PotRake           int64   `json:"pot_rake"`
	TotalOutflow      int64   `json:"total_outflow"`
	Discrepancy       int64   `json:"discrepancy"`
	Verdict           Verdict `json:"verdict"`
}

// Audit recomputes the reconciliation from the player and house ledgers
// alone. It reads no cached totals, so it holds after any single
// mutation. Fees that entered IncomeRake through a cash-out are backed
// out of pot rake to avoid double counting.
func (c *Context) Audit() AuditReport {
	var r AuditReport
	for _, p := range c.Players {
		r.TotalInflow += p.CashIn + p.CreditIn
		switch p.Status {
		case StatusActive, StatusPaused:
			r.ChipsOnTable += chips.StackValue(p.ChipCounts, c.Denoms)
		case StatusOut:
			r.FinalStacksOut += p.FinalStack
			if p.FinalFee > 0 {
				r.FeesAlreadyInRake += p.FinalFee
			}
		}
	}
	r.PotRake = c.House.IncomeRake - r.FeesAlreadyInRake
	r.TotalOutflow = r.ChipsOnTable + r.FinalStacksOut + r.PotRake + c.House.IncomeInsurance
	r.Discrepancy = r.TotalInflow - r.TotalOutflow
	switch {
	case r.Discrepancy > 0:
		r.Verdict = VerdictShortage
	case r.Discrepancy < 0:
		r.Verdict = VerdictSurplus
	default:
		r.Verdict = VerdictBalanced
	}
	return r
}
