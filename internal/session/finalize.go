package session

import (
	"fmt"
	"strings"
	"time"

	"host-ledger/internal/chips"
)

// Summary is the live financial overview for the dashboard. Rake and
// insurance are tracked separately and only summed into gross income
// here and at finalization.
type Summary struct {
	TotalRake        int64 `json:"total_rake"`
	TotalInsurance   int64 `json:"total_insurance"`
	FeeCashCollected int64 `json:"fee_cash_collected"`
	TotalExpenses    int64 `json:"total_expenses"`
	GrossIncome      int64 `json:"gross_income"`
	NetProfit        int64 `json:"net_profit"`
	MyShare          int64 `json:"my_share"`
	PartnerShare     int64 `json:"partner_share"`
	HostSharePct     int   `json:"host_share_pct"`
}

func (c *Context) hostPct() int {
	if c.Config.Mode == ModeTimeCharge {
		return 100
	}
	return c.Config.HostSharePct
}

func (c *Context) Summarize() Summary {
	expenses := c.House.Expenses()
	gross := c.House.IncomeRake + c.House.IncomeInsurance
	net := gross - expenses
	pct := c.hostPct()
	my := net * int64(pct) / 100
	return Summary{
		TotalRake:        c.House.IncomeRake,
		TotalInsurance:   c.House.IncomeInsurance,
		FeeCashCollected: c.House.FeeCashCollected,
		TotalExpenses:    expenses,
		GrossIncome:      gross,
		NetProfit:        net,
		MyShare:          my,
		PartnerShare:     net - my,
		HostSharePct:     pct,
	}
}

// Finalize aggregates all ledgers into one immutable session record.
// It leaves in-memory state untouched; Reset is a separate, explicit
// operation owned by the caller.
func (c *Context) Finalize(hostID, notes string) Record {
	var totalBuyin, totalCashout int64
	for _, p := range c.Players {
		totalBuyin += p.CashIn + p.CreditIn
		if p.Status == StatusOut {
			totalCashout += p.FinalPayout
		}
	}
	sum := c.Summarize()

	if len(c.House.ExpenseLog) > 0 {
		details := make([]string, 0, len(c.House.ExpenseLog))
		for _, e := range c.House.ExpenseLog {
			details = append(details, fmt.Sprintf("%s:$%d", e.Item, e.Amount))
		}
		notes = fmt.Sprintf("%s | Exp: %s", notes, strings.Join(details, "; "))
	}

	return Record{
		HostID:       hostID,
		CreatedAt:    time.Now(),
		Mode:         c.Config.Mode,
		TotalBuyin:   totalBuyin,
		TotalCashout: totalCashout,
		GrossIncome:  sum.GrossIncome,
		Expenses:     sum.TotalExpenses,
		NetProfit:    sum.NetProfit,
		MyShare:      sum.MyShare,
		PartnerShare: sum.PartnerShare,
		Notes:        notes,
	}
}

// Reset wipes the session back to a fresh context, keeping config and
// denominations.
func (c *Context) Reset() {
	c.Players = make(map[string]*Player)
	c.House = HouseLedger{}
	c.StartedAt = time.Now()
	c.bump()
}

// ImportPlayers materializes already-settled players from bulk rows,
// bypassing live play. The batch is validated in full before any row is
// applied; a single bad row rejects the whole import, since a partial
// import would leave the ledger inconsistent with no record of which
// rows landed.
func (c *Context) ImportPlayers(rows []ImportRow) error {
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		if row.Name == "" {
			return fmt.Errorf("%w: row %d missing name", ErrBadImportRow, i)
		}
		if seen[row.Name] {
			return fmt.Errorf("%w: row %d duplicate name %q", ErrBadImportRow, i, row.Name)
		}
		if _, exists := c.Players[row.Name]; exists {
			return fmt.Errorf("%w: row %d name %q already in session", ErrBadImportRow, i, row.Name)
		}
		if row.Buyin < 0 || row.FinalStack < 0 || row.Payout < 0 || row.FeePaid < 0 {
			return fmt.Errorf("%w: row %d negative amount", ErrBadImportRow, i)
		}
		seen[row.Name] = true
	}
	now := time.Now()
	for _, row := range rows {
		counts := make(map[chips.Color]int, len(chips.Colors))
		for _, col := range chips.Colors {
			counts[col] = 0
		}
		c.Players[row.Name] = &Player{
			Name:        row.Name,
			CashIn:      row.Buyin,
			ChipCounts:  counts,
			Status:      StatusOut,
			FinalStack:  row.FinalStack,
			FinalPayout: row.Payout,
			FinalFee:    row.FeePaid,
			JoinedAt:    now,
		}
	}
	c.logEvent(fmt.Sprintf("imported %d players", len(rows)), 0)
	c.bump()
	return nil
}
