package session

import (
	"time"

	"host-ledger/internal/chips"
)

type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusOut    Status = "out"
)

type GameMode string

const (
	ModeTimeCharge GameMode = "time_charge"
	ModeRakeShare  GameMode = "rake_share"
)

type FeeMethod string

const (
	FeeDeduct FeeMethod = "deduct"
	FeeCash   FeeMethod = "cash"
)

// Player is one seat's ledger for the session. FinalStack, FinalPayout
// and FinalFee are written exactly once, when the player cashes out.
type Player struct {
	Name        string              `json:"name"`
	CashIn      int64               `json:"cash_in"`
	CreditIn    int64               `json:"credit_in"`
	ChipCounts  map[chips.Color]int `json:"chip_counts"`
	Status      Status              `json:"status"`
	FinalStack  int64               `json:"final_stack"`
	FinalPayout int64               `json:"final_payout"`
	FinalFee    int64               `json:"final_fee"`
	JoinedAt    time.Time           `json:"joined_at"`
}

// LogEntry is one immutable row in a house cash-flow log.
type LogEntry struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
}

// ExpenseEntry is one row in the expense log.
type ExpenseEntry struct {
	Time   time.Time `json:"time"`
	Item   string    `json:"item"`
	Amount int64     `json:"amount"`
}

// HouseLedger holds the three house income/expense streams. Each
// accumulator changes only through Context mutators, which append a log
// entry alongside. IncomeInsurance may legitimately go negative.
type HouseLedger struct {
	IncomeRake       int64 `json:"income_rake"`
	IncomeInsurance  int64 `json:"income_insurance"`
	FeeCashCollected int64 `json:"fee_cash_collected"`

	RakeLog      []LogEntry     `json:"rake_log"`
	InsuranceLog []LogEntry     `json:"insurance_log"`
	ExpenseLog   []ExpenseEntry `json:"expense_log"`
	Events       []LogEntry     `json:"events"`
}

// Expenses is the running total of the expense log.
func (h *HouseLedger) Expenses() int64 {
	var total int64
	for _, e := range h.ExpenseLog {
		total += e.Amount
	}
	return total
}

// Config selects the fee/split rules for the session.
type Config struct {
	Mode         GameMode `json:"mode"`
	HostSharePct int      `json:"host_share_pct"`
	DefaultFee   int64    `json:"default_fee"`
}

// Record is the immutable per-session summary emitted on close. The
// durable store owns it once appended; the core never touches it again.
type Record struct {
	ID           string    `json:"id"`
	HostID       string    `json:"host_id"`
	CreatedAt    time.Time `json:"created_at"`
	Mode         GameMode  `json:"mode"`
	TotalBuyin   int64     `json:"total_buyin"`
	TotalCashout int64     `json:"total_cashout"`
	GrossIncome  int64     `json:"gross_income"`
	Expenses     int64     `json:"expenses"`
	NetProfit    int64     `json:"net_profit"`
	MyShare      int64     `json:"my_share"`
	PartnerShare int64     `json:"partner_share"`
	Notes        string    `json:"notes"`
}

// ImportRow is one bulk-import line: a cashed-out player recorded after
// the fact, bypassing live play.
type ImportRow struct {
	Name       string `json:"name"`
	Buyin      int64  `json:"buyin"`
	FinalStack int64  `json:"final_stack"`
	Payout     int64  `json:"payout"`
	FeePaid    int64  `json:"fee_paid"`
}
