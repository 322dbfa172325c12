package session

import (
	"fmt"
	"time"

	"host-ledger/internal/insurance"
)

// AddRake records a manual rake collection.
func (c *Context) AddRake(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	c.House.IncomeRake += amount
	c.House.RakeLog = append(c.House.RakeLog, LogEntry{
		Time:        time.Now(),
		Description: "Manual Rake",
		Amount:      amount,
	})
	c.logEvent("manual rake", amount)
	c.bump()
	return nil
}

// AddExpense appends one expense row. The expenses total is always
// derived from the log, never tracked separately.
func (c *Context) AddExpense(item string, amount int64) error {
	if item == "" {
		return fmt.Errorf("%w: empty item", ErrInvalidAmount)
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	c.House.ExpenseLog = append(c.House.ExpenseLog, ExpenseEntry{
		Time:   time.Now(),
		Item:   item,
		Amount: amount,
	})
	c.logEvent("expense: "+item, amount)
	c.bump()
	return nil
}

// RecordInsuranceWin books a won side bet: the house keeps the bet.
func (c *Context) RecordInsuranceWin(bet int64) error {
	if bet <= 0 {
		return ErrInvalidAmount
	}
	c.House.IncomeInsurance += bet
	c.House.InsuranceLog = append(c.House.InsuranceLog, LogEntry{
		Time:        time.Now(),
		Description: fmt.Sprintf("Win (bet %d)", bet),
		Amount:      bet,
	})
	c.logEvent("insurance win", bet)
	c.bump()
	return nil
}

// RecordInsuranceLoss books a lost side bet: the house pays bet times
// the odds for the given outs. The insurance accumulator may go
// negative as a result; that is expected, not an error.
func (c *Context) RecordInsuranceLoss(bet int64, outs int) (int64, error) {
	if bet <= 0 {
		return 0, ErrInvalidAmount
	}
	payout := insurance.Payout(bet, outs)
	c.House.IncomeInsurance -= payout
	c.House.InsuranceLog = append(c.House.InsuranceLog, LogEntry{
		Time:        time.Now(),
		Description: fmt.Sprintf("Loss (bet %d, outs %d)", bet, outs),
		Amount:      -payout,
	})
	c.logEvent("insurance loss", -payout)
	c.bump()
	return payout, nil
}

// AddInsuranceManual is the untabled correction path: an operator-keyed
// adjustment to the insurance accumulator. Any sign is allowed.
func (c *Context) AddInsuranceManual(amount int64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	c.House.IncomeInsurance += amount
	c.House.InsuranceLog = append(c.House.InsuranceLog, LogEntry{
		Time:        time.Now(),
		Description: "Manual",
		Amount:      amount,
	})
	c.logEvent("insurance manual", amount)
	c.bump()
	return nil
}
