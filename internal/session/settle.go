package session

import (
	"fmt"
	"time"

	"host-ledger/internal/chips"
)

// Projection is what a cash-out would pay right now. It is recomputed
// from live state on every call and carries no side effects, so it can
// back a live preview before the operator commits.
type Projection struct {
	StackValue    int64 `json:"stack_value"`
	PayoutStack   int64 `json:"payout_stack"`
	DebtCleared   int64 `json:"debt_cleared"`
	CashPayout    int64 `json:"cash_payout"`
	RemainingDebt int64 `json:"remaining_debt"`
	Fee           int64 `json:"fee"`
}

func project(stack, creditIn, fee int64, mode GameMode, method FeeMethod) Projection {
	payoutStack := stack
	if mode == ModeTimeCharge && method == FeeDeduct {
		payoutStack = stack - fee
		if payoutStack < 0 {
			payoutStack = 0
		}
	}
	debtCleared := min64(payoutStack, creditIn)
	return Projection{
		StackValue:    stack,
		PayoutStack:   payoutStack,
		DebtCleared:   debtCleared,
		CashPayout:    payoutStack - debtCleared,
		RemainingDebt: creditIn - debtCleared,
		Fee:           fee,
	}
}

// ProjectCashout previews the settlement for an active player at the
// current chip counts and denominations.
func (c *Context) ProjectCashout(name string, fee int64, method FeeMethod) (Projection, error) {
	p, err := c.player(name)
	if err != nil {
		return Projection{}, err
	}
	if p.Status != StatusActive {
		return Projection{}, ErrInvalidStatus
	}
	if fee < 0 {
		return Projection{}, ErrInvalidAmount
	}
	stack := chips.StackValue(p.ChipCounts, c.Denoms)
	return project(stack, p.CreditIn, fee, c.Config.Mode, method), nil
}

// CommitCashout settles an active player and moves them to out. The
// projection is recomputed from current inputs here rather than trusting
// a value computed for display, since chip counts can change between
// preview and commit. The transition is terminal.
func (c *Context) CommitCashout(name string, fee int64, method FeeMethod) (Projection, error) {
	p, err := c.player(name)
	if err != nil {
		return Projection{}, err
	}
	if p.Status != StatusActive {
		return Projection{}, ErrInvalidStatus
	}
	if fee < 0 {
		return Projection{}, ErrInvalidAmount
	}
	if c.Config.Mode != ModeTimeCharge {
		// Fees only exist under time charge; rake games collect per pot.
		fee = 0
	}

	stack := chips.StackValue(p.ChipCounts, c.Denoms)
	proj := project(stack, p.CreditIn, fee, c.Config.Mode, method)

	if c.Config.Mode == ModeTimeCharge && fee > 0 {
		c.House.IncomeRake += fee
		desc := fmt.Sprintf("%s Fee", name)
		if method == FeeCash {
			// Fee paid in physical cash: it never passes through the
			// player's stack, so it is tracked apart from chip custody.
			c.House.FeeCashCollected += fee
			desc = fmt.Sprintf("%s Fee (Cash)", name)
		}
		c.House.RakeLog = append(c.House.RakeLog, LogEntry{
			Time:        time.Now(),
			Description: desc,
			Amount:      fee,
		})
	}

	p.FinalStack = stack
	p.FinalPayout = proj.CashPayout
	p.FinalFee = fee
	p.Status = StatusOut
	c.logEvent(name+" cashed out", proj.CashPayout)
	c.bump()
	return proj, nil
}
