package session

import (
	"fmt"
	"sort"
	"time"

	"host-ledger/internal/chips"
)

// Context is the full mutable state of one live session. It is owned by
// a single operator goroutine; mutators are plain synchronous value
// transforms and never leave state partially applied. Version increases
// on every mutation and orders snapshot writes.
type Context struct {
	Config    Config              `json:"config"`
	Denoms    chips.Denominations `json:"denominations"`
	Players   map[string]*Player  `json:"players"`
	House     HouseLedger         `json:"house"`
	Version   uint64              `json:"version"`
	StartedAt time.Time           `json:"started_at"`
}

func New(cfg Config, denoms chips.Denominations) *Context {
	if denoms == nil {
		denoms = chips.Default()
	}
	if cfg.DefaultFee == 0 {
		cfg.DefaultFee = 170
	}
	return &Context{
		Config:    cfg,
		Denoms:    denoms,
		Players:   make(map[string]*Player),
		StartedAt: time.Now(),
	}
}

func (c *Context) bump() {
	c.Version++
}

func (c *Context) logEvent(description string, amount int64) {
	c.House.Events = append(c.House.Events, LogEntry{
		Time:        time.Now(),
		Description: description,
		Amount:      amount,
	})
}

// SetDenominations replaces the per-color chip values. Finalized
// players keep the stacks snapshotted at their cash-out.
func (c *Context) SetDenominations(d chips.Denominations) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.Denoms = d
	c.bump()
	return nil
}

func (c *Context) SetConfig(cfg Config) error {
	switch cfg.Mode {
	case ModeTimeCharge, ModeRakeShare:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalidAmount, cfg.Mode)
	}
	if cfg.HostSharePct < 0 || cfg.HostSharePct > 100 {
		return fmt.Errorf("%w: host share %d", ErrInvalidAmount, cfg.HostSharePct)
	}
	if cfg.DefaultFee < 0 {
		return fmt.Errorf("%w: default fee %d", ErrInvalidAmount, cfg.DefaultFee)
	}
	c.Config = cfg
	c.bump()
	return nil
}

func (c *Context) player(name string) (*Player, error) {
	p, ok := c.Players[name]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

func (c *Context) AddPlayer(name string, cashIn, creditIn int64) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAmount)
	}
	if cashIn < 0 || creditIn < 0 {
		return ErrInvalidAmount
	}
	if _, exists := c.Players[name]; exists {
		return ErrDuplicateName
	}
	counts := make(map[chips.Color]int, len(chips.Colors))
	for _, col := range chips.Colors {
		counts[col] = 0
	}
	c.Players[name] = &Player{
		Name:       name,
		CashIn:     cashIn,
		CreditIn:   creditIn,
		ChipCounts: counts,
		Status:     StatusActive,
		JoinedAt:   time.Now(),
	}
	c.logEvent(name+" joined", cashIn+creditIn)
	c.bump()
	return nil
}

func (c *Context) Rebuy(name string, amount int64) error {
	p, err := c.player(name)
	if err != nil {
		return err
	}
	if p.Status != StatusActive {
		return ErrInvalidStatus
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	p.CashIn += amount
	c.logEvent(name+" rebuy (Cash)", amount)
	c.bump()
	return nil
}

// RepayDebt moves up to amount from a player's credit to cash. The
// transfer is clamped to the outstanding debt so CreditIn never goes
// negative; total contribution is unchanged.
func (c *Context) RepayDebt(name string, amount int64) (int64, error) {
	p, err := c.player(name)
	if err != nil {
		return 0, err
	}
	if p.Status != StatusActive {
		return 0, ErrInvalidStatus
	}
	if p.CreditIn <= 0 {
		return 0, ErrNoDebt
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	repaid := min64(amount, p.CreditIn)
	p.CreditIn -= repaid
	p.CashIn += repaid
	c.logEvent(name+" repaid debt", repaid)
	c.bump()
	return repaid, nil
}

func (c *Context) SitOut(name string) error {
	p, err := c.player(name)
	if err != nil {
		return err
	}
	if p.Status != StatusActive {
		return ErrInvalidStatus
	}
	p.Status = StatusPaused
	c.bump()
	return nil
}

func (c *Context) ReturnToTable(name string) error {
	p, err := c.player(name)
	if err != nil {
		return err
	}
	if p.Status != StatusPaused {
		return ErrInvalidStatus
	}
	p.Status = StatusActive
	c.bump()
	return nil
}

// SetChipCounts replaces a player's chip counts wholesale.
func (c *Context) SetChipCounts(name string, counts map[chips.Color]int) error {
	p, err := c.player(name)
	if err != nil {
		return err
	}
	if p.Status != StatusActive {
		return ErrInvalidStatus
	}
	next := make(map[chips.Color]int, len(chips.Colors))
	for _, col := range chips.Colors {
		n := counts[col]
		if n < 0 {
			return ErrNegativeChips
		}
		next[col] = n
	}
	p.ChipCounts = next
	c.bump()
	return nil
}

// StackValue is the live chip value for a player at current
// denominations.
func (c *Context) StackValue(name string) (int64, error) {
	p, err := c.player(name)
	if err != nil {
		return 0, err
	}
	return chips.StackValue(p.ChipCounts, c.Denoms), nil
}

// ListPlayers returns players in join order, name as tiebreak.
func (c *Context) ListPlayers() []*Player {
	out := make([]*Player, 0, len(c.Players))
	for _, p := range c.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
