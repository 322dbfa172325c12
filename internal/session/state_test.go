package session

import (
	"testing"

	"host-ledger/internal/chips"
)

func TestStateRoundTrip(t *testing.T) {
	c := newTestContext()
	if err := c.AddPlayer("Alice", 1000, 200); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.SetChipCounts("Alice", map[chips.Color]int{chips.White: 40, chips.Purple: 1}); err != nil {
		t.Fatalf("chips: %v", err)
	}
	if err := c.AddRake(100); err != nil {
		t.Fatalf("rake: %v", err)
	}
	if _, err := c.RecordInsuranceLoss(100, 4); err != nil {
		t.Fatalf("insurance: %v", err)
	}
	if err := c.AddExpense("food", 60); err != nil {
		t.Fatalf("expense: %v", err)
	}

	blob, err := c.MarshalState()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := New(Config{Mode: ModeRakeShare}, nil)
	if err := restored.RestoreState(blob); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.Version != c.Version {
		t.Fatalf("version lost: %d != %d", restored.Version, c.Version)
	}
	if restored.Config != c.Config {
		t.Fatalf("config lost: %+v", restored.Config)
	}
	if restored.House.IncomeRake != 100 || restored.House.IncomeInsurance != -800 {
		t.Fatalf("house accumulators lost: %+v", restored.House)
	}
	if len(restored.House.ExpenseLog) != 1 || restored.House.Expenses() != 60 {
		t.Fatalf("expense log lost: %+v", restored.House.ExpenseLog)
	}
	p := restored.Players["Alice"]
	if p == nil || p.CashIn != 1000 || p.CreditIn != 200 || p.ChipCounts[chips.White] != 40 {
		t.Fatalf("player state lost: %+v", p)
	}
	if restored.Audit() != c.Audit() {
		t.Fatal("restored audit differs from original")
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	c := newTestContext()
	if err := c.RestoreState([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed blob")
	}
}
