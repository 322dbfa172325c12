package store_test

import (
	"context"
	"testing"
	"time"

	"host-ledger/internal/session"
	"host-ledger/internal/testutil"
)

func TestAppendAndListSessionRecords(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := session.Record{
		HostID:       "host-a",
		CreatedAt:    time.Now().Add(-time.Hour),
		Mode:         session.ModeTimeCharge,
		TotalBuyin:   5000,
		TotalCashout: 4200,
		GrossIncome:  680,
		Expenses:     100,
		NetProfit:    580,
		MyShare:      580,
		Notes:        "friday",
	}
	id1, err := st.AppendSessionRecord(ctx, first)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id1 == "" {
		t.Fatal("expected assigned id")
	}

	second := first
	second.CreatedAt = time.Now()
	second.Mode = session.ModeRakeShare
	second.MyShare = 348
	second.PartnerShare = 232
	if _, err := st.AppendSessionRecord(ctx, second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	// another host's record must not leak into host-a's history
	other := first
	other.HostID = "host-b"
	if _, err := st.AppendSessionRecord(ctx, other); err != nil {
		t.Fatalf("append other host: %v", err)
	}

	records, err := st.ListSessionRecords(ctx, "host-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for host-a, got %d", len(records))
	}
	if records[0].Mode != session.ModeRakeShare {
		t.Fatalf("expected newest first, got %+v", records[0])
	}
	if records[1].ID != id1 || records[1].GrossIncome != 680 || records[1].Notes != "friday" {
		t.Fatalf("round trip wrong: %+v", records[1])
	}
}

func TestListSessionRecordsEmpty(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()

	records, err := st.ListSessionRecords(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
