package store

import (
	"context"

	"host-ledger/internal/session"
)

// AppendSessionRecord writes one finalized record. Records are
// write-once; duplicate appends from a retry are tolerated and left to
// analytics to dedupe. The assigned ID is returned.
func (s *Store) AppendSessionRecord(ctx context.Context, rec session.Record) (string, error) {
	id := rec.ID
	if id == "" {
		id = NewID()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO session_records
			(id, host_id, created_at, mode, total_buyin, total_cashout,
			 gross_income, expenses, net_profit, my_share, partner_share, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		id, rec.HostID, rec.CreatedAt, string(rec.Mode), rec.TotalBuyin, rec.TotalCashout,
		rec.GrossIncome, rec.Expenses, rec.NetProfit, rec.MyShare, rec.PartnerShare, rec.Notes)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListSessionRecords returns the given host's records, newest first.
func (s *Store) ListSessionRecords(ctx context.Context, hostID string) ([]session.Record, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, host_id, created_at, mode, total_buyin, total_cashout,
		       gross_income, expenses, net_profit, my_share, partner_share, notes
		FROM session_records
		WHERE host_id = $1
		ORDER BY created_at DESC, id DESC`, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []session.Record
	for rows.Next() {
		var rec session.Record
		var mode string
		if err := rows.Scan(&rec.ID, &rec.HostID, &rec.CreatedAt, &mode,
			&rec.TotalBuyin, &rec.TotalCashout, &rec.GrossIncome, &rec.Expenses,
			&rec.NetProfit, &rec.MyShare, &rec.PartnerShare, &rec.Notes); err != nil {
			return nil, err
		}
		rec.Mode = session.GameMode(mode)
		out = append(out, rec)
	}
	return out, rows.Err()
}
