package operator

import (
	"context"

	"host-ledger/internal/session"
)

// RecordSink is the durable, append-only home for finalized session
// records. Appends are at-least-once; duplicates are an analytics
// problem, not ours.
type RecordSink interface {
	AppendSessionRecord(ctx context.Context, rec session.Record) (string, error)
	ListSessionRecords(ctx context.Context, hostID string) ([]session.Record, error)
}

// SnapshotSink stores one opaque crash-recovery blob per operator,
// rejecting writes whose version is not newer than the stored one.
type SnapshotSink interface {
	Save(ctx context.Context, hostID string, blob []byte, version uint64) error
	Load(ctx context.Context, hostID string) ([]byte, uint64, bool, error)
	Delete(ctx context.Context, hostID string) error
}

// PlayerView is a player plus the live stack value at current
// denominations.
type PlayerView struct {
	session.Player
	Stack int64 `json:"stack"`
}

// CloseResult reports a session close. Warning is set when the record
// could not be persisted; the in-memory ledger is untouched either way
// and the operator can retry.
type CloseResult struct {
	Record   session.Record `json:"record"`
	RecordID string         `json:"record_id,omitempty"`
	Warning  string         `json:"warning,omitempty"`
}
