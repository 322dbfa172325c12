package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"host-ledger/internal/chips"
	"host-ledger/internal/session"
)

var (
	ErrNoSnapshotSink = errors.New("no_snapshot_sink")
	ErrNoSnapshot     = errors.New("no_snapshot")
)

// Service is the single designated writer for one operator's live
// session. The mutex serializes HTTP-driven mutations so the core can
// stay a plain single-writer state machine; every successful mutation
// is followed by a best-effort snapshot save that never fails the
// operation it was attached to.
type Service struct {
	hostID    string
	records   RecordSink
	snapshots SnapshotSink

	mu   sync.Mutex
	sess *session.Context
}

// NewService wires the core session context to its persistence
// collaborators. Either sink may be nil for memory-only operation.
func NewService(hostID string, sess *session.Context, records RecordSink, snapshots SnapshotSink) *Service {
	return &Service{hostID: hostID, records: records, snapshots: snapshots, sess: sess}
}

// autosave pushes the current state to the snapshot sink. Failures are
// logged and swallowed: the in-memory ledger is the source of truth and
// a failed save must not roll back or abort the mutation it follows.
func (s *Service) autosave(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	blob, err := s.sess.MarshalState()
	if err != nil {
		log.Warn().Err(err).Msg("snapshot marshal failed")
		return
	}
	if err := s.snapshots.Save(ctx, s.hostID, blob, s.sess.Version); err != nil {
		log.Warn().Err(err).Uint64("version", s.sess.Version).Msg("snapshot save failed")
	}
}

func (s *Service) AddPlayer(ctx context.Context, name string, cashIn, creditIn int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.AddPlayer(name, cashIn, creditIn); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) Rebuy(ctx context.Context, name string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Rebuy(name, amount); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) RepayDebt(ctx context.Context, name string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	repaid, err := s.sess.RepayDebt(name, amount)
	if err != nil {
		return 0, err
	}
	s.autosave(ctx)
	return repaid, nil
}

func (s *Service) SitOut(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.SitOut(name); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) ReturnToTable(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.ReturnToTable(name); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) SetChipCounts(ctx context.Context, name string, counts map[chips.Color]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.SetChipCounts(name, counts); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) PreviewCashout(name string, fee int64, method session.FeeMethod) (session.Projection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.ProjectCashout(name, fee, method)
}

func (s *Service) CommitCashout(ctx context.Context, name string, fee int64, method session.FeeMethod) (session.Projection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	proj, err := s.sess.CommitCashout(name, fee, method)
	if err != nil {
		return session.Projection{}, err
	}
	s.autosave(ctx)
	return proj, nil
}

func (s *Service) AddRake(ctx context.Context, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.AddRake(amount); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) AddExpense(ctx context.Context, item string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.AddExpense(item, amount); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) InsuranceWin(ctx context.Context, bet int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.RecordInsuranceWin(bet); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) InsuranceLoss(ctx context.Context, bet int64, outs int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payout, err := s.sess.RecordInsuranceLoss(bet, outs)
	if err != nil {
		return 0, err
	}
	s.autosave(ctx)
	return payout, nil
}

func (s *Service) InsuranceManual(ctx context.Context, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.AddInsuranceManual(amount); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) SetConfig(ctx context.Context, cfg session.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.SetConfig(cfg); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) SetDenominations(ctx context.Context, d chips.Denominations) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.SetDenominations(d); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) Import(ctx context.Context, rows []session.ImportRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.ImportPlayers(rows); err != nil {
		return err
	}
	s.autosave(ctx)
	return nil
}

func (s *Service) Players() []PlayerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := s.sess.ListPlayers()
	out := make([]PlayerView, 0, len(players))
	for _, p := range players {
		stack := chips.StackValue(p.ChipCounts, s.sess.Denoms)
		out = append(out, PlayerView{Player: *p, Stack: stack})
	}
	return out
}

func (s *Service) Audit() session.AuditReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Audit()
}

func (s *Service) Summary() session.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Summarize()
}

func (s *Service) Config() session.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Config
}

// CloseSession finalizes the ledgers into one immutable record and
// appends it to the record sink. Persistence failure is reported as a
// warning, never as an error: the record stays available in memory and
// the close can be retried. State is not cleared here; Reset is its
// own operation.
func (s *Service) CloseSession(ctx context.Context, notes string) (CloseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.sess.Finalize(s.hostID, notes)
	res := CloseResult{Record: rec}
	if s.records == nil {
		res.Warning = "no record sink configured; session not persisted"
		return res, nil
	}
	id, err := s.records.AppendSessionRecord(ctx, rec)
	if err != nil {
		log.Warn().Err(err).Msg("session record append failed")
		res.Warning = "record persistence failed: " + err.Error()
		return res, nil
	}
	res.RecordID = id
	return res, nil
}

func (s *Service) ResetSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Reset()
	if s.snapshots != nil {
		if err := s.snapshots.Delete(ctx, s.hostID); err != nil {
			log.Warn().Err(err).Msg("snapshot delete failed")
		}
	}
}

func (s *Service) Records(ctx context.Context) ([]session.Record, error) {
	if s.records == nil {
		return nil, nil
	}
	return s.records.ListSessionRecords(ctx, s.hostID)
}

// SaveSnapshot is the explicit save path; unlike autosave its failure
// is returned so the transport can surface a visible warning.
func (s *Service) SaveSnapshot(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshots == nil {
		return 0, ErrNoSnapshotSink
	}
	blob, err := s.sess.MarshalState()
	if err != nil {
		return 0, err
	}
	if err := s.snapshots.Save(ctx, s.hostID, blob, s.sess.Version); err != nil {
		return 0, err
	}
	return s.sess.Version, nil
}

// RestoreSnapshot replaces live state with the stored blob.
func (s *Service) RestoreSnapshot(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshots == nil {
		return 0, ErrNoSnapshotSink
	}
	blob, version, ok, err := s.snapshots.Load(ctx, s.hostID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNoSnapshot
	}
	if err := s.sess.RestoreState(blob); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *Service) DeleteSnapshot(ctx context.Context) error {
	if s.snapshots == nil {
		return ErrNoSnapshotSink
	}
	return s.snapshots.Delete(ctx, s.hostID)
}
