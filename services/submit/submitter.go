package submit

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	syncsvc "smartstay/services/sync"
)

// State is a submission's lifecycle stage. Every submission ends in
// Succeeded or Failed; there is no automatic retry.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateConfirming State = "confirming"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Receipt is the externally visible record of one submission.
type Receipt struct {
	ID          string    `json:"id"`
	Op          string    `json:"op"`
	State       State     `json:"state"`
	TxHash      string    `json:"txHash,omitempty"`
	BlockNumber uint64    `json:"blockNumber,omitempty"`
	GasUsed     uint64    `json:"gasUsed,omitempty"`
	Err         *Error    `json:"error,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt,omitempty"`
}

// Refresher re-syncs projections after a confirmed write.
type Refresher interface {
	Refresh(ctx context.Context, cols ...syncsvc.Collection) error
}

// maxReceipts bounds the receipt history; the oldest terminal receipts are
// evicted first.
const maxReceipts = 256

// Submitter runs write transactions to a terminal state and keeps their
// receipts for status queries. One instance serves all operations.
type Submitter struct {
	mu       gosync.RWMutex
	backend  bind.DeployBackend
	receipts map[string]*Receipt
	order    []string
	latest   string

	refresher Refresher
	logger    *zap.Logger
}

func NewSubmitter(backend bind.DeployBackend, refresher Refresher, logger *zap.Logger) *Submitter {
	return &Submitter{
		backend:   backend,
		receipts:  make(map[string]*Receipt),
		refresher: refresher,
		logger:    logger,
	}
}

// SetBackend swaps the confirmation backend after a chain or provider change.
func (s *Submitter) SetBackend(backend bind.DeployBackend) {
	s.mu.Lock()
	s.backend = backend
	s.mu.Unlock()
}

// Run executes one submission: validate runs first and never touches the
// network; send signs and broadcasts; then the transaction is awaited until
// mined. On success the named collections are re-synced. The returned receipt
// is always terminal.
func (s *Submitter) Run(ctx context.Context, op string, validate func() error, send func() (*types.Transaction, error), touched ...syncsvc.Collection) *Receipt {
	rcpt := &Receipt{
		ID:        uuid.NewString(),
		Op:        op,
		State:     StateValidating,
		StartedAt: time.Now().UTC(),
	}
	s.track(rcpt)

	if validate != nil {
		if err := validate(); err != nil {
			return s.fail(rcpt, asLocal(err))
		}
	}

	s.setState(rcpt, StateSubmitting)
	tx, err := send()
	if err != nil {
		return s.fail(rcpt, Classify(err))
	}
	s.update(rcpt, func(r *Receipt) {
		r.State = StateConfirming
		r.TxHash = tx.Hash().Hex()
	})

	s.mu.RLock()
	backend := s.backend
	s.mu.RUnlock()
	if backend == nil {
		return s.fail(rcpt, Provider(errors.New("no chain backend for confirmation")))
	}

	mined, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return s.fail(rcpt, Provider(err))
	}
	if mined.Status == types.ReceiptStatusFailed {
		return s.fail(rcpt, Reverted(""))
	}

	s.update(rcpt, func(r *Receipt) {
		r.State = StateSucceeded
		r.BlockNumber = mined.BlockNumber.Uint64()
		r.GasUsed = mined.GasUsed
		r.FinishedAt = time.Now().UTC()
	})
	s.logger.Info("transaction confirmed",
		zap.String("op", op),
		zap.String("tx", rcpt.TxHash),
		zap.Uint64("block", mined.BlockNumber.Uint64()))

	if s.refresher != nil && len(touched) > 0 {
		if err := s.refresher.Refresh(ctx, touched...); err != nil {
			s.logger.Warn("post-confirm refresh incomplete", zap.String("op", op), zap.Error(err))
		}
	}
	return s.snapshot(rcpt.ID)
}

// Receipt returns a copy of a tracked receipt.
func (s *Submitter) Receipt(id string) (*Receipt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.receipts[id]
	if !ok {
		return nil, false
	}
	out := *r
	return &out, true
}

// Latest returns the most recently started submission, if any.
func (s *Submitter) Latest() (*Receipt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == "" {
		return nil, false
	}
	r, ok := s.receipts[s.latest]
	if !ok {
		return nil, false
	}
	out := *r
	return &out, true
}

func (s *Submitter) track(r *Receipt) {
	s.mu.Lock()
	s.receipts[r.ID] = r
	s.order = append(s.order, r.ID)
	s.latest = r.ID
	for len(s.order) > maxReceipts {
		oldest := s.order[0]
		if rec := s.receipts[oldest]; rec != nil && rec.State != StateSucceeded && rec.State != StateFailed {
			// Still in flight; eviction resumes once it settles.
			break
		}
		s.order = s.order[1:]
		delete(s.receipts, oldest)
	}
	s.mu.Unlock()
}

func (s *Submitter) setState(r *Receipt, state State) {
	s.update(r, func(r *Receipt) { r.State = state })
}

func (s *Submitter) update(r *Receipt, fn func(*Receipt)) {
	s.mu.Lock()
	fn(r)
	s.mu.Unlock()
}

func (s *Submitter) fail(r *Receipt, serr *Error) *Receipt {
	s.update(r, func(r *Receipt) {
		r.State = StateFailed
		r.Err = serr
		r.FinishedAt = time.Now().UTC()
	})
	s.logger.Warn("transaction failed",
		zap.String("op", r.Op),
		zap.String("code", string(serr.Code)),
		zap.String("reason", serr.Message))
	return s.snapshot(r.ID)
}

func (s *Submitter) snapshot(id string) *Receipt {
	r, _ := s.Receipt(id)
	return r
}

func asLocal(err error) *Error {
	var serr *Error
	if errors.As(err, &serr) {
		return serr
	}
	return Local("%s", err.Error())
}
