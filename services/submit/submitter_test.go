package submit

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	syncsvc "smartstay/services/sync"
)

type fakeBackend struct {
	receipt *types.Receipt
	err     error
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return f.receipt, f.err
}

func (f *fakeBackend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return nil, nil
}

type fakeRefresher struct {
	calls [][]syncsvc.Collection
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context, cols ...syncsvc.Collection) error {
	f.calls = append(f.calls, cols)
	return f.err
}

func dummyTx() *types.Transaction {
	to := common.HexToAddress("0x1")
	return types.NewTx(&types.LegacyTx{Nonce: 1, To: &to, Gas: 21000, GasPrice: big.NewInt(1), Value: big.NewInt(0)})
}

func minedReceipt(status uint64) *types.Receipt {
	return &types.Receipt{Status: status, BlockNumber: big.NewInt(42), GasUsed: 21000}
}

func TestRunSucceedsAndRefreshes(t *testing.T) {
	refresher := &fakeRefresher{}
	s := NewSubmitter(&fakeBackend{receipt: minedReceipt(types.ReceiptStatusSuccessful)}, refresher, zap.NewNop())

	r := s.Run(context.Background(), "market.acceptOffer", nil,
		func() (*types.Transaction, error) { return dummyTx(), nil },
		syncsvc.Offers, syncsvc.Slots)

	if r.State != StateSucceeded {
		t.Fatalf("state = %s, want succeeded (err: %v)", r.State, r.Err)
	}
	if r.BlockNumber != 42 || r.TxHash == "" {
		t.Errorf("receipt not filled: %+v", r)
	}
	if len(refresher.calls) != 1 || len(refresher.calls[0]) != 2 {
		t.Fatalf("refresh calls = %+v", refresher.calls)
	}
}

func TestRunLocalValidationNeverSends(t *testing.T) {
	sent := false
	s := NewSubmitter(&fakeBackend{}, nil, zap.NewNop())

	r := s.Run(context.Background(), "market.createOffer",
		func() error { return Local("connect a wallet before submitting") },
		func() (*types.Transaction, error) { sent = true; return dummyTx(), nil })

	if sent {
		t.Fatal("send ran despite failed validation")
	}
	if r.State != StateFailed || r.Err == nil || r.Err.Code != CodeLocalValidation {
		t.Fatalf("receipt = %+v", r)
	}
}

func TestRunClassifiesDecline(t *testing.T) {
	s := NewSubmitter(&fakeBackend{}, nil, zap.NewNop())
	r := s.Run(context.Background(), "property.create", nil,
		func() (*types.Transaction, error) {
			return nil, fmt.Errorf("sign failed: %w", keystore.ErrLocked)
		})
	if r.State != StateFailed || r.Err.Code != CodeUserDeclined {
		t.Fatalf("receipt = %+v", r)
	}
}

func TestRunClassifiesRevertFromSend(t *testing.T) {
	s := NewSubmitter(&fakeBackend{}, nil, zap.NewNop())
	r := s.Run(context.Background(), "market.acceptOffer", nil,
		func() (*types.Transaction, error) {
			return nil, errors.New("execution reverted: offer already accepted")
		})
	if r.State != StateFailed || r.Err.Code != CodeContractReverted {
		t.Fatalf("receipt = %+v", r)
	}
	if r.Err.Message != "offer already accepted" {
		t.Errorf("revert reason lost: %q", r.Err.Message)
	}
}

func TestRunClassifiesRevertFromReceipt(t *testing.T) {
	refresher := &fakeRefresher{}
	s := NewSubmitter(&fakeBackend{receipt: minedReceipt(types.ReceiptStatusFailed)}, refresher, zap.NewNop())

	r := s.Run(context.Background(), "governance.vote", nil,
		func() (*types.Transaction, error) { return dummyTx(), nil },
		syncsvc.Proposals)

	if r.State != StateFailed || r.Err.Code != CodeContractReverted {
		t.Fatalf("receipt = %+v", r)
	}
	if len(refresher.calls) != 0 {
		t.Error("refresh ran after a failed transaction")
	}
}

func TestRunProviderFailureTerminates(t *testing.T) {
	// A backend that never produces a receipt; the wait must end with the
	// context instead of hanging.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s := NewSubmitter(&fakeBackend{err: errors.New("connection refused")}, nil, zap.NewNop())

	r := s.Run(ctx, "property.verify", nil,
		func() (*types.Transaction, error) { return dummyTx(), nil })

	if r.State != StateFailed || r.Err.Code != CodeProviderError {
		t.Fatalf("receipt = %+v", r)
	}
}

func TestReceiptLookup(t *testing.T) {
	s := NewSubmitter(&fakeBackend{receipt: minedReceipt(types.ReceiptStatusSuccessful)}, nil, zap.NewNop())
	r := s.Run(context.Background(), "property.create", nil,
		func() (*types.Transaction, error) { return dummyTx(), nil })

	got, ok := s.Receipt(r.ID)
	if !ok || got.State != StateSucceeded {
		t.Fatalf("Receipt(%s) = %+v, %v", r.ID, got, ok)
	}
	latest, ok := s.Latest()
	if !ok || latest.ID != r.ID {
		t.Fatalf("Latest() = %+v, %v", latest, ok)
	}
	if _, ok := s.Receipt("nope"); ok {
		t.Error("unknown id resolved")
	}
}

func TestReceiptHistoryBounded(t *testing.T) {
	s := NewSubmitter(&fakeBackend{receipt: minedReceipt(types.ReceiptStatusSuccessful)}, nil, zap.NewNop())

	first := s.Run(context.Background(), "property.verify", nil,
		func() (*types.Transaction, error) { return dummyTx(), nil })
	var last *Receipt
	for i := 0; i < maxReceipts+10; i++ {
		last = s.Run(context.Background(), "property.verify", nil,
			func() (*types.Transaction, error) { return dummyTx(), nil })
	}

	if _, ok := s.Receipt(first.ID); ok {
		t.Error("oldest terminal receipt survived past the history bound")
	}
	if _, ok := s.Receipt(last.ID); !ok {
		t.Error("latest receipt evicted")
	}
	if got, ok := s.Latest(); !ok || got.ID != last.ID {
		t.Errorf("Latest = %+v, %v", got, ok)
	}
	if n := len(s.receipts); n > maxReceipts {
		t.Errorf("history holds %d receipts, bound is %d", n, maxReceipts)
	}
}

func TestClassifyProviderFallback(t *testing.T) {
	err := errors.New("dial tcp: connection refused")
	if got := Classify(err); got.Code != CodeProviderError {
		t.Fatalf("Classify = %+v", got)
	}
}
