package property

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"smartstay/chain/contracts"
	"smartstay/chain/wallet"
	"smartstay/models"
	"smartstay/services/submit"
	syncsvc "smartstay/services/sync"
)

func newDisconnectedService(t *testing.T) *DefaultService {
	t.Helper()
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	wm := wallet.NewManager(nil, ks, big.NewInt(31337), zap.NewNop())
	t.Cleanup(wm.Close)
	provider := contracts.NewProvider(contracts.Addresses{}, zap.NewNop())
	sub := submit.NewSubmitter(nil, nil, zap.NewNop())
	return NewService(provider, wm, sub, syncsvc.NewStore(), common.Address{})
}

// Writes from a disconnected session must fail locally, before any signing or
// network activity.
func TestWritesRequireConnectedSession(t *testing.T) {
	svc := newDisconnectedService(t)
	ctx := context.Background()

	receipts := map[string]*submit.Receipt{
		"create": svc.Create(ctx, models.CreatePropertyRequest{
			Name: "Seaside Villa", Location: "Naxos", PricePerWeek: "2.5",
		}),
		"verify":   svc.Verify(ctx, 1),
		"mintWeek": svc.MintWeek(ctx, 1, models.MintWeekRequest{Year: 2026, Week: 12}),
	}
	for op, r := range receipts {
		if r.State != submit.StateFailed {
			t.Fatalf("%s: state = %s, want failed", op, r.State)
		}
		if r.Err == nil || r.Err.Code != submit.CodeLocalValidation {
			t.Fatalf("%s: err = %+v, want %s", op, r.Err, submit.CodeLocalValidation)
		}
		if !strings.Contains(r.Err.Message, "connect a wallet") {
			t.Errorf("%s: message %q lacks the connect-wallet hint", op, r.Err.Message)
		}
		if r.TxHash != "" {
			t.Errorf("%s: local rejection produced transaction %s", op, r.TxHash)
		}
	}
}
