// Package wallet owns the connection to the signing wallet: the current
// account, its signing handle, and the push-driven account/chain change
// events the rest of the gateway reacts to.
package wallet

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"
)

// EventKind identifies a session change notification.
type EventKind int

const (
	// AccountsChanged fires when the connected account or signer changed,
	// including the transition to "no account".
	AccountsChanged EventKind = iota
	// ChainChanged fires when the node no longer reports the configured
	// chain. Consumers rebuild everything; no partial reconciliation is
	// attempted because contract addresses are chain-specific.
	ChainChanged
)

// Event is a session change notification.
type Event struct {
	Kind EventKind
}

// Session is the wallet session state. It is replaced wholesale on change,
// never mutated in place. Signer is present exactly when Account is present.
type Session struct {
	Provider     *ethclient.Client
	Signer       *bind.TransactOpts
	Account      string // lower-cased hex, empty when absent
	Err          string
	IsConnecting bool
}

// Connected reports whether an account is attached to the session.
func (s Session) Connected() bool { return s.Account != "" }

// Manager owns the Session and the keystore behind it.
type Manager struct {
	mu      sync.RWMutex
	client  *ethclient.Client
	ks      *keystore.KeyStore
	chainID *big.Int
	logger  *zap.Logger

	session Session
	subs    []chan Event
	ksSub   event.Subscription
}

// NewManager creates a session manager over the given node client and
// keystore and starts watching keystore wallet events.
func NewManager(client *ethclient.Client, ks *keystore.KeyStore, chainID *big.Int, logger *zap.Logger) *Manager {
	m := &Manager{
		client:  client,
		ks:      ks,
		chainID: chainID,
		logger:  logger,
		session: Session{Provider: client},
	}
	sink := make(chan accounts.WalletEvent, 16)
	m.ksSub = ks.Subscribe(sink)
	go m.watchWallets(sink)
	return m
}

// Session returns the current session snapshot.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Subscribe returns a channel receiving session change events. Slow consumers
// drop events rather than blocking the manager. Callers that outlive their
// interest must Unsubscribe to release the channel.
func (m *Manager) Subscribe() <-chan Event {
	ch := make(chan Event, 8)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel previously returned by Subscribe.
func (m *Manager) Unsubscribe(ch <-chan Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subs {
		if sub == ch {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// notify sends under the read lock so a concurrent Unsubscribe cannot close a
// channel mid-send. Sends never block; the channels are buffered.
func (m *Manager) notify(kind EventKind) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.subs {
		select {
		case ch <- Event{Kind: kind}:
		default:
		}
	}
}

// Connect unlocks the requested keystore account (or the first one when the
// request names none) and attaches a signing handle to the session. On
// failure the previous session state is left unchanged apart from the error.
func (m *Manager) Connect(account, passphrase string) error {
	m.mu.Lock()
	m.session.IsConnecting = true
	m.session.Err = ""
	m.mu.Unlock()

	err := m.connect(account, passphrase)
	if err != nil {
		m.mu.Lock()
		m.session.IsConnecting = false
		m.session.Err = err.Error()
		m.mu.Unlock()
		return err
	}
	m.notify(AccountsChanged)
	return nil
}

func (m *Manager) connect(account, passphrase string) error {
	accts := m.ks.Accounts()
	if len(accts) == 0 {
		return fmt.Errorf("no wallet accounts available, add a key to the keystore first")
	}

	acct := accts[0]
	if account != "" {
		found := false
		for _, a := range accts {
			if strings.EqualFold(a.Address.Hex(), account) {
				acct, found = a, true
				break
			}
		}
		if !found {
			return fmt.Errorf("account %s not present in keystore", account)
		}
	}

	if err := m.ks.Unlock(acct, passphrase); err != nil {
		return fmt.Errorf("wallet declined to unlock: %w", err)
	}
	signer, err := bind.NewKeyStoreTransactorWithChainID(m.ks, acct, m.chainID)
	if err != nil {
		return fmt.Errorf("failed to build signing handle: %w", err)
	}

	m.mu.Lock()
	m.session = Session{
		Provider: m.client,
		Signer:   signer,
		Account:  strings.ToLower(acct.Address.Hex()),
	}
	m.mu.Unlock()
	return nil
}

// Disconnect clears the local session. The keystore account is re-locked but
// the key material stays on disk; this is a client-local forget only.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	if m.session.Account != "" {
		for _, a := range m.ks.Accounts() {
			if strings.EqualFold(a.Address.Hex(), m.session.Account) {
				if err := m.ks.Lock(a.Address); err != nil {
					m.logger.Warn("failed to re-lock account", zap.Error(err))
				}
			}
		}
	}
	m.session = Session{Provider: m.client}
	m.mu.Unlock()
	m.notify(AccountsChanged)
}

// watchWallets reacts to keystore wallet arrival/drop events. Losing the
// connected account behaves like the wallet reporting an empty account list.
func (m *Manager) watchWallets(sink chan accounts.WalletEvent) {
	for {
		select {
		case ev, ok := <-sink:
			if !ok {
				return
			}
			if ev.Kind == accounts.WalletDropped {
				m.handleAccountsChanged(m.ks.Accounts())
			}
		case err, ok := <-m.ksSub.Err():
			if ok && err != nil {
				m.logger.Warn("keystore subscription error", zap.Error(err))
			}
			return
		}
	}
}

// handleAccountsChanged applies a new account list. When the connected
// account is gone (or the list is empty) both account and signer are cleared;
// write-capable bindings become absent on the next rebuild.
func (m *Manager) handleAccountsChanged(accts []accounts.Account) {
	m.mu.Lock()
	current := m.session.Account
	if current == "" {
		m.mu.Unlock()
		return
	}
	for _, a := range accts {
		if strings.EqualFold(a.Address.Hex(), current) {
			m.mu.Unlock()
			return
		}
	}
	m.session = Session{Provider: m.client}
	m.mu.Unlock()
	m.notify(AccountsChanged)
}

// WatchChain polls the node's chain id and emits ChainChanged on mismatch.
// The consumer performs a full rebuild, mirroring a page reload.
func (m *Manager) WatchChain(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.client == nil {
				continue
			}
			id, err := m.client.ChainID(ctx)
			if err != nil {
				m.logger.Warn("chain id check failed", zap.Error(err))
				continue
			}
			if id.Cmp(m.chainID) != 0 {
				m.logger.Warn("chain changed, forcing full rebuild",
					zap.String("expected", m.chainID.String()),
					zap.String("got", id.String()))
				m.notify(ChainChanged)
			}
		}
	}
}

// Close tears down the keystore subscription.
func (m *Manager) Close() {
	m.ksSub.Unsubscribe()
}
