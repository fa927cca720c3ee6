package contracts

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Addresses holds the deployed contract addresses for one network. A zero
// entry leaves the matching binding absent without failing the others.
type Addresses struct {
	Registry   common.Address
	Vault      common.Address
	Market     common.Address
	Governance common.Address
}

// Bindings is one immutable generation of contract handles. A nil handle
// means that contract was unavailable when the generation was built. Write
// capability exists only when the generation was built with a signer.
type Bindings struct {
	Registry   *Registry
	Vault      *Vault
	Market     *Market
	Governance *Governance

	signer *bind.TransactOpts
}

// CanWrite reports whether this generation carries signing capability.
func (b *Bindings) CanWrite() bool { return b != nil && b.signer != nil }

// Signer returns a per-call copy of the transact opts bound to ctx, or nil
// when the generation is read-only. Callers must not retain it across calls.
func (b *Bindings) Signer(ctx context.Context) *bind.TransactOpts {
	if b == nil || b.signer == nil {
		return nil
	}
	opts := *b.signer
	opts.Context = ctx
	return &opts
}

// PayableSigner is Signer with the given wei value attached.
func (b *Bindings) PayableSigner(ctx context.Context, value *big.Int) *bind.TransactOpts {
	opts := b.Signer(ctx)
	if opts != nil {
		opts.Value = value
	}
	return opts
}

// Provider owns the current bindings generation and rebuilds it whenever the
// chain backend or the signing session changes.
type Provider struct {
	addrs  Addresses
	logger *zap.Logger

	mu      sync.RWMutex
	current *Bindings
}

func NewProvider(addrs Addresses, logger *zap.Logger) *Provider {
	return &Provider{addrs: addrs, logger: logger, current: &Bindings{}}
}

// Rebuild replaces the current generation. A nil backend yields an empty
// generation; a failed individual binding is logged and left nil while the
// rest are still built. The new generation is returned for immediate use.
func (p *Provider) Rebuild(backend bind.ContractBackend, signer *bind.TransactOpts) *Bindings {
	next := &Bindings{signer: signer}
	if backend != nil {
		var err error
		if next.Registry, err = NewRegistry(p.addrs.Registry, backend); err != nil {
			p.logger.Warn("registry binding unavailable", zap.Error(err))
			next.Registry = nil
		}
		if next.Vault, err = NewVault(p.addrs.Vault, backend); err != nil {
			p.logger.Warn("vault binding unavailable", zap.Error(err))
			next.Vault = nil
		}
		if next.Market, err = NewMarket(p.addrs.Market, backend); err != nil {
			p.logger.Warn("market binding unavailable", zap.Error(err))
			next.Market = nil
		}
		if next.Governance, err = NewGovernance(p.addrs.Governance, backend); err != nil {
			p.logger.Warn("governance binding unavailable", zap.Error(err))
			next.Governance = nil
		}
	}

	p.mu.Lock()
	p.current = next
	p.mu.Unlock()
	return next
}

// Current returns the latest bindings generation. Never nil.
func (p *Provider) Current() *Bindings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}
