package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const defaultResolveTimeout = 30 * time.Second

type ResolverCfg struct {
	Registry  farm.FarmRegistry
	Directory farm.AccountDirectory
	// Timeout bounds one fetch, defaults to 30s
	Timeout time.Duration
}

type resolver struct {
	registry  farm.FarmRegistry
	directory farm.AccountDirectory
	timeout   time.Duration
	group     singleflight.Group

	// mutex protected members
	mu          sync.RWMutex
	current     string
	inflight    int
	seq         uint64
	snapshotSeq uint64
	snapshot    *farm.Snapshot
}

// resolution is the result of one fetch, seq orders fetches by start time
type resolution struct {
	seq  uint64
	snap *farm.Snapshot
}

func NewResolver(cfg *ResolverCfg) farm.Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	return &resolver{
		registry:  cfg.Registry,
		directory: cfg.Directory,
		timeout:   timeout,
	}
}

func (r *resolver) Snapshot() *farm.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

func (r *resolver) IsLoading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inflight > 0
}

// Resolve fetches the farm and the wallet's account in it, joining a fetch of the
// same key already in flight. On failure the previous snapshot is kept; a result
// for a key that is no longer current is dropped.
func (r *resolver) Resolve(ctx bCtx.Ctx, key farm.Key) (*farm.Snapshot, error) {
	return r.resolve(ctx, key, false)
}

// Refetch is Resolve without joining a fetch that started before the call
func (r *resolver) Refetch(ctx bCtx.Ctx, key farm.Key) (*farm.Snapshot, error) {
	return r.resolve(ctx, key, true)
}

func (r *resolver) resolve(ctx bCtx.Ctx, key farm.Key, fresh bool) (*farm.Snapshot, error) {
	k := key.String()
	r.mu.Lock()
	r.current = k
	r.inflight++
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.inflight--
		r.mu.Unlock()
	}()

	if fresh {
		r.group.Forget(k)
	}
	// the fetch outlives any single caller, it is shared by everyone joining it
	detached := bCtx.Ctx{Context: context.Background(), Logger: ctx.Logger}
	ch := r.group.DoChan(k, func() (interface{}, error) {
		return r.fetchAndStore(detached, key)
	})

	var ret singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ret = <-ch:
	}
	if ret.Err != nil {
		ctx.WithFields(log.Fields{
			"key": k,
			"err": ret.Err,
		}).Error("resolver.fetch failed")
		return nil, ret.Err
	}

	res := ret.Val.(*resolution)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current != k {
		ctx.WithFields(log.Fields{
			"key":     k,
			"current": r.current,
		}).Info("drop superseded resolution")
		return nil, farm.ErrSuperseded
	}
	if r.snapshot != nil && r.snapshotSeq > res.seq {
		return r.snapshot, nil
	}
	return res.snap, nil
}

// fetchAndStore stores the snapshot unless the key changed or a later fetch already stored one
func (r *resolver) fetchAndStore(ctx bCtx.Ctx, key farm.Key) (*resolution, error) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	c, cancel := bCtx.WithTimeout(ctx, r.timeout)
	defer cancel()
	snap, err := r.fetch(c, key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == key.String() && seq > r.snapshotSeq {
		r.snapshot = snap
		r.snapshotSeq = seq
	}
	return &resolution{seq: seq, snap: snap}, nil
}

func (r *resolver) fetch(ctx bCtx.Ctx, key farm.Key) (*farm.Snapshot, error) {
	var (
		descriptor *farm.FarmDescriptor
		accounts   []farm.AccountPosition
	)
	eg, egCtx := errgroup.WithContext(ctx)
	c := bCtx.Ctx{Context: egCtx, Logger: ctx.Logger}
	eg.Go(func() error {
		f, err := r.registry.GetFarm(c, key.FarmId)
		if err != nil {
			c.WithFields(log.Fields{
				"farmId": key.FarmId,
				"err":    err,
			}).Error("registry.GetFarm failed")
			return err
		}
		descriptor = f
		return nil
	})
	if key.HasWallet() {
		eg.Go(func() error {
			res, err := r.directory.OwnedAccounts(c, key.Wallet)
			if err != nil {
				c.WithFields(log.Fields{
					"wallet": key.Wallet,
					"err":    err,
				}).Error("directory.OwnedAccounts failed")
				return err
			}
			accounts = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if descriptor == nil {
		return nil, &farm.NetworkError{Op: "registry.GetFarm", Err: domain.ErrNotFound}
	}
	return &farm.Snapshot{
		Key:        key,
		Farm:       descriptor,
		Account:    findAccount(accounts, key.FarmId),
		ResolvedAt: time.Now(),
	}, nil
}

// findAccount returns the first account of farmId; a wallet holding several is not disambiguated
func findAccount(accounts []farm.AccountPosition, farmId domain.Address) *farm.AccountPosition {
	for i := range accounts {
		if accounts[i].FarmId.Equals(farmId) {
			a := accounts[i]
			return &a
		}
	}
	return nil
}
