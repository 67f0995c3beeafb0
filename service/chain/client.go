package chain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	bEthereum "github.com/x-xyz/yieldfarm/base/ethereum"
	"github.com/x-xyz/yieldfarm/base/log"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

type ClientCfg struct {
	RpcUrls map[int32]string
	// MaxConcurrency bounds the calls in flight per rpc, zero means unbounded
	MaxConcurrency int
}

// ContractCaller is the part of ethclient.Client used for view calls
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type Client interface {
	// Call runs a view method at the latest block and returns the unpacked outputs
	Call(ctx bCtx.Ctx, chainId int32, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
}

type clientImpl struct {
	callers map[int32]ContractCaller
}

// NewClient dials every configured rpc. Chains that fail to dial are skipped with a warning
// and the last dial error is returned next to a usable client.
func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error
	callers := make(map[int32]ContractCaller)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		if cfg.MaxConcurrency > 0 {
			callers[chainId] = bEthereum.NewTrottledClient(client, cfg.MaxConcurrency)
			continue
		}
		callers[chainId] = client
	}
	return &clientImpl{callers: callers}, anyerr
}

func NewClientWithCallers(callers map[int32]ContractCaller) Client {
	return &clientImpl{callers: callers}
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	caller, ok := c.callers[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"method":  method,
		}).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}
