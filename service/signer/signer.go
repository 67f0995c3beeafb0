package signer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const StatusSuccess = "success"

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrExecutionFailed = errors.New("transaction execution failed")
)

type ExecutorCfg struct {
	HttpClient http.Client
	Url        string
	Timeout    time.Duration
}

type executor struct {
	client  http.Client
	url     string
	timeout time.Duration
}

// NewExecutor returns a TransactionExecutor which hands transactions to a signing relay.
// Submissions are never retried.
func NewExecutor(cfg *ExecutorCfg) farm.TransactionExecutor {
	return &executor{
		client:  cfg.HttpClient,
		url:     cfg.Url,
		timeout: cfg.Timeout,
	}
}

func (e *executor) Execute(ctx bCtx.Ctx, tx *farm.Transaction) (*farm.ExecutionResult, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return nil, err
	}
	if e.timeout > 0 {
		var cancel func()
		ctx, cancel = bCtx.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	url := fmt.Sprintf("%s/transactions", e.url)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithField("err", err).Error("failed to read body")
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
			"body":       string(data),
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}

	res := &farm.ExecutionResult{
		Digest: domain.TxDigest(gjson.GetBytes(data, "digest").String()),
		Status: gjson.GetBytes(data, "status").String(),
	}
	if res.Status != StatusSuccess {
		reason := gjson.GetBytes(data, "error").String()
		ctx.WithFields(log.Fields{
			"digest": res.Digest,
			"status": res.Status,
			"reason": reason,
		}).Error("transaction not successful")
		return res, xerrors.Errorf("%s: %w", reason, ErrExecutionFailed)
	}
	return res, nil
}
