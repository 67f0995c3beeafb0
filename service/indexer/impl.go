package indexer

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
	"golang.org/x/xerrors"

	"github.com/x-xyz/yieldfarm/base/backoff"
	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/base/metrics"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const (
	defaultPageSize = 50
	// maxPages bounds the owned accounts listing of one wallet
	maxPages = 20
)

type client struct {
	client   http.Client
	url      string
	timeout  time.Duration
	retries  int
	pageSize int
	limiter  *rate.Limiter
	met      metrics.Service
}

func NewClient(cfg *ClientCfg) Client {
	limit := rate.Inf
	if cfg.Rps > 0 {
		limit = rate.Limit(cfg.Rps)
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	met := cfg.Metrics
	if met == nil {
		met = metrics.New("indexer")
	}
	return &client{
		client:   cfg.HttpClient,
		url:      cfg.Url,
		timeout:  cfg.Timeout,
		retries:  cfg.Retries,
		pageSize: pageSize,
		limiter:  rate.NewLimiter(limit, 1),
		met:      met,
	}
}

func (c *client) GetFarm(ctx bCtx.Ctx, farmId domain.Address) (*farm.FarmDescriptor, error) {
	u := fmt.Sprintf("%s/farms/%s", c.url, url.PathEscape(farmId.ToLowerStr()))
	data, err := c.get(ctx, u)
	if err != nil {
		ctx.WithFields(log.Fields{
			"farmId": farmId,
			"err":    err,
		}).Error("c.get failed")
		return nil, &farm.NetworkError{Op: "indexer.GetFarm", Err: err}
	}
	f, err := parseFarm(gjson.GetBytes(data, "data"))
	if err != nil {
		ctx.WithFields(log.Fields{
			"farmId": farmId,
			"err":    err,
		}).Error("parseFarm failed")
		return nil, &farm.NetworkError{Op: "indexer.GetFarm", Err: err}
	}
	return f, nil
}

func (c *client) OwnedAccounts(ctx bCtx.Ctx, owner domain.Address) ([]farm.AccountPosition, error) {
	res := []farm.AccountPosition{}
	cursor := ""
	for page := 0; page < maxPages; page++ {
		params := url.Values{
			"owner": {owner.ToLowerStr()},
			"limit": {strconv.Itoa(c.pageSize)},
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}
		u := fmt.Sprintf("%s/accounts?%s", c.url, params.Encode())
		data, err := c.get(ctx, u)
		if err != nil {
			ctx.WithFields(log.Fields{
				"owner": owner,
				"page":  page,
				"err":   err,
			}).Error("c.get failed")
			return nil, &farm.NetworkError{Op: "indexer.OwnedAccounts", Err: err}
		}
		for _, item := range gjson.GetBytes(data, "data").Array() {
			a, err := parseAccount(item)
			if err != nil {
				ctx.WithFields(log.Fields{
					"owner": owner,
					"raw":   item.Raw,
					"err":   err,
				}).Error("parseAccount failed")
				return nil, &farm.NetworkError{Op: "indexer.OwnedAccounts", Err: err}
			}
			res = append(res, *a)
		}
		next := gjson.GetBytes(data, "nextCursor")
		if !gjson.GetBytes(data, "hasNextPage").Bool() || next.String() == "" {
			return res, nil
		}
		cursor = next.String()
	}
	ctx.WithFields(log.Fields{
		"owner":    owner,
		"accounts": len(res),
	}).Warn("owned accounts truncated")
	return res, nil
}

func (c *client) PendingRewards(ctx bCtx.Ctx, accountId domain.Address) ([]farm.PendingReward, error) {
	u := fmt.Sprintf("%s/accounts/%s/rewards", c.url, url.PathEscape(accountId.ToLowerStr()))
	data, err := c.get(ctx, u)
	if err != nil {
		ctx.WithFields(log.Fields{
			"accountId": accountId,
			"err":       err,
		}).Error("c.get failed")
		return nil, &farm.NetworkError{Op: "indexer.PendingRewards", Err: err}
	}
	res := []farm.PendingReward{}
	for _, item := range gjson.GetBytes(data, "data").Array() {
		amount, err := parseUint64(item.Get("amount"))
		if err != nil {
			ctx.WithFields(log.Fields{
				"accountId": accountId,
				"raw":       item.Raw,
				"err":       err,
			}).Error("parseUint64 failed")
			return nil, &farm.NetworkError{Op: "indexer.PendingRewards", Err: err}
		}
		res = append(res, farm.PendingReward{
			RewardCoinType: domain.CoinType(item.Get("coinType").String()),
			Amount:         amount,
		})
	}
	return res, nil
}

// get is an idempotent read, transport errors and 5xx are retried
func (c *client) get(ctx bCtx.Ctx, u string) ([]byte, error) {
	defer c.met.BumpTime("get.time").End()
	var body []byte
	b := backoff.NewExponential(100*time.Millisecond, 2*time.Second)
	err := backoff.Retry(ctx, b, c.retries, func() error {
		data, err := c.doGet(ctx, u)
		if err != nil {
			c.met.BumpSum("get.err", 1)
			return err
		}
		body = data
		return nil
	})
	return body, err
}

func (c *client) doGet(ctx bCtx.Ctx, u string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel func()
		ctx, cancel = bCtx.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": u,
			"err": err,
		}).Warn("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(ErrNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, xerrors.Errorf("status %d: %w", resp.StatusCode, ErrStatusCodeNotOk)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(xerrors.Errorf("status %d: %w", resp.StatusCode, ErrStatusCodeNotOk))
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, backoff.Permanent(ErrMalformed)
	}
	return body, nil
}
