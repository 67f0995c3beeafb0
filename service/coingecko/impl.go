package coingecko

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain/keys"
	"github.com/x-xyz/yieldfarm/service/cache"
	"github.com/x-xyz/yieldfarm/service/cache/provider/primitive"
)

func NewClient(cfg *ClientCfg) Client {
	api := cfg.Api
	if api == "" {
		api = defaultApi
	}
	limit := rate.Inf
	if cfg.Rps > 0 {
		limit = rate.Limit(cfg.Rps)
	}
	return &client{
		client:  cfg.HttpClient,
		timeout: cfg.Timeout,
		api:     api,
		limiter: rate.NewLimiter(limit, 1),
		cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "coingecko_cache",
			Cache: primitive.NewPrimitive("coingecko_cache", 4),
		}),
	}
}

type client struct {
	client  http.Client
	timeout time.Duration
	api     string
	limiter *rate.Limiter
	cache   cache.Service
}

func (c *client) GetPrice(ctx bCtx.Ctx, id string) (decimal.Decimal, error) {
	key := keys.RedisKey(id)
	var price decimal.Decimal
	if err := c.cache.GetByFunc(ctx, key, &price, func() (interface{}, error) {
		return c.getPrice(ctx, id)
	}); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

func (c *client) getPrice(ctx bCtx.Ctx, id string) (*decimal.Decimal, error) {
	params := url.Values{
		"ids":           {id},
		"vs_currencies": {"usd"},
	}
	url := fmt.Sprintf("%s/simple/price?%s", c.api, params.Encode())
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}

	// {"sui":{"usd":1.23}}
	res := gjson.GetBytes(data, gjson.Escape(id)+".usd")
	if !res.Exists() {
		ctx.WithField("id", id).Error(ErrPriceNotFound)
		return nil, ErrPriceNotFound
	}
	price, err := decimal.NewFromString(res.Raw)
	if err != nil {
		ctx.WithFields(log.Fields{
			"raw": res.Raw,
			"err": err,
		}).Error("decimal.NewFromString failed")
		return nil, err
	}
	return &price, nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
