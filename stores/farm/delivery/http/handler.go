package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/delivery"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/middleware"
	"github.com/x-xyz/yieldfarm/service/notify"
)

const (
	defaultLimit     = 20
	maxLimit         = 100
	activityCacheTtl = 5 * time.Second
)

type handler struct {
	pu farm.PositionUsecase
}

// New registers the farm routes. Activity lists are cached only when cacheActivities is set,
// which requires middleware.SetupCache.
func New(e *echo.Echo, pu farm.PositionUsecase, cacheActivities bool) {
	h := &handler{pu: pu}

	activityMiddlewares := []echo.MiddlewareFunc{middleware.IsValidAddress("farmId")}
	if cacheActivities {
		activityMiddlewares = append(activityMiddlewares, middleware.CacheHttp(activityCacheTtl))
	}

	g := e.Group("/farms/:farmId")
	g.GET("", h.getFarm, middleware.IsValidAddress("farmId"))
	g.GET("/activities", h.getFarmActivities, activityMiddlewares...)

	p := g.Group("/positions/:wallet", middleware.IsValidAddress("farmId"), middleware.IsValidAddress("wallet"))
	p.GET("", h.getPosition)
	p.POST("/stake", h.stake)
	p.POST("/unstake", h.unstake)
	p.POST("/harvest", h.harvest)
	p.POST("/compound", h.compound)

	e.GET("/wallets/:wallet/activities", h.getWalletActivities, middleware.IsValidAddress("wallet"))
}

func positionKey(c echo.Context) farm.Key {
	return farm.Key{
		FarmId:    domain.Address(c.Param("farmId")),
		Wallet:    domain.Address(c.Param("wallet")),
		Connected: c.QueryParam("connected") != "false",
	}
}

func (h *handler) getFarm(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	key := farm.Key{FarmId: domain.Address(c.Param("farmId"))}
	v, err := h.pu.View(ctx, key, domain.CoinType(c.QueryParam("rewardCoinType")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, v)
}

func (h *handler) getPosition(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	v, err := h.pu.View(ctx, positionKey(c), domain.CoinType(c.QueryParam("rewardCoinType")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, v)
}

type amountPayload struct {
	Amount         string `json:"amount" validate:"required"`
	RewardCoinType string `json:"rewardCoinType" validate:"omitempty,cointype"`
}

type rewardPayload struct {
	RewardCoinType string `json:"rewardCoinType" validate:"omitempty,cointype"`
}

func bindAndValidate(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		return err
	}
	return c.Validate(p)
}

// operate runs op with a notice collector attached and answers with the refreshed position
func (h *handler) operate(c echo.Context, rewardCoinType domain.CoinType, op func(ctx.Ctx, farm.Key) error) error {
	collector := &notify.Collector{}
	ctx := notify.WithCollector(c.Get("ctx").(ctx.Ctx), collector)
	key := positionKey(c)
	key.Connected = true

	if err := op(ctx, key); err != nil {
		return delivery.MakeJsonRespWithNotices(c, http.StatusInternalServerError, err, collector.Drain())
	}

	v, err := h.pu.View(ctx, key, rewardCoinType)
	if err != nil {
		return delivery.MakeJsonRespWithNotices(c, http.StatusInternalServerError, err, collector.Drain())
	}
	return delivery.MakeJsonRespWithNotices(c, http.StatusOK, v, collector.Drain())
}

func (h *handler) stake(c echo.Context) error {
	p := &amountPayload{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return h.operate(c, domain.CoinType(p.RewardCoinType), func(ctx ctx.Ctx, key farm.Key) error {
		return h.pu.Stake(ctx, key, p.Amount)
	})
}

func (h *handler) unstake(c echo.Context) error {
	p := &amountPayload{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	rewardCoinType := domain.CoinType(p.RewardCoinType)
	return h.operate(c, rewardCoinType, func(ctx ctx.Ctx, key farm.Key) error {
		return h.pu.Unstake(ctx, key, p.Amount, rewardCoinType)
	})
}

func (h *handler) harvest(c echo.Context) error {
	p := &rewardPayload{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	rewardCoinType := domain.CoinType(p.RewardCoinType)
	return h.operate(c, rewardCoinType, func(ctx ctx.Ctx, key farm.Key) error {
		return h.pu.Harvest(ctx, key, rewardCoinType)
	})
}

func (h *handler) compound(c echo.Context) error {
	p := &rewardPayload{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	rewardCoinType := domain.CoinType(p.RewardCoinType)
	return h.operate(c, rewardCoinType, func(ctx ctx.Ctx, key farm.Key) error {
		return h.pu.Compound(ctx, key, rewardCoinType)
	})
}

type activitiesResp struct {
	Items []farm.Activity `json:"items"`
	Count int             `json:"count"`
}

func parsePagination(c echo.Context) (int64, int64, error) {
	offset, limit := int64(0), int64(defaultLimit)
	if s := c.QueryParam("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return 0, 0, domain.ErrBadParamInput
		}
		offset = v
	}
	if s := c.QueryParam("limit"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 || v > maxLimit {
			return 0, 0, domain.ErrBadParamInput
		}
		limit = v
	}
	return offset, limit, nil
}

func parseKind(s string) (farm.OperationKind, bool) {
	switch k := farm.OperationKind(s); k {
	case farm.OperationStake, farm.OperationHarvest, farm.OperationUnstake, farm.OperationCompound:
		return k, true
	}
	return "", false
}

func (h *handler) activities(c echo.Context, opts ...farm.ActivityFindAllOptionsFunc) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	offset, limit, err := parsePagination(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	opts = append(opts, farm.ActivityWithPagination(offset, limit))

	if s := c.QueryParam("kind"); s != "" {
		kind, ok := parseKind(s)
		if !ok {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, farm.ActivityWithKind(kind))
	}

	items, count, err := h.pu.Activities(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, activitiesResp{Items: items, Count: count})
}

func (h *handler) getFarmActivities(c echo.Context) error {
	opts := []farm.ActivityFindAllOptionsFunc{farm.ActivityWithFarm(domain.Address(c.Param("farmId")))}
	if w := c.QueryParam("wallet"); w != "" {
		if !domain.IsValidAddress(w) {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
		}
		opts = append(opts, farm.ActivityWithWallet(domain.Address(w)))
	}
	return h.activities(c, opts...)
}

func (h *handler) getWalletActivities(c echo.Context) error {
	return h.activities(c, farm.ActivityWithWallet(domain.Address(c.Param("wallet"))))
}
