package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/service/query"
)

const defaultLimit = 50

// ActivityIndexes backs every query makeFindQuery can produce
var ActivityIndexes = []query.Index{
	{Fields: []string{"wallet", "-createdAt"}},
	{Fields: []string{"wallet", "farmId", "-createdAt"}},
	{Fields: []string{"wallet", "kind", "-createdAt"}},
	{Fields: []string{"farmId", "-createdAt"}},
}

func makeFindQuery(opts farm.ActivityFindAllOptions) bson.M {
	qry := bson.M{}

	if opts.Wallet != nil {
		qry["wallet"] = *opts.Wallet
	}

	if opts.FarmId != nil {
		qry["farmId"] = *opts.FarmId
	}

	if opts.Kind != nil {
		qry["kind"] = *opts.Kind
	}

	return qry
}

type activityRepo struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) farm.ActivityRepo {
	return &activityRepo{q: q}
}

// EnsureActivityIndexes is run once at startup
func EnsureActivityIndexes(ctx bCtx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(ctx, domain.TableFarmActivities, ActivityIndexes...)
}

func (r *activityRepo) Insert(ctx bCtx.Ctx, a *farm.Activity) error {
	if err := r.q.Insert(ctx, domain.TableFarmActivities, a); err != nil {
		ctx.WithFields(log.Fields{
			"activity": a,
			"err":      err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *activityRepo) FindAll(ctx bCtx.Ctx, optFns ...farm.ActivityFindAllOptionsFunc) ([]farm.Activity, error) {
	opts, err := farm.GetActivityFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("farm.GetActivityFindAllOptions failed")
		return nil, err
	}

	offset := 0
	limit := defaultLimit
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	qry := makeFindQuery(opts)
	res := []farm.Activity{}
	if err := r.q.Search(ctx, domain.TableFarmActivities, offset, limit, "-createdAt", qry, &res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"query": qry,
			"err":   err,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *activityRepo) Count(ctx bCtx.Ctx, optFns ...farm.ActivityFindAllOptionsFunc) (int, error) {
	opts, err := farm.GetActivityFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("farm.GetActivityFindAllOptions failed")
		return 0, err
	}

	qry := makeFindQuery(opts)
	n, err := r.q.Count(ctx, domain.TableFarmActivities, qry)
	if err != nil {
		ctx.WithFields(log.Fields{
			"query": qry,
			"err":   err,
		}).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}
