package usecase

import (
	"github.com/x-xyz/yieldfarm/base/ctx"
	hcdomain "github.com/x-xyz/yieldfarm/domain/healthcheck"
)

type impl struct {
	repos []hcdomain.HealthCheckRepo
}

// New checks every repo in order, the first failure is reported
func New(repos ...hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repos: repos,
	}
}

func (im *impl) Check(context ctx.Ctx) error {
	for _, r := range im.repos {
		if err := r.PingDB(context); err != nil {
			return err
		}
	}
	return nil
}
