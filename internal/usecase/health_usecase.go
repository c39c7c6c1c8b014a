package usecase

import (
	"context"

	redispkg "easi-website/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	redis *goredis.Client
}

// NewHealthUsecase reports on optional dependencies; rdb may be nil.
func NewHealthUsecase(rdb *goredis.Client) HealthUsecase {
	return &healthUsecase{redis: rdb}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"redis":  "disabled",
	}
	if u.redis != nil {
		if err := redispkg.HealthCheck(ctx, u.redis); err != nil {
			status["redis"] = "unavailable"
		} else {
			status["redis"] = "ok"
		}
	}
	return status
}
