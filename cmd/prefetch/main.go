// Command prefetch signs in, warms the location snapshot, and probes the
// bookable check-in dates for every departure city. Run it after a deploy so
// the first storefront visitor never pays for the dual location fetch.
package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"maxtravel_booking/internal/adapters/observability"
	redisad "maxtravel_booking/internal/adapters/redis"
	"maxtravel_booking/internal/adapters/tourvisio"
	"maxtravel_booking/internal/app"
	"maxtravel_booking/internal/auth"
	"maxtravel_booking/internal/cache"
	"maxtravel_booking/internal/domain"
	"maxtravel_booking/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().Str("api", cfg.APIBase).Int("workers", cfg.Workers).Msg("prefetch starting")

	client, err := tourvisio.New(cfg.APIBase, cfg.ClientRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("tourvisio client init failed")
	}
	sessions := auth.NewManager(client, cfg.Credential())
	client.SetTokenSource(sessions)

	if _, err := sessions.Login(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("sign-in failed")
	}

	var snaps domain.SnapshotStore = cache.NewStore()
	if cfg.RedisAddr != "" {
		snaps = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}
	locations := app.NewLocationService(client, snaps)

	deps := locations.Departures(ctx)
	if !deps.Success {
		log.Fatal().Str("message", deps.Message).Msg("location warmup failed")
	}
	regions := locations.Regions(ctx)
	if !regions.Success {
		log.Fatal().Str("message", regions.Message).Msg("region warmup failed")
	}
	regionIDs := make([]int, 0, len(regions.Data))
	for _, r := range regions.Data {
		regionIDs = append(regionIDs, r.Code)
	}
	log.Info().Int("departures", len(deps.Data)).Int("regions", len(regionIDs)).Msg("snapshot warmed")

	// probe check-in dates per departure, bounded by the worker budget
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, d := range deps.Data {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(dep app.DepartureOption) {
			defer wg.Done()
			defer sem.Release(1)

			res := locations.CheckinDates(ctx, dep.Code, regionIDs)
			if !res.Success {
				log.Warn().Str("departure", dep.Code).Str("message", res.Message).Msg("no check-in dates")
				return
			}
			log.Info().Str("departure", dep.Code).Int("dates", len(res.Data)).Msg("check-in dates ok")
		}(d)
	}

	wg.Wait()
	log.Info().Msg("prefetch completed")
}
