package leads

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/ports"
	"github.com/DheemanKumar/lead-manager/internal/domain/repository"
	"github.com/DheemanKumar/lead-manager/pkg/logger"
)

// leaderboardQueryTimeout límite de la consulta compartida por singleflight.
const leaderboardQueryTimeout = 10 * time.Second

// LeaderboardUseCase ranking público de usuarios por cantidad de leads.
// Con cache: lee Redis y, en un miss, una sola consulta a la DB por vez (singleflight).
type LeaderboardUseCase struct {
	leadRepo repository.LeadRepository
	cache    ports.LeaderboardCache
	group    singleflight.Group
	log      *logger.Logger
}

// NewLeaderboardUseCase construye el caso de uso. cache puede ser nil.
func NewLeaderboardUseCase(leadRepo repository.LeadRepository, cache ports.LeaderboardCache, log *logger.Logger) *LeaderboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LeaderboardUseCase{leadRepo: leadRepo, cache: cache, log: log.Component("leaderboard")}
}

// Leaderboard devuelve el ranking. Las fallas del cache se registran y se consulta la DB.
func (uc *LeaderboardUseCase) Leaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	if uc.cache != nil {
		entries, ok, err := uc.cache.Get(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("cache del leaderboard no disponible")
		} else if ok {
			return entries, nil
		}
	}

	v, err, _ := uc.group.Do("leaderboard", func() (interface{}, error) {
		// La consulta la comparten todos los que esperan: no hereda la cancelación
		// del primer solicitante.
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leaderboardQueryTimeout)
		defer cancel()
		return uc.load(qctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]dto.LeaderboardEntry), nil
}

// load consulta la DB y guarda el ranking si ningún alta lo invalidó mientras tanto.
// La generación se lee antes de la consulta: un Invalidate posterior la cambia.
func (uc *LeaderboardUseCase) load(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	var (
		generation int64
		cacheable  = uc.cache != nil
	)
	if cacheable {
		var err error
		if generation, err = uc.cache.Generation(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("cache del leaderboard no disponible")
			cacheable = false
		}
	}

	rows, err := uc.leadRepo.CountByOwner(ctx)
	if err != nil {
		return nil, err
	}
	entries := rankEntries(rows)

	if cacheable {
		stored, err := uc.cache.SetIfGeneration(ctx, generation, entries)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Msg("no se pudo guardar el leaderboard en cache")
		case !stored:
			uc.log.Debug().Int64("generation", generation).Msg("ranking descartado: invalidado durante la consulta")
		}
	}
	return entries, nil
}

// rankEntries asigna posiciones; empates comparten posición (1, 1, 3).
// rows ya viene ordenado por cantidad de leads descendente.
func rankEntries(rows []repository.OwnerLeadCount) []dto.LeaderboardEntry {
	out := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		rank := i + 1
		if i > 0 && r.LeadCount == rows[i-1].LeadCount {
			rank = out[i-1].Rank
		}
		out = append(out, dto.LeaderboardEntry{
			Rank:      rank,
			UserID:    r.UserID,
			Name:      r.Name,
			LeadCount: r.LeadCount,
		})
	}
	return out
}
