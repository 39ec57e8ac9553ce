// Package enrich drives geocoding and statistics across a batch of referees.
//
// Enrichment is sequential: each referee's games are resolved in document
// order through a run-scoped location cache, then the derived statistics are
// attached. A geocoding failure aborts only the referee being processed; the
// rest of the batch continues.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pfrederiksen/ref-stats/internal/geocode"
	"github.com/pfrederiksen/ref-stats/internal/logger"
	"github.com/pfrederiksen/ref-stats/internal/referee"
	"github.com/pfrederiksen/ref-stats/internal/stats"
)

// DefaultDelay is slept after every live geocoding lookup to stay under the
// provider's rate limits. Cache hits pay no delay.
const DefaultDelay = 50 * time.Millisecond

// LocationError reports that a referee's enrichment was aborted, carrying
// the offending referee's id.
type LocationError struct {
	RefereeID string
	Err       error
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("enriching referee %s: %v", e.RefereeID, e.Err)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}

// Enricher resolves game locations and attaches derived statistics.
type Enricher struct {
	resolver geocode.Resolver
	clock    clockwork.Clock
	log      *logger.Logger
	delay    time.Duration
}

// New creates an Enricher with a real clock and the default rate-limit delay.
func New(resolver geocode.Resolver, log *logger.Logger) *Enricher {
	return NewWithClock(resolver, clockwork.NewRealClock(), DefaultDelay, log)
}

// NewWithClock creates an Enricher with an injected clock and delay. Tests
// pass a fake clock so the rate-limit sleep is observable without waiting.
func NewWithClock(resolver geocode.Resolver, clock clockwork.Clock, delay time.Duration, log *logger.Logger) *Enricher {
	return &Enricher{
		resolver: resolver,
		clock:    clock,
		log:      log,
		delay:    delay,
	}
}

// Referee resolves every game location of one referee (in original game
// order) and attaches the derived statistics, replacing any prior values.
// Re-running with an unchanged game list and a warm cache recomputes
// identical totals. An empty location or a resolver failure returns a
// *LocationError, leaves the derived fields untouched, and strips any
// coordinates attached before the failure: an aborted referee is emitted
// with its games exactly as extracted.
func (e *Enricher) Referee(ctx context.Context, ref *referee.Referee, cache *geocode.Cache) error {
	if err := e.resolveGames(ctx, ref, cache); err != nil {
		for i := range ref.Games {
			ref.Games[i].Coordinates = nil
		}
		return err
	}

	ref.TotalMilesTravelled = stats.TotalMiles(ref.Games)
	ref.MostCommonTeams = stats.MostCommonTeams(ref.Games, stats.TopTeams)
	ref.DaysWorkedStreak = stats.DaysWorkedStreak(ref.Games)
	return nil
}

// resolveGames attaches coordinates to every game, consulting the cache
// before the resolver.
func (e *Enricher) resolveGames(ctx context.Context, ref *referee.Referee, cache *geocode.Cache) error {
	for i := range ref.Games {
		game := &ref.Games[i]
		if game.Location == "" {
			return &LocationError{RefereeID: ref.ID, Err: errors.New("game has no location")}
		}

		if coords, ok := cache.Get(game.Location); ok {
			logger.IncrCounter("geocode.cache_hits")
			game.Coordinates = &referee.Coordinates{Lat: coords.Lat, Lon: coords.Lon}
			continue
		}

		coords, err := e.resolver.Resolve(ctx, game.Location)
		if err != nil {
			return &LocationError{RefereeID: ref.ID, Err: err}
		}
		logger.IncrCounter("geocode.lookups")
		cache.Put(game.Location, coords)
		game.Coordinates = &referee.Coordinates{Lat: coords.Lat, Lon: coords.Lon}

		// Rate-limit pause after each live lookup.
		e.clock.Sleep(e.delay)
	}
	return nil
}

// All enriches each referee in turn, sharing one location cache across the
// whole batch. A referee whose enrichment fails is logged and kept in the
// batch with games as extracted and zero-valued statistics; the returned
// errors identify the affected referees.
func (e *Enricher) All(ctx context.Context, refs []*referee.Referee, cache *geocode.Cache) []error {
	var failures []error
	for _, ref := range refs {
		if err := e.Referee(ctx, ref, cache); err != nil {
			e.log.Error("enrichment failed, keeping referee unenriched", logger.Fields{
				"referee_id": ref.ID,
			}, err)
			failures = append(failures, err)
			continue
		}
		e.log.Debug("enriched referee", logger.Fields{
			"referee_id":  ref.ID,
			"total_miles": ref.TotalMilesTravelled,
			"streak":      ref.DaysWorkedStreak,
		})
	}
	return failures
}
