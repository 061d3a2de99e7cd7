package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/pkg/async"
	"github.com/midgard-statistics/backend/internal/repo"
)

type fillOutcome int

const (
	outcomeFetched fillOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// FillReport summarizes one bulk cache fill pass.
type FillReport struct {
	Fetched int
	Skipped int
	Failed  int
}

// Asset fills the local image cache from the remote origin. Fetches run on a
// bounded worker pool; each worker inserts a courtesy delay after every fetch
// so the pool as a whole stays polite to the origin.
type Asset struct {
	Config    *appconfig.Config
	AssetRepo *repo.Asset

	client *http.Client

	// failed remembers origin misses for the life of the process so repeated
	// fill passes do not re-request assets the origin does not have.
	mu     sync.Mutex
	failed map[string]struct{}
}

func NewAsset(conf *appconfig.Config, assetRepo *repo.Asset) *Asset {
	return &Asset{
		Config:    conf,
		AssetRepo: assetRepo,
		client:    &http.Client{Timeout: conf.AssetFetchTimeout},
		failed:    make(map[string]struct{}),
	}
}

// FillMissing fetches every listed asset not yet in the local cache. Origin
// misses and transport errors are counted, not returned; only local write
// failures surface as an error.
func (s *Asset) FillMissing(ctx context.Context, kind repo.AssetKind, ids []int) (FillReport, error) {
	var attempts atomic.Int64

	outcomes, err := async.Map(ids, s.Config.AssetFillConcurrency, func(id int) (fillOutcome, error) {
		if s.AssetRepo.Exists(kind, id) {
			return outcomeSkipped, nil
		}
		if s.hasFailed(kind, id) {
			return outcomeFailed, nil
		}

		fetched, fetchErr := s.fetch(ctx, kind, id)
		time.Sleep(s.Config.AssetFillDelay)

		if n := attempts.Add(1); n%50 == 0 {
			log.Info().Str("kind", string(kind)).Int64("attempted", n).Msg("asset cache fill in progress")
		}

		if fetchErr != nil {
			return outcomeFailed, fetchErr
		}
		if !fetched {
			s.recordFailure(kind, id)
			return outcomeFailed, nil
		}
		return outcomeFetched, nil
	})

	report := FillReport{}
	for _, outcome := range outcomes {
		switch outcome {
		case outcomeFetched:
			report.Fetched++
		case outcomeSkipped:
			report.Skipped++
		case outcomeFailed:
			report.Failed++
		}
	}
	return report, err
}

// fetch downloads one asset. A non-200 origin response reports fetched=false
// with no error; only a failure to persist the bytes locally is an error.
func (s *Asset) fetch(ctx context.Context, kind repo.AssetKind, id int) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.AssetRepo.RemoteURL(kind, id), nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to build asset fetch request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("kind", string(kind)).Int("id", id).Msg("asset fetch failed")
		s.recordFailure(kind, id)
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug().Err(err).Str("kind", string(kind)).Int("id", id).Msg("asset fetch failed")
		s.recordFailure(kind, id)
		return false, nil
	}

	if err := s.AssetRepo.Write(kind, id, data); err != nil {
		return false, err
	}
	return true, nil
}

// ServePath resolves the local file to serve for an asset request: the
// cached image when present, otherwise the not-found placeholder. ok is
// false when neither exists.
func (s *Asset) ServePath(kind repo.AssetKind, id int) (path string, cached bool, ok bool) {
	if s.AssetRepo.Exists(kind, id) {
		return s.AssetRepo.Path(kind, id), true, true
	}
	placeholder := s.AssetRepo.PlaceholderPath(kind)
	if info, err := os.Stat(placeholder); err == nil && !info.IsDir() {
		return placeholder, false, true
	}
	return "", false, false
}

// FailedIDs lists the kind-prefixed assets whose origin fetch has failed so
// far in this process, sorted for stable reporting.
func (s *Asset) FailedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := lo.Keys(s.failed)
	sort.Strings(keys)
	return keys
}

func (s *Asset) hasFailed(kind repo.AssetKind, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.failed[failureKey(kind, id)]
	return ok
}

func (s *Asset) recordFailure(kind repo.AssetKind, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[failureKey(kind, id)] = struct{}{}
}

func failureKey(kind repo.AssetKind, id int) string {
	return fmt.Sprintf("%s/%d", kind, id)
}
