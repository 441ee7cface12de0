// Package search serves the lightweight name autocomplete path. It matches
// against a static seed list plus names already cached in the ens_profiles
// collection; it never touches the chain. The seed list stands in for a real
// name indexer.
package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/basedlist/directory/internal/cache"
	"github.com/basedlist/directory/internal/models"
	"github.com/basedlist/directory/pkg/repository"
)

// seedNames is the bootstrap corpus used until an indexer backs this
// endpoint.
var seedNames = []string{
	"jesse.base.eth",
	"mustbeash.base.eth",
	"vitalik.base.eth",
	"ashleigh.base.eth",
	"ashton.base.eth",
	"ashley.base.eth",
	"basher.base.eth",
	"dashboard.base.eth",
	"stash.base.eth",
	"flash.base.eth",
	"crash.base.eth",
	"bash.base.eth",
	"cashflow.base.eth",
	"smash.base.eth",
	"splash.base.eth",
	"hash.base.eth",
	"asher.base.eth",
	"ashlynn.base.eth",
	"ashford.base.eth",
	"ashby.base.eth",
	"ashland.base.eth",
	"ashlee.base.eth",
	"ashanti.base.eth",
	"ashwin.base.eth",
	"ashworth.base.eth",
	"asheville.base.eth",
	"ashram.base.eth",
	"ashoka.base.eth",
	"ashurbanipal.base.eth",
	"ashkenazi.base.eth",
}

// Service answers prefix/substring queries over known names, memoizing
// results per normalized query.
type Service struct {
	repo         repository.ENSProfileRepo
	results      *cache.Cache[string, []models.SearchResult]
	parentDomain string
	logger       *slog.Logger
}

func New(repo repository.ENSProfileRepo, parentDomain string, ttl time.Duration, capacity int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:         repo,
		results:      cache.New[string, []models.SearchResult](ttl, capacity),
		parentDomain: parentDomain,
		logger:       logger,
	}
}

// Search returns every known name containing the query, seed names merged
// with stored profiles (stored entries win so avatar/address enrichment is
// kept). Results are cached per normalized query.
func (s *Service) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	if hit, ok := s.results.Get(normalized); ok {
		return hit, nil
	}

	known := make(map[string]models.SearchResult, len(seedNames))
	for _, name := range seedNames {
		known[name] = models.SearchResult{Name: name}
	}

	stored, err := s.repo.ListENSProfileSummaries(ctx)
	if err != nil {
		// Autocomplete degrades to the seed list on storage trouble.
		s.logger.Warn("listing stored profiles failed", slog.Any("err", err))
	} else {
		for _, res := range stored {
			known[res.Name] = res
		}
	}

	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)

	out := []models.SearchResult{}
	for _, name := range names {
		if !strings.Contains(strings.ToLower(name), normalized) {
			continue
		}
		res := known[name]
		res.DisplayName = strings.TrimSuffix(name, "."+s.parentDomain)
		out = append(out, res)
	}

	s.results.Set(normalized, out)
	return out, nil
}
