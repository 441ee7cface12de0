// Package profiles reconciles resolution results into the two persistent
// collections: the ENS profile cache and the builder directory.
package profiles

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/basedlist/directory/internal/ens"
	"github.com/basedlist/directory/internal/models"
	"github.com/basedlist/directory/internal/records"
	"github.com/basedlist/directory/internal/skills"
	"github.com/basedlist/directory/pkg/repository"
)

// Syncer owns the write path for ENS-sourced data in both collections. The
// two writes are not transactional; both rows are re-derived idempotently on
// the next successful lookup of the same name, which bounds the
// inconsistency window.
type Syncer struct {
	ensRepo      repository.ENSProfileRepo
	builderRepo  repository.BuilderProfileRepo
	parentDomain string
	logger       *slog.Logger
}

func NewSyncer(ensRepo repository.ENSProfileRepo, builderRepo repository.BuilderProfileRepo, parentDomain string, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{ensRepo: ensRepo, builderRepo: builderRepo, parentDomain: parentDomain, logger: logger}
}

// Sync upserts the ENS profile by name and the derived builder profile by
// name-or-ensName. Idempotent: a repeated call with identical input updates
// timestamps only. Storage errors are logged and swallowed; the resolved
// profile is returned either way so the read path never fails on a write.
func (s *Syncer) Sync(ctx context.Context, res *ens.ResolvedName) *models.ENSProfile {
	profile := s.buildENSProfile(res)

	if err := s.ensRepo.UpsertENSProfile(ctx, profile); err != nil {
		s.logger.Error("upsert ens profile failed", slog.String("name", res.Name), slog.Any("err", err))
		return profile
	}

	if err := s.syncBuilderProfile(ctx, res, profile); err != nil {
		s.logger.Error("sync builder profile failed", slog.String("name", res.Name), slog.Any("err", err))
	}

	return profile
}

func (s *Syncer) buildENSProfile(res *ens.ResolvedName) *models.ENSProfile {
	profile := &models.ENSProfile{
		Name:    res.Name,
		Avatar:  records.FormatContentURL(recordValue(res.Records, "avatar")),
		Records: res.Records,
		Skills:  skills.Infer(res.Records),
	}
	if res.Address != nil {
		profile.Address = res.Address.Hex()
	}
	if len(res.ContentHash) > 0 {
		profile.ContentHash = hexutil.Encode(res.ContentHash)
	}
	return profile
}

func (s *Syncer) syncBuilderProfile(ctx context.Context, res *ens.ResolvedName, profile *models.ENSProfile) error {
	builder := s.buildBuilderProfile(res, profile)

	existing, err := s.builderRepo.FindBuilderByNameOrENS(ctx, res.Name)
	if err != nil {
		return fmt.Errorf("find builder profile: %w", err)
	}

	if existing != nil {
		builder.ID = existing.ID
		if err := s.builderRepo.UpdateBuilderProfile(ctx, builder); err != nil {
			return fmt.Errorf("update builder profile: %w", err)
		}
		return nil
	}

	if _, err := s.builderRepo.CreateBuilderProfile(ctx, builder); err != nil {
		return fmt.Errorf("create builder profile: %w", err)
	}
	return nil
}

// buildBuilderProfile projects ENS records onto the builder directory shape.
// One-way: these fields are recomputed wholesale on every sync.
func (s *Syncer) buildBuilderProfile(res *ens.ResolvedName, profile *models.ENSProfile) *models.BuilderProfile {
	bio := recordValue(res.Records, "description")
	if bio == "" {
		bio = fmt.Sprintf("%s ENS profile", res.Name)
	}

	site := recordValue(res.Records, "url")
	if site == "" {
		site = recordValue(res.Records, "website")
	}
	github := recordValue(res.Records, "com.github")

	return &models.BuilderProfile{
		Name:         strings.TrimSuffix(res.Name, "."+s.parentDomain),
		ENSName:      res.Name,
		Bio:          bio,
		ProfileImage: profile.Avatar,
		Links: []models.Link{
			{Name: "Site", URL: site},
			{Name: "GitHub", URL: github},
		},
		Socials: models.Socials{
			Twitter: recordValue(res.Records, "com.twitter"),
			GitHub:  github,
		},
		EthAddress:   profile.Address,
		IsENSProfile: true,
		Skills:       profile.Skills,
	}
}

func recordValue(recs []models.TextRecord, key string) string {
	for _, rec := range recs {
		if rec.Key == key {
			return rec.Value
		}
	}
	return ""
}
