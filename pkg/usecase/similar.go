package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
)

// FindSimilar returns up to limit historical cases ranked by feature
// similarity to the profile, most similar first. It is read only and never
// modifies case history or weights.
func (uc *UseCases) FindSimilar(ctx context.Context, profile *model.Profile, limit int) ([]model.SimilarCase, error) {
	if profile == nil || profile.IsZero() {
		return nil, goerr.Wrap(ErrEmptyProfile, "cannot search with an empty profile")
	}
	return uc.similarTo(ctx, model.ProfileFeatures(profile), limit)
}

func (uc *UseCases) similarTo(ctx context.Context, features map[string]float64, limit int) ([]model.SimilarCase, error) {
	if limit <= 0 {
		return nil, nil
	}

	records, err := uc.repo.Cases().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load case history")
	}

	type scored struct {
		record     *model.CaseRecord
		similarity float64
	}
	ranked := make([]scored, 0, len(records))
	for _, record := range records {
		ranked = append(ranked, scored{
			record:     record,
			similarity: model.FeatureSimilarity(features, record.Features),
		})
	}

	// Most similar first, recency breaks ties
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].similarity != ranked[j].similarity {
			return ranked[i].similarity > ranked[j].similarity
		}
		return ranked[i].record.CreatedAt.After(ranked[j].record.CreatedAt)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	similar := make([]model.SimilarCase, 0, len(ranked))
	for _, s := range ranked {
		similar = append(similar, model.SimilarCase{
			CaseID:         s.record.ID,
			Similarity:     s.similarity,
			Recommendation: s.record.Recommendation,
			Outcome:        s.record.Outcome,
		})
	}
	return similar, nil
}
