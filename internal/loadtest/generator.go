package loadtest

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
)

// Probabilities of leaving a criterion unset.
const (
	anyNationality = 0.5
	anyCategory    = 0.6
	noSearch       = 0.7
	maxPage        = 3
)

// searchTokens are short fragments likely to hit names and bibs.
var searchTokens = []string{"a", "an", "ar", "en", "o", "1", "10", "2", "20", "ZZZ"}

var pageSizes = []int{0, 5, 10, 20}

var genders = []types.Gender{"", types.Male, types.Female}

// generateQueries builds n queries whose filter values come from the
// server's own facets, so most of them can match something.
func generateQueries(ctx context.Context, rng *rand.Rand, facets map[types.Distance]types.Facets, n int) []Query {
	distances := make([]types.Distance, 0, len(facets))
	for d := range facets {
		distances = append(distances, d)
	}
	slices.Sort(distances)
	if len(distances) == 0 || n <= 0 {
		return nil
	}

	queries := make([]Query, n)
	for i := range queries {
		d := distances[rng.IntN(len(distances))]
		f := facets[d]
		q := Query{
			Distance: d,
			Gender:   genders[rng.IntN(len(genders))],
			Page:     1 + rng.IntN(maxPage),
			PageSize: pageSizes[rng.IntN(len(pageSizes))],
		}
		if len(f.Nationalities) > 0 && rng.Float64() >= anyNationality {
			q.Nationality = f.Nationalities[rng.IntN(len(f.Nationalities))]
		}
		if len(f.Categories) > 0 && rng.Float64() >= anyCategory {
			q.Category = f.Categories[rng.IntN(len(f.Categories))]
		}
		if rng.Float64() >= noSearch {
			q.Search = searchTokens[rng.IntN(len(searchTokens))]
		}
		queries[i] = q
	}

	logger.Get().Debug(ctx, "queries generated", logger.Int("count", n), logger.Int("distances", len(distances)))
	return queries
}
