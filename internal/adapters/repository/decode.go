package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
	"github.com/okian/trailboard/pkg/metrics"
)

// decode parses a [name, details] pair document. Duplicate bibs are
// tolerated: each one is logged and counted, the rows are kept.
func decode(ctx context.Context, log logger.Logger, label string, r io.Reader) (types.Dataset, error) {
	var ds types.Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, label, err)
	}
	if ds == nil {
		ds = types.Dataset{}
	}

	dupes := duplicateBibs(ds)
	for _, bib := range dupes {
		log.Warn(ctx, "duplicate bib in dataset",
			logger.String("dataset", label),
			logger.String("bib", bib),
		)
	}
	metrics.RecordDuplicateBibs(label, len(dupes))
	return ds, nil
}

// duplicateBibs returns each bib that occurs more than once, in order of
// its second occurrence.
func duplicateBibs(ds types.Dataset) []string {
	seen := make(map[string]int, len(ds))
	var out []string
	for _, r := range ds {
		seen[r.Bib]++
		if seen[r.Bib] == 2 {
			out = append(out, r.Bib)
		}
	}
	return out
}
