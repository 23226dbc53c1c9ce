package artran

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// TranslateAll translates records concurrently, at most WithRecordConcurrency
// at a time, and returns one result per record in input order. Records share
// the translator's cache, so text repeated across records is fetched once.
//
// The returned error joins the errors of nil records; every slot still holds
// a result, a placeholder for those records.
func (t *RecordTranslator) TranslateAll(ctx context.Context, records []*Record, to string) ([]*RecordResult, error) {
	results := make([]*RecordResult, len(records))
	errs := make([]error, len(records))

	var g errgroup.Group
	g.SetLimit(t.recordConcurrency)
	for i, rec := range records {
		g.Go(func() error {
			results[i], errs[i] = t.TranslateDetailed(ctx, rec, to)
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}
