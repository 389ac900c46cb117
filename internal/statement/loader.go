package statement

import (
	"context"
	"errors"
	"time"

	"github.com/Tinclon/transaction-tracker/internal/ledger"
	"github.com/Tinclon/transaction-tracker/internal/logging"
	"github.com/Tinclon/transaction-tracker/internal/models"
	"github.com/Tinclon/transaction-tracker/internal/parsererror"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent source reads when no limit is configured.
const DefaultWorkers = 4

// LoadResult is the merged outcome of reading every source.
type LoadResult struct {
	// Transactions is the deduplicated set sorted by date.
	Transactions []models.Transaction
	// Sources lists the names of sources that were merged, in merge order.
	Sources []string
	// Collisions counts rows superseded by an identical row.
	Collisions int
	// Failed holds one error per rejected source.
	Failed []*parsererror.SourceError
}

// Loader reads statement sources concurrently and merges them once all of
// them have finished.
type Loader struct {
	normalizer *ledger.Normalizer
	workers    int
	logger     logging.Logger
}

// NewLoader creates a Loader. workers below 1 selects DefaultWorkers.
func NewLoader(normalizer *ledger.Normalizer, workers int, logger logging.Logger) *Loader {
	if normalizer == nil {
		normalizer = ledger.NewNormalizer("")
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Loader{
		normalizer: normalizer,
		workers:    workers,
		logger:     logging.OrDefault(logger),
	}
}

type sourceOutcome struct {
	transactions []models.Transaction
	err          error
}

// Load reads and normalizes every source, then merges the accepted ones in
// the order given. A source with any malformed row contributes nothing; its
// failure is recorded in the result and returned joined with the others.
// The result is valid even when the error is non-nil.
func (l *Loader) Load(ctx context.Context, sources []Source) (*LoadResult, error) {
	start := time.Now()
	outcomes := make([]sourceOutcome, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, src := range sources {
		g.Go(func() error {
			outcomes[i] = l.readSource(gctx, src)
			return nil
		})
	}
	// Per-source failures are carried in outcomes, so Wait only acts as the barrier.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dedup := ledger.NewDeduplicator(l.logger)
	result := &LoadResult{}
	var errs []error
	for i, src := range sources {
		outcome := outcomes[i]
		if outcome.err != nil {
			srcErr := &parsererror.SourceError{Source: src.Name(), Err: outcome.err}
			result.Failed = append(result.Failed, srcErr)
			errs = append(errs, srcErr)
			l.logger.WithError(outcome.err).Warn("Statement source rejected",
				logging.Field{Key: logging.FieldSource, Value: src.Name()})
			continue
		}
		dedup.AddAll(outcome.transactions)
		result.Sources = append(result.Sources, src.Name())
	}

	result.Transactions = dedup.Transactions()
	result.Collisions = dedup.Collisions()

	l.logger.Info("Statements loaded",
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: "sources", Value: len(result.Sources)},
		logging.Field{Key: "failed_sources", Value: len(result.Failed)},
		logging.Field{Key: "collisions", Value: result.Collisions},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})

	return result, errors.Join(errs...)
}

func (l *Loader) readSource(ctx context.Context, src Source) sourceOutcome {
	rows, err := src.Read(ctx)
	if err != nil {
		return sourceOutcome{err: err}
	}
	transactions, err := l.normalizer.NormalizeAll(src.Name(), rows)
	if err != nil {
		return sourceOutcome{err: err}
	}
	l.logger.Debug("Statement source read",
		logging.Field{Key: logging.FieldSource, Value: src.Name()},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return sourceOutcome{transactions: transactions}
}
