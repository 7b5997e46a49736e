package bookingbus

import (
	"context"
	"fmt"
	"sort"

	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/status"
	"github.com/jcpaschoal/smartroom/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Resolver finds confirmed bookings that collide with a candidate slot. It
// holds no state between calls.
type Resolver struct {
	storer Storer
}

// NewResolver constructs a resolver reading from the specified store.
func NewResolver(storer Storer) *Resolver {
	return &Resolver{
		storer: storer,
	}
}

// FindOverlapping returns every confirmed booking in the scope whose
// interval overlaps rng, ordered by start time then id. The store query is
// only trusted to narrow the candidates; the overlap predicate is applied
// here again.
func (r *Resolver) FindOverlapping(ctx context.Context, scope Scope, rng clock.Range) ([]Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.findOverlapping",
		attribute.String("scope", scope.String()),
		attribute.String("range", rng.String()),
	)
	defer span.End()

	candidates, err := r.storer.QueryOverlapping(ctx, scope, rng)
	if err != nil {
		return nil, fmt.Errorf("queryoverlapping: %w", err)
	}

	var overlapping []Booking
	for _, bkg := range candidates {
		if !bkg.Status.Equal(status.Confirmed) {
			continue
		}

		if !bkg.Scope().Equal(scope) {
			continue
		}

		if !bkg.Range.Overlaps(rng) {
			continue
		}

		overlapping = append(overlapping, bkg)
	}

	sort.Slice(overlapping, func(i, j int) bool {
		a, b := overlapping[i], overlapping[j]
		if !a.Range.Start.Equal(b.Range.Start) {
			return a.Range.Start.Before(b.Range.Start)
		}
		return a.ID.String() < b.ID.String()
	})

	return overlapping, nil
}
