package build_matrix

import (
	"context"

	"github.com/light-bringer/rategrid-service/internal/app/rates/matrix"
)

// Query handles the build rate matrix query use case.
type Query struct {
	builder *matrix.Builder
}

// NewQuery creates a new build matrix query.
func NewQuery(builder *matrix.Builder) *Query {
	return &Query{
		builder: builder,
	}
}

// Execute builds the resolved rate grid for the requested window.
func (q *Query) Execute(ctx context.Context, req matrix.Request) (*matrix.Matrix, error) {
	return q.builder.Build(ctx, req)
}
