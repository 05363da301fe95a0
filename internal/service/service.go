// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// loggerFrom returns the request-scoped logger stored by the context
// enhancer middleware.
func loggerFrom(ctx context.Context, operation string) zerolog.Logger {
	return zerolog.Ctx(ctx).With().Str("operation", operation).Logger()
}

// changedFields lists the columns of an update, sorted for stable logs.
func changedFields(changes map[string]any) []string {
	fields := lo.Keys(changes)
	sort.Strings(fields)
	return fields
}

func codePtr(code string) *string {
	return &code
}
