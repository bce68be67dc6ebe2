package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/domain"
)

var ErrUnknownEnum = errors.New("unknown enum")

type fallbackEnumSource struct {
	primary  app.EnumSource
	observer UseCaseObserver
}

// NewFallbackEnumSource serves enum options from primary, falling back to
// the built-in defaults when primary is nil, fails or returns nothing.
func NewFallbackEnumSource(primary app.EnumSource, observers ...UseCaseObserver) app.EnumSource {
	return &fallbackEnumSource{primary: primary, observer: joinObservers(observers)}
}

func (s *fallbackEnumSource) ListEnum(ctx context.Context, name string) ([]domain.EnumOption, error) {
	defaults, known := domain.DefaultEnumOptions(name)
	if s.primary == nil {
		if !known {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknownEnum)
		}
		return defaults, nil
	}

	start := time.Now()
	opts, err := s.primary.ListEnum(ctx, name)
	fields := map[string]any{"enum": name, "count": len(opts)}
	if err == nil && len(opts) > 0 {
		observe(ctx, s.observer, "enum.list", start, nil, fields)
		return opts, nil
	}
	if !known {
		if err == nil {
			err = fmt.Errorf("%s: %w", name, ErrUnknownEnum)
		}
		observe(ctx, s.observer, "enum.list", start, err, fields)
		return nil, err
	}
	fields["fallback"] = true
	observe(ctx, s.observer, "enum.list", start, err, fields)
	return defaults, nil
}
