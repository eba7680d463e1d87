package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/talvik-analytics/shipkpi/internal/config"
	"github.com/talvik-analytics/shipkpi/internal/domain"
)

func sampleKey() CalcKey {
	return CalcKey{
		Dataset:   "abc123",
		Sheet:     "Sheet1",
		HeaderRow: -1,
		Mapping:   domain.FieldMapping{domain.FieldOrderDate: "Order Date"},
		Rules:     domain.DefaultRules(),
		Filters:   domain.DefaultFilters(),
	}
}

func TestBuildResultKeyIsStable(t *testing.T) {
	first := buildResultKey(sampleKey())
	second := buildResultKey(sampleKey())
	if first != second {
		t.Fatalf("expected identical keys for identical inputs: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, resultKeyPrefix+":") {
		t.Fatalf("expected key under the result prefix, got %q", first)
	}
}

func TestBuildResultKeyVariesWithInputs(t *testing.T) {
	base := buildResultKey(sampleKey())

	changed := sampleKey()
	changed.Filters.MonthBasis = domain.BasisOrder
	if buildResultKey(changed) == base {
		t.Fatalf("expected a different key when the filters change")
	}

	changed = sampleKey()
	changed.HeaderRow = 3
	if buildResultKey(changed) == base {
		t.Fatalf("expected a different key when the header row changes")
	}
}

func TestNewResultCacheDisabledIsNoop(t *testing.T) {
	c, err := NewResultCache(config.CacheConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewResultCache failed: %v", err)
	}

	ctx := context.Background()
	if err := c.Set(ctx, sampleKey(), &domain.CalculationResult{}); err != nil {
		t.Fatalf("noop Set failed: %v", err)
	}
	if _, ok, err := c.Get(ctx, sampleKey()); err != nil || ok {
		t.Fatalf("expected noop Get to miss, got ok=%v err=%v", ok, err)
	}
	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("noop InvalidateAll failed: %v", err)
	}
}
