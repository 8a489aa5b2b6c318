package suggester

import (
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/graphsuggest/pkg/engine"
	"github.com/wildfunctions/graphsuggest/pkg/preference"
	"github.com/wildfunctions/graphsuggest/pkg/schema"
)

var (
	northwindItems = map[string][]string{
		"Product": {"ProductID", "ProductName", "SupplierID", "CategoryID", "QuantityPerUnit",
			"UnitPrice", "UnitsInStock", "UnitsOnOrder", "ReorderLevel", "Discontinued"},
		"Category": {"CategoryID", "CategoryName", "Description"},
	}
	northwindAssociations = map[string][]string{
		"Product":  {"Category", "Order_Details", "Supplier"},
		"Category": {"Products"},
	}
	northwindTypes = map[string][]string{
		"Product": {"int", "string", "int", "int", "int",
			"int", "int", "int", "int", "bool"},
		"Category": {"int", "string", "string"},
	}
)

var allGraphTypes = []string{"bar", "line", "pie", "scatter"}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSuggester(t *testing.T, opts ...Option) *Suggester {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	s, err := New(opts...)
	require.NoError(t, err)
	return s
}

func newNorthwind(t *testing.T, opts ...Option) *Suggester {
	t.Helper()
	s := newSuggester(t, opts...)
	require.NoError(t, s.SetMetadata(northwindItems, northwindAssociations, northwindTypes))
	return s
}

func fieldNames(fields []schema.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestGetSuggestions_ProductScenario(t *testing.T) {
	s := newSuggester(t, WithSeed(42))
	require.NoError(t, s.SetMetadata(
		map[string][]string{"Product": {"ID", "Name", "Price"}},
		map[string][]string{"Product": {}},
		map[string][]string{"Product": {"int", "string", "int"}},
	))
	s.SetGraphTypes(allGraphTypes)

	got := s.GetSuggestions("Product")
	require.NotNil(t, got)
	assert.Contains(t, []string{"ID", "Name", "Price"}, got.Field)
	assert.Contains(t, allGraphTypes, got.GraphType)
	assert.Len(t, got.Slice(), 3)
	t.Logf("suggestion: %v", got.Slice())
}

func TestGetSuggestions_MembershipAcrossSeeds(t *testing.T) {
	s := newNorthwind(t)
	s.SetGraphTypes([]string{"bar", "pie"})
	s.ExcludeFields("ProductID", "SupplierID")
	ctx := s.Context()
	allowed := fieldNames(ctx.Candidates("Product"))

	for seed := int64(1); seed <= 50; seed++ {
		got := ctx.Suggest(s.engine, "Product", rand.New(rand.NewSource(seed)))
		require.NotNil(t, got, "seed %d", seed)
		assert.Contains(t, allowed, got.Field, "seed %d", seed)
		assert.Contains(t, []string{"bar", "pie"}, got.GraphType, "seed %d", seed)
	}
}

func TestGetSuggestions_DefaultGraphTypes(t *testing.T) {
	s := newNorthwind(t, WithSeed(3))
	got := s.GetSuggestions("Category")
	require.NotNil(t, got)
	assert.Contains(t, allGraphTypes, got.GraphType)
}

func TestGetSuggestions_NullCases(t *testing.T) {
	s := newSuggester(t, WithSeed(1))
	assert.Nil(t, s.GetSuggestions(""), "absent entity")
	assert.Nil(t, s.GetSuggestions("Product"), "no metadata yet")

	require.NoError(t, s.SetMetadata(northwindItems, northwindAssociations, northwindTypes))
	assert.Nil(t, s.GetSuggestions(""))
	assert.Nil(t, s.GetSuggestions("Order"), "unknown entity")
	assert.NotNil(t, s.GetSuggestions("Product"))

	_, outcome := s.Search("Order")
	assert.Equal(t, OutcomeUnknownEntity, outcome)
	_, outcome = s.Search("")
	assert.Equal(t, OutcomeNoEntity, outcome)
}

func TestGetSuggestions_AllExcluded(t *testing.T) {
	s := newNorthwind(t, WithSeed(1))
	s.ExcludeFields(northwindItems["Category"]...)

	assert.Nil(t, s.GetSuggestions("Category"))
	_, outcome := s.Search("Category")
	assert.Equal(t, OutcomeNoFields, outcome)

	assert.NotNil(t, s.GetSuggestions("Product"), "other entities keep their fields")
}

func TestExclusions_CumulativeAndMonotonic(t *testing.T) {
	s := newNorthwind(t)
	s.ExcludeFields("ProductName")
	s.ExcludeFields("CategoryName")
	s.ExcludeFields("ProductName")

	assert.Equal(t, []string{"CategoryName", "ProductName"}, s.AcceptedFields())

	ctx := s.Context()
	for seed := int64(1); seed <= 40; seed++ {
		for _, entity := range []string{"Product", "Category"} {
			got := ctx.Suggest(s.engine, entity, rand.New(rand.NewSource(seed)))
			require.NotNil(t, got)
			assert.NotEqual(t, "ProductName", got.Field)
			assert.NotEqual(t, "CategoryName", got.Field)
		}
	}

	s.Reset()
	assert.True(t, s.NotInExclusions("ProductName"))
}

func TestGetSuggestions_Deterministic(t *testing.T) {
	a := newNorthwind(t, WithSeed(2024))
	b := newNorthwind(t, WithSeed(2024))
	for _, s := range []*Suggester{a, b} {
		s.SetGraphTypes(allGraphTypes)
		s.ExcludeFields("ProductID")
	}

	first := a.GetSuggestions("Product")
	require.NotNil(t, first)
	assert.Equal(t, first, b.GetSuggestions("Product"))
	assert.Equal(t, first, a.GetSuggestions("Product"), "fixed seed repeats across calls")
}

// winRate runs trials independent searches and counts how often the winner
// uses graphType on a field of a type in wantTypes.
func winRate(t *testing.T, s *Suggester, entity, graphType string, wantTypes map[string]bool, trials int) int {
	t.Helper()
	ctx := s.Context()
	wins := 0
	for i := 0; i < trials; i++ {
		got := ctx.Suggest(s.engine, entity, rand.New(rand.NewSource(int64(i+1))))
		require.NotNil(t, got)
		typ, _ := ctx.Schema.TypeOf(entity, got.Field)
		if got.GraphType == graphType && wantTypes[typ] {
			wins++
		}
	}
	return wins
}

func TestFitnessTarget_Statistical(t *testing.T) {
	s := newSuggester(t)
	require.NoError(t, s.SetMetadata(
		map[string][]string{"Product": {"ID", "Name", "Price", "Discontinued"}},
		nil,
		map[string][]string{"Product": {"int", "string", "int", "bool"}},
	))
	s.SetGraphTypes(allGraphTypes)
	ints := map[string]bool{"int": true}

	baseline := winRate(t, s, "Product", "pie", ints, 100)

	require.True(t, s.ChangeFitnessTarget("pie", "int"))
	targeted := winRate(t, s, "Product", "pie", ints, 100)

	assert.GreaterOrEqual(t, targeted, 80)
	assert.Less(t, baseline, 20)
	t.Logf("pie on an int field: %d/100 without target, %d/100 with target", baseline, targeted)
}

func TestFitnessTarget_StatisticalMixedNumerics(t *testing.T) {
	s := newSuggester(t)
	require.NoError(t, s.SetMetadata(
		map[string][]string{"Order": {"ID", "Freight", "Discount", "Weight", "Name"}},
		nil,
		map[string][]string{"Order": {"int", "decimal", "double", "float", "string"}},
	))
	s.SetGraphTypes(allGraphTypes)
	require.True(t, s.ChangeFitnessTarget("pie", "int"))

	targeted := winRate(t, s, "Order", "pie", map[string]bool{"int": true}, 100)
	assert.GreaterOrEqual(t, targeted, 80, "other numeric types must not share the int bonus")
	t.Logf("pie on the int field among decimal/double/float: %d/100", targeted)
}

func TestChangeFitnessTarget_Contract(t *testing.T) {
	s := newNorthwind(t)
	assert.True(t, s.ChangeFitnessTarget("bar", "int"))
	assert.False(t, s.ChangeFitnessTarget("bar", preference.None))
	assert.Equal(t, "bar", s.Context().Prefs.Target().GraphType)
	assert.True(t, s.ChangeFitnessTarget(preference.None, preference.None))
	assert.Nil(t, s.Context().Prefs.Target())
}

func TestSetFittestEChart(t *testing.T) {
	s := newNorthwind(t)
	s.SetGraphTypes(allGraphTypes)

	option := map[string]any{
		"dataset": map[string]any{
			"source": []any{
				[]any{"CategoryName", "value"},
				[]any{"Beverages", 12.0},
			},
		},
		"series": []any{
			map[string]any{
				"type":   "line",
				"encode": map[string]any{"x": "CategoryName", "y": "value"},
			},
		},
	}
	require.True(t, s.SetFittestEChart(option))
	target := s.Context().Prefs.Target()
	require.NotNil(t, target)
	assert.Equal(t, preference.Target{GraphType: "line", PrimitiveType: "number"}, *target)

	assert.False(t, s.SetFittestEChart(map[string]any{"series": []any{}}))
	assert.NotNil(t, s.Context().Prefs.Target(), "failed deduction keeps the target")

	assert.True(t, s.SetFittestEChart(nil))
	assert.Nil(t, s.Context().Prefs.Target())
}

func TestGeneticAlgorithm(t *testing.T) {
	s := newNorthwind(t, WithSeed(8))

	assert.Nil(t, s.GeneticAlgorithm(nil, "Product"))
	assert.Nil(t, s.GeneticAlgorithm([]string{}, "Product"))

	option := []string{"QuantityPerUnit", "UnitPrice", "UnitsInStock", "UnitsOnOrder", "ReorderLevel", "Discontinued"}
	got := s.GeneticAlgorithm(option, "Product")
	require.NotNil(t, got)
	assert.Len(t, got.Slice(), 3)
	assert.Contains(t, option, got.Field)

	s.ExcludeFields(option...)
	assert.Nil(t, s.GeneticAlgorithm(option, "Product"), "excluded fields never reach the search")
}

func TestGeneticAlgorithm_UnknownTypes(t *testing.T) {
	s := newSuggester(t, WithSeed(8))
	got := s.GeneticAlgorithm([]string{"a", "b"}, "Nowhere")
	require.NotNil(t, got)
	assert.Contains(t, []string{"a", "b"}, got.Field)
}

func TestLimitEntities(t *testing.T) {
	s := newNorthwind(t, WithSeed(5))

	s.LimitEntities([]string{"Products"})
	assert.Equal(t, []string{"Products"}, s.AcceptedEntities())
	assert.NotNil(t, s.GetSuggestions("Product"), "entity is searched for within accepted names")
	assert.Nil(t, s.GetSuggestions("Category"))

	_, outcome := s.Search("Category")
	assert.Equal(t, OutcomeEntityRejected, outcome)

	s.LimitEntities(nil)
	assert.NotNil(t, s.GetSuggestions("Category"))
}

func TestEntityFilter(t *testing.T) {
	assert.True(t, EntityFilter{}.Accepts("anything"))

	f := NewEntityFilter([]string{"Orders", "Product"})
	assert.True(t, f.Accepts("Order"))
	assert.True(t, f.Accepts("Prod.*"))
	assert.False(t, f.Accepts("Category"))
	assert.False(t, f.Accepts("(unbalanced"))

	f = NewEntityFilter([]string{"a(b"})
	assert.True(t, f.Accepts("a(b"), "invalid patterns fall back to literal search")
}

func TestSources(t *testing.T) {
	s := newSuggester(t, WithSeed(4))
	assert.False(t, s.IsInitialised())

	require.NoError(t, s.SetSourceMetadata("northwind", northwindItems, northwindAssociations, northwindTypes))
	require.NoError(t, s.SetSourceMetadata("orders",
		map[string][]string{"Order": {"OrderID", "Freight"}},
		nil,
		map[string][]string{"Order": {"int", "decimal"}},
	))
	assert.True(t, s.IsInitialised())
	assert.Equal(t, []string{"northwind", "orders"}, s.Sources())

	// The first source became current.
	assert.NotNil(t, s.GetSuggestions("Product"))
	assert.Nil(t, s.GetSuggestions("Order"))

	assert.NotNil(t, s.GetSourceSuggestions("orders", "Order"))
	assert.Nil(t, s.GetSuggestions("Order"), "source suggestions leave current metadata alone")
	assert.Nil(t, s.GetSourceSuggestions("missing", "Order"))

	require.NoError(t, s.UseSource("orders"))
	assert.NotNil(t, s.GetSuggestions("Order"))
	assert.ErrorIs(t, s.UseSource("missing"), ErrUnknownSource)

	err := s.SetSourceMetadata("broken",
		map[string][]string{"X": {"a", "b"}}, nil, map[string][]string{"X": {"int"}})
	assert.ErrorIs(t, err, schema.ErrTypeMismatch)
	assert.NotContains(t, s.Sources(), "broken")

	s.ClearMetadata()
	assert.False(t, s.IsInitialised())
	assert.Nil(t, s.GetSuggestions("Order"))
}

func TestSetMetadata_Mismatch(t *testing.T) {
	s := newNorthwind(t, WithSeed(1))
	err := s.SetMetadata(
		map[string][]string{"Product": {"ID", "Name"}},
		nil,
		map[string][]string{"Product": {"int"}},
	)
	assert.ErrorIs(t, err, schema.ErrTypeMismatch)
	assert.Len(t, s.Terminals("Product"), 10, "previous metadata stays current")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	s := newNorthwind(t, WithSeed(6), WithMetrics(m))
	require.NotNil(t, s.GetSuggestions("Product"))
	require.NotNil(t, s.GetSuggestions("Category"))
	assert.Nil(t, s.GetSuggestions("Order"))
	assert.Nil(t, s.GetSuggestions(""))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Suggestions.WithLabelValues(string(OutcomeSuggested))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Suggestions.WithLabelValues(string(OutcomeUnknownEntity))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Suggestions.WithLabelValues(string(OutcomeNoEntity))))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BestScore))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Generations))

	assert.Error(t, m.Register(reg), "double registration is rejected")
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Strategy = "nonexistent"
	_, err := New(WithConfig(cfg), WithLogger(quietLogger()))
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestWithSeed_AnyOptionOrder(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Population = 20
	orders := [][]Option{
		{WithSeed(42), WithConfig(cfg)},
		{WithConfig(cfg), WithSeed(42)},
	}
	for i, opts := range orders {
		s := newNorthwind(t, opts...)
		report, outcome := s.Search("Product")
		require.Equal(t, OutcomeSuggested, outcome, "order %d", i)
		assert.Equal(t, int64(42), report.Seed, "order %d", i)
		assert.Equal(t, 20, s.engine.Config().Population, "order %d", i)
	}
}

func TestGetSuggestions_EChartsCatalogue(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Catalogue = "echarts"
	s := newNorthwind(t, WithConfig(cfg), WithSeed(5))
	assert.Contains(t, s.Context().GraphTypes(), "funnel")
	assert.NotContains(t, newNorthwind(t).Context().GraphTypes(), "funnel")

	require.True(t, s.ChangeFitnessTarget("funnel", "string"))
	got := s.GetSuggestions("Category")
	require.NotNil(t, got)
	assert.Equal(t, "funnel", got.GraphType)
	assert.Contains(t, []string{"CategoryName", "Description"}, got.Field)

	s.SetGraphTypes(allGraphTypes)
	assert.NotContains(t, s.Context().GraphTypes(), "funnel", "explicit graph types win over the catalogue")
}

func TestWithRandSource(t *testing.T) {
	calls := 0
	s := newNorthwind(t, WithRandSource(func() engine.Rand {
		calls++
		return rand.New(rand.NewSource(10))
	}))

	first := s.GetSuggestions("Product")
	second := s.GetSuggestions("Product")
	assert.Equal(t, first, second)
	assert.Equal(t, 2, calls)
}

func TestContext_ConcurrentSearches(t *testing.T) {
	s := newNorthwind(t)
	s.SetGraphTypes(allGraphTypes)
	ctx := s.Context()
	want := ctx.Suggest(s.engine, "Product", rand.New(rand.NewSource(99)))
	require.NotNil(t, want)

	var wg sync.WaitGroup
	results := make(chan bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := ctx.Suggest(s.engine, "Product", rand.New(rand.NewSource(99)))
			results <- got != nil && *got == *want
		}()
	}

	// Configuration changes after the snapshot must not leak into it.
	s.ExcludeFields(want.Field)
	s.SetGraphTypes([]string{"funnel"})

	wg.Wait()
	close(results)
	for ok := range results {
		assert.True(t, ok)
	}
}
