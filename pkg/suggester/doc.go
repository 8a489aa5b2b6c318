// Package suggester recommends a chart for an entity of a data source.
//
// A Suggester is configured once per data source or session: metadata via
// SetMetadata (or SetSourceMetadata for several sources), then optional
// preferences via ExcludeFields, SetGraphTypes, ChangeFitnessTarget or
// SetFittestEChart. GetSuggestions then runs a genetic search over the
// entity's non-excluded terminal fields and the allowed chart types and
// returns the best pair found:
//
//	s, _ := suggester.New(suggester.WithSeed(42))
//	_ = s.SetMetadata(items, associations, types)
//	s.SetGraphTypes([]string{"bar", "line", "pie", "scatter"})
//	if t := s.GetSuggestions("Product"); t != nil {
//		fmt.Println(t.Field, t.GraphType, t.Score)
//	}
//
// A nil result means no suggestion is available: the entity is empty,
// unknown or not accepted, metadata was never set, or every field is
// excluded. Callers should show an empty state rather than fail.
//
// Each request snapshots the configuration into a Context. Context.Search
// can also be called directly with a caller-owned random source, which is
// how reproducible searches are run concurrently.
package suggester
