package pool

import "github.com/wildfunctions/graphsuggest/pkg/chart"

func init() {
	Register("basic", func() Catalogue { return &BasicCatalogue{} })
}

// BasicCatalogue provides the four chart types every renderer supports.
type BasicCatalogue struct{}

func (c *BasicCatalogue) Name() string { return "basic" }

var basicGraphTypes = []string{
	chart.Bar,
	chart.Line,
	chart.Pie,
	chart.Scatter,
}

func (c *BasicCatalogue) GraphTypes() []string {
	return append([]string(nil), basicGraphTypes...)
}
