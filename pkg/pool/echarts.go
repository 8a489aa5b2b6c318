package pool

import "github.com/wildfunctions/graphsuggest/pkg/chart"

func init() {
	Register("echarts", func() Catalogue { return &EChartsCatalogue{} })
}

// EChartsCatalogue extends basic with the ECharts series types that take a
// single value column: effectScatter and funnel.
type EChartsCatalogue struct{}

func (c *EChartsCatalogue) Name() string { return "echarts" }

var echartsGraphTypes = []string{
	chart.Bar,
	chart.Line,
	chart.Pie,
	chart.Scatter,
	chart.EffectScatter,
	chart.Funnel,
}

func (c *EChartsCatalogue) GraphTypes() []string {
	return append([]string(nil), echartsGraphTypes...)
}
