package chart

import (
	"encoding/json"
	"errors"
	"strings"
)

// Errors returned by TargetFromEChart.
var (
	ErrNoSeries      = errors.New("option has no series")
	ErrNoDataset     = errors.New("option has no dataset source")
	ErrEmptyDataset  = errors.New("dataset source has no data rows")
	ErrNoEncode      = errors.New("series has no encode")
	ErrNoValueColumn = errors.New("cannot determine which column holds values")
)

// TargetFromEChart deduces a fitness target from an ECharts option the user
// approved: the chart type of the first series and the JavaScript-style type
// name ("number", "string", "boolean", "object") of the value column in the
// first data row.
func TargetFromEChart(option map[string]any) (graphType, primitiveType string, err error) {
	seriesList, ok := asSlice(option["series"])
	if !ok || len(seriesList) == 0 {
		return "", "", ErrNoSeries
	}
	series, ok := asMap(seriesList[0])
	if !ok {
		return "", "", ErrNoSeries
	}
	graphType, _ = series["type"].(string)
	if graphType == "" {
		return "", "", ErrNoSeries
	}

	dataset, ok := asMap(option["dataset"])
	if !ok {
		return "", "", ErrNoDataset
	}
	source, ok := asSlice(dataset["source"])
	if !ok {
		return "", "", ErrNoDataset
	}
	// Row 0 is the header.
	if len(source) <= 1 {
		return "", "", ErrEmptyDataset
	}
	row, ok := asSlice(source[1])
	if !ok || len(row) == 0 {
		return "", "", ErrEmptyDataset
	}

	encode, ok := asMap(series["encode"])
	if !ok || len(encode) == 0 {
		return "", "", ErrNoEncode
	}

	idx := valueColumn(encode)
	if idx < 0 || idx >= len(row) {
		return "", "", ErrNoValueColumn
	}
	return graphType, typeName(row[idx]), nil
}

// valueColumn finds the index, within a data row, of the column that holds
// values rather than labels.
func valueColumn(encode map[string]any) int {
	x, hasX := encode["x"]
	y, hasY := encode["y"]
	switch {
	case hasX && hasY:
		if mentions(x, "value") {
			return 0
		}
		return 1
	case hasX && mentions(x, "value"):
		return 0
	case hasY && mentions(y, "value"):
		return 1
	}
	if _, ok := encode["value"]; ok {
		// Pie-like series encode {itemName, value}; the value follows the name.
		if _, named := encode["itemName"]; named {
			return 1
		}
		return 0
	}
	return -1
}

func mentions(v any, name string) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(t, name)
	case []string:
		for _, s := range t {
			if s == name {
				return true
			}
		}
	case []any:
		for _, s := range t {
			if s == name {
				return true
			}
		}
	}
	return false
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	default:
		return "object"
	}
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out, true
	case [][]any:
		out := make([]any, len(t))
		for i, r := range t {
			out[i] = r
		}
		return out, true
	}
	return nil, false
}
