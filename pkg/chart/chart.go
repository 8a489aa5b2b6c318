// Package chart describes chart types and how well each one encodes a
// kind of field.
package chart

import "strings"

// Chart type identifiers, as used by ECharts series.
const (
	Bar           = "bar"
	Line          = "line"
	Pie           = "pie"
	Scatter       = "scatter"
	EffectScatter = "effectScatter"
	Funnel        = "funnel"
)

// Category groups primitive types by how they are naturally plotted.
type Category int

const (
	Unknown Category = iota
	Categorical
	Numeric
	Temporal
)

func (c Category) String() string {
	switch c {
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	case Temporal:
		return "temporal"
	default:
		return "unknown"
	}
}

var categories = map[string]Category{
	"string":  Categorical,
	"bool":    Categorical,
	"boolean": Categorical,
	"guid":    Categorical,
	"char":    Categorical,
	"enum":    Categorical,

	"int":     Numeric,
	"int16":   Numeric,
	"int32":   Numeric,
	"int64":   Numeric,
	"integer": Numeric,
	"byte":    Numeric,
	"sbyte":   Numeric,
	"float":   Numeric,
	"single":  Numeric,
	"double":  Numeric,
	"decimal": Numeric,
	"number":  Numeric,
	"bigint":  Numeric,

	"date":           Temporal,
	"datetime":       Temporal,
	"datetimeoffset": Temporal,
	"time":           Temporal,
	"timeofday":      Temporal,
	"duration":       Temporal,
	"timestamp":      Temporal,
}

// CategoryOf classifies a primitive type name. Matching ignores case and an
// OData "Edm." prefix, so "Edm.Int32" and "int32" are the same.
func CategoryOf(primitiveType string) Category {
	return categories[normalize(primitiveType)]
}

func normalize(primitiveType string) string {
	t := strings.ToLower(strings.TrimSpace(primitiveType))
	return strings.TrimPrefix(t, "edm.")
}

// Compatibility scores range from MinCompatibility to MaxCompatibility.
const (
	MinCompatibility = 0.0
	MaxCompatibility = 3.0
)

// neutral is the score of any pairing the table does not list.
const neutral = 1.0

var compatibility = map[string][4]float64{
	//             Unknown Categorical Numeric Temporal
	Bar:           {1, 3, 2, 2},
	Pie:           {1, 3, 1, 0},
	Funnel:        {1, 2, 1, 0},
	Line:          {1, 1, 3, 3},
	Scatter:       {1, 0, 3, 1},
	EffectScatter: {1, 0, 3, 1},
}

// Compatibility returns how naturally graphType encodes a field of category c.
func Compatibility(graphType string, c Category) float64 {
	row, ok := compatibility[graphType]
	if !ok || c < Unknown || c > Temporal {
		return neutral
	}
	return row[c]
}

// jsTypes are the JavaScript typeof names TargetFromEChart reports.
var jsTypes = map[string]bool{"number": true, "string": true, "boolean": true}

// JSType returns the JavaScript typeof name of a value of primitiveType, or
// "" when the type is unknown.
func JSType(primitiveType string) string {
	t := normalize(primitiveType)
	if t == "bool" || t == "boolean" {
		return "boolean"
	}
	switch categories[t] {
	case Numeric:
		return "number"
	case Categorical, Temporal:
		return "string"
	}
	return ""
}

// TypeMatches reports whether a field declared as declared satisfies the
// target primitive type. Names are compared ignoring case and an "Edm."
// prefix, so "Edm.Int32" matches "int32" but not "decimal". A JavaScript
// typeof target such as "number" matches every declared type whose values
// have that typeof.
func TypeMatches(declared, target string) bool {
	d, t := normalize(declared), normalize(target)
	if d == t {
		return true
	}
	return jsTypes[t] && JSType(d) == t
}
