package suggester

import (
	"regexp"
	"strings"
)

// EntityFilter is the allow-list of entities that may receive suggestions.
// An empty filter accepts every entity.
type EntityFilter struct {
	accepted []string
}

// NewEntityFilter copies the accepted entity list.
func NewEntityFilter(accepted []string) EntityFilter {
	return EntityFilter{accepted: append([]string(nil), accepted...)}
}

// Accepts reports whether entity may receive suggestions. The requested
// entity is used as a pattern searched for in each accepted name, so
// "Product" is accepted by an allow-list holding "Products". A request that
// is not a valid regular expression is searched for literally.
func (f EntityFilter) Accepts(entity string) bool {
	if len(f.accepted) == 0 {
		return true
	}
	re, err := regexp.Compile(entity)
	for _, name := range f.accepted {
		if err != nil {
			if strings.Contains(name, entity) {
				return true
			}
			continue
		}
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Accepted returns a copy of the allow-list.
func (f EntityFilter) Accepted() []string {
	return append([]string(nil), f.accepted...)
}
