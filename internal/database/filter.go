package database

import (
	"strings"

	"github.com/asdine/storm/v3/q"
	"github.com/pkg/errors"
)

// A Filter shapes a findAll query: an offset-based window plus an optional
// free-text term matched as a case-insensitive substring against the target
// entity's name field.
//
// An empty Search term applies no filtering at all, which is the same result
// a trivial empty-substring match would yield. Counts never use a Filter.
type Filter struct {
	// Limit is the maximum number of records returned. Required, positive.
	Limit int
	// Offset is the number of matching records skipped. Defaults to 0.
	// The window is only stable while the underlying records are not
	// reordered between calls.
	Offset int
	// Search is an optional substring term.
	Search string
}

// Validate checks the filter window bounds.
func (f Filter) Validate() error {
	if f.Limit <= 0 {
		return errors.New("filter: limit must be positive")
	}
	if f.Offset < 0 {
		return errors.New("filter: offset must not be negative")
	}
	return nil
}

// ContainsFold returns a matcher that matches fields containing the given
// term, case-insensitively. It is a plain substring match, not a prefix nor
// a tokenized one.
func ContainsFold(field, term string) q.Matcher {
	return q.NewFieldMatcher(field, &containsFold{term: strings.ToLower(term)})
}

type containsFold struct {
	term string
}

func (m *containsFold) MatchField(v interface{}) (bool, error) {
	s, ok := v.(string)
	if !ok {
		return false, errors.Errorf("only string fields can be matched with ContainsFold (got %T)", v)
	}
	return strings.Contains(strings.ToLower(s), m.term), nil
}

// IntersectsAny returns a matcher that matches string-set fields sharing at
// least one element with the given set.
func IntersectsAny(field string, set []string) q.Matcher {
	return q.NewFieldMatcher(field, &intersectsAny{set: set})
}

type intersectsAny struct {
	set []string
}

func (m *intersectsAny) MatchField(v interface{}) (bool, error) {
	held, ok := v.([]string)
	if !ok {
		return false, errors.Errorf("only []string fields can be matched with IntersectsAny (got %T)", v)
	}

	for _, want := range m.set {
		for _, got := range held {
			if want == got {
				return true, nil
			}
		}
	}
	return false, nil
}
