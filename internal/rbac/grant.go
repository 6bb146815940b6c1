package rbac

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// TagView marks the route itself as visible. Any other tag in a route's tag
// set names a granted tab.
const TagView = "view"

// TagSet is the set of tags granted for one route.
type TagSet map[string]struct{}

// NewTagSet builds a tag set from a list of tags.
func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether the set contains tag.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// List returns the tags sorted, for stable output.
func (s TagSet) List() []string {
	tags := make([]string, 0, len(s))
	for t := range s {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Clone returns an independent copy.
func (s TagSet) Clone() TagSet {
	out := make(TagSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted string array, the canonical wire
// shape.
func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON accepts both wire shapes: the canonical string array and the
// legacy boolean (true means {"view"}, false means empty).
func (s *TagSet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err == nil {
		*s = NewTagSet(tags...)
		return nil
	}

	var granted bool
	if err := json.Unmarshal(data, &granted); err == nil {
		if granted {
			*s = NewTagSet(TagView)
		} else {
			*s = TagSet{}
		}
		return nil
	}

	return fmt.Errorf("rbac: tag set must be a string array or a boolean, got %s", data)
}

// Grant is a per-user permission record mapping route ids to granted tags.
// Route ids not present in the registry are inert: they never make anything
// visible.
type Grant map[string]TagSet

// Has reports whether the grant holds tag for routeID.
func (g Grant) Has(routeID, tag string) bool {
	return g[routeID].Has(tag)
}

// Clone returns a deep copy, so drafts can be edited without touching the
// original.
func (g Grant) Clone() Grant {
	out := make(Grant, len(g))
	for routeID, tags := range g {
		out[routeID] = tags.Clone()
	}
	return out
}

// Equal reports whether two grants hold exactly the same tags.
func (g Grant) Equal(other Grant) bool {
	if len(g) != len(other) {
		return false
	}
	for routeID, tags := range g {
		otherTags, ok := other[routeID]
		if !ok || len(tags) != len(otherTags) {
			return false
		}
		for t := range tags {
			if !otherTags.Has(t) {
				return false
			}
		}
	}
	return true
}

// Value implements driver.Valuer so a grant can be stored in a JSONB column.
func (g Grant) Value() (driver.Value, error) {
	if g == nil {
		g = Grant{}
	}
	return json.Marshal(g)
}

// Scan implements sql.Scanner. Legacy rows written in the boolean-map shape
// are normalized on read via TagSet.UnmarshalJSON.
func (g *Grant) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*g = Grant{}
		return nil
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	default:
		return fmt.Errorf("rbac: cannot scan %T into Grant", src)
	}
}
