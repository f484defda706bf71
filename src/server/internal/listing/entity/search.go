package listingentity

import (
	"strings"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 50
)

type SearchParams struct {
	Query         string
	City          string
	PropertyTypes []string
	MinRent       *float64
	MaxRent       *float64
	MinBedrooms   *int
	Amenities     []string
	Limit         int
	Cursor        string
}

type Page struct {
	Listings   []Listing `json:"listings"`
	NextCursor string    `json:"nextCursor"`
}

// Normalized lowercases every text filter the same way the stored search
// attributes are lowercased, and clamps the page size
func (s SearchParams) Normalized() SearchParams {
	normalized := s
	normalized.Query = strings.ToLower(strings.TrimSpace(s.Query))
	normalized.City = strings.ToLower(strings.TrimSpace(s.City))
	normalized.PropertyTypes = lowerAll(s.PropertyTypes)
	normalized.Amenities = lowerAll(s.Amenities)

	switch {
	case normalized.Limit <= 0:
		normalized.Limit = DefaultPageSize
	case normalized.Limit > MaxPageSize:
		normalized.Limit = MaxPageSize
	}

	return normalized
}

// Matches reports whether a listing satisfies every filter in s. It expects
// normalized params.
func (s SearchParams) Matches(l Listing) bool {
	if s.Query != "" && !strings.Contains(l.SearchText(), s.Query) {
		return false
	}

	if s.City != "" && l.CityKey() != s.City {
		return false
	}

	if len(s.PropertyTypes) > 0 && !contains(s.PropertyTypes, l.Defined.PropertyType) {
		return false
	}

	if s.MinRent != nil && l.Defined.Rent < *s.MinRent {
		return false
	}

	if s.MaxRent != nil && l.Defined.Rent > *s.MaxRent {
		return false
	}

	if s.MinBedrooms != nil && l.Defined.Bedrooms < *s.MinBedrooms {
		return false
	}

	for _, amenity := range s.Amenities {
		if !contains(l.Defined.Amenities, amenity) {
			return false
		}
	}

	return true
}

func lowerAll(values []string) []string {
	lowered := []string{}
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value != "" {
			lowered = append(lowered, value)
		}
	}

	return lowered
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}

	return false
}
