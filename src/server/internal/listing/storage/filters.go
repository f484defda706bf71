package listingstorage

import (
	"strings"

	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
)

// FilterClause is one guregu/dynamo filter expression; $ stands for an
// attribute name and ? for a value, in the order of Args
type FilterClause struct {
	Expr string
	Args []any
}

// SearchFilters translates normalized search params into filter clauses that
// are ANDed together, mirroring SearchParams.Matches
func SearchFilters(params listingentity.SearchParams) []FilterClause {
	clauses := []FilterClause{}

	if params.Query != "" {
		clauses = append(clauses, FilterClause{
			Expr: "contains($, ?)",
			Args: []any{searchTextKey, params.Query},
		})
	}

	if params.City != "" {
		clauses = append(clauses, FilterClause{
			Expr: "$ = ?",
			Args: []any{cityKey, params.City},
		})
	}

	if len(params.PropertyTypes) > 0 {
		placeholders := make([]string, len(params.PropertyTypes))
		args := []any{propertyKey}
		for i, propertyType := range params.PropertyTypes {
			placeholders[i] = "?"
			args = append(args, propertyType)
		}

		clauses = append(clauses, FilterClause{
			Expr: "$ IN (" + strings.Join(placeholders, ", ") + ")",
			Args: args,
		})
	}

	if params.MinRent != nil {
		clauses = append(clauses, FilterClause{
			Expr: "$ >= ?",
			Args: []any{rentKey, *params.MinRent},
		})
	}

	if params.MaxRent != nil {
		clauses = append(clauses, FilterClause{
			Expr: "$ <= ?",
			Args: []any{rentKey, *params.MaxRent},
		})
	}

	if params.MinBedrooms != nil {
		clauses = append(clauses, FilterClause{
			Expr: "$ >= ?",
			Args: []any{bedroomsKey, *params.MinBedrooms},
		})
	}

	for _, amenity := range params.Amenities {
		clauses = append(clauses, FilterClause{
			Expr: "contains($, ?)",
			Args: []any{amenitiesKey, amenity},
		})
	}

	return clauses
}
