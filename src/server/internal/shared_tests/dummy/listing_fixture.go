package dummy

import (
	"time"

	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/shared/lib/jsonlib"
)

// NewListing builds a valid listing, age sets how long ago it was created
func NewListing(id string, owner string, status listingentity.Status, age time.Duration) listingentity.Listing {
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Add(-age)

	return listingentity.Listing{
		Flatten: jsonlib.Flatten[listingentity.ListingFields]{
			Defined: listingentity.ListingFields{
				ID:           id,
				Owner:        owner,
				Title:        "Listing " + id,
				Description:  "A place to live",
				Address:      id + " Dostyk Ave",
				City:         "Almaty",
				PropertyType: "apartment",
				Rent:         250000,
				Bedrooms:     2,
				Bathrooms:    1,
				Area:         55,
				Amenities:    []string{"wifi"},
				Images:       []string{},
				Status:       status,
				CreatedAt:    &createdAt,
				UpdatedAt:    &createdAt,
			},
			Extra: map[string]any{},
		},
	}
}
