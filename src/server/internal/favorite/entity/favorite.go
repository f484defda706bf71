package favoriteentity

import (
	"context"
	"time"

	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
)

// MaxMergeSize caps how many guest favorites can be merged in one request
const MaxMergeSize = 100

type Favorite struct {
	UserID    string
	ListingID string
	SavedAt   time.Time
}

type MergeRequest struct {
	ListingIDs []string `json:"listingIds" validate:"max=100,dive,required"`
}

// Summary is what a favorites page renders for each saved listing
type Summary struct {
	ListingID    string               `json:"listingId"`
	SavedAt      time.Time            `json:"savedAt"`
	Title        string               `json:"title"`
	City         string               `json:"city"`
	PropertyType string               `json:"propertyType"`
	Rent         float64              `json:"rent"`
	Bedrooms     int                  `json:"bedrooms"`
	Status       listingentity.Status `json:"status"`
	Thumbnail    string               `json:"thumbnail"`
}

func NewSummary(favorite Favorite, listing listingentity.Listing) Summary {
	thumbnail := ""
	if len(listing.Defined.Images) > 0 {
		thumbnail = listing.Defined.Images[0]
	}

	return Summary{
		ListingID:    listing.Defined.ID,
		SavedAt:      favorite.SavedAt,
		Title:        listing.Defined.Title,
		City:         listing.Defined.City,
		PropertyType: listing.Defined.PropertyType,
		Rent:         listing.Defined.Rent,
		Bedrooms:     listing.Defined.Bedrooms,
		Status:       listing.Defined.Status,
		Thumbnail:    thumbnail,
	}
}

type Store interface {
	// GetFavorites returns the user's favorites, most recently saved first
	GetFavorites(ctx context.Context, userID string) ([]Favorite, error)
	PutFavorites(ctx context.Context, favorites []Favorite) error
	DeleteFavorite(ctx context.Context, userID string, listingID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
