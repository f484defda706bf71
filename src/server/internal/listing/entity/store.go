package listingentity

import (
	"context"
	"time"
)

type Store interface {
	GetListing(ctx context.Context, listingID string) (Listing, error)
	// GetListings skips IDs that don't exist and doesn't preserve order
	GetListings(ctx context.Context, listingIDs []string) ([]Listing, error)
	GetListingsForOwner(ctx context.Context, ownerID string) ([]Listing, error)
	GetListingsByAddress(ctx context.Context, addressKey string) ([]Listing, error)
	SearchListings(ctx context.Context, status Status, params SearchParams) (Page, error)
	CreateListing(ctx context.Context, listing Listing) error
	UpdateListing(ctx context.Context, listing Listing) error
	SetStatus(ctx context.Context, listingID string, status Status, updatedAt time.Time) error
	AppendImage(ctx context.Context, listingID string, imageURL string, updatedAt time.Time) error
	DeleteListing(ctx context.Context, listingID string) error
}
