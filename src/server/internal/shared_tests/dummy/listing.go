package dummy

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/cockroachdb/errors"
	"github.com/guregu/dynamo"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/server/internal/listing/storage"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
	shareddummy "github.com/karasai/karasai-be/src/shared/testing/dummy"
)

const cursorKey = "id"

var _ listingentity.Store = &ListingStore{}

// ListingStore pages the same way the DynamoDB store does, newest first with
// an opaque cursor, except that pages are never short
type ListingStore struct {
	Unavailable bool
	// FailUpdates only breaks UpdateListing and AppendImage
	FailUpdates bool

	lock     sync.Mutex
	listings map[string]listingentity.Listing
}

func NewListingStore() *ListingStore {
	return &ListingStore{
		listings: map[string]listingentity.Listing{},
	}
}

func (l *ListingStore) failure() error {
	return mark.Wrap(shareddummy.NetworkFailure, listingstorage.DefaultErrorMark, "Dummy store failure")
}

func notFound() error {
	return mark.Message(listingstorage.ListingNotFoundMark, "Listing is not found")
}

func (l *ListingStore) GetListing(_ context.Context, listingID string) (listingentity.Listing, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.Unavailable {
		return listingentity.Listing{}, l.failure()
	}

	listing, ok := l.listings[listingID]
	if !ok {
		return listingentity.Listing{}, notFound()
	}

	return listing, nil
}

func (l *ListingStore) GetListings(_ context.Context, listingIDs []string) ([]listingentity.Listing, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.Unavailable {
		return nil, l.failure()
	}

	listings := []listingentity.Listing{}
	seen := map[string]bool{}
	for _, listingID := range listingIDs {
		listing, ok := l.listings[listingID]
		if ok && !seen[listingID] {
			seen[listingID] = true
			listings = append(listings, listing)
		}
	}

	return listings, nil
}

func (l *ListingStore) GetListingsForOwner(_ context.Context, ownerID string) ([]listingentity.Listing, error) {
	return l.collect(func(listing listingentity.Listing) bool {
		return listing.Defined.Owner == ownerID
	})
}

func (l *ListingStore) GetListingsByAddress(_ context.Context, addressKey string) ([]listingentity.Listing, error) {
	return l.collect(func(listing listingentity.Listing) bool {
		return addressKey != "" && listing.AddressKey() == addressKey
	})
}

func (l *ListingStore) SearchListings(_ context.Context, status listingentity.Status, params listingentity.SearchParams) (listingentity.Page, error) {
	params = params.Normalized()

	startKey, err := dynamolib.DecodeCursor(params.Cursor, cursorKey)
	if err != nil {
		return listingentity.Page{}, errors.Wrap(err, "Failed to decode search cursor")
	}

	matching, err := l.collect(func(listing listingentity.Listing) bool {
		return listing.Defined.Status == status && params.Matches(listing)
	})
	if err != nil {
		return listingentity.Page{}, err
	}

	start := 0
	if startKey != nil {
		lastID := startKey[cursorKey]
		start = len(matching)
		for i, listing := range matching {
			if listing.Defined.ID == *lastID.S {
				start = i + 1
				break
			}
		}
	}

	end := start + params.Limit
	if end > len(matching) {
		end = len(matching)
	}

	page := listingentity.Page{
		Listings: matching[start:end],
	}

	if end < len(matching) {
		lastKey := dynamo.PagingKey{
			cursorKey: &dynamodb.AttributeValue{S: aws.String(matching[end-1].Defined.ID)},
		}

		if page.NextCursor, err = dynamolib.EncodeCursor(lastKey); err != nil {
			return listingentity.Page{}, err
		}
	}

	return page, nil
}

func (l *ListingStore) CreateListing(_ context.Context, listing listingentity.Listing) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.Unavailable {
		return l.failure()
	}

	if _, ok := l.listings[listing.Defined.ID]; ok {
		return mark.Message(listingstorage.ListingAlreadyExistsMark, "Listing already exists")
	}

	l.listings[listing.Defined.ID] = listing
	return nil
}

func (l *ListingStore) UpdateListing(_ context.Context, listing listingentity.Listing) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.Unavailable || l.FailUpdates {
		return l.failure()
	}

	if _, ok := l.listings[listing.Defined.ID]; !ok {
		return notFound()
	}

	l.listings[listing.Defined.ID] = listing
	return nil
}

func (l *ListingStore) SetStatus(_ context.Context, listingID string, status listingentity.Status, updatedAt time.Time) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.Unavailable {
		return l.failure()
	}

	listing, ok := l.listings[listingID]
	if !ok {
		return notFound()
	}

	listing.Defined.Status = status
	listing.Defined.UpdatedAt = &updatedAt
	l.listings[listingID] = listing
	return nil
}

func (l *ListingStore) AppendImage(_ context.Context, listingID string, imageURL string, updatedAt time.Time) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.Unavailable || l.FailUpdates {
		return l.failure()
	}

	listing, ok := l.listings[listingID]
	if !ok {
		return notFound()
	}

	if len(listing.Defined.Images) >= listingentity.MaxImages {
		return mark.Message(listingstorage.ImageLimitMark, "Listing already has the most images allowed")
	}

	images := append([]string{}, listing.Defined.Images...)
	listing.Defined.Images = append(images, imageURL)
	listing.Defined.UpdatedAt = &updatedAt
	l.listings[listingID] = listing
	return nil
}

func (l *ListingStore) DeleteListing(_ context.Context, listingID string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.Unavailable {
		return l.failure()
	}

	if _, ok := l.listings[listingID]; !ok {
		return notFound()
	}

	delete(l.listings, listingID)
	return nil
}

// Seed stores listings as is, skipping validation
func (l *ListingStore) Seed(listings ...listingentity.Listing) {
	l.lock.Lock()
	defer l.lock.Unlock()

	for _, listing := range listings {
		listing.Normalize()
		l.listings[listing.Defined.ID] = listing
	}
}

func (l *ListingStore) Has(listingID string) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	_, ok := l.listings[listingID]
	return ok
}

func (l *ListingStore) collect(keep func(listingentity.Listing) bool) ([]listingentity.Listing, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.Unavailable {
		return nil, l.failure()
	}

	listings := []listingentity.Listing{}
	for _, listing := range l.listings {
		if keep(listing) {
			listings = append(listings, listing)
		}
	}

	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i].Defined, listings[j].Defined
		if a.CreatedAt != nil && b.CreatedAt != nil && !a.CreatedAt.Equal(*b.CreatedAt) {
			return a.CreatedAt.After(*b.CreatedAt)
		}
		return a.ID < b.ID
	})

	return listings, nil
}
