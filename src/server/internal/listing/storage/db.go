package listingstorage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/guregu/dynamo"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

const (
	ListingsTable            = "Listings"
	newListingCondition      = "attribute_not_exists(" + idKey + ")"
	existingListingCondition = "attribute_exists(" + idKey + ")"
	StatusIndex              = "status-index"
	OwnerIndex               = "owner-index"
	AddressIndex             = "address-index"
)

var _ listingentity.Store = DB{}

type DB struct {
	dynamoDB dynamolib.DynamoDBWrapper
}

func NewDB(dynamoDB dynamolib.DynamoDBWrapper) DB {
	return DB{
		dynamoDB: dynamoDB,
	}
}

func (d DB) GetListing(ctx context.Context, listingID string) (listingentity.Listing, error) {
	if listingID == "" {
		err := errors.New("Listing ID is empty")
		return listingentity.Listing{}, mark.Wrap(err, ListingNotFoundMark, "No ID provided to fetch listing")
	}

	value := dbListing{}
	err := d.dynamoDB.Table(ListingsTable).
		Get(idKey, listingID).
		OneWithContext(ctx, &value)

	if err != nil {
		switch {
		case markers.Is(err, ListingUnmarshalMark):
			return listingentity.Listing{}, err
		case errors.Is(err, dynamo.ErrNotFound):
			return listingentity.Listing{}, mark.Wrap(err, ListingNotFoundMark, "Listing for this ID couldn't be found")
		default:
			return listingentity.Listing{}, mark.Wrap(err, DefaultErrorMark, "Failed to fetch listing due to unknown data store error")
		}
	}

	return value.toEntity()
}

func (d DB) GetListings(ctx context.Context, listingIDs []string) ([]listingentity.Listing, error) {
	keys := []dynamo.Keyed{}
	seen := map[string]bool{}
	for _, listingID := range listingIDs {
		if listingID == "" || seen[listingID] {
			continue
		}
		seen[listingID] = true
		keys = append(keys, dynamo.Keys{listingID})
	}

	if len(keys) == 0 {
		return []listingentity.Listing{}, nil
	}

	values := []dbListing{}
	err := d.dynamoDB.Table(ListingsTable).
		Batch(idKey).
		Get(keys...).
		AllWithContext(ctx, &values)

	if err != nil && !errors.Is(err, dynamo.ErrNotFound) {
		if markers.Is(err, ListingUnmarshalMark) {
			return nil, err
		}

		return nil, mark.Wrap(err, DefaultErrorMark, "Failed to batch fetch listings")
	}

	return toEntities(values)
}

func (d DB) GetListingsForOwner(ctx context.Context, ownerID string) ([]listingentity.Listing, error) {
	values := []dbListing{}
	err := d.dynamoDB.Table(ListingsTable).
		Get(ownerKey, ownerID).
		Index(OwnerIndex).
		Order(dynamo.Descending).
		AllWithContext(ctx, &values)

	if err != nil {
		return nil, mark.Wrap(err, DefaultErrorMark, "Failed to fetch all listings for owner ID")
	}

	return toEntities(values)
}

func (d DB) GetListingsByAddress(ctx context.Context, normalizedAddress string) ([]listingentity.Listing, error) {
	if normalizedAddress == "" {
		return []listingentity.Listing{}, nil
	}

	values := []dbListing{}
	err := d.dynamoDB.Table(ListingsTable).
		Get(addressKey, normalizedAddress).
		Index(AddressIndex).
		AllWithContext(ctx, &values)

	if err != nil {
		return nil, mark.Wrap(err, DefaultErrorMark, "Failed to fetch listings by address")
	}

	return toEntities(values)
}

// SearchListings reads one page of the status index, newest first. DynamoDB
// applies the page size before the filters, so a page can come back short
// while a cursor for the next page is still returned.
func (d DB) SearchListings(ctx context.Context, status listingentity.Status, params listingentity.SearchParams) (listingentity.Page, error) {
	params = params.Normalized()

	startKey, err := dynamolib.DecodeCursor(params.Cursor, idKey, statusKey, createdAtKey)
	if err != nil {
		return listingentity.Page{}, errors.Wrap(err, "Failed to decode search cursor")
	}

	query := d.dynamoDB.Table(ListingsTable).
		Get(statusKey, string(status)).
		Index(StatusIndex).
		Order(dynamo.Descending).
		SearchLimit(int64(params.Limit))

	for _, clause := range SearchFilters(params) {
		query = query.Filter(clause.Expr, clause.Args...)
	}

	if startKey != nil {
		// a cursor from another status would resume a different partition
		if cursorStatus := startKey[statusKey].S; *cursorStatus != string(status) {
			err := errors.Newf("Cursor is for %s listings, not %s", *cursorStatus, status)
			return listingentity.Page{}, mark.Wrap(err, dynamolib.MalformedCursorMark, "Cursor belongs to another search")
		}

		query = query.StartFrom(startKey)
	}

	values := []dbListing{}
	lastKey, err := query.AllWithLastEvaluatedKeyContext(ctx, &values)
	if err != nil {
		if markers.Is(err, ListingUnmarshalMark) {
			return listingentity.Page{}, err
		}

		return listingentity.Page{}, mark.Wrap(err, DefaultErrorMark, "Failed to search listings")
	}

	listings, err := toEntities(values)
	if err != nil {
		return listingentity.Page{}, err
	}

	nextCursor, err := dynamolib.EncodeCursor(lastKey)
	if err != nil {
		return listingentity.Page{}, mark.Wrap(err, DefaultErrorMark, "Failed to encode the next page cursor")
	}

	return listingentity.Page{
		Listings:   listings,
		NextCursor: nextCursor,
	}, nil
}

func (d DB) CreateListing(ctx context.Context, newListing listingentity.Listing) error {
	if newListing.Defined.ID == "" {
		err := errors.New("Listing ID is empty")
		return mark.Wrap(err, DefaultErrorMark, "No ID provided to create listing")
	}

	err := d.putListing(ctx, newListing, false)
	if err != nil {
		if conditionalCheckFailed(err) {
			return mark.Wrap(err,
				ListingAlreadyExistsMark,
				"Cannot create: A listing of this ID already exists")
		}

		return errors.Wrap(err, "Failed to put listing into DB")
	}

	return nil
}

func (d DB) UpdateListing(ctx context.Context, listing listingentity.Listing) error {
	if listing.Defined.ID == "" {
		err := errors.New("Listing ID is empty")
		return mark.Wrap(err, ListingNotFoundMark, "No ID provided to update listing")
	}

	err := d.putListing(ctx, listing, true)
	if err != nil {
		if conditionalCheckFailed(err) {
			return mark.Wrap(err,
				ListingNotFoundMark,
				"Cannot update: Listing of this ID cannot be found")
		}

		return errors.Wrap(err, "Failed to put listing into DB")
	}

	return nil
}

func (d DB) putListing(ctx context.Context, listing listingentity.Listing, expectListingExists bool) error {
	dbObject, err := toDBListing(listing)
	if err != nil {
		return err
	}

	putExpr := d.dynamoDB.Table(ListingsTable).Put(dbObject)

	if expectListingExists {
		putExpr = putExpr.If(existingListingCondition)
	} else {
		putExpr = putExpr.If(newListingCondition)
	}

	return putExpr.RunWithContext(ctx)
}

func (d DB) SetStatus(ctx context.Context, listingID string, status listingentity.Status, updatedAt time.Time) error {
	if listingID == "" {
		err := errors.New("Listing ID is empty")
		return mark.Wrap(err, ListingNotFoundMark, "No ID provided to set listing status")
	}

	err := d.dynamoDB.Table(ListingsTable).
		Update(idKey, listingID).
		Set(statusKey, string(status)).
		Set(updatedAtKey, updatedAt.UTC().Format(time.RFC3339)).
		If(existingListingCondition).
		RunWithContext(ctx)

	if err != nil {
		if conditionalCheckFailed(err) {
			return mark.Wrap(err, ListingNotFoundMark, "Failed to find listing to moderate")
		}

		return mark.Wrap(err, DefaultErrorMark, "Failed to set listing status")
	}

	return nil
}

// AppendImage adds one image URL to the end of the listing's images in a
// single conditional update, leaving every other attribute as stored
func (d DB) AppendImage(ctx context.Context, listingID string, imageURL string, updatedAt time.Time) error {
	if listingID == "" {
		err := errors.New("Listing ID is empty")
		return mark.Wrap(err, ListingNotFoundMark, "No ID provided to append an image")
	}

	err := d.dynamoDB.Table(ListingsTable).
		Update(idKey, listingID).
		Append(imagesKey, []string{imageURL}).
		Set(updatedAtKey, updatedAt.UTC().Format(time.RFC3339)).
		If("attribute_exists($) AND size($) < ?", idKey, imagesKey, listingentity.MaxImages).
		RunWithContext(ctx)

	if err == nil {
		return nil
	}

	if !conditionalCheckFailed(err) {
		return mark.Wrap(err, DefaultErrorMark, "Failed to append listing image")
	}

	// the condition doesn't say which half failed
	if _, getErr := d.GetListing(ctx, listingID); getErr != nil {
		return errors.Wrap(getErr, "Failed to find listing to append an image to")
	}

	return mark.Wrap(err, ImageLimitMark, "Listing already has the most images allowed")
}

func (d DB) DeleteListing(ctx context.Context, listingID string) error {
	if listingID == "" {
		err := errors.New("Listing ID is empty")
		return mark.Wrap(err, ListingNotFoundMark, "No ID provided to delete listing")
	}

	delExpr := d.dynamoDB.Table(ListingsTable).Delete(idKey, listingID)
	delExpr = delExpr.If(existingListingCondition)

	if err := delExpr.RunWithContext(ctx); err != nil {
		if conditionalCheckFailed(err) {
			return mark.Wrap(err, ListingNotFoundMark, "Failed to find listing to delete")
		}

		return mark.Wrap(err, DefaultErrorMark, "Failed to delete listing")
	}

	return nil
}

func conditionalCheckFailed(err error) bool {
	var conditionErr *dynamodb.ConditionalCheckFailedException
	return errors.As(err, &conditionErr)
}
