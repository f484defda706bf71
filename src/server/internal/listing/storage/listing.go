package listingstorage

import (
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

const (
	idKey         = "id"
	ownerKey      = "owner"
	statusKey     = "status"
	rentKey       = "rent"
	createdAtKey  = "createdAt"
	updatedAtKey  = "updatedAt"
	propertyKey   = "propertyType"
	bedroomsKey   = "bedrooms"
	amenitiesKey  = "amenities"
	searchTextKey = "searchText"
	cityKey       = "cityKey"
	addressKey    = "addressKey"
	imagesKey     = "images"
)

// stored alongside the listing for filtering, never returned to clients
var derivedKeys = []string{searchTextKey, cityKey, addressKey}

var _ dynamo.ItemUnmarshaler = &dbListing{}

type dbListing map[string]any

func (d *dbListing) UnmarshalDynamoItem(dynamoItem map[string]*dynamodb.AttributeValue) error {
	if err := dynamolib.ValidateStringField(dynamoItem, idKey); err != nil {
		return mark.Wrap(err, ListingUnmarshalMark, "Failed to validate ID field")
	}

	if err := dynamolib.ValidateStringField(dynamoItem, ownerKey); err != nil {
		return mark.Wrap(err, ListingUnmarshalMark, "Failed to validate owner field")
	}

	if err := dynamolib.ValidateNumberField(dynamoItem, rentKey); err != nil {
		return mark.Wrap(err, ListingUnmarshalMark, "Failed to validate rent field")
	}

	plainMap := map[string]any{}
	err := dynamo.UnmarshalItem(dynamoItem, &plainMap)
	if err != nil {
		return mark.Wrap(err, ListingUnmarshalMark, "Failed to unmarshal dynamo item")
	}

	*d = plainMap

	return nil
}

func (d dbListing) toEntity() (listingentity.Listing, error) {
	listing := listingentity.Listing{}
	if err := listing.FromMap(d); err != nil {
		return listingentity.Listing{}, mark.Wrap(err, ListingUnmarshalMark, "Failed to unmarshal listing into its entity form")
	}

	listing.DropExtra(derivedKeys...)
	listing.Normalize()
	return listing, nil
}

func toDBListing(listing listingentity.Listing) (map[string]any, error) {
	listing.DropExtra(derivedKeys...)

	dbObject, err := listing.ToMap()
	if err != nil {
		return nil, mark.Wrap(err, ListingUnmarshalMark, "Failed to convert listing object to a map")
	}

	dbObject[searchTextKey] = listing.SearchText()
	dbObject[cityKey] = listing.CityKey()
	dbObject[addressKey] = listing.AddressKey()

	return dbObject, nil
}

func toEntities(values []dbListing) ([]listingentity.Listing, error) {
	listings := []listingentity.Listing{}
	for _, value := range values {
		listing, err := value.toEntity()
		if err != nil {
			return nil, err
		}

		listings = append(listings, listing)
	}

	return listings, nil
}
