package listingstorage

import "github.com/cockroachdb/errors/domains"

var (
	ListingNotFoundMark      = domains.New("listing_not_found")
	ListingAlreadyExistsMark = domains.New("listing_already_exists")
	ListingUnmarshalMark     = domains.New("listing_unmarshal_fail")
	ImageLimitMark           = domains.New("listing_image_limit")
	DefaultErrorMark         = domains.New("default_error")
)
