package listingerrors

import "github.com/karasai/karasai-be/src/server/internal/errors/api"

const (
	ListingNotFoundCode    = api.ErrorCode("listing_not_found")
	BadListingDataCode     = api.ErrorCode("bad_listing_data")
	BadSearchParamsCode    = api.ErrorCode("bad_search_params")
	ImageLimitExceededCode = api.ErrorCode("image_limit_exceeded")
	BadImageCode           = api.ErrorCode("bad_image")
)
