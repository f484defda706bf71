package listingusecase

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/google/uuid"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/server/internal/listing/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/storage"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
	"github.com/karasai/karasai-be/src/shared/jobs"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/filestore"
	"github.com/karasai/karasai-be/src/shared/lib/rabbitmq"
	"github.com/karasai/karasai-be/src/shared/lib/validate"
)

const (
	MinCompareListings = 2
	MaxCompareListings = 4
)

type Usecase struct {
	db          listingentity.Store
	userUsecase userusecase.Usecase
	fileStore   filestore.FileStore
	publisher   rabbitmq.Publisher
}

func NewUsecase(db listingentity.Store, userUsecase userusecase.Usecase, fileStore filestore.FileStore, publisher rabbitmq.Publisher) Usecase {
	return Usecase{
		db:          db,
		userUsecase: userUsecase,
		fileStore:   fileStore,
		publisher:   publisher,
	}
}

// GetListing serves approved listings to anyone. Listings under moderation
// are only visible to their owner and to admins.
func (u Usecase) GetListing(ctx context.Context, authHeader string, listingID string) (listingentity.Listing, *api.Error) {
	listing, apiErr := u.FindListing(ctx, listingID)
	if apiErr != nil {
		return listingentity.Listing{}, apiErr
	}

	if listing.IsApproved() {
		return listing, nil
	}

	if authHeader == "" {
		return listingentity.Listing{}, api.CommitError(
			errors.Newf("Anonymous request for listing with status %s", listing.Defined.Status),
			listingerrors.ListingNotFoundCode,
			"The listing could not be found")
	}

	if apiErr := u.userUsecase.VerifyOwnerOrAdmin(ctx, authHeader, listing.Defined.Owner); apiErr != nil {
		return listingentity.Listing{}, api.WrapError(apiErr, "Cannot show a listing under moderation")
	}

	return listing, nil
}

// FindListing fetches a listing regardless of its status, for other domains
// that only need to know the listing exists
func (u Usecase) FindListing(ctx context.Context, listingID string) (listingentity.Listing, *api.Error) {
	listing, err := u.db.GetListing(ctx, listingID)
	if err != nil {
		return listingentity.Listing{}, u.storageError(
			errors.Wrap(err, "Failed to get listing from DB"),
			"Unknown error: Failed to fetch the listing")
	}

	return listing, nil
}

// FindListings fetches the given listings in the order of listingIDs,
// skipping IDs that don't exist
func (u Usecase) FindListings(ctx context.Context, listingIDs []string) ([]listingentity.Listing, *api.Error) {
	listings, err := u.db.GetListings(ctx, listingIDs)
	if err != nil {
		return nil, u.storageError(
			errors.Wrap(err, "Failed to batch get listings from DB"),
			"Unknown error: Failed to fetch listings")
	}

	byID := map[string]listingentity.Listing{}
	for _, listing := range listings {
		byID[listing.Defined.ID] = listing
	}

	ordered := []listingentity.Listing{}
	seen := map[string]bool{}
	for _, listingID := range listingIDs {
		listing, ok := byID[listingID]
		if !ok || seen[listingID] {
			continue
		}

		seen[listingID] = true
		ordered = append(ordered, listing)
	}

	return ordered, nil
}

func (u Usecase) FindListingsByAddress(ctx context.Context, address string) ([]listingentity.Listing, *api.Error) {
	listings, err := u.db.GetListingsByAddress(ctx, listingentity.NormalizeAddress(address))
	if err != nil {
		return nil, u.storageError(
			errors.Wrap(err, "Failed to get listings by address"),
			"Unknown error: Failed to look up the address")
	}

	return listings, nil
}

func (u Usecase) GetListingsForOwner(ctx context.Context, authHeader string, ownerID string) ([]listingentity.Listing, *api.Error) {
	if apiErr := u.userUsecase.VerifyOwner(ctx, authHeader, ownerID); apiErr != nil {
		return nil, api.WrapError(apiErr, "Cannot verify the owner of the listings")
	}

	listings, err := u.db.GetListingsForOwner(ctx, ownerID)
	if err != nil {
		return nil, u.storageError(
			errors.Wrap(err, "Failed to get listings for owner"),
			"Unknown error: Failed to fetch your listings")
	}

	return listings, nil
}

func (u Usecase) CreateListing(ctx context.Context, authHeader string, listing listingentity.Listing) (listingentity.Listing, *api.Error) {
	user, apiErr := u.userUsecase.Authenticate(ctx, authHeader)
	if apiErr != nil {
		return listingentity.Listing{}, api.WrapError(apiErr, "Cannot authenticate the listing creator")
	}

	if !listing.IsNew() {
		return listingentity.Listing{}, api.CommitError(
			errors.New("Listing ID is set on creation"),
			listingerrors.BadListingDataCode,
			"A new listing can't have an ID")
	}

	listing.CreateID()
	listing.Defined.Owner = user.ID
	listing.Defined.Status = listingentity.PendingStatus
	listing.Defined.Images = []string{}
	listing.SetCreatedAtToNow()
	listing.Normalize()

	if apiErr := validateListing(listing); apiErr != nil {
		return listingentity.Listing{}, apiErr
	}

	if err := u.db.CreateListing(ctx, listing); err != nil {
		err = errors.Wrap(err, "Failed to create listing")
		switch {
		case markers.Is(err, listingstorage.ListingAlreadyExistsMark):
			return listingentity.Listing{}, api.CommitError(err,
				listingerrors.BadListingDataCode,
				"A listing with this ID already exists")
		default:
			return listingentity.Listing{}, u.storageError(err,
				"Unknown error: Failed to save the listing")
		}
	}

	return listing, nil
}

// UpdateListing replaces the owner editable fields and sends the listing
// back to moderation
func (u Usecase) UpdateListing(ctx context.Context, authHeader string, listingID string, listing listingentity.Listing) (listingentity.Listing, *api.Error) {
	if listing.Defined.ID != "" && listing.Defined.ID != listingID {
		return listingentity.Listing{}, api.CommitError(
			errors.Newf("Listing ID %s in the body doesn't match %s", listing.Defined.ID, listingID),
			listingerrors.BadListingDataCode,
			"The listing ID doesn't match the listing being updated")
	}

	existing, apiErr := u.FindListing(ctx, listingID)
	if apiErr != nil {
		return listingentity.Listing{}, apiErr
	}

	if apiErr := u.userUsecase.VerifyOwner(ctx, authHeader, existing.Defined.Owner); apiErr != nil {
		return listingentity.Listing{}, api.WrapError(apiErr, "Cannot verify the listing owner")
	}

	listing.Defined.ID = existing.Defined.ID
	listing.Defined.Owner = existing.Defined.Owner
	listing.Defined.Images = existing.Defined.Images
	listing.Defined.CreatedAt = existing.Defined.CreatedAt
	listing.Defined.Status = listingentity.PendingStatus
	listing.SetUpdatedAtToNow()
	listing.Normalize()

	if apiErr := validateListing(listing); apiErr != nil {
		return listingentity.Listing{}, apiErr
	}

	if err := u.db.UpdateListing(ctx, listing); err != nil {
		return listingentity.Listing{}, u.storageError(
			errors.Wrap(err, "Failed to update listing"),
			"Unknown error: Failed to save the listing")
	}

	return listing, nil
}

func (u Usecase) DeleteListing(ctx context.Context, authHeader string, listingID string) *api.Error {
	listing, apiErr := u.FindListing(ctx, listingID)
	if apiErr != nil {
		return apiErr
	}

	if apiErr := u.userUsecase.VerifyOwnerOrAdmin(ctx, authHeader, listing.Defined.Owner); apiErr != nil {
		return api.WrapError(apiErr, "Cannot verify the listing owner")
	}

	return u.deleteListing(ctx, listing)
}

// DeleteAllForOwner removes every listing of an account that is being
// closed. Ownership is expected to be verified by the caller.
func (u Usecase) DeleteAllForOwner(ctx context.Context, ownerID string) *api.Error {
	listings, err := u.db.GetListingsForOwner(ctx, ownerID)
	if err != nil {
		return u.storageError(
			errors.Wrap(err, "Failed to get listings for owner"),
			"Unknown error: Failed to remove your listings")
	}

	for _, listing := range listings {
		if apiErr := u.deleteListing(ctx, listing); apiErr != nil {
			return api.WrapError(apiErr, "Failed to delete one of the owner's listings")
		}
	}

	return nil
}

func (u Usecase) deleteListing(ctx context.Context, listing listingentity.Listing) *api.Error {
	if err := u.db.DeleteListing(ctx, listing.Defined.ID); err != nil {
		return u.storageError(
			errors.Wrap(err, "Failed to delete listing"),
			"Unknown error: Failed to delete the listing")
	}

	if len(listing.Defined.Images) > 0 {
		// images are cleaned up by the worker, the listing is already gone
		go u.publishImagePurge(listing.Defined.ID, listing.Defined.Images)
	}

	return nil
}

func (u Usecase) publishImagePurge(listingID string, images []string) {
	err := rabbitmq.PublishJSON(context.Background(), u.publisher, jobs.ListingImagesPurgeType, jobs.ListingImagesPurge{
		ListingID: listingID,
		Images:    images,
	})

	if err != nil {
		log.WithError(err).
			WithField("listing_id", listingID).
			WithField("images", images).
			Error("Failed to publish image purge job, images are orphaned")
	}
}

func (u Usecase) SearchListings(ctx context.Context, params listingentity.SearchParams) (listingentity.Page, *api.Error) {
	if apiErr := validateSearchParams(params); apiErr != nil {
		return listingentity.Page{}, apiErr
	}

	page, err := u.db.SearchListings(ctx, listingentity.ApprovedStatus, params)
	if err != nil {
		return listingentity.Page{}, u.storageError(
			errors.Wrap(err, "Failed to search listings"),
			"Unknown error: Failed to search listings")
	}

	return page, nil
}

func (u Usecase) CompareListings(ctx context.Context, listingIDs []string) ([]listingentity.Listing, *api.Error) {
	uniqueIDs := []string{}
	seen := map[string]bool{}
	for _, listingID := range listingIDs {
		if !seen[listingID] {
			seen[listingID] = true
			uniqueIDs = append(uniqueIDs, listingID)
		}
	}

	if len(uniqueIDs) < MinCompareListings || len(uniqueIDs) > MaxCompareListings {
		return nil, api.CommitError(
			errors.Newf("Received %d listing IDs to compare", len(uniqueIDs)),
			listingerrors.BadSearchParamsCode,
			fmt.Sprintf("Pick between %d and %d listings to compare", MinCompareListings, MaxCompareListings))
	}

	listings, apiErr := u.FindListings(ctx, uniqueIDs)
	if apiErr != nil {
		return nil, apiErr
	}

	approved := []listingentity.Listing{}
	for _, listing := range listings {
		if listing.IsApproved() {
			approved = append(approved, listing)
		}
	}

	return approved, nil
}

func (u Usecase) GetPendingListings(ctx context.Context, authHeader string, limit int, cursor string) (listingentity.Page, *api.Error) {
	if _, apiErr := u.userUsecase.VerifyAdmin(ctx, authHeader); apiErr != nil {
		return listingentity.Page{}, api.WrapError(apiErr, "Cannot verify moderator")
	}

	params := listingentity.SearchParams{
		Limit:  limit,
		Cursor: cursor,
	}

	if apiErr := validateSearchParams(params); apiErr != nil {
		return listingentity.Page{}, apiErr
	}

	page, err := u.db.SearchListings(ctx, listingentity.PendingStatus, params)
	if err != nil {
		return listingentity.Page{}, u.storageError(
			errors.Wrap(err, "Failed to list pending listings"),
			"Unknown error: Failed to fetch the moderation queue")
	}

	return page, nil
}

func (u Usecase) ModerateListing(ctx context.Context, authHeader string, listingID string, status listingentity.Status) (listingentity.Listing, *api.Error) {
	if status != listingentity.ApprovedStatus && status != listingentity.RejectedStatus {
		panic(fmt.Sprintf("Moderation can't move a listing to %s", status))
	}

	if _, apiErr := u.userUsecase.VerifyAdmin(ctx, authHeader); apiErr != nil {
		return listingentity.Listing{}, api.WrapError(apiErr, "Cannot verify moderator")
	}

	listing, apiErr := u.FindListing(ctx, listingID)
	if apiErr != nil {
		return listingentity.Listing{}, apiErr
	}

	listing.Defined.Status = status
	listing.SetUpdatedAtToNow()

	if err := u.db.SetStatus(ctx, listingID, status, *listing.Defined.UpdatedAt); err != nil {
		return listingentity.Listing{}, u.storageError(
			errors.Wrap(err, "Failed to set listing status"),
			"Unknown error: Failed to moderate the listing")
	}

	return listing, nil
}

// AddImage uploads an image and appends its URL to the listing. The listing
// status is left as is.
func (u Usecase) AddImage(ctx context.Context, authHeader string, listingID string, contentType string, contents io.Reader) (listingentity.Listing, *api.Error) {
	listing, apiErr := u.FindListing(ctx, listingID)
	if apiErr != nil {
		return listingentity.Listing{}, apiErr
	}

	if apiErr := u.userUsecase.VerifyOwner(ctx, authHeader, listing.Defined.Owner); apiErr != nil {
		return listingentity.Listing{}, api.WrapError(apiErr, "Cannot verify the listing owner")
	}

	if len(listing.Defined.Images) >= listingentity.MaxImages {
		return listingentity.Listing{}, imageLimitExceeded(
			errors.Newf("Listing already has %d images", len(listing.Defined.Images)))
	}

	if !strings.HasPrefix(contentType, "image/") {
		return listingentity.Listing{}, api.CommitError(
			errors.Newf("Unexpected content type %s", contentType),
			listingerrors.BadImageCode,
			"Only image files can be uploaded")
	}

	objectPath := fmt.Sprintf("listings/%s/%s", listingID, uuid.New().String())
	imageURL, err := u.fileStore.Upload(ctx, objectPath, contentType, contents)
	if err != nil {
		return listingentity.Listing{}, api.CommitError(
			errors.Wrap(err, "Failed to upload image"),
			api.DefaultErrorCode,
			"Unknown error: The image could not be uploaded")
	}

	listing.SetUpdatedAtToNow()

	// appended in place so a moderation decision or another upload that
	// landed during the upload is kept
	if err := u.db.AppendImage(ctx, listingID, imageURL, *listing.Defined.UpdatedAt); err != nil {
		if deleteErr := u.fileStore.Delete(ctx, imageURL); deleteErr != nil {
			log.WithError(deleteErr).
				WithField("url", imageURL).
				Error("Failed to clean up image after the listing failed to save")
		}

		if markers.Is(err, listingstorage.ImageLimitMark) {
			return listingentity.Listing{}, imageLimitExceeded(err)
		}

		return listingentity.Listing{}, u.storageError(
			errors.Wrap(err, "Failed to save listing with the new image"),
			"Unknown error: Failed to save the image to the listing")
	}

	return u.FindListing(ctx, listingID)
}

func imageLimitExceeded(err error) *api.Error {
	return api.CommitError(err,
		listingerrors.ImageLimitExceededCode,
		fmt.Sprintf("A listing can have at most %d images", listingentity.MaxImages))
}

func validateListing(listing listingentity.Listing) *api.Error {
	if err := validate.Struct(listing.Defined); err != nil {
		return api.CommitError(errors.Wrap(err, "Listing failed validation"),
			listingerrors.BadListingDataCode,
			"The listing is missing fields or has invalid values")
	}

	if len(listing.Extra) > listingentity.MaxExtraFields {
		return api.CommitError(
			errors.Newf("Listing has %d extra fields", len(listing.Extra)),
			listingerrors.BadListingDataCode,
			"The listing has too many unrecognized fields")
	}

	return nil
}

func validateSearchParams(params listingentity.SearchParams) *api.Error {
	badParams := func(reason string) *api.Error {
		return api.CommitError(errors.New(reason),
			listingerrors.BadSearchParamsCode,
			"The search filters are invalid: "+reason)
	}

	if params.Limit < 0 {
		return badParams("limit can't be negative")
	}

	for _, rent := range []*float64{params.MinRent, params.MaxRent} {
		if rent != nil && (math.IsNaN(*rent) || math.IsInf(*rent, 0)) {
			return badParams("rent filters must be finite numbers")
		}
	}

	if params.MinRent != nil && *params.MinRent < 0 {
		return badParams("minimum rent can't be negative")
	}

	if params.MaxRent != nil && *params.MaxRent < 0 {
		return badParams("maximum rent can't be negative")
	}

	if params.MinRent != nil && params.MaxRent != nil && *params.MinRent > *params.MaxRent {
		return badParams("minimum rent is above the maximum rent")
	}

	if params.MinBedrooms != nil && *params.MinBedrooms < 0 {
		return badParams("minimum bedrooms can't be negative")
	}

	for _, propertyType := range params.Normalized().PropertyTypes {
		if err := validate.Var(propertyType, "oneof="+strings.Join(listingentity.PropertyTypes, " ")); err != nil {
			return badParams("unknown property type " + propertyType)
		}
	}

	return nil
}

func (u Usecase) storageError(err error, userMessage string) *api.Error {
	switch {
	case markers.Is(err, listingstorage.ListingNotFoundMark):
		return api.CommitError(err,
			listingerrors.ListingNotFoundCode,
			"The listing could not be found")

	case markers.Is(err, dynamolib.MalformedCursorMark):
		return api.CommitError(err,
			listingerrors.BadSearchParamsCode,
			"The page cursor is malformed. Please start the search again")

	case markers.Is(err, listingstorage.ListingUnmarshalMark):
		fallthrough
	case markers.Is(err, listingstorage.DefaultErrorMark):
		fallthrough
	default:
		return api.CommitError(err, api.DefaultErrorCode, userMessage)
	}
}
