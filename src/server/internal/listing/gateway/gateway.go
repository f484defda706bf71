package listinggateway

import (
	"math"
	"net/http"
	"strconv"

	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/gateway"
	"github.com/karasai/karasai-be/src/server/internal/lib/request"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/server/internal/listing/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/usecase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	MaxImageBytes = 10 << 20
	imageFormKey  = "file"
)

type Gateway struct {
	usecase listingusecase.Usecase
}

func NewGateway(usecase listingusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) GetListing(c echo.Context, listingID string) error {
	ctx := request.Context(c)

	listing, apiErr := g.usecase.GetListing(ctx, request.OptionalAuthHeader(c), listingID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, listing)
}

func (g Gateway) GetListingsForOwner(c echo.Context, ownerID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	listings, apiErr := g.usecase.GetListingsForOwner(ctx, authHeader, ownerID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, listings)
}

func (g Gateway) CreateListing(c echo.Context) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	listing, apiErr := bindListing(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	createdListing, apiErr := g.usecase.CreateListing(ctx, authHeader, listing)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, createdListing)
}

func (g Gateway) UpdateListing(c echo.Context, listingID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	listing, apiErr := bindListing(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	updatedListing, apiErr := g.usecase.UpdateListing(ctx, authHeader, listingID, listing)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, updatedListing)
}

func (g Gateway) DeleteListing(c echo.Context, listingID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	apiErr = g.usecase.DeleteListing(ctx, authHeader, listingID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.NoContent(http.StatusOK)
}

func (g Gateway) AddImage(c echo.Context, listingID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	badImage := func(err error, msg string) error {
		apiErr := api.CommitError(err, listingerrors.BadImageCode, msg)
		return gateway.ErrorResponse(c, apiErr)
	}

	fileHeader, err := c.FormFile(imageFormKey)
	if err != nil {
		return badImage(errors.Wrap(err, "Failed to read the multipart file"),
			"The upload is missing an image file")
	}

	if fileHeader.Size > MaxImageBytes {
		return badImage(errors.Errorf("Image is %d bytes", fileHeader.Size),
			"The image is too large, the limit is 10MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badImage(errors.Wrap(err, "Failed to open the uploaded file"),
			"The uploaded image could not be read")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	listing, apiErr := g.usecase.AddImage(ctx, authHeader, listingID, contentType, file)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, listing)
}

func (g Gateway) SearchListings(c echo.Context) error {
	ctx := request.Context(c)

	params, apiErr := parseSearchParams(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	page, apiErr := g.usecase.SearchListings(ctx, params)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, page)
}

func (g Gateway) CompareListings(c echo.Context) error {
	ctx := request.Context(c)

	listings, apiErr := g.usecase.CompareListings(ctx, request.CommaList(c, "ids"))
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, listings)
}

func (g Gateway) GetPendingListings(c echo.Context) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	limit, err := optionalInt(c, "limit")
	if err != nil {
		return gateway.ErrorResponse(c, badSearchParams(err))
	}

	pageSize := 0
	if limit != nil {
		pageSize = *limit
	}

	page, apiErr := g.usecase.GetPendingListings(ctx, authHeader, pageSize, c.QueryParam("cursor"))
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, page)
}

func (g Gateway) ApproveListing(c echo.Context, listingID string) error {
	return g.moderate(c, listingID, listingentity.ApprovedStatus)
}

func (g Gateway) RejectListing(c echo.Context, listingID string) error {
	return g.moderate(c, listingID, listingentity.RejectedStatus)
}

func (g Gateway) moderate(c echo.Context, listingID string, status listingentity.Status) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	listing, apiErr := g.usecase.ModerateListing(ctx, authHeader, listingID, status)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, listing)
}

func bindListing(c echo.Context) (listingentity.Listing, *api.Error) {
	listing := listingentity.Listing{}
	if err := c.Bind(&listing); err != nil {
		err = errors.Wrap(err, "Failed to bind request body to listing object")
		return listingentity.Listing{}, api.CommitError(err,
			listingerrors.BadListingDataCode,
			"The listing data received was malformed")
	}

	return listing, nil
}

func parseSearchParams(c echo.Context) (listingentity.SearchParams, *api.Error) {
	params := listingentity.SearchParams{
		Query:         c.QueryParam("q"),
		City:          c.QueryParam("city"),
		PropertyTypes: request.CommaList(c, "type"),
		Amenities:     request.CommaList(c, "amenities"),
		Cursor:        c.QueryParam("cursor"),
	}

	var err error
	if params.MinRent, err = optionalFloat(c, "minRent"); err != nil {
		return listingentity.SearchParams{}, badSearchParams(err)
	}

	if params.MaxRent, err = optionalFloat(c, "maxRent"); err != nil {
		return listingentity.SearchParams{}, badSearchParams(err)
	}

	if params.MinBedrooms, err = optionalInt(c, "minBedrooms"); err != nil {
		return listingentity.SearchParams{}, badSearchParams(err)
	}

	limit, err := optionalInt(c, "limit")
	if err != nil {
		return listingentity.SearchParams{}, badSearchParams(err)
	}

	if limit != nil {
		params.Limit = *limit
	}

	return params, nil
}

func optionalFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not a number", name)
	}

	// ParseFloat accepts NaN and Inf, which would match every rent filter
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, errors.Errorf("%s is not a finite number", name)
	}

	return &value, nil
}

func optionalInt(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not a whole number", name)
	}

	return &value, nil
}

func badSearchParams(err error) *api.Error {
	return api.CommitError(err,
		listingerrors.BadSearchParamsCode,
		"The search filters are invalid: "+err.Error())
}
