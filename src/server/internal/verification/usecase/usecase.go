package verificationusecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/server/internal/listing/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/usecase"
	"github.com/karasai/karasai-be/src/server/internal/verification/certificate"
	"github.com/karasai/karasai-be/src/server/internal/verification/entity"
	"github.com/karasai/karasai-be/src/server/internal/verification/errors"
)

type Usecase struct {
	listingUsecase listingusecase.Usecase
	signer         certificate.Signer
	now            func() time.Time
}

func NewUsecase(listingUsecase listingusecase.Usecase, signer certificate.Signer) Usecase {
	return Usecase{
		listingUsecase: listingUsecase,
		signer:         signer,
		now:            time.Now,
	}
}

// Verify looks a listing up by address or by ID. Exactly one of the two must
// be given. Only approved listings verify.
func (u Usecase) Verify(ctx context.Context, query verificationentity.Query) (verificationentity.Result, *api.Error) {
	address := strings.TrimSpace(query.Address)
	listingID := strings.TrimSpace(query.ListingID)

	if (address == "") == (listingID == "") {
		return verificationentity.Result{}, api.CommitError(
			errors.New("Verification needs exactly one of address and listing ID"),
			verificationerrors.BadVerificationQueryCode,
			"Look up either an address or a listing ID")
	}

	var listing *listingentity.Listing
	var apiErr *api.Error
	if listingID != "" {
		listing, apiErr = u.approvedByID(ctx, listingID)
	} else {
		listing, apiErr = u.approvedByAddress(ctx, address)
	}

	if apiErr != nil {
		return verificationentity.Result{}, apiErr
	}

	result := verificationentity.Result{
		Verified:  false,
		CheckedAt: u.now().UTC().Truncate(time.Second),
	}

	if listing == nil {
		return result, nil
	}

	token, _, err := u.signer.Issue(listing.Defined.ID, listing.AddressKey())
	if err != nil {
		return verificationentity.Result{}, api.CommitError(
			errors.Wrap(err, "Failed to issue certificate"),
			api.DefaultErrorCode,
			"Unknown error: The verification certificate could not be issued")
	}

	result.Verified = true
	result.Listing = listing
	result.Certificate = token
	return result, nil
}

// CheckCertificate validates the certificate and then makes sure the listing
// it was issued for is still approved at the same address
func (u Usecase) CheckCertificate(ctx context.Context, token string) (verificationentity.CertificateStatus, *api.Error) {
	cert, err := u.signer.Check(token)
	if err != nil {
		err = errors.Wrap(err, "Failed to check certificate")
		switch {
		case markers.Is(err, certificate.InvalidCertificateMark):
			return verificationentity.CertificateStatus{}, api.CommitError(err,
				verificationerrors.InvalidCertificateCode,
				"This certificate is invalid or has expired")
		default:
			return verificationentity.CertificateStatus{}, api.CommitError(err,
				api.DefaultErrorCode,
				"Unknown error: The certificate could not be checked")
		}
	}

	status := verificationentity.CertificateStatus{
		Valid:     true,
		Revoked:   false,
		ListingID: cert.ListingID,
		Address:   cert.Address,
		IssuedAt:  cert.IssuedAt,
		ExpiresAt: cert.ExpiresAt,
	}

	listing, apiErr := u.approvedByID(ctx, cert.ListingID)
	if apiErr != nil {
		return verificationentity.CertificateStatus{}, apiErr
	}

	if listing == nil || listing.AddressKey() != cert.Address {
		status.Valid = false
		status.Revoked = true
	}

	return status, nil
}

// approvedByID returns nil when the listing doesn't exist or isn't approved
func (u Usecase) approvedByID(ctx context.Context, listingID string) (*listingentity.Listing, *api.Error) {
	listing, apiErr := u.listingUsecase.FindListing(ctx, listingID)
	if apiErr != nil {
		if apiErr.ErrorCode == listingerrors.ListingNotFoundCode {
			return nil, nil
		}

		return nil, api.WrapError(apiErr, "Failed to look up listing for verification")
	}

	if !listing.IsApproved() {
		return nil, nil
	}

	return &listing, nil
}

func (u Usecase) approvedByAddress(ctx context.Context, address string) (*listingentity.Listing, *api.Error) {
	listings, apiErr := u.listingUsecase.FindListingsByAddress(ctx, address)
	if apiErr != nil {
		return nil, api.WrapError(apiErr, "Failed to look up address for verification")
	}

	var newest *listingentity.Listing
	for i := range listings {
		listing := listings[i]
		if !listing.IsApproved() {
			continue
		}

		if newest == nil || createdAfter(listing, *newest) {
			newest = &listing
		}
	}

	return newest, nil
}

func createdAfter(a listingentity.Listing, b listingentity.Listing) bool {
	if a.Defined.CreatedAt == nil {
		return false
	}

	if b.Defined.CreatedAt == nil {
		return true
	}

	return a.Defined.CreatedAt.After(*b.Defined.CreatedAt)
}
