package verificationentity

import (
	"time"

	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
)

type Query struct {
	Address   string `query:"address"`
	ListingID string `query:"listingId"`
}

// Result is the answer to a verification lookup. Listing and Certificate are
// only set when Verified is true.
type Result struct {
	Verified    bool                   `json:"verified"`
	CheckedAt   time.Time              `json:"checkedAt"`
	Listing     *listingentity.Listing `json:"listing,omitempty"`
	Certificate string                 `json:"certificate,omitempty"`
}

type CertificateStatus struct {
	Valid     bool      `json:"valid"`
	Revoked   bool      `json:"revoked"`
	ListingID string    `json:"listingId"`
	Address   string    `json:"address"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
