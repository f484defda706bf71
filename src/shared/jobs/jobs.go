package jobs

// message types carried in amqp091.Publishing.Type
const (
	ContactSubmittedType   = "contact_submitted"
	ListingImagesPurgeType = "listing_images_purge"
)

type ContactSubmitted struct {
	ContactID string `json:"contact_id"`
}

type ListingImagesPurge struct {
	ListingID string   `json:"listing_id"`
	Images    []string `json:"images"`
}
