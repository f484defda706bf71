package listingentity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karasai/karasai-be/src/shared/lib/jsonlib"
)

type Status string

const (
	PendingStatus  Status = "pending"
	ApprovedStatus Status = "approved"
	RejectedStatus Status = "rejected"
)

const (
	MaxImages      = 10
	MaxExtraFields = 20
)

var PropertyTypes = []string{"apartment", "house", "room", "studio", "condo"}

type Listing struct {
	jsonlib.Flatten[ListingFields]
}

type ListingFields struct {
	ID           string     `json:"id"`
	Owner        string     `json:"owner"`
	Title        string     `json:"title" validate:"required,max=140"`
	Description  string     `json:"description" validate:"max=5000"`
	Address      string     `json:"address" validate:"required,max=300"`
	City         string     `json:"city" validate:"required,max=100"`
	PropertyType string     `json:"propertyType" validate:"required,oneof=apartment house room studio condo"`
	Rent         float64    `json:"rent" validate:"gt=0"`
	Bedrooms     int        `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms    int        `json:"bathrooms" validate:"gte=0,lte=50"`
	Area         float64    `json:"area" validate:"gte=0"`
	Amenities    []string   `json:"amenities" validate:"max=50,dive,required,max=60"`
	Images       []string   `json:"images"`
	Status       Status     `json:"status"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func (l Listing) IsNew() bool {
	return l.Defined.ID == ""
}

func (l *Listing) CreateID() {
	if !l.IsNew() {
		panic("CreateID is called without an IsNew check")
	}

	l.Defined.ID = uuid.New().String()
}

func (l Listing) IsApproved() bool {
	return l.Defined.Status == ApprovedStatus
}

// VisibleTo reports whether a signed in user may see the listing. Listings
// under moderation or rejected are only shown to their owner and to admins.
func (l Listing) VisibleTo(userID string, admin bool) bool {
	return l.IsApproved() || admin || (userID != "" && l.Defined.Owner == userID)
}

// truncated to seconds since timestamps double as a sort key and are
// consumed by browsers with millisecond resolution
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func (l *Listing) SetCreatedAtToNow() {
	t := now()
	l.Defined.CreatedAt = &t
	l.Defined.UpdatedAt = &t
}

func (l *Listing) SetUpdatedAtToNow() {
	t := now()
	l.Defined.UpdatedAt = &t
}

// Normalize trims free text, lowercases and dedupes amenities and makes sure
// collections are never null
func (l *Listing) Normalize() {
	d := &l.Defined
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.PropertyType = strings.ToLower(strings.TrimSpace(d.PropertyType))

	amenities := []string{}
	seen := map[string]bool{}
	for _, amenity := range d.Amenities {
		amenity = strings.ToLower(strings.TrimSpace(amenity))
		if amenity == "" || seen[amenity] {
			continue
		}
		seen[amenity] = true
		amenities = append(amenities, amenity)
	}
	d.Amenities = amenities

	if d.Images == nil {
		d.Images = []string{}
	}

	if l.Extra == nil {
		l.Extra = map[string]any{}
	}
}

// SearchText is the lowercased text that free text queries match against
func (l Listing) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		l.Defined.Title,
		l.Defined.Description,
		l.Defined.Address,
		l.Defined.City,
	}, "\n"))
}

func (l Listing) CityKey() string {
	return strings.ToLower(strings.TrimSpace(l.Defined.City))
}

func (l Listing) AddressKey() string {
	return NormalizeAddress(l.Defined.Address)
}

var (
	addressPunctuation = regexp.MustCompile(`[.,#]`)
	whitespaceRun      = regexp.MustCompile(`\s+`)
)

// NormalizeAddress makes "12 Abay Ave., #4" and "12  abay ave 4" compare equal
func NormalizeAddress(address string) string {
	address = strings.ToLower(address)
	address = addressPunctuation.ReplaceAllString(address, " ")
	address = whitespaceRun.ReplaceAllString(address, " ")
	return strings.TrimSpace(address)
}
