package listingentity_test

import (
	"encoding/json"

	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/shared/testing"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Listing", func() {
	var listing listingentity.Listing

	BeforeEach(func() {
		payload, err := json.Marshal(testing.ListingPayload())
		Expect(err).NotTo(HaveOccurred())

		listing = listingentity.Listing{}
		Expect(json.Unmarshal(payload, &listing)).To(Succeed())
	})

	Describe("Unmarshalling", func() {
		It("separates known fields from extra ones", func() {
			Expect(listing.Defined.Title).To(Equal("Sunny two bedroom near Green Bazaar"))
			Expect(listing.Defined.Bedrooms).To(Equal(2))
			Expect(listing.Extra).To(HaveKeyWithValue("floorHeating", true))
			Expect(listing.Extra).NotTo(HaveKey("title"))
		})

		It("round trips the extra fields", func() {
			marshalled := testing.ExpectSuccess(json.Marshal(listing))
			asMap := map[string]any{}
			Expect(json.Unmarshal(marshalled, &asMap)).To(Succeed())

			Expect(asMap).To(HaveKeyWithValue("floorHeating", true))
			Expect(asMap).To(HaveKeyWithValue("city", "Almaty"))
		})
	})

	Describe("Normalize", func() {
		BeforeEach(func() {
			listing.Defined.Title = "  Cozy studio  "
			listing.Defined.PropertyType = " Studio"
			listing.Defined.Images = nil
			listing.Normalize()
		})

		It("trims free text", func() {
			Expect(listing.Defined.Title).To(Equal("Cozy studio"))
		})

		It("lowercases the property type", func() {
			Expect(listing.Defined.PropertyType).To(Equal("studio"))
		})

		It("lowercases and dedupes amenities", func() {
			Expect(listing.Defined.Amenities).To(Equal([]string{"wifi", "parking"}))
		})

		It("never leaves images null", func() {
			Expect(listing.Defined.Images).NotTo(BeNil())
			Expect(listing.Defined.Images).To(BeEmpty())
		})
	})

	Describe("CreateID", func() {
		It("assigns an ID to a new listing", func() {
			Expect(listing.IsNew()).To(BeTrue())
			listing.CreateID()
			Expect(listing.IsNew()).To(BeFalse())
		})

		It("panics for a listing that already has an ID", func() {
			listing.Defined.ID = "existing"
			Expect(listing.CreateID).To(Panic())
		})
	})

	Describe("NormalizeAddress", func() {
		It("ignores case, punctuation and extra spaces", func() {
			Expect(listingentity.NormalizeAddress("12 Abay Ave., #4")).
				To(Equal(listingentity.NormalizeAddress("12  abay ave 4")))
		})

		It("produces the expected key", func() {
			Expect(listingentity.NormalizeAddress("  12 Abay Ave., #4 ")).To(Equal("12 abay ave 4"))
		})

		It("splits words joined only by punctuation", func() {
			Expect(listingentity.NormalizeAddress("12 Abay Ave.,Apt#4")).To(Equal("12 abay ave apt 4"))
			Expect(listingentity.NormalizeAddress("Apt#4")).To(Equal(listingentity.NormalizeAddress("apt 4")))
		})

		It("keeps different addresses apart", func() {
			Expect(listingentity.NormalizeAddress("12 Abay Ave")).
				NotTo(Equal(listingentity.NormalizeAddress("14 Abay Ave")))
		})
	})
})
