package listingentity_test

import (
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/shared/lib/jsonlib"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ptr[T any](t T) *T {
	return &t
}

var _ = Describe("SearchParams", func() {
	var listing listingentity.Listing

	BeforeEach(func() {
		listing = listingentity.Listing{
			Flatten: jsonlib.Flatten[listingentity.ListingFields]{
				Defined: listingentity.ListingFields{
					Title:        "Bright flat by the park",
					Description:  "Quiet street",
					Address:      "5 Satpayev St",
					City:         "Almaty",
					PropertyType: "apartment",
					Rent:         300000,
					Bedrooms:     2,
					Amenities:    []string{"wifi", "balcony"},
				},
			},
		}
	})

	Describe("Normalized", func() {
		It("defaults the page size", func() {
			Expect(listingentity.SearchParams{}.Normalized().Limit).To(Equal(listingentity.DefaultPageSize))
		})

		It("caps the page size", func() {
			params := listingentity.SearchParams{Limit: 500}
			Expect(params.Normalized().Limit).To(Equal(listingentity.MaxPageSize))
		})

		It("lowercases text filters and drops blanks", func() {
			params := listingentity.SearchParams{
				Query:     " PARK ",
				City:      "Almaty",
				Amenities: []string{"WiFi", " "},
			}.Normalized()

			Expect(params.Query).To(Equal("park"))
			Expect(params.City).To(Equal("almaty"))
			Expect(params.Amenities).To(Equal([]string{"wifi"}))
		})
	})

	DescribeTable("Matches",
		func(params listingentity.SearchParams, matches bool) {
			Expect(params.Normalized().Matches(listing)).To(Equal(matches))
		},
		Entry("no filters", listingentity.SearchParams{}, true),
		Entry("free text in the title", listingentity.SearchParams{Query: "Park"}, true),
		Entry("free text in the description", listingentity.SearchParams{Query: "quiet"}, true),
		Entry("free text that's absent", listingentity.SearchParams{Query: "sea view"}, false),
		Entry("same city, different case", listingentity.SearchParams{City: "ALMATY"}, true),
		Entry("other city", listingentity.SearchParams{City: "Astana"}, false),
		Entry("one of the property types", listingentity.SearchParams{PropertyTypes: []string{"house", "apartment"}}, true),
		Entry("none of the property types", listingentity.SearchParams{PropertyTypes: []string{"house"}}, false),
		Entry("rent within range", listingentity.SearchParams{MinRent: ptr(200000.0), MaxRent: ptr(300000.0)}, true),
		Entry("rent below minimum", listingentity.SearchParams{MinRent: ptr(300001.0)}, false),
		Entry("rent above maximum", listingentity.SearchParams{MaxRent: ptr(299999.0)}, false),
		Entry("enough bedrooms", listingentity.SearchParams{MinBedrooms: ptr(2)}, true),
		Entry("too few bedrooms", listingentity.SearchParams{MinBedrooms: ptr(3)}, false),
		Entry("all amenities present", listingentity.SearchParams{Amenities: []string{"WiFi", "balcony"}}, true),
		Entry("an amenity missing", listingentity.SearchParams{Amenities: []string{"wifi", "parking"}}, false),
	)
})
