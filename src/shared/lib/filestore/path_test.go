package filestore_test

import (
	"github.com/cockroachdb/errors/markers"
	"github.com/karasai/karasai-be/src/shared/lib/filestore"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PathGenerator", func() {
	var generator filestore.PathGenerator

	BeforeEach(func() {
		generator = filestore.PathGenerator{
			Host:   "https://storage.googleapis.com",
			Bucket: "listing-images",
		}
	})

	It("builds a public URL for the object", func() {
		Expect(generator.URL("listings/abc/photo.jpg")).
			To(Equal("https://storage.googleapis.com/listing-images/listings/abc/photo.jpg"))
	})

	It("recovers the object path from its URL", func() {
		url := generator.URL("listings/abc/photo.jpg")
		Expect(generator.ObjectPath(url)).To(Equal("listings/abc/photo.jpg"))
	})

	It("rejects URLs from another bucket", func() {
		_, err := generator.ObjectPath("https://storage.googleapis.com/other-bucket/listings/abc/photo.jpg")
		Expect(err).To(HaveOccurred())
		Expect(markers.Is(err, filestore.ForeignURLMark)).To(BeTrue())
	})

	It("rejects the bucket root", func() {
		_, err := generator.ObjectPath("https://storage.googleapis.com/listing-images/")
		Expect(markers.Is(err, filestore.ForeignURLMark)).To(BeTrue())
	})
})
