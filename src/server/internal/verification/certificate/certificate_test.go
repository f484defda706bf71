package certificate_test

import (
	"time"

	"github.com/cockroachdb/errors/markers"
	"github.com/golang-jwt/jwt/v5"
	"github.com/karasai/karasai-be/src/server/internal/verification/certificate"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Signer", func() {
	var (
		now    time.Time
		signer certificate.Signer
	)

	BeforeEach(func() {
		now = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
		signer = certificate.NewSignerWithClock("test-signing-key", func() time.Time {
			return now
		})
	})

	It("panics without a signing key", func() {
		Expect(func() { certificate.NewSigner("") }).To(Panic())
	})

	Describe("A freshly issued certificate", func() {
		var (
			token  string
			issued certificate.Certificate
		)

		BeforeEach(func() {
			var err error
			token, issued, err = signer.Issue("listing-1", "12 abay ave 4")
			Expect(err).NotTo(HaveOccurred())
		})

		It("expires after the certificate lifetime", func() {
			Expect(issued.IssuedAt).To(Equal(now))
			Expect(issued.ExpiresAt).To(Equal(now.Add(certificate.Lifetime)))
		})

		It("checks out with the same contents", func() {
			checked, err := signer.Check(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(checked.ListingID).To(Equal("listing-1"))
			Expect(checked.Address).To(Equal("12 abay ave 4"))
			Expect(checked.IssuedAt).To(BeTemporally("==", issued.IssuedAt))
			Expect(checked.ExpiresAt).To(BeTemporally("==", issued.ExpiresAt))
		})

		It("is rejected once expired", func() {
			now = now.Add(certificate.Lifetime + time.Minute)
			_, err := signer.Check(token)
			Expect(markers.Is(err, certificate.InvalidCertificateMark)).To(BeTrue())
		})

		It("is rejected by a signer with another key", func() {
			otherSigner := certificate.NewSignerWithClock("another-key", func() time.Time {
				return now
			})

			_, err := otherSigner.Check(token)
			Expect(markers.Is(err, certificate.InvalidCertificateMark)).To(BeTrue())
		})
	})

	It("rejects garbage", func() {
		_, err := signer.Check("definitely.not.a-token")
		Expect(markers.Is(err, certificate.InvalidCertificateMark)).To(BeTrue())
	})

	It("rejects tokens signed with another algorithm", func() {
		claims := certificate.Claims{
			Address: "12 abay ave 4",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    certificate.Issuer,
				Subject:   "listing-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
		Expect(err).NotTo(HaveOccurred())

		_, err = signer.Check(token)
		Expect(markers.Is(err, certificate.InvalidCertificateMark)).To(BeTrue())
	})

	It("rejects tokens missing the listing", func() {
		claims := certificate.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    certificate.Issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-signing-key"))
		Expect(err).NotTo(HaveOccurred())

		_, err = signer.Check(token)
		Expect(markers.Is(err, certificate.InvalidCertificateMark)).To(BeTrue())
	})
})
