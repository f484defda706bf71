package certificate

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/domains"
	"github.com/golang-jwt/jwt/v5"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

const (
	Issuer   = "karasai"
	Lifetime = 30 * 24 * time.Hour
)

var InvalidCertificateMark = domains.New("invalid_certificate")

type Claims struct {
	Address string `json:"addr"`
	jwt.RegisteredClaims
}

type Certificate struct {
	ListingID string
	Address   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Signer issues and checks HS512 certificates for verified listings
type Signer struct {
	key []byte
	now func() time.Time
}

func NewSigner(key string) Signer {
	return NewSignerWithClock(key, time.Now)
}

func NewSignerWithClock(key string, now func() time.Time) Signer {
	if key == "" {
		panic("Certificate signing key is empty")
	}

	return Signer{
		key: []byte(key),
		now: now,
	}
}

func (s Signer) Issue(listingID string, address string) (string, Certificate, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	cert := Certificate{
		ListingID: listingID,
		Address:   address,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(Lifetime),
	}

	claims := Claims{
		Address: address,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   listingID,
			IssuedAt:  jwt.NewNumericDate(cert.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(cert.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.key)
	if err != nil {
		return "", Certificate{}, errors.Wrap(err, "Failed to sign certificate")
	}

	return token, cert, nil
}

func (s Signer) Check(token string) (Certificate, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) {
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		return Certificate{}, mark.Wrap(err, InvalidCertificateMark, "Certificate failed signature or expiry check")
	}

	if claims.Subject == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		err := errors.New("Certificate is missing required claims")
		return Certificate{}, mark.Wrap(err, InvalidCertificateMark, "Certificate is incomplete")
	}

	return Certificate{
		ListingID: claims.Subject,
		Address:   claims.Address,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
