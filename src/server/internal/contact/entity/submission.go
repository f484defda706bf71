package contactentity

import "strings"

// Submission is the public contact form
type Submission struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=5000"`
	ListingID string `json:"listingId" validate:"max=64"`
}

func (s Submission) Trimmed() Submission {
	return Submission{
		Name:      strings.TrimSpace(s.Name),
		Email:     strings.TrimSpace(s.Email),
		Phone:     strings.TrimSpace(s.Phone),
		Subject:   strings.TrimSpace(s.Subject),
		Message:   strings.TrimSpace(s.Message),
		ListingID: strings.TrimSpace(s.ListingID),
	}
}
