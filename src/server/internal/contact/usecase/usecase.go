package contactusecase

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/google/uuid"
	"github.com/karasai/karasai-be/src/server/internal/contact/entity"
	"github.com/karasai/karasai-be/src/server/internal/contact/errors"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/listing/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/usecase"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
	sharedcontact "github.com/karasai/karasai-be/src/shared/contact/entity"
	"github.com/karasai/karasai-be/src/shared/contact/storage"
	"github.com/karasai/karasai-be/src/shared/jobs"
	"github.com/karasai/karasai-be/src/shared/lib/rabbitmq"
	"github.com/karasai/karasai-be/src/shared/lib/validate"
)

type Usecase struct {
	db             sharedcontact.Store
	userUsecase    userusecase.Usecase
	listingUsecase listingusecase.Usecase
	publisher      rabbitmq.Publisher
}

func NewUsecase(db sharedcontact.Store, userUsecase userusecase.Usecase, listingUsecase listingusecase.Usecase, publisher rabbitmq.Publisher) Usecase {
	return Usecase{
		db:             db,
		userUsecase:    userUsecase,
		listingUsecase: listingUsecase,
		publisher:      publisher,
	}
}

// Submit stores the message for its recipient and hands delivery to the
// worker. A message about a listing goes to the listing's owner.
func (u Usecase) Submit(ctx context.Context, submission contactentity.Submission) (sharedcontact.Message, *api.Error) {
	submission = submission.Trimmed()
	if err := validate.Struct(submission); err != nil {
		return sharedcontact.Message{}, api.CommitError(errors.Wrap(err, "Contact form failed validation"),
			contacterrors.BadContactDataCode,
			"The contact form is missing fields or has invalid values")
	}

	recipient := sharedcontact.SiteInbox
	if submission.ListingID != "" {
		listing, apiErr := u.listingUsecase.FindListing(ctx, submission.ListingID)
		if apiErr != nil {
			return sharedcontact.Message{}, api.WrapError(apiErr, "Failed to find the listing being asked about")
		}

		// only published listings take messages
		if !listing.IsApproved() {
			return sharedcontact.Message{}, api.CommitError(
				errors.Newf("Listing %s is %s", listing.Defined.ID, listing.Defined.Status),
				listingerrors.ListingNotFoundCode,
				"The listing could not be found")
		}

		recipient = listing.Defined.Owner
	}

	createdAt := time.Now().UTC().Truncate(time.Second)
	message := sharedcontact.Message{
		ID:        uuid.New().String(),
		Recipient: recipient,
		ListingID: submission.ListingID,
		Name:      submission.Name,
		Email:     submission.Email,
		Phone:     submission.Phone,
		Subject:   submission.Subject,
		Body:      submission.Message,
		Status:    sharedcontact.ReceivedStatus,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if err := u.db.CreateMessage(ctx, message); err != nil {
		return sharedcontact.Message{}, api.CommitError(errors.Wrap(err, "Failed to store contact message"),
			api.DefaultErrorCode,
			"Unknown error: Your message could not be sent. Please try again")
	}

	go u.publishSubmitted(message.ID)

	return message, nil
}

func (u Usecase) publishSubmitted(messageID string) {
	ctx := context.Background()
	err := rabbitmq.PublishJSON(ctx, u.publisher, jobs.ContactSubmittedType, jobs.ContactSubmitted{
		ContactID: messageID,
	})

	if err == nil {
		return
	}

	log.WithError(err).
		WithField("contact_id", messageID).
		Error("Failed to publish contact message job")

	err = u.db.TransitionStatus(ctx, messageID, sharedcontact.ReceivedStatus, sharedcontact.UndeliveredStatus)
	if err != nil && !markers.Is(err, contactstorage.StatusConflictMark) {
		log.WithError(err).
			WithField("contact_id", messageID).
			Error("Failed to mark contact message as undelivered")
	}
}

func (u Usecase) GetInbox(ctx context.Context, authHeader string, userID string) ([]sharedcontact.Message, *api.Error) {
	if apiErr := u.userUsecase.VerifyOwner(ctx, authHeader, userID); apiErr != nil {
		return nil, api.WrapError(apiErr, "Cannot verify the inbox owner")
	}

	messages, err := u.db.GetMessagesForRecipient(ctx, userID)
	if err != nil {
		return nil, api.CommitError(errors.Wrap(err, "Failed to get inbox"),
			api.DefaultErrorCode,
			"Unknown error: Failed to fetch your messages")
	}

	return messages, nil
}

// DeleteInbox is for account removal, the caller verifies ownership
func (u Usecase) DeleteInbox(ctx context.Context, userID string) *api.Error {
	if err := u.db.DeleteMessagesForRecipient(ctx, userID); err != nil {
		return api.CommitError(errors.Wrap(err, "Failed to delete inbox"),
			api.DefaultErrorCode,
			"Unknown error: Failed to remove your messages")
	}

	return nil
}
