package contactstorage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/cockroachdb/errors"
	"github.com/guregu/dynamo"
	"github.com/karasai/karasai-be/src/shared/contact/entity"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

const (
	MessagesTable     = "ContactMessages"
	RecipientIndex    = "recipient-index"
	idKey             = "id"
	recipientKey      = "recipient"
	statusKey         = "status"
	updatedAtKey      = "updatedAt"
	newMessageCond    = "attribute_not_exists(" + idKey + ")"
	statusMatchesCond = "attribute_exists(" + idKey + ") AND $ = ?"
)

type dbMessage struct {
	ID        string    `dynamo:"id,hash"`
	Recipient string    `dynamo:"recipient" index:"recipient-index,hash"`
	ListingID string    `dynamo:"listingId"`
	Name      string    `dynamo:"name"`
	Email     string    `dynamo:"email"`
	Phone     string    `dynamo:"phone"`
	Subject   string    `dynamo:"subject"`
	Body      string    `dynamo:"body"`
	Status    string    `dynamo:"status"`
	CreatedAt time.Time `dynamo:"createdAt" index:"recipient-index,range"`
	UpdatedAt time.Time `dynamo:"updatedAt"`
}

func fromEntity(message contactentity.Message) dbMessage {
	return dbMessage{
		ID:        message.ID,
		Recipient: message.Recipient,
		ListingID: message.ListingID,
		Name:      message.Name,
		Email:     message.Email,
		Phone:     message.Phone,
		Subject:   message.Subject,
		Body:      message.Body,
		Status:    string(message.Status),
		CreatedAt: message.CreatedAt.UTC(),
		UpdatedAt: message.UpdatedAt.UTC(),
	}
}

func (d dbMessage) toEntity() contactentity.Message {
	return contactentity.Message{
		ID:        d.ID,
		Recipient: d.Recipient,
		ListingID: d.ListingID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Subject:   d.Subject,
		Body:      d.Body,
		Status:    contactentity.Status(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// CreateTable is used by local setup and tests, production tables are
// provisioned separately
func CreateTable(ctx context.Context, db dynamolib.DynamoDBWrapper) error {
	err := db.CreateTable(MessagesTable, dbMessage{}).
		Project(RecipientIndex, dynamo.AllProjection).
		RunWithContext(ctx)

	if err != nil {
		return errors.Wrap(err, "Failed to create contact messages table")
	}

	return nil
}

var _ contactentity.Store = DB{}

type DB struct {
	dynamoDB dynamolib.DynamoDBWrapper
}

func NewDB(dynamoDB dynamolib.DynamoDBWrapper) DB {
	return DB{
		dynamoDB: dynamoDB,
	}
}

func (d DB) GetMessage(ctx context.Context, messageID string) (contactentity.Message, error) {
	if messageID == "" {
		err := errors.New("Message ID is empty")
		return contactentity.Message{}, mark.Wrap(err, MessageNotFoundMark, "No ID provided to fetch message")
	}

	value := dbMessage{}
	err := d.dynamoDB.Table(MessagesTable).
		Get(idKey, messageID).
		Consistent(true).
		OneWithContext(ctx, &value)

	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return contactentity.Message{}, mark.Wrap(err, MessageNotFoundMark, "Message for this ID couldn't be found")
		}

		return contactentity.Message{}, mark.Wrap(err, DefaultErrorMark, "Failed to fetch message")
	}

	return value.toEntity(), nil
}

func (d DB) GetMessagesForRecipient(ctx context.Context, recipient string) ([]contactentity.Message, error) {
	values := []dbMessage{}
	err := d.dynamoDB.Table(MessagesTable).
		Get(recipientKey, recipient).
		Index(RecipientIndex).
		Order(dynamo.Descending).
		AllWithContext(ctx, &values)

	if err != nil {
		return nil, mark.Wrap(err, DefaultErrorMark, "Failed to fetch messages for recipient")
	}

	messages := []contactentity.Message{}
	for _, value := range values {
		messages = append(messages, value.toEntity())
	}

	return messages, nil
}

func (d DB) CreateMessage(ctx context.Context, message contactentity.Message) error {
	err := d.dynamoDB.Table(MessagesTable).Table.
		Put(fromEntity(message)).
		If(newMessageCond).
		RunWithContext(ctx)

	if err != nil {
		if conditionalCheckFailed(err) {
			return mark.Wrap(err, MessageAlreadyExistsMark, "Cannot create: A message of this ID already exists")
		}

		return mark.Wrap(err, DefaultErrorMark, "Failed to put message into DB")
	}

	return nil
}

func (d DB) TransitionStatus(ctx context.Context, messageID string, from contactentity.Status, to contactentity.Status) error {
	err := d.dynamoDB.Table(MessagesTable).
		Update(idKey, messageID).
		Set(statusKey, string(to)).
		Set(updatedAtKey, time.Now().UTC().Truncate(time.Second)).
		If(statusMatchesCond, statusKey, string(from)).
		RunWithContext(ctx)

	if err != nil {
		if conditionalCheckFailed(err) {
			return mark.Wrap(err, StatusConflictMark, "Message is missing or no longer in the expected status")
		}

		return mark.Wrap(err, DefaultErrorMark, "Failed to update message status")
	}

	return nil
}

func (d DB) DeleteMessagesForRecipient(ctx context.Context, recipient string) error {
	messages, err := d.GetMessagesForRecipient(ctx, recipient)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		return nil
	}

	keys := []dynamo.Keyed{}
	for _, message := range messages {
		keys = append(keys, dynamo.Keys{message.ID})
	}

	_, err = d.dynamoDB.Table(MessagesTable).
		Batch(idKey).
		Write().
		Delete(keys...).
		RunWithContext(ctx)

	if err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to delete messages for recipient")
	}

	return nil
}

func conditionalCheckFailed(err error) bool {
	var conditionErr *dynamodb.ConditionalCheckFailedException
	return errors.As(err, &conditionErr)
}
