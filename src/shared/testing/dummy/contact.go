package dummy

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/shared/contact/entity"
	"github.com/karasai/karasai-be/src/shared/contact/storage"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

var _ contactentity.Store = &ContactStore{}

type ContactStore struct {
	Unavailable bool

	lock     sync.Mutex
	messages map[string]contactentity.Message
}

func NewContactStore() *ContactStore {
	return &ContactStore{
		messages: map[string]contactentity.Message{},
	}
}

func (c *ContactStore) GetMessage(_ context.Context, messageID string) (contactentity.Message, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.Unavailable {
		return contactentity.Message{}, mark.Wrap(NetworkFailure, contactstorage.DefaultErrorMark, "Dummy store failure")
	}

	message, ok := c.messages[messageID]
	if !ok {
		return contactentity.Message{}, mark.Message(contactstorage.MessageNotFoundMark, "Message is not found")
	}

	return message, nil
}

func (c *ContactStore) GetMessagesForRecipient(_ context.Context, recipient string) ([]contactentity.Message, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.Unavailable {
		return nil, mark.Wrap(NetworkFailure, contactstorage.DefaultErrorMark, "Dummy store failure")
	}

	inbox := []contactentity.Message{}
	for _, message := range c.messages {
		if message.Recipient == recipient {
			inbox = append(inbox, message)
		}
	}

	sort.SliceStable(inbox, func(i, j int) bool {
		return inbox[i].CreatedAt.After(inbox[j].CreatedAt)
	})

	return inbox, nil
}

func (c *ContactStore) CreateMessage(_ context.Context, message contactentity.Message) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.Unavailable {
		return mark.Wrap(NetworkFailure, contactstorage.DefaultErrorMark, "Dummy store failure")
	}

	if _, ok := c.messages[message.ID]; ok {
		return mark.Message(contactstorage.MessageAlreadyExistsMark, "Message already exists")
	}

	c.messages[message.ID] = message
	return nil
}

func (c *ContactStore) TransitionStatus(_ context.Context, messageID string, from contactentity.Status, to contactentity.Status) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.Unavailable {
		return mark.Wrap(NetworkFailure, contactstorage.DefaultErrorMark, "Dummy store failure")
	}

	message, ok := c.messages[messageID]
	if !ok || message.Status != from {
		err := errors.Newf("Message %s is not in status %s", messageID, from)
		return mark.Wrap(err, contactstorage.StatusConflictMark, "Status has moved on")
	}

	message.Status = to
	c.messages[messageID] = message
	return nil
}

func (c *ContactStore) DeleteMessagesForRecipient(_ context.Context, recipient string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.Unavailable {
		return mark.Wrap(NetworkFailure, contactstorage.DefaultErrorMark, "Dummy store failure")
	}

	for id, message := range c.messages {
		if message.Recipient == recipient {
			delete(c.messages, id)
		}
	}

	return nil
}
