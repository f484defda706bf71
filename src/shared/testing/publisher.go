package testing

import (
	"encoding/json"

	"github.com/karasai/karasai-be/src/shared/lib/rabbitmq/rabbitmqfakes"
	"github.com/onsi/gomega"
)

type ReceivedMessage[T any] struct {
	Type    string
	Message T
}

// PublishedMessage decodes the i-th message handed to the fake publisher
func PublishedMessage[T any](publisher *rabbitmqfakes.FakePublisher, i int) ReceivedMessage[T] {
	_, msg := publisher.PublishArgsForCall(i)

	body := new(T)
	err := json.Unmarshal(msg.Body, body)
	gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())

	return ReceivedMessage[T]{
		Type:    msg.Type,
		Message: *body,
	}
}
