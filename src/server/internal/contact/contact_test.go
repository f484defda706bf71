package contact_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/server/internal/contact/errors"
	"github.com/karasai/karasai-be/src/server/internal/contact/gateway"
	"github.com/karasai/karasai-be/src/server/internal/contact/usecase"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/server/internal/listing/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/usecase"
	"github.com/karasai/karasai-be/src/server/internal/shared_tests/auth"
	"github.com/karasai/karasai-be/src/server/internal/shared_tests/dummy"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
	"github.com/karasai/karasai-be/src/shared/contact/entity"
	"github.com/karasai/karasai-be/src/shared/jobs"
	"github.com/karasai/karasai-be/src/shared/lib/rabbitmq/rabbitmqfakes"
	"github.com/karasai/karasai-be/src/shared/testing"
	shareddummy "github.com/karasai/karasai-be/src/shared/testing/dummy"
	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Contact", func() {
	var (
		contactStore   *shareddummy.ContactStore
		listingStore   *dummy.ListingStore
		publisher      *rabbitmqfakes.FakePublisher
		contactGateway contactgateway.Gateway
	)

	BeforeEach(func() {
		contactStore = shareddummy.NewContactStore()
		publisher = &rabbitmqfakes.FakePublisher{}

		listingStore = dummy.NewListingStore()
		listingStore.Seed(dummy.NewListing("listing-1", testing.OtherUser.ID, listingentity.ApprovedStatus, 0))

		userUsecase := userusecase.NewUsecase(dummy.NewUserStore(), testing.Validator{})
		listingUsecase := listingusecase.NewUsecase(listingStore, userUsecase, shareddummy.NewFileStore(), publisher)
		contactUsecase := contactusecase.NewUsecase(contactStore, userUsecase, listingUsecase, publisher)
		contactGateway = contactgateway.NewGateway(contactUsecase)
	})

	var form = func(overrides map[string]any) map[string]any {
		payload := map[string]any{
			"name":    "Dana",
			"email":   "dana@example.com",
			"phone":   "+77017654321",
			"subject": "Is it still available?",
			"message": "I'd like to see the flat this weekend.",
		}

		for k, v := range overrides {
			payload[k] = v
		}

		return payload
	}

	var submit = func(payload any) *httptest.ResponseRecorder {
		request := testing.RequestFactory{
			Method:  "POST",
			Target:  "/contact",
			JSONObj: payload,
		}.MakeFake()

		response := httptest.NewRecorder()
		c := testing.PrepareEchoContext(request, response)
		Expect(contactGateway.Submit(c)).To(Succeed())
		return response
	}

	var getInbox = func(userID string, user testing.User) *httptest.ResponseRecorder {
		request := testing.RequestFactory{
			Method: "GET",
			Target: "/users/" + userID + "/messages",
			Mods:   testing.RequestModifiers{testing.WithUserCred(user)},
		}.MakeFake()

		response := httptest.NewRecorder()
		c := testing.PrepareEchoContext(request, response)
		Expect(contactGateway.GetInbox(c, userID)).To(Succeed())
		return response
	}

	Describe("Submit", func() {
		It("stores a general message for the site inbox", func() {
			response := submit(form(nil))
			Expect(response.Code).To(Equal(http.StatusOK))

			message := testing.DecodeJSON[contactentity.Message](response.Body)
			Expect(message.ID).NotTo(BeEmpty())
			Expect(message.Recipient).To(Equal(contactentity.SiteInbox))
			Expect(message.Status).To(Equal(contactentity.ReceivedStatus))
			Expect(message.Body).To(Equal("I'd like to see the flat this weekend."))

			stored := testing.ExpectSuccess(contactStore.GetMessage(context.Background(), message.ID))
			Expect(stored.Subject).To(Equal("Is it still available?"))
		})

		It("sends a message about a listing to its owner", func() {
			message := testing.DecodeJSON[contactentity.Message](submit(form(map[string]any{"listingId": "listing-1"})).Body)
			Expect(message.Recipient).To(Equal(testing.OtherUser.ID))
			Expect(message.ListingID).To(Equal("listing-1"))
		})

		It("trims the form", func() {
			message := testing.DecodeJSON[contactentity.Message](submit(form(map[string]any{"name": "  Dana  "})).Body)
			Expect(message.Name).To(Equal("Dana"))
		})

		It("publishes a delivery job", func() {
			message := testing.DecodeJSON[contactentity.Message](submit(form(nil)).Body)

			Eventually(publisher.PublishCallCount).Should(Equal(1))
			published := testing.PublishedMessage[jobs.ContactSubmitted](publisher, 0)
			Expect(published.Type).To(Equal(jobs.ContactSubmittedType))
			Expect(published.Message.ContactID).To(Equal(message.ID))
		})

		It("marks the message undelivered when the job can't be published", func() {
			publisher.PublishReturns(errors.New("broker is down"))
			message := testing.DecodeJSON[contactentity.Message](submit(form(nil)).Body)

			Eventually(func() contactentity.Status {
				stored := testing.ExpectSuccess(contactStore.GetMessage(context.Background(), message.ID))
				return stored.Status
			}).Should(Equal(contactentity.UndeliveredStatus))
		})

		It("fails for a listing that doesn't exist", func() {
			response := submit(form(map[string]any{"listingId": "missing"}))
			Expect(response.Code).To(Equal(http.StatusNotFound))

			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(listingerrors.ListingNotFoundCode))
		})

		It("fails for a listing that isn't published", func() {
			listingStore.Seed(dummy.NewListing("pending", testing.OtherUser.ID, listingentity.PendingStatus, 0))

			response := submit(form(map[string]any{"listingId": "pending"}))
			Expect(response.Code).To(Equal(http.StatusNotFound))

			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(listingerrors.ListingNotFoundCode))
			Expect(contactStore.GetMessagesForRecipient(context.Background(), testing.OtherUser.ID)).To(BeEmpty())
			Consistently(publisher.PublishCallCount, "100ms").Should(Equal(0))
		})

		DescribeTable("rejects invalid forms",
			func(payload any) {
				response := submit(payload)
				Expect(response.Code).To(Equal(http.StatusBadRequest))

				resErr := testing.DecodeJSONError(response.Body)
				Expect(resErr.Code).To(BeEquivalentTo(contacterrors.BadContactDataCode))
				Expect(publisher.PublishCallCount()).To(Equal(0))
			},
			Entry("without a name", form(map[string]any{"name": ""})),
			Entry("with a blank message", form(map[string]any{"message": "   "})),
			Entry("with a malformed email", form(map[string]any{"email": "dana-at-example"})),
			Entry("with a malformed phone", form(map[string]any{"phone": "8 701 765"})),
			Entry("with a body that isn't an object", []string{"hello"}),
		)

		It("fails when messages can't be stored", func() {
			contactStore.Unavailable = true
			Expect(submit(form(nil)).Code).To(Equal(http.StatusInternalServerError))
			Consistently(publisher.PublishCallCount, "100ms").Should(Equal(0))
		})
	})

	Describe("Get Inbox", func() {
		It("returns the owner's messages newest first", func() {
			older := contactentity.Message{
				ID:        "older",
				Recipient: testing.OtherUser.ID,
				Status:    contactentity.ForwardedStatus,
				CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			}
			newer := older
			newer.ID = "newer"
			newer.CreatedAt = older.CreatedAt.Add(time.Hour)

			Expect(contactStore.CreateMessage(context.Background(), older)).To(Succeed())
			Expect(contactStore.CreateMessage(context.Background(), newer)).To(Succeed())

			response := getInbox(testing.OtherUser.ID, testing.OtherUser)
			Expect(response.Code).To(Equal(http.StatusOK))

			messages := testing.DecodeJSON[[]contactentity.Message](response.Body)
			Expect(messages).To(HaveLen(2))
			Expect(messages[0].ID).To(Equal("newer"))
			Expect(messages[1].ID).To(Equal("older"))
		})

		It("is empty for a user without messages", func() {
			messages := testing.DecodeJSON[[]contactentity.Message](getInbox(testing.PrimaryUser.ID, testing.PrimaryUser).Body)
			Expect(messages).To(BeEmpty())
		})

		Describe("Permissions", func() {
			BeforeEach(func() {
				authtest.Endpoint = func(c echo.Context) error {
					return contactGateway.GetInbox(c, testing.PrimaryUser.ID)
				}
			})

			authtest.ItRejectsUnpermittedRequests("GET", "/users/"+testing.PrimaryUser.ID+"/messages")
		})
	})
})
