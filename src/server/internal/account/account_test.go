package account_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/karasai/karasai-be/src/server/internal/account/gateway"
	"github.com/karasai/karasai-be/src/server/internal/account/usecase"
	"github.com/karasai/karasai-be/src/server/internal/contact/usecase"
	"github.com/karasai/karasai-be/src/server/internal/favorite/entity"
	"github.com/karasai/karasai-be/src/server/internal/favorite/usecase"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
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

var _ = Describe("Account", func() {
	var (
		ctx            context.Context
		userStore      *dummy.UserStore
		listingStore   *dummy.ListingStore
		favoriteStore  *dummy.FavoriteStore
		contactStore   *shareddummy.ContactStore
		publisher      *rabbitmqfakes.FakePublisher
		accountGateway accountgateway.Gateway
	)

	userID := testing.PrimaryUser.ID

	BeforeEach(func() {
		ctx = context.Background()
		userStore = dummy.NewUserStore()
		listingStore = dummy.NewListingStore()
		favoriteStore = dummy.NewFavoriteStore()
		contactStore = shareddummy.NewContactStore()
		publisher = &rabbitmqfakes.FakePublisher{}

		userUsecase := userusecase.NewUsecase(userStore, testing.Validator{})
		listingUsecase := listingusecase.NewUsecase(listingStore, userUsecase, shareddummy.NewFileStore(), publisher)
		favoriteUsecase := favoriteusecase.NewUsecase(favoriteStore, userUsecase, listingUsecase)
		contactUsecase := contactusecase.NewUsecase(contactStore, userUsecase, listingUsecase, publisher)
		accountGateway = accountgateway.NewGateway(
			accountusecase.NewUsecase(userUsecase, listingUsecase, favoriteUsecase, contactUsecase))

		withImage := dummy.NewListing("mine-with-image", userID, listingentity.ApprovedStatus, 0)
		withImage.Defined.Images = []string{"https://storage.test/karasai-test/listings/mine-with-image/a"}
		listingStore.Seed(
			withImage,
			dummy.NewListing("mine-pending", userID, listingentity.PendingStatus, 0),
			dummy.NewListing("theirs", testing.OtherUser.ID, listingentity.ApprovedStatus, 0),
		)

		Expect(favoriteStore.PutFavorites(ctx, []favoriteentity.Favorite{
			{UserID: userID, ListingID: "theirs", SavedAt: time.Now()},
			{UserID: testing.OtherUser.ID, ListingID: "mine-pending", SavedAt: time.Now()},
		})).To(Succeed())

		Expect(contactStore.CreateMessage(ctx, contactentity.Message{
			ID:        "to-me",
			Recipient: userID,
			Status:    contactentity.ForwardedStatus,
		})).To(Succeed())
		Expect(contactStore.CreateMessage(ctx, contactentity.Message{
			ID:        "to-them",
			Recipient: testing.OtherUser.ID,
			Status:    contactentity.ForwardedStatus,
		})).To(Succeed())
	})

	var deleteAccount = func(user testing.User) *httptest.ResponseRecorder {
		request := testing.RequestFactory{
			Method: "DELETE",
			Target: "/users/" + userID,
			Mods:   testing.RequestModifiers{testing.WithUserCred(user)},
		}.MakeFake()

		response := httptest.NewRecorder()
		c := testing.PrepareEchoContext(request, response)
		Expect(accountGateway.DeleteAccount(c, userID)).To(Succeed())
		return response
	}

	Describe("Delete Account", func() {
		It("removes the user and everything they own", func() {
			Expect(deleteAccount(testing.PrimaryUser).Code).To(Equal(http.StatusOK))

			Expect(userStore.Has(userID)).To(BeFalse())
			Expect(listingStore.Has("mine-with-image")).To(BeFalse())
			Expect(listingStore.Has("mine-pending")).To(BeFalse())
			Expect(testing.ExpectSuccess(favoriteStore.GetFavorites(ctx, userID))).To(BeEmpty())
			Expect(testing.ExpectSuccess(contactStore.GetMessagesForRecipient(ctx, userID))).To(BeEmpty())
		})

		It("leaves other users alone", func() {
			Expect(deleteAccount(testing.PrimaryUser).Code).To(Equal(http.StatusOK))

			Expect(userStore.Has(testing.OtherUser.ID)).To(BeTrue())
			Expect(listingStore.Has("theirs")).To(BeTrue())
			Expect(testing.ExpectSuccess(favoriteStore.GetFavorites(ctx, testing.OtherUser.ID))).To(HaveLen(1))
			Expect(testing.ExpectSuccess(contactStore.GetMessagesForRecipient(ctx, testing.OtherUser.ID))).To(HaveLen(1))
		})

		It("purges the images of deleted listings", func() {
			Expect(deleteAccount(testing.PrimaryUser).Code).To(Equal(http.StatusOK))

			Eventually(publisher.PublishCallCount).Should(Equal(1))
			msg := testing.PublishedMessage[jobs.ListingImagesPurge](publisher, 0)
			Expect(msg.Message.ListingID).To(Equal("mine-with-image"))
		})

		It("keeps the account when part of the cleanup fails", func() {
			contactStore.Unavailable = true

			Expect(deleteAccount(testing.PrimaryUser).Code).To(Equal(http.StatusInternalServerError))
			Expect(userStore.Has(userID)).To(BeTrue())
		})

		Describe("Permissions", func() {
			BeforeEach(func() {
				authtest.Endpoint = func(c echo.Context) error {
					return accountGateway.DeleteAccount(c, userID)
				}
			})

			authtest.ItRejectsUnpermittedRequests("DELETE", "/users/"+userID)
		})
	})
})
