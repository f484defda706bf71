package favorite_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/karasai/karasai-be/src/server/internal/favorite/entity"
	"github.com/karasai/karasai-be/src/server/internal/favorite/errors"
	"github.com/karasai/karasai-be/src/server/internal/favorite/gateway"
	"github.com/karasai/karasai-be/src/server/internal/favorite/usecase"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/server/internal/listing/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/usecase"
	"github.com/karasai/karasai-be/src/server/internal/shared_tests/auth"
	"github.com/karasai/karasai-be/src/server/internal/shared_tests/dummy"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
	"github.com/karasai/karasai-be/src/shared/lib/rabbitmq/rabbitmqfakes"
	"github.com/karasai/karasai-be/src/shared/testing"
	shareddummy "github.com/karasai/karasai-be/src/shared/testing/dummy"
	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Favorite", func() {
	var (
		listingStore    *dummy.ListingStore
		favoriteStore   *dummy.FavoriteStore
		favoriteGateway favoritegateway.Gateway
	)

	userID := testing.PrimaryUser.ID
	favoritesPath := "/users/" + userID + "/favorites"

	BeforeEach(func() {
		listingStore = dummy.NewListingStore()
		favoriteStore = dummy.NewFavoriteStore()

		userUsecase := userusecase.NewUsecase(dummy.NewUserStore(), testing.Validator{})
		listingUsecase := listingusecase.NewUsecase(listingStore, userUsecase, shareddummy.NewFileStore(), &rabbitmqfakes.FakePublisher{})
		favoriteUsecase := favoriteusecase.NewUsecase(favoriteStore, userUsecase, listingUsecase)
		favoriteGateway = favoritegateway.NewGateway(favoriteUsecase)

		for i := 1; i <= 3; i++ {
			listing := dummy.NewListing(fmt.Sprintf("listing-%d", i), testing.OtherUser.ID, listingentity.ApprovedStatus, 0)
			listing.Defined.Images = []string{fmt.Sprintf("https://storage.test/karasai-test/listings/listing-%d/cover", i)}
			listingStore.Seed(listing)
		}
	})

	var as = func(user testing.User) testing.RequestModifiers {
		return testing.RequestModifiers{testing.WithUserCred(user)}
	}

	var getFavorites = func() []favoriteentity.Summary {
		request := testing.RequestFactory{
			Method: "GET",
			Target: favoritesPath,
			Mods:   as(testing.PrimaryUser),
		}.MakeFake()

		response := httptest.NewRecorder()
		c := testing.PrepareEchoContext(request, response)
		Expect(favoriteGateway.GetFavorites(c, userID)).To(Succeed())
		Expect(response.Code).To(Equal(http.StatusOK))

		return testing.DecodeJSON[[]favoriteentity.Summary](response.Body)
	}

	var saveFavorite = func(listingID string) *httptest.ResponseRecorder {
		request := testing.RequestFactory{
			Method: "PUT",
			Target: favoritesPath + "/" + listingID,
			Mods:   as(testing.PrimaryUser),
		}.MakeFake()

		response := httptest.NewRecorder()
		c := testing.PrepareEchoContext(request, response)
		Expect(favoriteGateway.SaveFavorite(c, userID, listingID)).To(Succeed())
		return response
	}

	var merge = func(body any) *httptest.ResponseRecorder {
		request := testing.RequestFactory{
			Method:  "POST",
			Target:  favoritesPath + "/merge",
			JSONObj: body,
			Mods:    as(testing.PrimaryUser),
		}.MakeFake()

		response := httptest.NewRecorder()
		c := testing.PrepareEchoContext(request, response)
		Expect(favoriteGateway.MergeGuestFavorites(c, userID)).To(Succeed())
		return response
	}

	var listingIDs = func(summaries []favoriteentity.Summary) []string {
		ids := []string{}
		for _, summary := range summaries {
			ids = append(ids, summary.ListingID)
		}
		return ids
	}

	Describe("Save Favorite", func() {
		It("starts out empty", func() {
			Expect(getFavorites()).To(BeEmpty())
		})

		It("saves a listing with its summary", func() {
			Expect(saveFavorite("listing-1").Code).To(Equal(http.StatusOK))

			favorites := getFavorites()
			Expect(favorites).To(HaveLen(1))
			Expect(favorites[0].ListingID).To(Equal("listing-1"))
			Expect(favorites[0].Title).To(Equal("Listing listing-1"))
			Expect(favorites[0].Thumbnail).To(HaveSuffix("listing-1/cover"))
			Expect(favorites[0].SavedAt).NotTo(BeZero())
		})

		It("is idempotent and keeps the original saved time", func() {
			original := favoriteentity.Favorite{
				UserID:    userID,
				ListingID: "listing-1",
				SavedAt:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			}
			Expect(favoriteStore.PutFavorites(context.Background(), []favoriteentity.Favorite{original})).To(Succeed())

			Expect(saveFavorite("listing-1").Code).To(Equal(http.StatusOK))

			favorites := getFavorites()
			Expect(favorites).To(HaveLen(1))
			Expect(favorites[0].SavedAt).To(BeTemporally("==", original.SavedAt))
		})

		It("can't save a listing that doesn't exist", func() {
			response := saveFavorite("missing")
			Expect(response.Code).To(Equal(http.StatusNotFound))

			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(listingerrors.ListingNotFoundCode))
		})

		It("lists the most recently saved first", func() {
			Expect(favoriteStore.PutFavorites(context.Background(), []favoriteentity.Favorite{
				{UserID: userID, ListingID: "listing-1", SavedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
				{UserID: userID, ListingID: "listing-2", SavedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			})).To(Succeed())

			Expect(listingIDs(getFavorites())).To(Equal([]string{"listing-2", "listing-1"}))
		})

		It("drops favorites of listings that were deleted", func() {
			Expect(saveFavorite("listing-1").Code).To(Equal(http.StatusOK))
			Expect(saveFavorite("listing-2").Code).To(Equal(http.StatusOK))
			Expect(listingStore.DeleteListing(context.Background(), "listing-1")).To(Succeed())

			Expect(listingIDs(getFavorites())).To(Equal([]string{"listing-2"}))
		})

		Describe("Listings under moderation", func() {
			BeforeEach(func() {
				listingStore.Seed(dummy.NewListing("pending", testing.OtherUser.ID, listingentity.PendingStatus, 0))
				listingStore.Seed(dummy.NewListing("rejected", testing.OtherUser.ID, listingentity.RejectedStatus, 0))
				listingStore.Seed(dummy.NewListing("mine", userID, listingentity.PendingStatus, 0))
			})

			DescribeTable("can't save someone else's unpublished listing",
				func(listingID string) {
					response := saveFavorite(listingID)
					Expect(response.Code).To(Equal(http.StatusNotFound))

					resErr := testing.DecodeJSONError(response.Body)
					Expect(resErr.Code).To(BeEquivalentTo(listingerrors.ListingNotFoundCode))
					Expect(getFavorites()).To(BeEmpty())
				},
				Entry("pending", "pending"),
				Entry("rejected", "rejected"),
			)

			It("can save the user's own pending listing", func() {
				Expect(saveFavorite("mine").Code).To(Equal(http.StatusOK))
				Expect(listingIDs(getFavorites())).To(Equal([]string{"mine"}))
			})

			It("hides a favorite once its listing is rejected", func() {
				Expect(saveFavorite("listing-1").Code).To(Equal(http.StatusOK))
				Expect(saveFavorite("listing-2").Code).To(Equal(http.StatusOK))

				updatedAt := time.Now().UTC()
				Expect(listingStore.SetStatus(context.Background(), "listing-1", listingentity.RejectedStatus, updatedAt)).To(Succeed())

				Expect(listingIDs(getFavorites())).To(Equal([]string{"listing-2"}))
			})
		})

		Describe("Permissions", func() {
			BeforeEach(func() {
				authtest.Endpoint = func(c echo.Context) error {
					return favoriteGateway.SaveFavorite(c, userID, "listing-1")
				}
			})

			authtest.ItRejectsUnpermittedRequests("PUT", favoritesPath+"/listing-1")
		})
	})

	Describe("Remove Favorite", func() {
		It("removes a saved listing", func() {
			Expect(saveFavorite("listing-1").Code).To(Equal(http.StatusOK))

			request := testing.RequestFactory{
				Method: "DELETE",
				Target: favoritesPath + "/listing-1",
				Mods:   as(testing.PrimaryUser),
			}.MakeFake()

			response := httptest.NewRecorder()
			c := testing.PrepareEchoContext(request, response)
			Expect(favoriteGateway.RemoveFavorite(c, userID, "listing-1")).To(Succeed())

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(getFavorites()).To(BeEmpty())
		})

		Describe("Permissions", func() {
			BeforeEach(func() {
				authtest.Endpoint = func(c echo.Context) error {
					return favoriteGateway.RemoveFavorite(c, userID, "listing-1")
				}
			})

			authtest.ItRejectsUnpermittedRequests("DELETE", favoritesPath+"/listing-1")
		})
	})

	Describe("Merge Guest Favorites", func() {
		It("saves known listings and skips the rest", func() {
			response := merge(favoriteentity.MergeRequest{
				ListingIDs: []string{"listing-1", "missing", "listing-3"},
			})
			Expect(response.Code).To(Equal(http.StatusOK))

			summaries := testing.DecodeJSON[[]favoriteentity.Summary](response.Body)
			Expect(listingIDs(summaries)).To(Equal([]string{"listing-3", "listing-1"}))
		})

		It("skips listings that aren't published", func() {
			listingStore.Seed(dummy.NewListing("pending", testing.OtherUser.ID, listingentity.PendingStatus, 0))

			response := merge(favoriteentity.MergeRequest{ListingIDs: []string{"listing-1", "pending"}})
			Expect(response.Code).To(Equal(http.StatusOK))

			summaries := testing.DecodeJSON[[]favoriteentity.Summary](response.Body)
			Expect(listingIDs(summaries)).To(Equal([]string{"listing-1"}))
			Expect(favoriteStore.GetFavorites(context.Background(), userID)).To(HaveLen(1))
		})

		It("never stamps merged favorites in the future", func() {
			merged := testing.DecodeJSON[[]favoriteentity.Summary](merge(favoriteentity.MergeRequest{
				ListingIDs: []string{"listing-2", "listing-3"},
			}).Body)

			Expect(listingIDs(merged)).To(Equal([]string{"listing-3", "listing-2"}))
			for _, summary := range merged {
				Expect(summary.SavedAt).To(BeTemporally("<=", time.Now().UTC()))
			}

			Expect(saveFavorite("listing-1").Code).To(Equal(http.StatusOK))
			Expect(listingIDs(getFavorites())).To(Equal([]string{"listing-1", "listing-3", "listing-2"}))
		})

		It("keeps favorites that were already saved", func() {
			savedAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
			Expect(favoriteStore.PutFavorites(context.Background(), []favoriteentity.Favorite{
				{UserID: userID, ListingID: "listing-2", SavedAt: savedAt},
			})).To(Succeed())

			response := merge(favoriteentity.MergeRequest{ListingIDs: []string{"listing-2", "listing-1"}})
			summaries := testing.DecodeJSON[[]favoriteentity.Summary](response.Body)

			Expect(listingIDs(summaries)).To(Equal([]string{"listing-1", "listing-2"}))
			Expect(summaries[1].SavedAt).To(BeTemporally("==", savedAt))
		})

		It("rejects more than the merge limit", func() {
			ids := []string{}
			for i := 0; i <= favoriteentity.MaxMergeSize; i++ {
				ids = append(ids, fmt.Sprintf("listing-%d", i))
			}

			response := merge(favoriteentity.MergeRequest{ListingIDs: ids})
			Expect(response.Code).To(Equal(http.StatusBadRequest))

			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(favoriteerrors.BadFavoriteDataCode))
		})

		It("rejects blank IDs", func() {
			response := merge(favoriteentity.MergeRequest{ListingIDs: []string{"listing-1", ""}})
			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(favoriteerrors.BadFavoriteDataCode))
		})

		It("rejects a malformed body", func() {
			response := merge(map[string]any{"listingIds": "listing-1"})
			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(favoriteerrors.BadFavoriteDataCode))
		})

		It("fails when favorites can't be stored", func() {
			favoriteStore.Unavailable = true
			response := merge(favoriteentity.MergeRequest{ListingIDs: []string{"listing-1"}})
			Expect(response.Code).To(Equal(http.StatusInternalServerError))
		})

		Describe("Permissions", func() {
			BeforeEach(func() {
				authtest.JSONBody = favoriteentity.MergeRequest{ListingIDs: []string{"listing-1"}}
				authtest.Endpoint = func(c echo.Context) error {
					return favoriteGateway.MergeGuestFavorites(c, userID)
				}
			})

			authtest.ItRejectsUnpermittedRequests("POST", favoritesPath+"/merge")
		})
	})
})
