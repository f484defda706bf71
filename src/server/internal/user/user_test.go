package user_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/server/google_id"
	"github.com/karasai/karasai-be/src/server/google_id/google_idfakes"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/auth"
	"github.com/karasai/karasai-be/src/server/internal/shared_tests/auth"
	"github.com/karasai/karasai-be/src/server/internal/shared_tests/dummy"
	"github.com/karasai/karasai-be/src/server/internal/user/entity"
	"github.com/karasai/karasai-be/src/server/internal/user/errors"
	"github.com/karasai/karasai-be/src/server/internal/user/gateway"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
	"github.com/karasai/karasai-be/src/shared/testing"
	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User", func() {
	var (
		userStore   *dummy.UserStore
		userGateway usergateway.Gateway
	)

	BeforeEach(func() {
		userStore = dummy.NewUserStore()
		userUsecase := userusecase.NewUsecase(userStore, testing.Validator{})
		userGateway = usergateway.NewGateway(userUsecase)
	})

	Describe("Login", func() {
		var (
			response       *httptest.ResponseRecorder
			requestFactory testing.RequestFactory
		)

		BeforeEach(func() {
			requestFactory = testing.RequestFactory{
				Method: "POST",
				Target: "/login",
			}
		})

		JustBeforeEach(func() {
			response = httptest.NewRecorder()
			c := testing.PrepareEchoContext(requestFactory.MakeFake(), response)

			err := userGateway.Login(c)
			Expect(err).NotTo(HaveOccurred())
		})

		Describe("For an existing user", func() {
			BeforeEach(func() {
				requestFactory.Mods.Add(testing.WithUserCred(testing.PrimaryUser))
			})

			It("returns the account", func() {
				Expect(response.Code).To(Equal(http.StatusOK))

				user := testing.DecodeJSON[userentity.User](response.Body)
				Expect(user.ID).To(Equal(testing.PrimaryUser.ID))
				Expect(user.Email).To(Equal(testing.PrimaryUser.Email))
				Expect(user.Admin).To(BeFalse())
			})
		})

		Describe("For an admin", func() {
			BeforeEach(func() {
				requestFactory.Mods.Add(testing.WithUserCred(testing.AdminUser))
			})

			It("flags the account as admin", func() {
				user := testing.DecodeJSON[userentity.User](response.Body)
				Expect(user.Admin).To(BeTrue())
			})
		})

		Describe("On the first sign in", func() {
			BeforeEach(func() {
				Expect(userStore.Has(testing.NoAccountUser.ID)).To(BeFalse())
				requestFactory.Mods.Add(testing.WithUserCred(testing.NoAccountUser))
			})

			It("creates the account from the Google profile", func() {
				Expect(response.Code).To(Equal(http.StatusOK))

				user := testing.DecodeJSON[userentity.User](response.Body)
				Expect(user.ID).To(Equal(testing.NoAccountUser.ID))
				Expect(user.Name).To(Equal(testing.NoAccountUser.Name))
				Expect(user.Admin).To(BeFalse())
				Expect(user.CreatedAt).NotTo(BeNil())

				Expect(userStore.Has(testing.NoAccountUser.ID)).To(BeTrue())
			})
		})

		Describe("With a Google unauthorized token", func() {
			BeforeEach(func() {
				requestFactory.Mods.Add(testing.WithUserCred(testing.GoogleUnauthorizedUser))
			})

			It("fails as unauthorized", func() {
				Expect(response.Code).To(Equal(http.StatusUnauthorized))
				resErr := testing.DecodeJSONError(response.Body)
				Expect(resErr.Code).To(BeEquivalentTo(auth.NotGoogleAuthorizedCode))
			})
		})

		Describe("With an unverified Google email", func() {
			BeforeEach(func() {
				requestFactory.Mods.Add(testing.WithUserCred(testing.UnverifiedEmailUser))
			})

			It("fails as unauthorized without creating the account", func() {
				Expect(response.Code).To(Equal(http.StatusUnauthorized))
				resErr := testing.DecodeJSONError(response.Body)
				Expect(resErr.Code).To(BeEquivalentTo(auth.NotGoogleAuthorizedCode))
				Expect(userStore.Has(testing.UnverifiedEmailUser.ID)).To(BeFalse())
			})
		})

		Describe("With no auth header", func() {
			It("fails as a bad request", func() {
				Expect(response.Code).To(Equal(http.StatusBadRequest))
				resErr := testing.DecodeJSONError(response.Body)
				Expect(resErr.Code).To(BeEquivalentTo(auth.BadAuthorizationHeaderCode))
			})
		})

		Describe("When the store is down", func() {
			BeforeEach(func() {
				userStore.Unavailable = true
				requestFactory.Mods.Add(testing.WithUserCred(testing.PrimaryUser))
			})

			It("fails as an internal error", func() {
				Expect(response.Code).To(Equal(http.StatusInternalServerError))
			})
		})
	})

	Describe("Token validation", func() {
		var validator *google_idfakes.FakeValidator

		var login = func(header string) *httptest.ResponseRecorder {
			request := testing.RequestFactory{
				Method: "POST",
				Target: "/login",
				Mods:   testing.RequestModifiers{testing.WithAuthHeader(header)},
			}.MakeFake()

			response := httptest.NewRecorder()
			c := testing.PrepareEchoContext(request, response)
			Expect(userGateway.Login(c)).To(Succeed())
			return response
		}

		BeforeEach(func() {
			validator = &google_idfakes.FakeValidator{}
			userGateway = usergateway.NewGateway(userusecase.NewUsecase(userStore, validator))
		})

		It("validates the token without the bearer prefix", func() {
			validator.ValidateTokenReturns(google_id.User{
				GoogleID: "google-new",
				Name:     "Aigerim",
				Email:    "aigerim@example.com",
			}, nil)

			response := login("Bearer raw-token")
			Expect(response.Code).To(Equal(http.StatusOK))

			Expect(validator.ValidateTokenCallCount()).To(Equal(1))
			_, token := validator.ValidateTokenArgsForCall(0)
			Expect(token).To(Equal("raw-token"))
			Expect(userStore.Has("google-new")).To(BeTrue())
		})

		It("fails as an internal error on malformed claims", func() {
			validator.ValidateTokenReturns(google_id.User{},
				mark.Wrap(errors.New("sub is a number"), google_id.MalformedClaimsMark, "Token has a malformed claim"))

			response := login("Bearer raw-token")
			Expect(response.Code).To(Equal(http.StatusInternalServerError))

			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(api.DefaultErrorCode))
		})

		It("doesn't call Google for a header without the bearer prefix", func() {
			Expect(login("Basic raw-token").Code).To(Equal(http.StatusBadRequest))
			Expect(validator.ValidateTokenCallCount()).To(Equal(0))
		})
	})

	Describe("Get User", func() {
		path := "/users/" + testing.PrimaryUser.ID

		Describe("For the account owner", func() {
			It("returns the account", func() {
				request := testing.RequestFactory{
					Method: "GET",
					Target: path,
					Mods:   testing.RequestModifiers{testing.WithUserCred(testing.PrimaryUser)},
				}.MakeFake()

				response := httptest.NewRecorder()
				c := testing.PrepareEchoContext(request, response)
				Expect(userGateway.GetUser(c, testing.PrimaryUser.ID)).To(Succeed())

				Expect(response.Code).To(Equal(http.StatusOK))
				user := testing.DecodeJSON[userentity.User](response.Body)
				Expect(user.ID).To(Equal(testing.PrimaryUser.ID))
			})
		})

		Describe("Permissions", func() {
			BeforeEach(func() {
				authtest.Endpoint = func(c echo.Context) error {
					return userGateway.GetUser(c, testing.PrimaryUser.ID)
				}
			})

			authtest.ItRejectsUnpermittedRequests("GET", path)
		})
	})

	Describe("Update Profile", func() {
		path := "/users/" + testing.PrimaryUser.ID

		var updateProfile = func(body any) *httptest.ResponseRecorder {
			request := testing.RequestFactory{
				Method:  "PUT",
				Target:  path,
				JSONObj: body,
				Mods:    testing.RequestModifiers{testing.WithUserCred(testing.PrimaryUser)},
			}.MakeFake()

			response := httptest.NewRecorder()
			c := testing.PrepareEchoContext(request, response)
			Expect(userGateway.UpdateProfile(c, testing.PrimaryUser.ID)).To(Succeed())
			return response
		}

		It("saves the trimmed profile", func() {
			response := updateProfile(map[string]any{
				"name":  "  Aigerim N. ",
				"phone": "+77011234567",
			})

			Expect(response.Code).To(Equal(http.StatusOK))
			user := testing.DecodeJSON[userentity.User](response.Body)
			Expect(user.Name).To(Equal("Aigerim N."))
			Expect(user.Phone).To(Equal("+77011234567"))
		})

		It("rejects a blank name", func() {
			response := updateProfile(map[string]any{"name": "   "})

			Expect(response.Code).To(Equal(http.StatusBadRequest))
			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(usererrors.BadUserDataCode))
		})

		It("rejects a malformed phone number", func() {
			response := updateProfile(map[string]any{"name": "Aigerim", "phone": "call me"})

			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(usererrors.BadUserDataCode))
		})

		It("rejects a body that isn't an object", func() {
			response := updateProfile([]string{"name"})

			resErr := testing.DecodeJSONError(response.Body)
			Expect(resErr.Code).To(BeEquivalentTo(usererrors.BadUserDataCode))
		})

		Describe("Permissions", func() {
			BeforeEach(func() {
				authtest.JSONBody = map[string]any{"name": "Someone Else"}
				authtest.Endpoint = func(c echo.Context) error {
					return userGateway.UpdateProfile(c, testing.PrimaryUser.ID)
				}
			})

			authtest.ItRejectsUnpermittedRequests("PUT", path)
		})
	})
})
