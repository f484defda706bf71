package authtest

import (
	"net/http"
	"net/http/httptest"

	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/auth"
	"github.com/karasai/karasai-be/src/shared/testing"
	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// to use this shared test, all tests must set the Endpoint in the BeforeEach
// and JSONBody optionally
var (
	Endpoint func(c echo.Context) error
	JSONBody any
)

func ItRejectsUnpermittedRequests(method string, path string) {
	ItRejectsUnauthorizedRequests(method, path)
	ItRejectsWrongOwnerRequests(method, path)
}

func ItRejectsWrongOwnerRequests(method string, path string) {
	Describe("Requests from a user that doesn't own the resource", func() {
		response := sendAs(method, path, testing.OtherUser)
		itFailsWith(response, auth.WrongOwnerCode, http.StatusForbidden)
	})
}

func ItRejectsNonAdminRequests(method string, path string) {
	ItRejectsUnauthorizedRequests(method, path)

	Describe("Requests from a user that isn't a moderator", func() {
		response := sendAs(method, path, testing.PrimaryUser)
		itFailsWith(response, auth.NotAdminCode, http.StatusForbidden)
	})
}

func ItRejectsUnauthorizedRequests(method string, path string) {
	Describe("Unauthorized requests", func() {
		Describe("With no auth header", func() {
			response := send(method, path)
			itFailsWith(response, auth.BadAuthorizationHeaderCode, http.StatusBadRequest)
		})

		Describe("With a token missing the bearer prefix", func() {
			token := testing.TokenForUserID(testing.PrimaryUser.ID)
			response := send(method, path, testing.WithAuthHeader(token))
			itFailsWith(response, auth.BadAuthorizationHeaderCode, http.StatusBadRequest)
		})

		Describe("With a Google unauthorized token", func() {
			response := sendAs(method, path, testing.GoogleUnauthorizedUser)
			itFailsWith(response, auth.NotGoogleAuthorizedCode, http.StatusUnauthorized)
		})

		Describe("For a user that's not in the DB", func() {
			response := sendAs(method, path, testing.NoAccountUser)
			itFailsWith(response, auth.NoAccountCode, http.StatusUnauthorized)
		})
	})
}

func sendAs(method string, path string, user testing.User) func() *httptest.ResponseRecorder {
	return send(method, path, testing.WithUserCred(user))
}

// send registers the nodes that run Endpoint once per test and returns an
// accessor for the recorded response
func send(method string, path string, mods ...testing.RequestModifier) func() *httptest.ResponseRecorder {
	var response *httptest.ResponseRecorder

	BeforeEach(func() {
		Expect(Endpoint).NotTo(BeNil())
	})

	AfterEach(func() {
		Endpoint = nil
		JSONBody = nil
	})

	JustBeforeEach(func() {
		requestFactory := testing.RequestFactory{
			Method:  method,
			Target:  path,
			JSONObj: JSONBody,
			Mods:    mods,
		}

		request := requestFactory.MakeFake()
		response = httptest.NewRecorder()
		c := testing.PrepareEchoContext(request, response)

		err := Endpoint(c)
		Expect(err).NotTo(HaveOccurred())
	})

	return func() *httptest.ResponseRecorder {
		return response
	}
}

func itFailsWith(response func() *httptest.ResponseRecorder, code api.ErrorCode, statusCode int) {
	It("fails with the right error code", func() {
		resErr := testing.DecodeJSONError(response().Body)
		Expect(resErr.Code).To(BeEquivalentTo(code))
	})

	It("fails with the right status code", func() {
		Expect(response().Code).To(Equal(statusCode))
	})
}
