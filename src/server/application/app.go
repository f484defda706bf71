package application

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/server/google_id"
	"github.com/karasai/karasai-be/src/server/internal/account/gateway"
	"github.com/karasai/karasai-be/src/server/internal/account/usecase"
	"github.com/karasai/karasai-be/src/server/internal/contact/gateway"
	"github.com/karasai/karasai-be/src/server/internal/contact/usecase"
	"github.com/karasai/karasai-be/src/server/internal/favorite/entity"
	"github.com/karasai/karasai-be/src/server/internal/favorite/gateway"
	"github.com/karasai/karasai-be/src/server/internal/favorite/storage"
	"github.com/karasai/karasai-be/src/server/internal/favorite/usecase"
	"github.com/karasai/karasai-be/src/server/internal/listing/entity"
	"github.com/karasai/karasai-be/src/server/internal/listing/gateway"
	"github.com/karasai/karasai-be/src/server/internal/listing/storage"
	"github.com/karasai/karasai-be/src/server/internal/listing/usecase"
	"github.com/karasai/karasai-be/src/server/internal/user/entity"
	"github.com/karasai/karasai-be/src/server/internal/user/gateway"
	"github.com/karasai/karasai-be/src/server/internal/user/storage"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
	"github.com/karasai/karasai-be/src/server/internal/verification/certificate"
	"github.com/karasai/karasai-be/src/server/internal/verification/gateway"
	"github.com/karasai/karasai-be/src/server/internal/verification/usecase"
	"github.com/karasai/karasai-be/src/shared/config"
	"github.com/karasai/karasai-be/src/shared/contact/entity"
	"github.com/karasai/karasai-be/src/shared/contact/storage"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/filestore"
	"github.com/karasai/karasai-be/src/shared/lib/rabbitmq"
	"github.com/karasai/karasai-be/src/shared/lib/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
)

type App struct {
	echo      *echo.Echo
	port      string
	publisher rabbitmq.Publisher
}

type Config struct {
	DynamoConfig          config.Dynamo
	CloudStorageConfig    config.CloudStorage
	RabbitMQURL           string
	RabbitMQQueueName     string
	CORSAllowedOrigins    []string
	UserValidator         google_id.Validator
	CertificateSigningKey string
	Port                  string
	Log                   bool
	EnsureTables          bool
}

// Dependencies are the outside systems the API talks to
type Dependencies struct {
	UserStore     userentity.Store
	ListingStore  listingentity.Store
	FavoriteStore favoriteentity.Store
	ContactStore  contactentity.Store
	FileStore     filestore.FileStore
	Publisher     rabbitmq.Publisher
}

func NewApp(config Config) App {
	return NewAppWithDependencies(config, makeDependencies(config))
}

func NewAppWithDependencies(config Config, deps Dependencies) App {
	e := echo.New()
	e.Validator = validate.EchoValidator{}

	if config.Log {
		e.Use(middleware.Logger())
	}

	corsMiddleware := makeCorsMiddleware(config)

	handleRoute := func(method HTTPMethod, path string, handlerFunc echo.HandlerFunc) {
		params := func() (string, echo.HandlerFunc, echo.MiddlewareFunc) {
			return path, handlerFunc, corsMiddleware
		}

		e.OPTIONS(params())

		switch method {
		case GET:
			e.GET(params())
		case POST:
			e.POST(params())
		case PUT:
			e.PUT(params())
		case DELETE:
			e.DELETE(params())
		default:
			panic("unhandled http method!")
		}
	}

	userUsecase := userusecase.NewUsecase(deps.UserStore, config.UserValidator)
	listingUsecase := listingusecase.NewUsecase(deps.ListingStore, userUsecase, deps.FileStore, deps.Publisher)
	favoriteUsecase := favoriteusecase.NewUsecase(deps.FavoriteStore, userUsecase, listingUsecase)
	contactUsecase := contactusecase.NewUsecase(deps.ContactStore, userUsecase, listingUsecase, deps.Publisher)
	accountUsecase := accountusecase.NewUsecase(userUsecase, listingUsecase, favoriteUsecase, contactUsecase)
	verificationUsecase := verificationusecase.NewUsecase(listingUsecase, certificate.NewSigner(config.CertificateSigningKey))

	userGateway := usergateway.NewGateway(userUsecase)
	accountGateway := accountgateway.NewGateway(accountUsecase)
	listingGateway := listinggateway.NewGateway(listingUsecase)
	favoriteGateway := favoritegateway.NewGateway(favoriteUsecase)
	contactGateway := contactgateway.NewGateway(contactUsecase)
	verificationGateway := verificationgateway.NewGateway(verificationUsecase)

	// health check
	handleRoute(GET, "/health-check", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// login and account routes
	handleRoute(POST, "/login", userGateway.Login)
	handleRoute(GET, "/users/:id", func(c echo.Context) error {
		userID := c.Param("id")
		return userGateway.GetUser(c, userID)
	})
	handleRoute(PUT, "/users/:id", func(c echo.Context) error {
		userID := c.Param("id")
		return userGateway.UpdateProfile(c, userID)
	})
	handleRoute(DELETE, "/users/:id", func(c echo.Context) error {
		userID := c.Param("id")
		return accountGateway.DeleteAccount(c, userID)
	})

	// listing routes
	handleRoute(GET, "/listings", listingGateway.SearchListings)
	handleRoute(POST, "/listings", listingGateway.CreateListing)
	handleRoute(GET, "/listings/compare", listingGateway.CompareListings)
	handleRoute(GET, "/listings/:id", func(c echo.Context) error {
		listingID := c.Param("id")
		return listingGateway.GetListing(c, listingID)
	})
	handleRoute(PUT, "/listings/:id", func(c echo.Context) error {
		listingID := c.Param("id")
		return listingGateway.UpdateListing(c, listingID)
	})
	handleRoute(DELETE, "/listings/:id", func(c echo.Context) error {
		listingID := c.Param("id")
		return listingGateway.DeleteListing(c, listingID)
	})
	handleRoute(POST, "/listings/:id/images", func(c echo.Context) error {
		listingID := c.Param("id")
		return listingGateway.AddImage(c, listingID)
	})
	handleRoute(GET, "/users/:id/listings", func(c echo.Context) error {
		ownerID := c.Param("id")
		return listingGateway.GetListingsForOwner(c, ownerID)
	})

	// moderation routes
	handleRoute(GET, "/admin/listings/pending", listingGateway.GetPendingListings)
	handleRoute(PUT, "/admin/listings/:id/approve", func(c echo.Context) error {
		listingID := c.Param("id")
		return listingGateway.ApproveListing(c, listingID)
	})
	handleRoute(PUT, "/admin/listings/:id/reject", func(c echo.Context) error {
		listingID := c.Param("id")
		return listingGateway.RejectListing(c, listingID)
	})

	// verification routes
	handleRoute(GET, "/verify", verificationGateway.Verify)
	handleRoute(GET, "/verify/certificates/:token", func(c echo.Context) error {
		token := c.Param("token")
		return verificationGateway.CheckCertificate(c, token)
	})

	// favorite routes
	handleRoute(GET, "/users/:id/favorites", func(c echo.Context) error {
		userID := c.Param("id")
		return favoriteGateway.GetFavorites(c, userID)
	})
	handleRoute(PUT, "/users/:id/favorites/:listingId", func(c echo.Context) error {
		userID := c.Param("id")
		listingID := c.Param("listingId")
		return favoriteGateway.SaveFavorite(c, userID, listingID)
	})
	handleRoute(DELETE, "/users/:id/favorites/:listingId", func(c echo.Context) error {
		userID := c.Param("id")
		listingID := c.Param("listingId")
		return favoriteGateway.RemoveFavorite(c, userID, listingID)
	})
	handleRoute(POST, "/users/:id/favorites/merge", func(c echo.Context) error {
		userID := c.Param("id")
		return favoriteGateway.MergeGuestFavorites(c, userID)
	})

	// contact routes
	handleRoute(POST, "/contact", contactGateway.Submit)
	handleRoute(GET, "/users/:id/messages", func(c echo.Context) error {
		userID := c.Param("id")
		return contactGateway.GetInbox(c, userID)
	})

	return App{
		echo:      e,
		port:      config.Port,
		publisher: deps.Publisher,
	}
}

func (a *App) Handler() http.Handler {
	return a.echo
}

func (a *App) Start() error {
	err := a.echo.Start(a.port)
	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "Couldn't start echo server")
	}

	return nil
}

func (a *App) Stop() error {
	err := a.echo.Close()
	if err != nil {
		return errors.Wrap(err, "Failed to stop echo server")
	}

	if closer, ok := a.publisher.(*rabbitmq.QueuePublisher); ok {
		if err := closer.Close(); err != nil {
			return errors.Wrap(err, "Failed to close the rabbitMQ publisher")
		}
	}

	return nil
}

func makeDependencies(config Config) Dependencies {
	dynamoDB := dynamolib.NewDynamoDB(config.DynamoConfig)
	if config.EnsureTables {
		if err := EnsureTables(context.Background(), dynamoDB); err != nil {
			panic(errors.Wrap(err, "Failed to set up tables"))
		}
	}

	return Dependencies{
		UserStore:     userstorage.NewDB(dynamoDB),
		ListingStore:  listingstorage.NewDB(dynamoDB),
		FavoriteStore: favoritestorage.NewDB(dynamoDB),
		ContactStore:  contactstorage.NewDB(dynamoDB),
		FileStore:     makeFileStore(config),
		Publisher:     makeRabbitMQPublisher(config),
	}
}

func makeRabbitMQPublisher(config Config) *rabbitmq.QueuePublisher {
	publisher, err := rabbitmq.NewQueuePublisher(config.RabbitMQURL, config.RabbitMQQueueName)
	if err != nil {
		panic(errors.Wrap(err, "Failed to create rabbitMQ publisher"))
	}

	return publisher
}

func makeFileStore(config Config) filestore.GoogleFileStore {
	fileStore, err := filestore.NewGoogleFileStore(config.CloudStorageConfig)
	if err != nil {
		panic(errors.Wrap(err, "Failed to create cloud storage client"))
	}

	return fileStore
}

func makeCorsMiddleware(config Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: config.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	})
}
