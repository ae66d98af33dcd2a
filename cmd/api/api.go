package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"storefront/docs" // registers the swagger spec
	"storefront/internal/auth"
	"storefront/internal/domain/products"
	"storefront/internal/domain/roles"
	"storefront/internal/domain/storage"
	"storefront/internal/domain/users"
	"storefront/internal/mailer"
	"storefront/internal/ratelimiter"
	"storefront/internal/shell"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	products      *products.Service
	users         *users.Service
	shell         *shell.Loader
	logger        *zap.SugaredLogger
	images        imageUploader
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	wg            sync.WaitGroup
}

type config struct {
	addr          string
	db            dbConfig
	env           string
	apiURL        string
	frontendURL   string
	auth          authConfig
	cloudinaryURL string
	mail          mailConfig
	rateLimiter   ratelimiter.Config
}

type mailConfig struct {
	smtp mailer.SMTPConfig
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret        string
	refreshSecret string
	iss           string
	orderSecret   string
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
	migrate     bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(app.RateLimiterMiddleware)

	// ctx.Done() fires for handlers still running after 60s
	r.Use(middleware.Timeout(60 * time.Second))

	r.With(app.OptionalAuth).Get("/profile", app.profilePageHandler)

	r.Route("/api", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		docsURL := "/api/swagger/doc.json"
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Route("/authentication", func(r chi.Router) {
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", app.listProductsHandler)
			r.With(app.AuthTokenMiddleware, app.RequireRole(roles.Admin)).Post("/", app.createProductsHandler)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", app.listCategoriesHandler)
			r.Get("/{slug}", app.getCategoryHandler)
			r.With(app.AuthTokenMiddleware, app.RequireRole(roles.Admin)).Put("/{slug}/logo", app.uploadCategoryLogoHandler)
		})
		r.With(app.AuthTokenMiddleware, app.RequireRole(roles.Admin)).Put("/subcategories/{slug}/logo", app.uploadSubCategoryLogoHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Get("/shell", app.shellHandler)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", app.getMeHandler)
				r.Put("/fakeAdmin", app.toggleFakeAdminHandler)
				r.Put("/displayName", app.updateDisplayNameHandler)
			})

			r.Route("/carts/me", func(r chi.Router) {
				r.Get("/", app.getCartHandler)
				r.Post("/items", app.addCartItemHandler)
				r.Delete("/items/{productID}", app.removeCartItemHandler)
			})

			r.Get("/requirements", app.getRequirementsHandler)
			r.Put("/requirements/{categorySlug}", app.putRequirementHandler)

			r.Route("/admin", func(r chi.Router) {
				r.With(app.RequireRole(roles.FakeAdmin)).Get("/dashboard", app.dashboardHandler)
				r.With(app.RequireRole(roles.Admin)).Put("/orders/{orderID}/status", app.updateOrderStatusHandler)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", app.checkoutHandler)
				r.Get("/me", app.listMyOrdersHandler)
				r.Get("/{orderID}", app.getMyOrderHandler)
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdown; err != nil {
		return err
	}

	app.logger.Infow("waiting for background tasks")
	app.wg.Wait()

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)
	return nil
}
