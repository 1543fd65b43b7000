package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/estate-cli/internal/adapters/api"
	cachedcreds "github.com/bnema/estate-cli/internal/adapters/creds/cached"
	filecreds "github.com/bnema/estate-cli/internal/adapters/creds/file"
	"github.com/bnema/estate-cli/internal/adapters/notify"
	dashboardadapter "github.com/bnema/estate-cli/internal/adapters/render/dashboard"
	"github.com/bnema/estate-cli/internal/application"
	"github.com/bnema/estate-cli/internal/domain"
	"github.com/bnema/estate-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	configDirName   = ".estate"
	sessionFileName = "session.toml"
	apiBaseURLKey   = "api.base_url"

	defaultAPIBaseURL = "https://jayshri-bk.vercel.app/api/v1"

	// The platform caps list pagination; a high limit fetches the whole
	// booking collection in one call, matching the dashboard's needs.
	bookingsFetchLimit = 10000
)

type app struct {
	session         *application.SessionService
	gateway         *api.Client
	creds           ports.CredentialStore
	bookings        *application.Collection[domain.Booking]
	properties      *application.Collection[domain.Property]
	renderDashboard func(domain.Identity, []domain.Booking, dashboardadapter.RenderOptions) string
	logger          zerolog.Logger
	now             func() time.Time
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, configDirName)

	cfg := viper.New()
	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(configDir)
	cfg.SetDefault(apiBaseURLKey, defaultAPIBaseURL)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	baseURL := envOrDefault("ESTATE_API_URL", cfg.GetString(apiBaseURLKey))
	logger := newLogger()

	creds, err := cachedcreds.NewStore(filecreds.NewStore(filepath.Join(configDir, sessionFileName)))
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	// The session service is both the gateway's 401 hook and the owner
	// of cache invalidation, so the two are wired in two steps.
	var session *application.SessionService
	gateway, err := api.NewClient(api.Config{
		BaseURL:     baseURL,
		Credentials: creds,
		Notifier:    notify.NewToast(os.Stderr),
		OnSessionExpired: func() {
			if session != nil {
				session.HandleSessionExpired()
			}
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire api gateway: %w", err)
	}

	session = application.NewSessionService(gateway, creds, logger)

	bookings := application.NewCollection(func(ctx context.Context) ([]domain.Booking, error) {
		return gateway.ListBookings(ctx, bookingsFetchLimit)
	}, ports.SystemClock{})
	properties := application.NewCollection(gateway.ListProperties, ports.SystemClock{})

	session.RegisterCache(bookings)
	session.RegisterCache(properties)

	return &app{
		session:         session,
		gateway:         gateway,
		creds:           creds,
		bookings:        bookings,
		properties:      properties,
		renderDashboard: dashboardadapter.Render,
		logger:          logger,
		now:             time.Now,
	}, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.Disabled
	if raw := os.Getenv("ESTATE_LOG"); raw != "" {
		parsed, err := zerolog.ParseLevel(raw)
		if err == nil {
			level = parsed
		}
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
