package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/partnerportal/internal/portal/http"
	"github.com/aussiebroadwan/partnerportal/internal/portal/identity"
	"github.com/aussiebroadwan/partnerportal/internal/portal/metrics"
	"github.com/aussiebroadwan/partnerportal/internal/portal/notify"
	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/partnerportal/pkg/cryptox"
	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application wires the portal's store, services and HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         *sqlite.Store
	keyManager *jwtx.KeyManager
	metrics    *metrics.Metrics

	sessionService      *service.SessionService
	invitationService   *service.InvitationService
	memberService       *service.MemberService
	adminService        *service.AdminService
	mfaService          *service.MFAService
	bootstrapService    *service.BootstrapService
	affiliateService    *service.AffiliateService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the service logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "partner-portal",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates an Application with every dependency initialised. The
// database is migrated on the way up.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager
	app.metrics = metrics.New(BuildVersion, app.db.DB())

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("partner portal starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server, stops housekeeping and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down partner portal...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("partner portal stopped")
	return nil
}

// Close releases the store without starting the server. Used by one-shot
// CLI commands.
func (app *Application) Close() error {
	return app.db.Close()
}

// InviteAdmin issues an admin invitation outside the HTTP surface, for the
// first admin or for recovery.
func (app *Application) InviteAdmin(ctx context.Context, email, fullName string) (service.AdminInvitation, error) {
	ctx = slogx.WithContext(ctx, app.logger)
	return app.invitationService.InviteAdmin(ctx, service.InviteAdminRequest{
		Email:     email,
		FullName:  fullName,
		InvitedBy: "cli",
	})
}

// Migrate applies pending migrations to the configured database and exits.
func Migrate(cfg Config, logger *slog.Logger) error {
	db, err := openDatabase(cfg.DatabaseFile)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	version, dirty, err := db.MigrationVersion()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("database migrations applied successfully",
		"database", cfg.DatabaseFile,
		"version", version,
		"dirty", dirty,
	)
	return nil
}

func openDatabase(file string) (*sqlite.Store, error) {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func (app *Application) initDatabase() error {
	db, err := openDatabase(app.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() error {
	mailer, err := notify.NewMailer(app.cfg.Mail)
	if err != nil {
		return err
	}
	if app.cfg.Mail.Driver == "log" {
		app.logger.Warn("mail driver is log, emails are written to the log and not delivered")
	}

	notifier := &notify.Notifier{
		Mailer:    mailer,
		Product:   app.cfg.ProductName,
		Support:   app.cfg.SupportEmail,
		LoginURL:  app.cfg.LoginURL,
		ReviewURL: app.cfg.ReviewURL,
		Recorder:  app.metrics,
	}
	ident := identity.NewLocal(app.db)

	app.sessionService = &service.SessionService{
		Store:    app.db,
		Identity: ident,
		Signer:   app.keyManager.Signer,
		Metrics:  app.metrics,
		Issuer:   app.cfg.Issuer,
		TTL:      app.cfg.SessionTTL,
	}
	app.invitationService = &service.InvitationService{
		Store:            app.db,
		Identity:         ident,
		Notifier:         notifier,
		Metrics:          app.metrics,
		Policy:           app.cfg.PasswordPolicy,
		InviteTTL:        app.cfg.InviteTTL,
		SetupURLTemplate: app.cfg.SetupURLTemplate,
	}
	app.memberService = &service.MemberService{
		Store:            app.db,
		Identity:         ident,
		Notifier:         notifier,
		Metrics:          app.metrics,
		Policy:           app.cfg.PasswordPolicy,
		EmailConcurrency: app.cfg.EmailWorkers,
	}
	app.adminService = &service.AdminService{
		Store:          app.db,
		Identity:       ident,
		Policy:         app.cfg.PasswordPolicy,
		PasswordMaxAge: app.cfg.PasswordMaxAge,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.ProductName,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:          app.db,
		Identity:       ident,
		Token:          app.cfg.BootstrapToken,
		Policy:         app.cfg.PasswordPolicy,
		PasswordMaxAge: app.cfg.PasswordMaxAge,
	}

	ipKey := []byte(app.cfg.IPHashKey)
	if len(ipKey) == 0 {
		// Fingerprints then only correlate within one process lifetime.
		key, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate ip hash key: %w", err)
		}
		ipKey = []byte(key)
		app.logger.Warn("PORTAL_IP_HASH_KEY not set, using a random key")
	}
	if app.cfg.ConversionKey == "" {
		app.logger.Warn("PORTAL_CONVERSION_KEY not set, conversions will be rejected")
	}
	app.affiliateService = &service.AffiliateService{
		Store:         app.db,
		Metrics:       app.metrics,
		IPKey:         ipKey,
		ConversionKey: app.cfg.ConversionKey,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.ClickRetention,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
		app.cfg.AllowedOrigins,
	)

	router.SessionService = app.sessionService
	router.InvitationService = app.invitationService
	router.MemberService = app.memberService
	router.AdminService = app.adminService
	router.MFAService = app.mfaService
	router.BootstrapService = app.bootstrapService
	router.AffiliateService = app.affiliateService
	router.VisitorCookie = app.cfg.VisitorCookie
	router.SecureCookies = app.cfg.SecureCookies
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
