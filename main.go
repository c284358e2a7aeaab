package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"regdash/adapters/email"
	"regdash/adapters/excel"
	"regdash/adapters/postgres"
	"regdash/api"
	"regdash/app"
	"regdash/domain/analytics"
	"regdash/domain/roster"
	"regdash/internal/config"
	"regdash/internal/errors"
	"regdash/internal/migration"
	"regdash/internal/mockdata"
	"regdash/ports"
)

// initDatabase connects to PostgreSQL and applies the schema. A database is
// optional: an empty DATABASE_URL disables the durable store and intake
// degrades to the in-memory counters.
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

// initSheetSource opens the spreadsheet workbook. Missing configuration or
// an unreadable file only disables the backend; the server still runs on
// cached or mock data.
func initSheetSource(appConfig *config.Config) ports.SheetSource {
	if appConfig.Sheets.File == "" {
		log.Println("[Main] SHEET_FILE not set - spreadsheet backend disabled")
		return nil
	}

	store, err := excel.NewWorkbookStore(appConfig.Sheets.File)
	if err != nil {
		log.Printf("[Main] Spreadsheet backend disabled: %v", err)
		return nil
	}
	if _, err := os.Stat(appConfig.Sheets.File); err != nil {
		log.Printf("[Main] Workbook %s not readable yet; reads fall back until it appears", appConfig.Sheets.File)
	}
	return store
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		// Degrade rather than die: the dashboard must render something.
		log.Printf("[Main] Database unavailable, running with mock counters: %v", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	var repo ports.RegistrationRepository
	if db != nil {
		repo = postgres.NewRegistrationRepository(db)
		log.Println("[Main] Database connected")
	}

	sheets := initSheetSource(appConfig)

	var sender ports.EmailSender
	if appConfig.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(appConfig.Email.ResendAPIKey, appConfig.Email.From)
		log.Println("[Main] Confirmation email enabled")
	}

	mock := mockdata.NewStore()

	aggregator := app.NewAggregator(sheets, app.AggregatorConfig{
		IntakeTab: appConfig.Sheets.IntakeTab,
		TTL:       appConfig.Cache.TTL,
		Inference: roster.InferenceConfig{PaymentColumn: appConfig.Sheets.PaymentColumn},
	})

	analyticsService := app.NewAnalyticsService(aggregator, analytics.NewEngine(analytics.DefaultLimits()))

	intakeService := app.NewIntakeService(repo, sheets, sender, mock, app.IntakeConfig{
		WriteToSheets: appConfig.Sheets.WriteToSheets,
		IntakeTab:     appConfig.Sheets.IntakeTab,
	})

	server := api.NewServer(appConfig, api.Deps{
		Aggregator:    aggregator,
		Analytics:     analyticsService,
		Intake:        intakeService,
		Registrations: repo,
		Mock:          mock,
		SheetsEnabled: sheets != nil,
	})

	log.Printf("[Main] Server running on port %s", appConfig.Server.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
