package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/backend"
	"github.com/alexanderramin/evaluador/internal/cli"
	"github.com/alexanderramin/evaluador/internal/db"
	"github.com/alexanderramin/evaluador/internal/repository"
	"github.com/alexanderramin/evaluador/internal/service"
	"github.com/alexanderramin/evaluador/internal/workflow"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// observers are shared by every service and workflow the CLI opens.
type observers struct {
	useCase    []service.UseCaseObserver
	submission []workflow.SubmissionObserver
}

func run() error {
	envFile := os.Getenv("EVALUADOR_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}

	var obs observers
	if os.Getenv("EVALUADOR_LOG") != "" {
		obs.useCase = append(obs.useCase, service.NewLogUseCaseObserver(os.Stderr))
		obs.submission = append(obs.submission, workflow.NewLogSubmissionObserver(os.Stderr))
	}

	cfg := backend.LoadConfig()
	if cfg.Enabled() {
		return cli.NewRootCmd(newRemoteApp(cfg, obs)).Execute()
	}

	// Determine DB path: env var or default ~/.evaluador/evaluador.db
	dbPath := os.Getenv("EVALUADOR_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".evaluador", "evaluador.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	return cli.NewRootCmd(newLocalApp(cfg, database, obs)).Execute()
}

// evaluatorIdentity is nil when EVALUADOR_USER_ID is unset, which makes the
// CLI refuse to collect answers it could not submit.
func evaluatorIdentity(cfg backend.Config) app.Identity {
	if cfg.UserID <= 0 {
		return nil
	}
	return app.StaticIdentity(cfg.UserID)
}

// newRemoteApp submits to the REST backend. History and import stay local
// only and are left unset.
func newRemoteApp(cfg backend.Config, obs observers) *cli.App {
	var observer backend.Observer = backend.NoopObserver{}
	if cfg.LogCalls {
		observer = backend.NewLogObserver(os.Stderr)
	}
	client := backend.NewClient(cfg, observer)
	return &cli.App{
		Experiences:         client,
		Enums:               service.NewFallbackEnumSource(client, obs.useCase...),
		Submitter:           client,
		Identity:            evaluatorIdentity(cfg),
		SubmissionObservers: obs.submission,
	}
}

func newLocalApp(cfg backend.Config, database *sql.DB, obs observers) *cli.App {
	uow := db.NewSQLiteUnitOfWork(database)
	evaluations := service.NewEvaluationService(repository.NewSQLiteEvaluationRepo(database), uow, obs.useCase...)
	return &cli.App{
		Experiences:         service.NewExperienceService(repository.NewSQLiteExperienceRepo(database), obs.useCase...),
		Enums:               service.NewFallbackEnumSource(nil, obs.useCase...),
		Submitter:           evaluations,
		History:             evaluations,
		Importer:            service.NewImportService(uow, obs.useCase...),
		Identity:            evaluatorIdentity(cfg),
		SubmissionObservers: obs.submission,
	}
}
