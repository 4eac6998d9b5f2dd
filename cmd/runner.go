package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/catalog"
	"github.com/desertthunder/algox/internal/flows"
	"github.com/desertthunder/algox/internal/repositories"
	"github.com/desertthunder/algox/internal/services"
	"github.com/desertthunder/algox/internal/session"
	"github.com/desertthunder/algox/internal/shared"
	"github.com/desertthunder/algox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	db         *sql.DB
	session    *session.Store
	api        *services.APIService
	catalog    services.Catalog
	auth       services.Authenticator
	results    *catalog.ResultView
	authFlow   *flows.AuthFlow
	submitFlow *flows.SubmitFlow
	exporter   *tasks.Exporter
	logger     *log.Logger
	output     io.Writer
	route      flows.Route
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Session and API are built from Config when nil. Catalog and Auth default to services over API.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Session    *session.Store
	API        *services.APIService
	Catalog    services.Catalog
	Auth       services.Authenticator
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.wire(opts)
	return r
}

// wire builds the service graph. Anything set in opts is used as-is.
func (r *Runner) wire(opts RunnerOpts) {
	store := opts.Session
	if store == nil {
		store = session.NewStore(nil, r.logger)
	}

	api := opts.API
	if api == nil {
		api = services.NewAPIService(services.Options{
			BaseURL:   r.config.Catalog.BaseURL,
			Timeout:   r.config.Catalog.Timeout(),
			RateLimit: r.config.Catalog.RateLimit,
			Burst:     r.config.Catalog.Burst,
			Session:   store,
			Logger:    r.logger,
		})
	}

	r.session = store
	r.api = api

	r.catalog = opts.Catalog
	if r.catalog == nil {
		r.catalog = services.NewCatalogService(api)
	}
	r.auth = opts.Auth
	if r.auth == nil {
		r.auth = services.NewAuthService(api)
	}

	nav := flows.NavigatorFunc(r.navigate)
	r.results = catalog.NewResultView(r.catalog, r.logger)
	r.authFlow = flows.NewAuthFlow(r.auth, store, nav, r.logger)
	r.submitFlow = flows.NewSubmitFlow(r.catalog, nav, r.logger)
	r.exporter = tasks.NewExporter(r.catalog, r.logger)
}

// Load reads the configuration named by --config, opens the session database and rebuilds the service graph.
//
// A missing config file is not an error; defaults are used.
func (r *Runner) Load(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	} else if cmd.IsSet("config") && cmd.Args().First() != "setup" {
		return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, r.configPath)
	} else {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}

	level := shared.ParseLevel(r.config.Log.Level)
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return ctx, fmt.Errorf("failed to open session database: %w", err)
	}

	store, err := session.Open(ctx, repositories.NewSessionRepository(db), r.logger)
	if err != nil {
		db.Close()
		return ctx, err
	}

	r.db = db
	r.wire(RunnerOpts{Session: store})
	return ctx, nil
}

// Close releases the session database.
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the logger used by the runner and by views built afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

var nextSteps = map[flows.Route]string{
	flows.RouteHome:      "algox catalog list",
	flows.RouteLogin:     "algox auth login --username <name>",
	flows.RouteResetForm: "algox auth reset --username <name> --email <email> --token <token>",
	flows.RouteListing:   "algox catalog mine",
}

// navigate records the destination of a flow. [Runner.report] prints it.
func (r *Runner) navigate(route flows.Route) {
	r.route = route
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, catalogCommand, submitCommand, exportCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// flowError carries the message a flow produced for the user. The cause stays reachable through errors.Is.
type flowError struct {
	msg string
	err error
}

func (e *flowError) Error() string { return e.msg }
func (e *flowError) Unwrap() error { return e.err }

// report prints the outcome of a form followed by the command for the view the flow moved to.
//
// A failure returns only the form's message, never the server's.
func (r *Runner) report(m *flows.Machine, err error) error {
	route := r.route
	r.route = ""

	if err == nil {
		if werr := r.writePlain("✓ %s\n", m.Message()); werr != nil {
			return werr
		}
	}
	if next, ok := nextSteps[route]; ok {
		r.writePlain("Next: %s\n", next)
	}
	if err != nil {
		return &flowError{msg: m.Message(), err: err}
	}
	return nil
}
