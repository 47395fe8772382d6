package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytxl/internal/repositories"
	"github.com/desertthunder/ytxl/internal/services"
	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/desertthunder/ytxl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Authorizer returns a [services.Service] acting on behalf of the signed-in user.
type Authorizer func(ctx context.Context) (services.Service, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	youtube    services.Service
	engine     *tasks.Engine
	authorize  Authorizer
	db         *sql.DB
	videos     *repositories.VideoRepository
	exports    *repositories.ExportRepository
	logger     *log.Logger
	input      *bufio.Reader
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	YouTube    services.Service // API key client for read operations
	Authorize  Authorizer       // OAuth client for playlist changes; defaults to the browser flow
	DB         *sql.DB          // optional history database
	Logger     *log.Logger
	Input      io.Reader
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
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		youtube:    opts.YouTube,
		engine:     tasks.NewEngine(opts.YouTube),
		authorize:  opts.Authorize,
		db:         opts.DB,
		logger:     opts.Logger,
		input:      bufio.NewReader(opts.Input),
		output:     opts.Output,
	}
	if r.authorize == nil {
		r.authorize = r.oauthService
	}

	if opts.DB != nil {
		r.videos = repositories.NewVideoRepository(opts.DB)
		r.exports = repositories.NewExportRepository(opts.DB)
		r.engine.SetVideoCacher(repositories.NewVideoCacheAdapter(r.videos))
		r.engine.SetExportRecorder(repositories.NewExportLogAdapter(r.exports))
	}

	return r
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		menuCommand, videoCommand, mixCommand, playlistCommand, authCommand, setupCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// userEngine returns an engine whose service is authorized to change the user's playlists.
//
// History recording is shared with the read-only engine.
func (r *Runner) userEngine(ctx context.Context) (*tasks.Engine, error) {
	svc, err := r.authorize(ctx)
	if err != nil {
		return nil, err
	}

	engine := tasks.NewEngine(svc)
	if r.exports != nil {
		engine.SetExportRecorder(repositories.NewExportLogAdapter(r.exports))
	}
	return engine, nil
}

// prompt writes label and reads one line of input, trimmed of the line ending.
func (r *Runner) prompt(label string) (string, error) {
	if err := r.writePlain("%s", label); err != nil {
		return "", err
	}

	line, err := r.input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
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
