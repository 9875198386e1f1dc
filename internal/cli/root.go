// Package cli implements the coursebook command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/coursebook/internal/config"
	"github.com/mesh-intelligence/coursebook/internal/kv"
	"github.com/mesh-intelligence/coursebook/internal/logging"
	"github.com/mesh-intelligence/coursebook/internal/metrics"
	"github.com/mesh-intelligence/coursebook/internal/paths"
	"github.com/mesh-intelligence/coursebook/internal/registry"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags   rootFlags
	metrics *metrics.Metrics
}

// NewRootCmd creates the top-level "coursebook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "coursebook",
		Short: "Manage course types, courses, offerings and registrations",
		Long: "Coursebook records course types, courses, the offerings that pair them,\n" +
			"and student registrations for each offering.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (env "+paths.EnvDataDir+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCourseTypeCmd(a))
	root.AddCommand(newCourseCmd(a))
	root.AddCommand(newOfferingCmd(a))
	root.AddCommand(newRegistrationCmd(a))
	root.AddCommand(newResetCmd(a))
	root.AddCommand(newStatsCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// loadSettings resolves the config directory and reads config.yaml.
func (a *app) loadSettings() (config.Settings, error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return config.Settings{}, system(fmt.Errorf("resolve config directory: %w", err))
	}
	settings, err := config.Load(configDir, a.flags.dataDir)
	if err != nil {
		return config.Settings{}, system(err)
	}
	return settings, nil
}

// open loads configuration, opens the configured store and returns a
// registry over it. The caller must call the returned close function.
func (a *app) open(cmd *cobra.Command) (*registry.Registry, func(), error) {
	settings, err := a.loadSettings()
	if err != nil {
		return nil, nil, err
	}

	log := logging.New(logging.Config{
		Level:  logging.Level(settings.LogLevel),
		Output: cmd.ErrOrStderr(),
	})
	store, err := kv.Open(cmd.Context(), settings.Store)
	if err != nil {
		return nil, nil, system(fmt.Errorf("open %s store: %w", settings.Store.Backend, err))
	}
	log.Debug().Str("backend", settings.Store.Backend).Str("data_dir", settings.Store.DataDir).Msg("store opened")

	a.metrics = metrics.New()
	reg := registry.New(store,
		registry.WithLogger(log),
		registry.WithMetrics(a.metrics),
	)
	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}
	return reg, closeFn, nil
}

// sysError marks a failure of the environment rather than of the input.
type sysError struct{ err error }

func (e sysError) Error() string { return e.err.Error() }
func (e sysError) Unwrap() error { return e.err }

// system wraps err as a system failure.
func system(err error) error {
	if err == nil {
		return nil
	}
	return sysError{err: err}
}

// userErrors are the sentinels that exit with exitUserError.
var userErrors = []error{
	types.ErrValidation,
	types.ErrDuplicate,
	types.ErrInUse,
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrUnknownKind,
}

func isUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// classify passes user errors through and marks everything else as a
// system failure.
func classify(err error) error {
	if err == nil || isUserError(err) {
		return err
	}
	var se sysError
	if errors.As(err, &se) {
		return err
	}
	return system(err)
}

// exitCode maps an error returned by a command to a process exit code.
// Errors that are neither user nor system failures come from argument and
// flag parsing and count as user errors.
func exitCode(err error) int {
	var se sysError
	switch {
	case err == nil:
		return exitSuccess
	case isUserError(err):
		return exitUserError
	case errors.As(err, &se):
		return exitSysError
	default:
		return exitUserError
	}
}

// printError writes err to w. Validation failures list one field per line.
func printError(w io.Writer, err error) {
	var ve *types.ValidationError
	if !errors.As(err, &ve) {
		fmt.Fprintf(w, "Error: %s\n", err)
		return
	}

	fmt.Fprintf(w, "Error: invalid %s\n", ve.Kind.Label())
	fields := make([]string, 0, len(ve.Fields))
	for f := range ve.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, ve.Fields[f])
	}
	if ve.Duplicate != "" {
		fmt.Fprintf(w, "  %s\n", ve.Duplicate)
	}
}
