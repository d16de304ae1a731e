package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/AAliKKhan/PassMeterX/pkg/config"
	"github.com/AAliKKhan/PassMeterX/pkg/logging"
	"github.com/joho/godotenv"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appName     = "passmeter"
	envPrefix   = "PASSMETER_"
	envFileName = ".env"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	debugFlag = &urfave.BoolFlag{
		Name:    "debug",
		Usage:   "Prints verbose logs (optional, default: false)",
		Sources: urfave.EnvVars(envPrefix + "DEBUG"),
	}

	logLevelFlag = &urfave.StringFlag{
		Name:    "log-level",
		Usage:   "Log level [debug, info, warn, error]",
		Sources: urfave.EnvVars(envPrefix + "LOG_LEVEL"),
	}

	logFormatFlag = &urfave.StringFlag{
		Name:    "log-format",
		Usage:   fmt.Sprintf("Log format [%s]", strings.Join(logging.Formats, ", ")),
		Sources: urfave.EnvVars(envPrefix + "LOG_FORMAT"),
	}

	configFlag = &urfave.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file (optional)",
		Sources: urfave.EnvVars(envPrefix + "CONFIG"),
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(os.Stderr)
	loadEnvFile(envFileName)

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:                  appName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "Measure. Secure. Dominate Your Password Strength.",
		Flags: []urfave.Flag{
			debugFlag,
			logLevelFlag,
			logFormatFlag,
			configFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			checkCmd,
			serveCmd,
		},
	}
}

func initLogging(w io.Writer) {
	h := logging.NewCLIHandler(w, slog.LevelInfo)
	slog.SetDefault(slog.New(h))
}

// loadEnvFile exports the variables of an optional dotenv file so the
// PASSMETER_* flag sources can see them.
func loadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("error loading env file", "path", path, "error", err)
		}
		return
	}
	slog.Debug("env file loaded", "path", path)
}

// loadConfig layers the config file and flags, then sets up logging.
func loadConfig(cmd *urfave.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(configFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cmd.IsSet(logLevelFlag.Name) {
		cfg.Log.Level = cmd.String(logLevelFlag.Name)
	}
	if cmd.IsSet(logFormatFlag.Name) {
		cfg.Log.Format = cmd.String(logFormatFlag.Name)
	}
	if cmd.Bool(debugFlag.Name) {
		cfg.Log.Level = "debug"
	}

	if cmd.IsSet(hostFlag.Name) {
		cfg.Server.Host = cmd.String(hostFlag.Name)
	}
	if cmd.IsSet(portFlag.Name) {
		cfg.Server.Port = int(cmd.Int(portFlag.Name))
	}
	if cmd.IsSet(noBrowserFlag.Name) {
		cfg.Server.OpenBrowser = !cmd.Bool(noBrowserFlag.Name)
	}
	if cmd.IsSet(metricsFlag.Name) {
		cfg.Metrics.Enabled = cmd.Bool(metricsFlag.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logging.SetDefault(errWriter(cmd), cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	slog.Debug("config loaded", "address", cfg.Address(), "metrics", cfg.Metrics.Enabled)

	return cfg, nil
}

func writer(cmd *urfave.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *urfave.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func reader(cmd *urfave.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML, "yml":
		e := yaml.NewEncoder(w)
		if err := e.Encode(v); err != nil {
			return err
		}
		return e.Close()
	default:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(v)
	}
}
