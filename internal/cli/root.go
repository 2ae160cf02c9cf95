// Package cli implements the mailprep command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotarpa/mailprep"
	"github.com/dotarpa/mailprep/internal/hostname"
	"github.com/dotarpa/mailprep/internal/logging"
)

const (
	envPrefix = "MAILPREP"

	// defaultConfigFile is read when MAILPREP_CONFIG is unset; it may be absent.
	defaultConfigFile = "/etc/mailprep/config.yaml"
)

// templatePath locates the message template. Replaced in tests.
var templatePath = mailprep.TemplatePath

// Execute runs the root command with os.Args and returns the process
// exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", upperFirst(err.Error()))
		return 1
	}
	return 0
}

// newViper resolves settings from MAILPREP_* environment variables
// and, once bound, from command flags.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newRootCmd() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "mailprep",
		Short: "Prepare and send email based on a template",
		Long: `Prepare and send email based on a template.

The template is read from ` + mailprep.TemplateName + ` next to the executable and must
contain the @hostname@, @topic@ and @body@ placeholders. The rendered message
is piped to msmtp, which takes sender and recipients from its headers.`,
		Example: `  mailprep --topic "System Alert" --body "Disk space low" --hostname "webserver1"
  mailprep -t "Daily Report" -b "All systems normal"`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.StringP("topic", "t", "", "Topic for email subject")
	flags.StringP("body", "b", "", "Body text for email")
	flags.String("hostname", "", "Hostname or machine description (defaults to system hostname)")
	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("body")
	_ = v.BindPFlags(flags)

	return cmd
}

func send(ctx context.Context, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	logger, closer := logging.Open(cfg.LogFile, cfg.LogLevel)
	defer closer.Close()
	logger = logger.With().Str("run", uuid.NewString()).Logger()

	path, err := templatePath()
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		return err
	}

	r := &Runner{
		Logger:       logger,
		Sender:       mailprep.NewAgent(*cfg),
		TemplatePath: path,
		ResolveHost:  hostname.Resolve,
	}

	err = r.Run(ctx, Input{
		Topic:    v.GetString("topic"),
		Body:     v.GetString("body"),
		Hostname: v.GetString("hostname"),
	})
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		return err
	}
	return nil
}

// loadConfig reads the config file named by MAILPREP_CONFIG, or the
// default file when present, and applies MAILPREP_* overrides.
func loadConfig(v *viper.Viper) (*mailprep.Config, error) {
	path := v.GetString("config")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	cfg, err := mailprep.LoadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		def := mailprep.DefaultConfig()
		cfg = &def
	default:
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	overrides := map[string]*string{
		"agent":        &cfg.Agent,
		"agent_config": &cfg.AgentConfig,
		"log_file":     &cfg.LogFile,
		"log_level":    &cfg.LogLevel,
	}
	for key, dst := range overrides {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
