package mailprep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrConfigMissing indicates the mail agent configuration file is absent.
	ErrConfigMissing = errors.New("mail agent config not found")

	// ErrSendFailed indicates the mail agent rejected or failed the delivery.
	ErrSendFailed = errors.New("failed to send email")
)

// TemplateName is the template file looked up next to the executable.
const TemplateName = "template.txt"

// Outcome is the result of a delivery attempt. Err is empty when OK.
type Outcome struct {
	OK  bool
	Err string
}

// Agent delivers rendered messages through a sendmail-compatible
// executable that reads envelope sender and recipients from the
// message headers.
type Agent struct {
	cfg Config
}

// NewAgent returns an Agent using cfg.Agent and cfg.AgentConfig.
func NewAgent(cfg Config) *Agent {
	return &Agent{cfg: cfg}
}

// Send pipes content to the mail agent and waits for it to exit.
//
// A missing agent configuration file is reported as an error wrapping
// ErrConfigMissing before any process is started. Every other failure,
// including a non-zero exit status or an executable that cannot be
// started, is reported through the returned Outcome.
//
// There is no timeout; the call blocks until the agent exits or ctx is
// cancelled.
func (a *Agent) Send(ctx context.Context, content string) (Outcome, error) {
	cfgPath, err := a.cfg.AgentConfigPath()
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrConfigMissing, err)
	}
	if fi, err := os.Stat(cfgPath); err != nil || !fi.Mode().IsRegular() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrConfigMissing, cfgPath)
	}

	args := []string{"--file", cfgPath, "--read-envelope-from", "--read-recipients"}
	cmd := exec.CommandContext(ctx, a.cfg.Agent, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log := zerolog.Ctx(ctx)
	log.Debug().Str("agent", a.cfg.Agent).Strs("args", args).Int("bytes", len(content)).Msg("starting mail agent")

	err = cmd.Run()
	log.Debug().Str("stdout", strings.TrimSpace(stdout.String())).Msg("mail agent finished")
	if err == nil {
		return Outcome{OK: true}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = exitErr.Error()
		}
		return Outcome{Err: msg}, nil
	}
	return Outcome{Err: err.Error()}, nil
}

// Send delivers content through the mail agent described by cfg.
func Send(ctx context.Context, cfg Config, content string) (Outcome, error) {
	return NewAgent(cfg).Send(ctx, content)
}

// TemplatePath returns the location of TemplateName next to the running
// executable, with symlinks resolved.
func TemplatePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), TemplateName), nil
}
