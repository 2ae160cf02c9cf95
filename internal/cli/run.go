package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dotarpa/mailprep"
	"github.com/dotarpa/mailprep/tpl"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, content string) (mailprep.Outcome, error)
}

// Input carries the values supplied on the command line.
type Input struct {
	Topic    string
	Body     string
	Hostname string
}

// Runner wires hostname resolution, template loading, substitution and
// delivery into a single run.
type Runner struct {
	Logger       zerolog.Logger
	Sender       Sender
	TemplatePath string
	ResolveHost  func() string
}

// Run renders the template with in and delivers it. Any returned error
// means nothing was sent.
func (r *Runner) Run(ctx context.Context, in Input) error {
	if r.Sender == nil {
		return errors.New("sender is required")
	}

	host := in.Hostname
	if host == "" && r.ResolveHost != nil {
		host = r.ResolveHost()
	}

	r.Logger.Debug().
		Str("topic", in.Topic).
		Str("body", in.Body).
		Str("hostname", host).
		Msg("input parameters")

	t, err := tpl.ParseFile(r.TemplatePath)
	if err != nil {
		return err
	}

	msg, err := t.Substitute(map[string]string{
		"hostname": host,
		"topic":    in.Topic,
		"body":     in.Body,
	})
	if err != nil {
		return err
	}

	hdr := tpl.ParseHeader(msg)
	r.Logger.Debug().
		Str("to", hdr.Get("To")).
		Str("subject", hdr.Get("Subject")).
		Int("bytes", len(msg)).
		Msg("message rendered")

	out, err := r.Sender.Send(r.Logger.WithContext(ctx), msg)
	if err != nil {
		return err
	}
	if !out.OK {
		return fmt.Errorf("%w: %s", mailprep.ErrSendFailed, out.Err)
	}

	r.Logger.Info().Msg("email sent successfully")
	return nil
}
