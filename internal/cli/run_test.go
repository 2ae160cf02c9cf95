package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dotarpa/mailprep"
	"github.com/dotarpa/mailprep/internal/logging"
	"github.com/dotarpa/mailprep/tpl"
)

const scenarioTemplate = "From: a@x\nTo: b@y\nSubject: @topic@\n\n@body@ on @hostname@"

// MockSender is a mock implementation of Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, content string) (mailprep.Outcome, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(mailprep.Outcome), args.Error(1)
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), mailprep.TemplateName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestRunner(t *testing.T, templatePath string, sender Sender) (*Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Runner{
		Logger:       logging.New(&buf, "debug"),
		Sender:       sender,
		TemplatePath: templatePath,
		ResolveHost:  func() string { return "resolved-host" },
	}, &buf
}

func TestRunner_Run_Success(t *testing.T) {
	sender := &MockSender{}
	r, logs := newTestRunner(t, writeTemplate(t, scenarioTemplate), sender)

	want := "From: a@x\nTo: b@y\nSubject: Disk full\n\nCheck /var on node1"
	sender.On("Send", mock.Anything, want).Return(mailprep.Outcome{OK: true}, nil).Once()

	err := r.Run(context.Background(), Input{Topic: "Disk full", Body: "Check /var", Hostname: "node1"})
	require.NoError(t, err)
	sender.AssertExpectations(t)

	assert.Contains(t, logs.String(), "DBG input parameters")
	assert.Contains(t, logs.String(), "INF email sent successfully")
}

func TestRunner_Run_ResolvesHostname(t *testing.T) {
	sender := &MockSender{}
	r, _ := newTestRunner(t, writeTemplate(t, scenarioTemplate), sender)

	sender.On("Send", mock.Anything, mock.MatchedBy(func(content string) bool {
		return strings.HasSuffix(content, "Check /var on resolved-host")
	})).Return(mailprep.Outcome{OK: true}, nil).Once()

	err := r.Run(context.Background(), Input{Topic: "Disk full", Body: "Check /var"})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestRunner_Run_TemplateMissing(t *testing.T) {
	sender := &MockSender{}
	path := filepath.Join(t.TempDir(), mailprep.TemplateName)
	r, _ := newTestRunner(t, path, sender)

	err := r.Run(context.Background(), Input{Topic: "t", Body: "b"})
	require.Error(t, err)
	assert.True(t, tpl.IsKind(err, tpl.KindNotFound))
	assert.Contains(t, err.Error(), path)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestRunner_Run_UnsatisfiablePlaceholder(t *testing.T) {
	sender := &MockSender{}
	r, _ := newTestRunner(t, writeTemplate(t, "@hostname@ @topic@ @body@ @signature@"), sender)

	err := r.Run(context.Background(), Input{Topic: "t", Body: "b"})
	require.Error(t, err)
	assert.True(t, tpl.IsKind(err, tpl.KindMissingValues))
	assert.Equal(t, "missing values for placeholders: signature", err.Error())
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestRunner_Run_DeliveryFailure(t *testing.T) {
	sender := &MockSender{}
	r, _ := newTestRunner(t, writeTemplate(t, scenarioTemplate), sender)

	sender.On("Send", mock.Anything, mock.Anything).
		Return(mailprep.Outcome{Err: "relay timeout"}, nil).Once()

	err := r.Run(context.Background(), Input{Topic: "t", Body: "b"})
	require.ErrorIs(t, err, mailprep.ErrSendFailed)
	assert.Equal(t, "failed to send email: relay timeout", err.Error())
}

func TestRunner_Run_ConfigMissing(t *testing.T) {
	sender := &MockSender{}
	r, _ := newTestRunner(t, writeTemplate(t, scenarioTemplate), sender)

	sender.On("Send", mock.Anything, mock.Anything).
		Return(mailprep.Outcome{}, mailprep.ErrConfigMissing).Once()

	err := r.Run(context.Background(), Input{Topic: "t", Body: "b"})
	assert.ErrorIs(t, err, mailprep.ErrConfigMissing)
}

func TestRunner_Run_RequiresSender(t *testing.T) {
	r, _ := newTestRunner(t, writeTemplate(t, scenarioTemplate), nil)
	r.Sender = nil

	assert.Error(t, r.Run(context.Background(), Input{Topic: "t", Body: "b"}))
}
