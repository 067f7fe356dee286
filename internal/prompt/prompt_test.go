package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

// stalledReader blocks like a terminal nobody types into.
type stalledReader struct{ release chan struct{} }

func (r stalledReader) Read([]byte) (int, error) {
	<-r.release
	return 0, io.EOF
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name  string
		input io.Reader
		want  Choice
	}{
		{"view", strings.NewReader("v\n"), ChoiceView},
		{"save", strings.NewReader("s\n"), ChoiceSave},
		{"upper case with spaces", strings.NewReader("  S \n"), ChoiceSave},
		{"crlf", strings.NewReader("v\r\n"), ChoiceView},
		{"no newline before eof", strings.NewReader("s"), ChoiceSave},
		{"empty line", strings.NewReader("\n"), ChoiceInvalid},
		{"word", strings.NewReader("save\n"), ChoiceInvalid},
		{"other letter", strings.NewReader("x\n"), ChoiceInvalid},
		{"end of input", strings.NewReader(""), ChoiceView},
		{"nil reader", nil, ChoiceView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Ask(context.Background(), tt.input, &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, Question, out.String())
		})
	}
}

func TestAsk_ReadError(t *testing.T) {
	_, err := Ask(context.Background(), failingReader{}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestAsk_InterruptedWhileWaiting(t *testing.T) {
	in := stalledReader{release: make(chan struct{})}
	t.Cleanup(func() { close(in.release) })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	var out bytes.Buffer
	errCh := make(chan error, 1)
	go func() {
		_, err := Ask(ctx, in, &out)
		errCh <- err
	}()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Ask kept waiting after the context was cancelled")
	}
}

func TestAsk_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := Ask(ctx, stalledReader{release: make(chan struct{})}, &out)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestChoice_String(t *testing.T) {
	assert.Equal(t, "view", ChoiceView.String())
	assert.Equal(t, "save", ChoiceSave.String())
	assert.Equal(t, "invalid", ChoiceInvalid.String())
}
