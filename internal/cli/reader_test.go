package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadLine(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   string
		want    string
	}{
		{name: "answer", input: "y\n", want: "y"},
		{name: "trims space", input: "  duplicate transfer \r\n", want: "duplicate transfer"},
		{name: "empty line", input: "\n", want: ""},
		{name: "final line without newline", input: "yes", want: "yes"},
		{name: "end of input", input: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLineReader(strings.NewReader(tt.input))

			got, err := r.ReadLine(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineReader_SequentialAnswers(t *testing.T) {
	r := NewLineReader(strings.NewReader("y\nduplicate\n"))
	ctx := context.Background()

	first, err := r.ReadLine(ctx)
	require.NoError(t, err)
	second, err := r.ReadLine(ctx)
	require.NoError(t, err)
	_, err = r.ReadLine(ctx)

	assert.Equal(t, "y", first)
	assert.Equal(t, "duplicate", second)
	assert.ErrorIs(t, err, io.EOF)

	// Exhausted input keeps reporting EOF.
	_, err = r.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_Cancellation(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		r := NewLineReader(strings.NewReader("y\n"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})

	t.Run("answer after a cancelled prompt goes to the next prompt", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pw.Close() }()
		r := NewLineReader(pr)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := r.ReadLine(ctx)
		require.ErrorIs(t, err, ErrInputCancelled)

		go func() { _, _ = pw.Write([]byte("n\n")) }()

		got, err := r.ReadLine(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "n", got)
	})
}
