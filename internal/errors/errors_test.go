package errors

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDjadeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *DjadeError
		expected string
	}{
		{
			"usage error",
			NewUsageError("invalid target version %q", "9.9"),
			`invalid target version "9.9"`,
		},
		{
			"io error with cause",
			NewIOError("a.html", "cannot read file", errors.New("permission denied")),
			"a.html: cannot read file: permission denied",
		},
		{
			"parse error carries offset",
			NewParseError("a.html", `unclosed "{{"`, 42),
			`a.html: unclosed "{{" at byte 42`,
		},
		{
			"parse error without offset",
			NewParseError("a.html", "bad input", -1),
			"a.html: bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDjadeErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewIOError("a.html", "cannot read file", cause)
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, NewUsageError("bad flag").Unwrap())
}

func TestDjadeErrorIsMatchesOnType(t *testing.T) {
	ioA := NewIOError("a.html", "read", nil)
	ioB := NewIOError("b.html", "write", nil)
	parse := NewParseError("a.html", "unclosed", 0)

	assert.ErrorIs(t, ioA, ioB)
	assert.NotErrorIs(t, ioA, parse)
	assert.NotErrorIs(t, ioA, errors.New("plain"))
}

func TestDjadeErrorAsThroughWrapping(t *testing.T) {
	inner := NewParseError("a.html", "unclosed", 7)
	wrapped := fmt.Errorf("run failed: %w", inner)

	var derr *DjadeError
	require.ErrorAs(t, wrapped, &derr)
	assert.Equal(t, ErrorTypeParse, derr.Type)
	assert.Equal(t, 7, derr.Offset)
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.HasErrors())
	assert.Zero(t, c.Count())
	assert.Empty(t, c.All())

	c.Add(NewIOError("a.html", "read", nil))
	c.Add(NewParseError("b.html", "unclosed", 3))

	assert.True(t, c.HasErrors())
	assert.Equal(t, 2, c.Count())
	require.Len(t, c.All(), 2)

	// All returns a copy; mutating it does not affect the collector.
	got := c.All()
	got[0] = nil
	assert.NotNil(t, c.All()[0])
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(NewIOError("f.html", "read", nil))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Count())
}
