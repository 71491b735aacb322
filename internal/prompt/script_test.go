package prompt

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptReplaysResponses(t *testing.T) {
	s := &Script{Responses: []string{"p1", "e@x.com", ""}}

	first, err := s.ReadSecret("Root password: ")
	require.NoError(t, err)
	assert.Equal(t, "p1", first)

	second, err := s.ReadLine("Notification email: ")
	require.NoError(t, err)
	assert.Equal(t, "e@x.com", second)

	third, err := s.ReadLine("Path: ")
	require.NoError(t, err)
	assert.Empty(t, third)

	_, err = s.ReadLine("Path: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, []string{"Root password: ", "Notification email: ", "Path: ", "Path: "}, s.Prompts)
}
