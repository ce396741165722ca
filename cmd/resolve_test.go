package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/abhisek/llmfaker/internal/fakevalues"
	"github.com/abhisek/llmfaker/internal/llm"
)

func newResolver(t *testing.T, responses ...llm.MockResponse) (*fakevalues.Resolver, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	r, err := fakevalues.NewResolver(mock, fakevalues.DefaultConfig(), fakevalues.Options{})
	require.NoError(t, err)
	return r, mock
}

func TestResolveKeys_SingleKey(t *testing.T) {
	r, mock := newResolver(t, llm.MockResponse{Text: `["Ada", "Grace"]`})

	var out bytes.Buffer
	err := resolveKeys(context.Background(), &out, r, []string{"name.firstName"}, language.German, 2)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.ElementsMatch(t, []string{"Ada", "Grace"}, []string{string(lines[0]), string(lines[1])})
	require.Len(t, mock.Calls, 1)
	assert.Contains(t, mock.Calls[0].Prompt, "German")
}

func TestResolveKeys_MultipleKeysArePrefixed(t *testing.T) {
	r, _ := newResolver(t,
		llm.MockResponse{Text: `["Jazz"]`},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)

	var out bytes.Buffer
	err := resolveKeys(context.Background(), &out, r, []string{"music.genre", "music.songName"}, language.English, 1)
	require.NoError(t, err)
	assert.Equal(t, "music.genre\tJazz\nmusic.songName\t<no value>\n", out.String())
}

func TestResolveKeys_MalformedKeyFailsFirst(t *testing.T) {
	r, mock := newResolver(t, llm.MockResponse{Text: `["x"]`})

	var out bytes.Buffer
	err := resolveKeys(context.Background(), &out, r, []string{"music.genre", "genre"}, language.English, 1)
	var malformed *fakevalues.MalformedKeyError
	require.True(t, errors.As(err, &malformed), "got %v", err)
	assert.Equal(t, 0, mock.CallCount())
	assert.Empty(t, out.String())
}

func TestResolveKeys_AllMissing(t *testing.T) {
	r, _ := newResolver(t, llm.MockResponse{Text: `[]`})

	var out bytes.Buffer
	err := resolveKeys(context.Background(), &out, r, []string{"music.genre"}, language.English, 1)
	assert.Error(t, err)
	assert.Equal(t, "<no value>\n", out.String())
}
