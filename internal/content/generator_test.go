package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingClient tracks Complete calls and can be made to fail.
type countingClient struct {
	calls int
	fail  bool
	text  string
}

func (c *countingClient) Complete(_ context.Context, _ string) (string, error) {
	c.calls++
	if c.fail {
		return "", errors.New("provider unavailable")
	}
	return c.text, nil
}

func fastConfig() Config {
	return Config{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		CacheTTL:   time.Minute,
	}
}

func TestGenerateNeverFails(t *testing.T) {
	client := &countingClient{fail: true}
	g := NewGeneratorWithClient(client, fastConfig(), nil)
	defer func() { _ = g.Close() }()

	got := g.Generate(context.Background(), "prompt about savings")

	assert.Equal(t, FallbackText, got)
	assert.Equal(t, 3, client.calls, "should exhaust all retry attempts")
}

func TestGenerateReturnsProviderText(t *testing.T) {
	client := &countingClient{text: "You can consider automating your savings."}
	g := NewGeneratorWithClient(client, fastConfig(), nil)
	defer func() { _ = g.Close() }()

	got := g.Generate(context.Background(), "prompt about savings")

	assert.Equal(t, client.text, got)
	assert.Equal(t, 1, client.calls)
}

func TestGenerateCachesByPrompt(t *testing.T) {
	client := &countingClient{text: "Consider reviewing your subscriptions."}
	g := NewGeneratorWithClient(client, fastConfig(), nil)
	defer func() { _ = g.Close() }()

	first := g.Generate(context.Background(), "same prompt")
	second := g.Generate(context.Background(), "same prompt")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls, "second call should hit the cache")

	g.Generate(context.Background(), "a different prompt")
	assert.Equal(t, 2, client.calls)
}

func TestGenerateFailuresAreNotCached(t *testing.T) {
	client := &countingClient{fail: true}
	g := NewGeneratorWithClient(client, fastConfig(), nil)
	defer func() { _ = g.Close() }()

	require.Equal(t, FallbackText, g.Generate(context.Background(), "prompt"))

	// Provider recovers; the next call should reach it.
	client.fail = false
	client.text = "Recovered content with options to explore."
	assert.Equal(t, client.text, g.Generate(context.Background(), "prompt"))
}

func TestStaticClientIsDeterministic(t *testing.T) {
	client, err := NewClient(Config{Provider: "static"})
	require.NoError(t, err)

	first, err := client.Complete(context.Background(), "Write about credit utilization")
	require.NoError(t, err)
	second, err := client.Complete(context.Background(), "Write about credit utilization")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	savings, err := client.Complete(context.Background(), "Write about saving for emergencies")
	require.NoError(t, err)
	assert.NotEqual(t, first, savings)
}

func TestNewClientProviders(t *testing.T) {
	_, err := NewClient(Config{Provider: "carrier-pigeon"})
	require.Error(t, err)

	// Empty provider defaults to the offline static client.
	client, err := NewClient(Config{})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
