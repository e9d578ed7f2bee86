package content

import (
	"fmt"
	"strings"
)

// NewClient creates a raw provider client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	case "static", "":
		return newStaticClient(), nil
	default:
		return nil, fmt.Errorf("unsupported content provider: %s", cfg.Provider)
	}
}
