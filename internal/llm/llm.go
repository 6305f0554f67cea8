package llm

import (
	"fmt"
)

// pairs an embedder with an optional text generator
type Client struct {
	Embedder
	generator TextGenerator
}

// creates a new client with auto-configuration from environment variables
func NewLLM() (*Client, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewLLMWithConfig(config)
}

// creates a new client with explicit configuration
func NewLLMWithConfig(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var embedder Embedder

	switch config.EmbedderProvider {
	case ProviderOpenAI:
		embedder = NewOpenAIEmbedder(OpenAIConfig{
			APIKey:            config.EmbedderAPIKey,
			Model:             config.EmbedderModel,
			RequestsPerSecond: config.EmbedderRPS,
		})
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.EmbedderProvider)
	}

	client := &Client{Embedder: embedder}

	if config.GeneratorAPIKey == "" {
		return client, nil
	}

	switch config.GeneratorProvider {
	case ProviderAnthropic:
		client.generator = NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.GeneratorProvider)
	}

	return client, nil
}

// returns the configured generator, nil when generation is disabled
func (c *Client) Generator() TextGenerator {
	return c.generator
}
