package config

import "time"

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Server: Server{
			PrintRoutes: false,
			Port:        8000,
			StaticDir:   ".",
		},
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Search: Search{
			Timeout:    10 * time.Second,
			UserAgent:  "Mozilla/5.0",
			MaxResults: 10,
			Families: []Family{
				{
					Name: "piped",
					Instances: []string{
						"https://api.piped.private.coffee",
						"https://pipedapi.kavin.rocks",
						"https://pipedapi.adminforge.de",
					},
				},
				{
					Name: "invidious",
					Instances: []string{
						"https://invidious.private.coffee",
						"https://inv.nadeko.net",
					},
				},
			},
		},
		Interpret: Interpret{
			APIKey:    "", // Prefer the ANTHROPIC_API_KEY environment variable
			BaseURL:   "https://api.anthropic.com/v1/messages",
			Model:     "claude-3-5-haiku-20241022",
			MaxTokens: 1000,
			Timeout:   30 * time.Second,
		},
		LiveReload: LiveReload{
			Enabled:    true,
			WatchDir:   ".",
			Interval:   500 * time.Millisecond,
			Extensions: []string{".html", ".js", ".css", ".json"},
			Recursive:  false,
			FSNotify:   true,
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}
