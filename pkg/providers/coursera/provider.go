// Package coursera fetches courses from the Coursera catalog API. The API
// uses OAuth2 client credentials; the provider holds a token source and maps
// the API's {elements: [...]} envelope onto raw records for normalization.
package coursera

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/log"
)

func init() {
	prototype := &Provider{}
	catalog.RegisterProviderPrototype("coursera", prototype)
}

type Config struct {
	URL          string `toml:"url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
	MaxCourses   int    `toml:"max_courses"`
}

func (c *Config) Validate() error {
	if c.URL == "" {
		c.URL = "https://api.coursera.org/api/courses.v1"
	}
	if c.TokenURL == "" {
		c.TokenURL = "https://api.coursera.org/oauth2/client_credentials/token"
	}
	if c.MaxCourses <= 0 {
		c.MaxCourses = 100
	}
	return nil
}

type Provider struct {
	config       *Config
	client       *http.Client
	instanceName string
	logger       *log.Logger
}

// catalogResponse mirrors the courses.v1 envelope.
type catalogResponse struct {
	Elements []map[string]any `json:"elements"`
	Paging   struct {
		Next string `json:"next"`
	} `json:"paging"`
}

func NewProvider(instanceName string, config interface{}) (catalog.Provider, error) {
	var cfg *Config
	if config == nil {
		cfg = &Config{}
	} else {
		var ok bool
		cfg, ok = config.(*Config)
		if !ok {
			return nil, fmt.Errorf("invalid config type for Coursera provider")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Provider{
		config:       cfg,
		instanceName: instanceName,
		logger:       log.ForComponent("coursera"),
	}
	p.client = p.buildClient()

	return p, nil
}

// buildClient returns an OAuth2 client-credentials HTTP client when
// credentials are configured, falling back to a plain client for public
// endpoints (the catalog list works unauthenticated at reduced rate limits).
func (p *Provider) buildClient() *http.Client {
	if p.config.ClientID == "" || p.config.ClientSecret == "" {
		return &http.Client{Timeout: 30 * time.Second}
	}

	oauthCfg := clientcredentials.Config{
		ClientID:     p.config.ClientID,
		ClientSecret: p.config.ClientSecret,
		TokenURL:     p.config.TokenURL,
	}
	client := oauthCfg.Client(context.Background())
	client.Timeout = 30 * time.Second
	return client
}

func (p *Provider) Type() string {
	return "coursera"
}

func (p *Provider) Name() string {
	return p.instanceName
}

func (p *Provider) ConfigType() interface{} {
	return &Config{}
}

func (p *Provider) SetConfig(config interface{}) error {
	if cfg, ok := config.(*Config); ok {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.config = cfg
		p.client = p.buildClient()
		return nil
	}
	return fmt.Errorf("invalid config type for Coursera provider")
}

func (p *Provider) GetConfig() interface{} {
	return p.config
}

func (p *Provider) FetchCourses(ctx context.Context, courseCh chan<- catalog.Course) error {
	p.logger.Infof("fetching Coursera catalog from %s", p.config.URL)

	req, err := http.NewRequestWithContext(ctx, "GET", p.config.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "coursexpert/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			p.logger.Warnf("failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decoding Coursera catalog: %w", err)
	}

	fetched := 0
	for i, raw := range payload.Elements {
		if _, ok := raw["platform"]; !ok {
			raw["platform"] = "Coursera"
		}
		// courses.v1 uses "name" for the course title.
		if _, ok := raw["title"]; !ok {
			raw["title"] = raw["name"]
		}

		course := catalog.Normalize(raw, i)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case courseCh <- course:
			fetched++
		}

		if fetched >= p.config.MaxCourses {
			break
		}
	}

	p.logger.Infof("fetched %d Coursera courses", fetched)
	return nil
}

func (p *Provider) Close() error {
	if p.client != nil {
		p.client.CloseIdleConnections()
	}
	return nil
}

func (p *Provider) Factory(instanceName string, config interface{}) (catalog.Provider, error) {
	return NewProvider(instanceName, config)
}
