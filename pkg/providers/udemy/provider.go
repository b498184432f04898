// Package udemy fetches courses from the Udemy affiliate API, a paged
// {results: [...], next: ...} endpoint authenticated with basic API
// credentials.
package udemy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/log"
)

func init() {
	prototype := &Provider{}
	catalog.RegisterProviderPrototype("udemy", prototype)
}

type Config struct {
	URL          string `toml:"url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	MaxPages     int    `toml:"max_pages"`
}

func (c *Config) Validate() error {
	if c.URL == "" {
		c.URL = "https://www.udemy.com/api-2.0/courses/"
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 5
	}
	if c.MaxPages > 50 {
		c.MaxPages = 50
	}
	return nil
}

type Provider struct {
	config       *Config
	client       *http.Client
	instanceName string
	logger       *log.Logger
}

type pageResponse struct {
	Results []map[string]any `json:"results"`
	Next    string           `json:"next"`
}

func NewProvider(instanceName string, config interface{}) (catalog.Provider, error) {
	var cfg *Config
	if config == nil {
		cfg = &Config{}
	} else {
		var ok bool
		cfg, ok = config.(*Config)
		if !ok {
			return nil, fmt.Errorf("invalid config type for Udemy provider")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Provider{
		config:       cfg,
		client:       &http.Client{Timeout: 30 * time.Second},
		instanceName: instanceName,
		logger:       log.ForComponent("udemy"),
	}, nil
}

func (p *Provider) Type() string {
	return "udemy"
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
		return nil
	}
	return fmt.Errorf("invalid config type for Udemy provider")
}

func (p *Provider) GetConfig() interface{} {
	return p.config
}

func (p *Provider) FetchCourses(ctx context.Context, courseCh chan<- catalog.Course) error {
	pageURL := p.config.URL
	fetched := 0

	for page := 0; page < p.config.MaxPages && pageURL != ""; page++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p.logger.Debugf("fetching Udemy page %d: %s", page+1, pageURL)

		results, next, err := p.fetchPage(ctx, pageURL)
		if err != nil {
			return fmt.Errorf("fetching Udemy page %d: %w", page+1, err)
		}

		for i, raw := range results {
			if _, ok := raw["platform"]; !ok {
				raw["platform"] = "Udemy"
			}
			// The affiliate API exposes price as "price" (display string)
			// and the landing page as "url"; both map directly.

			course := catalog.Normalize(raw, fetched+i)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case courseCh <- course:
			}
		}
		fetched += len(results)
		pageURL = next

		// Small delay between pages to be respectful.
		time.Sleep(100 * time.Millisecond)
	}

	p.logger.Infof("fetched %d Udemy courses", fetched)
	return nil
}

func (p *Provider) fetchPage(ctx context.Context, pageURL string) ([]map[string]any, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", "coursexpert/1.0")
	req.Header.Set("Accept", "application/json")
	if p.config.ClientID != "" {
		req.SetBasicAuth(p.config.ClientID, p.config.ClientSecret)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			p.logger.Warnf("failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var payload pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("decoding Udemy page: %w", err)
	}

	return payload.Results, payload.Next, nil
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
