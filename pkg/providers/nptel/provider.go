// Package nptel fetches the NPTEL course catalog. The source is a plain
// JSON array of raw course records (the export produced by the NPTEL
// scraper); records are filtered to platform "NPTEL" and normalized before
// being emitted.
package nptel

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
	catalog.RegisterProviderPrototype("nptel", prototype)
}

type Config struct {
	URL        string `toml:"url"`
	MaxCourses int    `toml:"max_courses"`
}

func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("NPTEL catalog URL must be configured")
	}
	if c.MaxCourses < 0 {
		return fmt.Errorf("max_courses must not be negative")
	}
	return nil
}

type Provider struct {
	config       *Config
	client       *http.Client
	instanceName string
	logger       *log.Logger
}

func NewProvider(instanceName string, config interface{}) (catalog.Provider, error) {
	var cfg *Config
	if config == nil {
		cfg = &Config{
			URL: "https://coursexpert.example.com/nptel_courses.json",
		}
	} else {
		var ok bool
		cfg, ok = config.(*Config)
		if !ok {
			return nil, fmt.Errorf("invalid config type for NPTEL provider")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Provider{
		config:       cfg,
		client:       &http.Client{Timeout: 30 * time.Second},
		instanceName: instanceName,
		logger:       log.ForComponent("nptel"),
	}, nil
}

func (p *Provider) Type() string {
	return "nptel"
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
	return fmt.Errorf("invalid config type for NPTEL provider")
}

func (p *Provider) GetConfig() interface{} {
	return p.config
}

func (p *Provider) FetchCourses(ctx context.Context, courseCh chan<- catalog.Course) error {
	p.logger.Infof("fetching NPTEL catalog from %s", p.config.URL)

	req, err := http.NewRequestWithContext(ctx, "GET", p.config.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "coursexpert/1.0")

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

	var rawCourses []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rawCourses); err != nil {
		return fmt.Errorf("decoding NPTEL catalog: %w", err)
	}

	fetched := 0
	for i, raw := range rawCourses {
		// The export mixes platforms; this provider only owns NPTEL rows.
		if platform, _ := raw["platform"].(string); platform != "NPTEL" {
			continue
		}

		course := catalog.Normalize(raw, i)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case courseCh <- course:
			fetched++
		}

		if p.config.MaxCourses > 0 && fetched >= p.config.MaxCourses {
			break
		}
	}

	p.logger.Infof("fetched %d NPTEL courses", fetched)
	return nil
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) Factory(instanceName string, config interface{}) (catalog.Provider, error) {
	return NewProvider(instanceName, config)
}
