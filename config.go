package sylph

import (
	"time"

	"github.com/kbukum/sylph/config"
	"github.com/kbukum/sylph/httpclient"
	"github.com/kbukum/sylph/logger"
	"github.com/kbukum/sylph/parser"
	"github.com/kbukum/sylph/request"
	"github.com/kbukum/sylph/validation"
)

// Config is the file form of a client: the base request, the parser, the
// HTTP transport and logging.
//
//	# todos.yml
//	base_url: https://jsonplaceholder.typicode.com
//	timeout: 5s
//	version: "2"
//	parser: json
//	headers:
//	  Accept-Language: en
//	http:
//	  strict_status: true
//	  retry:
//	    max_attempts: 3
//	logging:
//	  level: debug
type Config struct {
	// BaseURL is the absolute URI relative request paths resolve against.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Headers are set on the base request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Timeout is the base request timeout. Zero defers to the transport.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Version is the base protocol preference: "1.1" or "2".
	Version string `yaml:"version" mapstructure:"version"`

	// Redirect is the base redirect policy: never, always or normal.
	Redirect string `yaml:"redirect" mapstructure:"redirect"`

	// Parser names the body format: json (default) or yaml.
	Parser string `yaml:"parser" mapstructure:"parser"`

	// HTTP configures the default transport.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http" validate:"-"`

	// Logging configures the client logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Parser == "" {
		c.Parser = "json"
	}
	c.HTTP.ApplyDefaults()
	c.Logging.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	v.OneOf("parser", c.Parser, "json", "yaml", "yml")
	v.OneOf("version", c.Version, request.VersionNames()...)
	v.OneOf("redirect", c.Redirect, request.RedirectNames()...)
	v.Merge("http", c.HTTP.Validate())
	v.Merge("logging", c.Logging.Validate())
	return v.Error()
}

// BaseRequest returns the base request template described by the config.
func (c *Config) BaseRequest() request.Builder {
	b := request.NewBuilder().
		Headers(c.Headers).
		Timeout(c.Timeout).
		Version(request.ParseVersion(c.Version)).
		FollowRedirects(request.ParseRedirect(c.Redirect))
	if c.BaseURL != "" {
		b = b.URIString(c.BaseURL)
	}
	return b
}

// LoadConfig reads the named client's configuration with the config
// package, applies defaults and validates it.
func LoadConfig(name string, opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.Load(name, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.HTTP.Name == "" {
		cfg.HTTP.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewFromConfig builds a client from cfg.
func NewFromConfig(cfg Config, opts ...httpclient.Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := parser.ByName(cfg.Parser)
	if err != nil {
		return nil, err
	}
	return NewBuilder().
		SetBaseRequest(cfg.BaseRequest()).
		SetParser(p).
		SetLogger(logger.New(&cfg.Logging, cfg.HTTP.Name)).
		SetClient(cfg.HTTP, opts...).
		Client()
}
