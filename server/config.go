package server

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/borderlesshq/gqlhttp/tools"
)

// Config is the YAML file form of the server set-up. Zero values fall
// back to the defaults, so a partial file is fine.
type Config struct {
	ServerName        string       `yaml:"server_name"`
	Address           string       `yaml:"address"`
	GraphEntrypoint   string       `yaml:"graph_entrypoint"`
	Pretty            bool         `yaml:"pretty"`
	MaxAge            int          `yaml:"max_age"`
	DisablePlayground bool         `yaml:"disable_playground"`
	DisableTools      bool         `yaml:"disable_tools"`
	Tools             []ToolConfig `yaml:"tools"`
}

// ToolConfig picks one of the built-in IDE pages by kind (graphiql,
// playground or voyager) with an optional custom mount URL. An empty
// tools list keeps the default set.
type ToolConfig struct {
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		ServerName:      "gqlhttp",
		Address:         ":8080",
		GraphEntrypoint: "graphql",
		MaxAge:          86400,
	}
}

// LoadConfig reads a YAML config file on top of the defaults. An empty
// path returns the defaults untouched.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if trim(path) == empty {
		return cfg, nil
	}

	b, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "unable to read config file")
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrap(err, "unable to parse config file")
	}

	if trim(cfg.ServerName) == empty {
		cfg.ServerName = DefaultConfig().ServerName
	}
	if trim(cfg.Address) == empty {
		cfg.Address = DefaultConfig().Address
	}
	if trim(cfg.GraphEntrypoint) == empty {
		cfg.GraphEntrypoint = DefaultConfig().GraphEntrypoint
	}

	return cfg, nil
}

// Options converts the file form into server options.
func (c Config) Options() (*Options, error) {
	opts := NewServerOptions(c.ServerName, c.GraphEntrypoint)
	if c.DisablePlayground {
		opts.DisablePlayground()
	}
	if c.DisableTools {
		opts.DisableTools()
	}

	if len(c.Tools) > 0 {
		pages, err := c.toolPages()
		if err != nil {
			return nil, err
		}
		opts.SetTools(pages...)
	}

	return opts, nil
}

func (c Config) toolPages() ([]*tools.Tool, error) {
	endpoint := fmt.Sprintf("/%s", strings.TrimPrefix(c.GraphEntrypoint, "/"))

	pages := make([]*tools.Tool, 0, len(c.Tools))
	for _, t := range c.Tools {
		topts := []tools.Option{tools.WithEndpoint(endpoint)}
		if trim(t.URL) != empty {
			topts = append(topts, tools.WithURL(t.URL))
		}

		switch strings.ToLower(trim(t.Kind)) {
		case "graphiql":
			pages = append(pages, tools.GraphiQL(topts...))
		case "playground":
			pages = append(pages, tools.Playground(topts...))
		case "voyager":
			pages = append(pages, tools.Voyager(topts...))
		default:
			return nil, errors.Errorf("unknown tool kind %q in config", t.Kind)
		}
	}
	return pages, nil
}
