package config

import (
	"fmt"
	"strconv"

	"github.com/atlanticdynamic/announcer/internal/fancy"
)

// String implements fmt.Stringer as a rendered tree of the configuration.
func (c *Config) String() string {
	return ConfigTree(c)
}

// ConfigTree renders cfg as a tree, naming the source each value came from.
func ConfigTree(cfg *Config) string {
	t := fancy.Tree()
	t.Root(fancy.RootStyle.Render(fmt.Sprintf("Announcer Config (%s)", cfg.Environment)))

	app := fancy.BranchNode("App", "")
	app.Child(fancy.Setting("Text To Print", strconv.Quote(cfg.App.TextToPrint), cfg.sourceOf(KeyTextToPrint)))
	app.Child(fancy.Setting("Interval", cfg.App.Interval.String(), cfg.sourceOf(KeyInterval)))
	t.Child(app)

	logging := fancy.BranchNode("Logging", "")
	logging.Child(fancy.Setting("Level", cfg.Logging.Level.String(), cfg.sourceOf(KeyLoggingLevel)))
	logging.Child(fancy.Setting("Format", cfg.Logging.Format.String(), cfg.sourceOf(KeyLoggingFormat)))
	logging.Child(fancy.Setting("Output", cfg.Logging.Output, cfg.sourceOf(KeyLoggingOutput)))
	t.Child(logging)

	return t.String()
}

func (c *Config) sourceOf(key string) string {
	if c.resolved == nil {
		return ""
	}
	v, ok := c.resolved.Lookup(key)
	if !ok {
		return "unset"
	}
	return v.Source
}
