package config

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RendererTheme converts the theme settings into the renderer-facing
// configuration. Tokens are exposed as CSS custom properties prefixed with
// "--" unless they already carry it.
func (c Config) RendererTheme() *theme.RendererConfig {
	t := c.Theme
	if t.Name == "" && len(t.Tokens) == 0 && len(t.Assets) == 0 {
		return nil
	}

	tokens := make(map[string]string, len(t.Tokens))
	vars := make(map[string]string, len(t.Tokens))
	for key, value := range t.Tokens {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		tokens[strings.TrimPrefix(name, "--")] = value
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		vars[name] = value
	}

	cfg := &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  tokens,
		CSSVars: vars,
	}
	if len(t.Assets) > 0 {
		assets := make(map[string]string, len(t.Assets))
		for key, url := range t.Assets {
			assets[key] = url
		}
		cfg.AssetURL = func(key string) string {
			return assets[key]
		}
	}
	return cfg
}
