// Package config loads the optional .kspcfgfmt.yaml project file that
// seeds printer.Settings defaults before CLI flags or LSP
// didChangeConfiguration overrides are applied. The loading shape —
// a YAML file discovered from a candidate list of cwd and home-dir
// paths — is ported from the teacher's cmd/smpe_lint/config.go
// (LoadConfig/FindConfigFile), adapted from its diagnostic-code toggle
// map to this formatter's indentation/inline/line-return knobs (see
// DESIGN.md).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cybersorcerer/kspcfg/internal/printer"
)

// candidateNames are tried, in order, in the current directory and
// then in the user's home directory (mirrors FindConfigFile's
// cwd-then-home search in the teacher).
var candidateNames = []string{".kspcfgfmt.yaml", ".kspcfgfmt.yml"}

// Config is the on-disk shape of .kspcfgfmt.yaml. Every field is
// optional; zero values fall back to Default's.
type Config struct {
	Indentation string `yaml:"indentation"` // "tabs" or "spaces:N"
	Inline      string `yaml:"inline"`      // "collapse", "keep", or "expand"
	LineReturn  string `yaml:"line-return"` // "lf", "crlf", or "identify"
}

// Default returns the formatter's built-in defaults: tabs, collapsing
// single-assignment nodes, and detecting the source's line ending.
func Default() *Config {
	return &Config{Indentation: "tabs", Inline: "collapse", LineReturn: "identify"}
}

// Load reads and parses the YAML config at path, starting from
// Default() so any field the file omits keeps its default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Find looks for a config file in the current directory, then the
// user's home directory, returning "" if none of the candidates exist.
func Find() string {
	for _, name := range candidateNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, name := range candidateNames {
		p := filepath.Join(home, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Settings converts c to printer.Settings, defaulting any field left
// unrecognized back to Default()'s value.
func (c *Config) Settings() printer.Settings {
	return printer.Settings{
		Indentation: parseIndentation(c.Indentation),
		Inline:      parseInline(c.Inline),
		LineReturn:  parseLineReturn(c.LineReturn),
	}
}

func parseIndentation(s string) printer.Indentation {
	if strings.HasPrefix(s, "spaces") {
		width := 2
		if parts := strings.SplitN(s, ":", 2); len(parts) == 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				width = n
			}
		}
		return printer.Indentation{Kind: printer.IndentSpaces, Width: width}
	}
	return printer.Indentation{Kind: printer.IndentTabs}
}

func parseInline(s string) printer.InlineMode {
	switch s {
	case "keep":
		return printer.InlineKeep
	case "expand":
		return printer.InlineExpand
	default:
		return printer.InlineCollapse
	}
}

func parseLineReturn(s string) printer.LineReturnMode {
	switch s {
	case "lf":
		return printer.LineReturnLF
	case "crlf":
		return printer.LineReturnCRLF
	default:
		return printer.LineReturnIdentify
	}
}
