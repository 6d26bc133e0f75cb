// Package config loads the immutable run configuration. Every
// component receives the values it needs at construction time; nothing
// reads ambient process state after startup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config describes one run of the tool: site metadata plus the
// filesystem locations for content, templates, static assets, output,
// and the staging database.
type Config struct {
	SiteTitle   string
	BaseURL     string
	Description string
	Author      string

	ContentDir   string
	TemplatesDir string
	StaticDir    string
	OutputDir    string
	DBPath       string

	// TimeFormat is the layout post created-at lines must match and
	// the format timestamps are rendered back from.
	TimeFormat string

	LogLevel string
}

// Read loads the configuration file, fills defaults, and normalizes
// relative paths against the config file location so the binary can be
// invoked from anywhere.
func Read(fileName string) (*Config, error) {
	raw, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	conf := Config{}
	if err := json.Unmarshal(raw, &conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Populate with defaults
	if conf.ContentDir == "" {
		conf.ContentDir = "content"
	}
	if conf.TemplatesDir == "" {
		conf.TemplatesDir = "templates"
	}
	if conf.StaticDir == "" {
		conf.StaticDir = "static"
	}
	if conf.OutputDir == "" {
		conf.OutputDir = "output"
	}
	if conf.DBPath == "" {
		conf.DBPath = "site.db"
	}
	if conf.TimeFormat == "" {
		conf.TimeFormat = "2006-01-02 15:04:05"
	}
	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}
	if db := os.Getenv("FOLIO_DB"); db != "" {
		conf.DBPath = db
	}

	baseDir := filepath.Dir(fileName)
	conf.ContentDir = normalizePath(conf.ContentDir, baseDir)
	conf.TemplatesDir = normalizePath(conf.TemplatesDir, baseDir)
	conf.StaticDir = normalizePath(conf.StaticDir, baseDir)
	conf.OutputDir = normalizePath(conf.OutputDir, baseDir)
	conf.DBPath = normalizePath(conf.DBPath, baseDir)

	return &conf, nil
}

// PostsDir is where post sources live, one Markdown file per post.
func (c *Config) PostsDir() string {
	return filepath.Join(c.ContentDir, "posts")
}

// ProjectsDir is where project sources live.
func (c *Config) ProjectsDir() string {
	return filepath.Join(c.ContentDir, "projects")
}

func normalizePath(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		return filepath.Join(baseDir, path)
	}
	return path
}
