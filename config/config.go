// Package config loads the extraction settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/extract"
	metrofs "github.com/fwojciec/metro/fs"
	"github.com/fwojciec/metro/goquery"
	metrohttp "github.com/fwojciec/metro/http"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultSourceURL is the station list page of the Moscow metro.
const DefaultSourceURL = "https://ru.wikipedia.org/wiki/Список_станций_Московского_метрополитена"

// Columns holds the zero-based cell indices of a data row.
type Columns struct {
	Line     int `yaml:"line" validate:"gte=0"`
	Station  int `yaml:"station" validate:"gte=0"`
	Transfer int `yaml:"transfer" validate:"gte=0"`
}

// Matching configures how interchange phrases are resolved.
type Matching struct {
	SharedPrefix     string  `yaml:"shared_prefix"`
	SecondWordLength int     `yaml:"second_word_length" validate:"gte=0"`
	PrefixLength     int     `yaml:"prefix_length" validate:"gt=0"`
	FuzzyThreshold   float64 `yaml:"fuzzy_threshold" validate:"gte=0,lte=1"`
}

// Override forces an interchange phrase onto a line.
type Override struct {
	Phrase string `yaml:"phrase" validate:"required"`
	Line   string `yaml:"line" validate:"required"`
}

// Config is the root configuration structure.
type Config struct {
	SourceURL        string          `yaml:"source_url" validate:"required,url"`
	TableSelector    string          `yaml:"table_selector" validate:"required"`
	UserAgent        string          `yaml:"user_agent"`
	Timeout          time.Duration   `yaml:"timeout" validate:"gt=0"`
	RetryDelays      []time.Duration `yaml:"retry_delays" validate:"dive,gte=0"`
	Columns          Columns         `yaml:"columns"`
	NoTransferMarker string          `yaml:"no_transfer_marker"`
	Matching         Matching        `yaml:"matching"`
	Overrides        []Override      `yaml:"overrides" validate:"dive"`
	Output           string          `yaml:"output" validate:"required"`
	Database         string          `yaml:"database"`
}

// Default returns the settings for the Moscow metro station list.
func Default() *Config {
	cols := extract.DefaultColumns()
	cfg := &Config{
		SourceURL:     DefaultSourceURL,
		TableSelector: goquery.DefaultTableSelector,
		UserAgent:     metrohttp.DefaultUserAgent,
		Timeout:       metrohttp.DefaultFetchTimeout,
		RetryDelays:   metrohttp.DefaultRetryDelays(),
		Columns: Columns{
			Line:     cols.Line,
			Station:  cols.Station,
			Transfer: cols.Transfer,
		},
		NoTransferMarker: extract.DefaultNoTransferMarker,
		Matching: Matching{
			SharedPrefix:     extract.DefaultSharedPrefix,
			SecondWordLength: extract.DefaultSecondWordLength,
			PrefixLength:     extract.DefaultPrefixLength,
		},
		Output: metrofs.DefaultDocumentPath,
	}
	for _, o := range extract.DefaultOverrides() {
		cfg.Overrides = append(cfg.Overrides, Override{Phrase: o.Phrase, Line: o.Line})
	}
	return cfg
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the validated defaults. Returns ENOTFOUND
// if the file does not exist and EINVALID if it cannot be decoded or fails
// validation.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, metro.Errorf(metro.ENOTFOUND, "config file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, metro.Errorf(metro.EINVALID, "invalid config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns EINVALID if any field is out of range.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return metro.Errorf(metro.EINVALID, "invalid config: %v", err)
	}
	return nil
}

// ExtractColumns converts the column settings for the pipeline.
func (c *Config) ExtractColumns() extract.Columns {
	return extract.Columns{
		Line:     c.Columns.Line,
		Station:  c.Columns.Station,
		Transfer: c.Columns.Transfer,
	}
}

// ExtractOverrides converts the override settings for the pipeline.
func (c *Config) ExtractOverrides() []extract.Override {
	out := make([]extract.Override, 0, len(c.Overrides))
	for _, o := range c.Overrides {
		out = append(out, extract.Override{Phrase: o.Phrase, Line: o.Line})
	}
	return out
}

// LineMatcher returns the line matcher described by the matching settings.
func (c *Config) LineMatcher() *extract.PrefixLineMatcher {
	return &extract.PrefixLineMatcher{
		SharedPrefix:     c.Matching.SharedPrefix,
		SecondWordLength: c.Matching.SecondWordLength,
		PrefixLength:     c.Matching.PrefixLength,
	}
}
