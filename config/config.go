// Package config loads reporter settings from a YAML file and from command
// line flags.
//
// Example file:
//
//	reportFrequency: 500ms
//	statsFrequency: 2s
//	display:
//	  startingTime: true
//	  elapsedTime: true
//	  remainingTime: true
//	hideWorkloadOnComplete: true
//	export:
//	  fileName: stats.json
//	  fileType: json
//	renderer:
//	  kind: bar
//	  width: 40
//	workloads:
//	  - id: download
//	    description: Downloading packages
//	    expectedItems: 15
//	    renderer:
//	      kind: pulse
//	      width: 30
//	      symbol: "*"
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gcastellov/go-progress/progress"
	"github.com/gcastellov/go-progress/progress/component"
	"github.com/gcastellov/go-progress/progress/exporter"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

type Config struct {
	ReportFrequency        time.Duration      `yaml:"reportFrequency,omitempty"`
	StatsFrequency         time.Duration      `yaml:"statsFrequency,omitempty"`
	Display                Display            `yaml:"display,omitempty"`
	HideWorkloadOnComplete bool               `yaml:"hideWorkloadOnComplete,omitempty"`
	Export                 *exporter.Settings `yaml:"export,omitempty"`
	// Renderer is used by single-workload reporters and by workloads
	// without their own renderer.
	Renderer  Renderer   `yaml:"renderer,omitempty"`
	Workloads []Workload `yaml:"workloads,omitempty"`
}

type Display struct {
	StartingTime           bool `yaml:"startingTime,omitempty"`
	EstimatedTimeOfArrival bool `yaml:"eta,omitempty"`
	ElapsedTime            bool `yaml:"elapsedTime,omitempty"`
	RemainingTime          bool `yaml:"remainingTime,omitempty"`
	ItemsOverview          bool `yaml:"itemsOverview,omitempty"`
	ItemsSummary           bool `yaml:"itemsSummary,omitempty"`
}

type Workload struct {
	ID            string   `yaml:"id"`
	Description   string   `yaml:"description,omitempty"`
	ExpectedItems uint64   `yaml:"expectedItems"`
	Renderer      Renderer `yaml:"renderer,omitempty"`
}

type Renderer struct {
	Kind           string `yaml:"kind,omitempty"`
	Width          uint   `yaml:"width,omitempty"`
	Symbol         string `yaml:"symbol,omitempty"`
	DisplayPercent *bool  `yaml:"displayPercent,omitempty"`
}

// Default returns the configuration used when no file is given: a bar
// with every display toggle on.
func Default() *Config {
	return &Config{
		ReportFrequency: progress.DefaultReportFrequency,
		StatsFrequency:  progress.DefaultStatsFrequency,
		Display: Display{
			StartingTime:           true,
			EstimatedTimeOfArrival: true,
			ElapsedTime:            true,
			RemainingTime:          true,
			ItemsOverview:          true,
			ItemsSummary:           true,
		},
		Renderer: Renderer{Kind: string(component.KindBar)},
	}
}

// Load reads and validates the YAML file at path.
func Load(fs afero.Fs, path string) (*Config, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	if err := yaml.UnmarshalStrict(content, c); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if c.ReportFrequency < 0 {
		errs = append(errs, fmt.Errorf("reportFrequency must not be negative"))
	}
	if c.StatsFrequency < 0 {
		errs = append(errs, fmt.Errorf("statsFrequency must not be negative"))
	}
	if c.Export != nil {
		if strings.TrimSpace(c.Export.FileName) == "" {
			errs = append(errs, fmt.Errorf("export fileName should not be empty"))
		}
		if _, err := exporter.ParseFileType(string(c.Export.FileType)); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Renderer.Kind != "" {
		if _, err := c.Renderer.Descriptor(); err != nil {
			errs = append(errs, fmt.Errorf("renderer: %w", err))
		}
	}

	ids := make(map[string]bool)
	for _, w := range c.Workloads {
		id := strings.TrimSpace(w.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("workload id should not be empty"))
			continue
		}
		if ids[id] {
			errs = append(errs, fmt.Errorf("duplicate workloads found: %s: %w", id, progress.ErrDuplicateWorkload))
		}
		ids[id] = true
		if w.ExpectedItems == 0 {
			errs = append(errs, fmt.Errorf("workload %s: %w", id, progress.ErrNoExpectedItems))
		}
		if _, err := c.workloadRenderer(w).Descriptor(); err != nil {
			errs = append(errs, fmt.Errorf("workload %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) workloadRenderer(w Workload) Renderer {
	if w.Renderer.Kind == "" {
		return c.Renderer
	}
	return w.Renderer
}

// Options converts the configuration into reporter options. The exporter,
// if any, writes to fs.
func (c *Config) Options(fs afero.Fs) ([]progress.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts := []progress.Option{
		progress.WithDisplayOptions(progress.Options{
			DisplayStartingTime:           c.Display.StartingTime,
			DisplayEstimatedTimeOfArrival: c.Display.EstimatedTimeOfArrival,
			DisplayElapsedTime:            c.Display.ElapsedTime,
			DisplayRemainingTime:          c.Display.RemainingTime,
			DisplayItemsOverview:          c.Display.ItemsOverview,
			DisplayItemsSummary:           c.Display.ItemsSummary,
			HideWorkloadOnComplete:        c.HideWorkloadOnComplete,
		}),
	}
	if c.ReportFrequency > 0 {
		opts = append(opts, progress.WithReportFrequency(c.ReportFrequency))
	}
	if c.StatsFrequency > 0 {
		opts = append(opts, progress.WithStatsFrequency(c.StatsFrequency))
	}
	if c.Renderer.Kind != "" {
		d, _ := c.Renderer.Descriptor()
		opts = append(opts, progress.WithComponent(d))
	}
	for _, w := range c.Workloads {
		d, _ := c.workloadRenderer(w).Descriptor()
		opts = append(opts, progress.WithWorkload(strings.TrimSpace(w.ID), w.Description, w.ExpectedItems, d))
	}
	if c.Export != nil {
		fileType, _ := exporter.ParseFileType(string(c.Export.FileType))
		exp, err := exporter.New(exporter.Settings{FileName: c.Export.FileName, FileType: fileType}, exporter.WithFs(fs))
		if err != nil {
			return nil, err
		}
		opts = append(opts, progress.WithExporter(exp))
	}
	return opts, nil
}

// Descriptor converts r into a component descriptor. Width defaults to
// component.DefaultWidth and the percent is displayed unless turned off.
func (r Renderer) Descriptor() (component.Descriptor, error) {
	kind, err := component.ParseKind(r.Kind)
	if err != nil {
		return component.Descriptor{}, err
	}
	d := component.Descriptor{
		Kind:           kind,
		Width:          r.Width,
		Symbol:         component.DefaultSymbol,
		DisplayPercent: r.DisplayPercent == nil || *r.DisplayPercent,
	}
	if d.Width == 0 {
		d.Width = component.DefaultWidth
	}
	if r.Symbol != "" {
		if utf8.RuneCountInString(r.Symbol) != 1 {
			return component.Descriptor{}, fmt.Errorf("symbol %q must be a single character", r.Symbol)
		}
		d.Symbol, _ = utf8.DecodeRuneInString(r.Symbol)
	}
	return d, nil
}
