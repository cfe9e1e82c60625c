package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gcastellov/go-progress/progress"
	"github.com/gcastellov/go-progress/progress/exporter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Display toggle names accepted by --display.
const (
	DisplayStartingTime  = "start"
	DisplayETA           = "eta"
	DisplayElapsedTime   = "elapsed"
	DisplayRemainingTime = "remaining"
	DisplayItemsOverview = "overview"
	DisplayItemsSummary  = "summary"
)

// Flags binds reporter settings to a cobra command. Values set on the command
// line take precedence over the config file.
//
//	flags := &config.Flags{}
//	cmd := &cobra.Command{
//	    Use: "demo",
//	    RunE: func(cmd *cobra.Command, args []string) error {
//	        opts, err := flags.ToOptions(afero.NewOsFs())
//	        ...
//	    },
//	}
//	flags.AddFlags(cmd)
type Flags struct {
	// ConfigFile is the path of an optional YAML config file.
	ConfigFile string

	// Renderer is the component kind: bar, spinner, pulse or heartbeat.
	Renderer string

	// Display lists the display toggles to turn on. Empty keeps the config.
	Display []string

	ReportFrequency        time.Duration
	StatsFrequency         time.Duration
	HideWorkloadOnComplete bool

	// ExportFile and ExportType enable the export of the completion stats.
	ExportFile string
	ExportType string
}

func (f *Flags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ConfigFile, "config", "", "Path to a YAML reporter config file")
	cmd.Flags().StringVar(&f.Renderer, "renderer", "", "Renderer: bar, spinner, pulse or heartbeat")
	cmd.Flags().StringSliceVar(&f.Display, "display", nil, "Lines to display: start, eta, elapsed, remaining, overview, summary")
	cmd.Flags().DurationVar(&f.ReportFrequency, "report-frequency", 0, "How often the console is refreshed (default 1s)")
	cmd.Flags().DurationVar(&f.StatsFrequency, "stats-frequency", 0, "How often progress stats are notified (default 5s)")
	cmd.Flags().BoolVar(&f.HideWorkloadOnComplete, "hide-on-complete", false, "Hide workloads once they are finished")
	cmd.Flags().StringVar(&f.ExportFile, "export-file", "", "File the completion stats are exported to")
	cmd.Flags().StringVar(&f.ExportType, "export-type", "csv", "Export file type: csv, text, json or xml")
}

// Config loads the config file, or the defaults without one, and applies the
// flags on top of it.
func (f *Flags) Config(fs afero.Fs) (*Config, error) {
	c := Default()
	if f.ConfigFile != "" {
		loaded, err := Load(fs, f.ConfigFile)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	if f.Renderer != "" {
		c.Renderer.Kind = f.Renderer
	}
	if len(f.Display) > 0 {
		display, err := parseDisplay(f.Display)
		if err != nil {
			return nil, err
		}
		c.Display = display
	}
	if f.ReportFrequency > 0 {
		c.ReportFrequency = f.ReportFrequency
	}
	if f.StatsFrequency > 0 {
		c.StatsFrequency = f.StatsFrequency
	}
	if f.HideWorkloadOnComplete {
		c.HideWorkloadOnComplete = true
	}
	if f.ExportFile != "" {
		fileType, err := exporter.ParseFileType(f.ExportType)
		if err != nil {
			return nil, err
		}
		c.Export = &exporter.Settings{FileName: f.ExportFile, FileType: fileType}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ToOptions converts the flags, and the config file they point to, into
// reporter options.
func (f *Flags) ToOptions(fs afero.Fs) ([]progress.Option, error) {
	c, err := f.Config(fs)
	if err != nil {
		return nil, err
	}
	return c.Options(fs)
}

func parseDisplay(names []string) (Display, error) {
	d := Display{}
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case DisplayStartingTime:
			d.StartingTime = true
		case DisplayETA:
			d.EstimatedTimeOfArrival = true
		case DisplayElapsedTime:
			d.ElapsedTime = true
		case DisplayRemainingTime:
			d.RemainingTime = true
		case DisplayItemsOverview:
			d.ItemsOverview = true
		case DisplayItemsSummary:
			d.ItemsSummary = true
		case "none":
		default:
			return Display{}, fmt.Errorf("unknown display toggle %q", name)
		}
	}
	return d, nil
}
