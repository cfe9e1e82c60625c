// Package exporter writes completion stats to a file.
//
// The format is chosen by file type: csv, text, json or xml. The fields of the
// tabular formats (csv, text, xml) are sorted by name.
//
//	exp, err := exporter.New(exporter.Settings{FileName: "stats.csv", FileType: exporter.CSV})
//	if err != nil {
//	    return err
//	}
//	r, err := progress.NewConsoleReporter(n, progress.WithExporter(exp), ...)
package exporter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gcastellov/go-progress/progress"
	"github.com/go-logr/logr"
	"github.com/spf13/afero"
)

// FileType is the format of an export file.
type FileType string

const (
	CSV  FileType = "csv"
	Text FileType = "text"
	JSON FileType = "json"
	XML  FileType = "xml"
)

var ErrUnsupportedFileType = errors.New("unsupported export file type")

// ParseFileType resolves a file type name, case insensitive. "txt" is
// accepted for Text.
func ParseFileType(s string) (FileType, error) {
	switch t := FileType(strings.ToLower(strings.TrimSpace(s))); t {
	case CSV, Text, JSON, XML:
		return t, nil
	case "txt":
		return Text, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, s)
}

// Settings tells where and how to export.
type Settings struct {
	FileName string   `yaml:"fileName" json:"fileName"`
	FileType FileType `yaml:"fileType" json:"fileType"`
}

// Exporter writes the stats to the file of its settings, overwriting it.
type Exporter struct {
	settings Settings
	encode   encoder
	fs       afero.Fs
	log      logr.Logger
}

var _ progress.Exporter = (*Exporter)(nil)

type Option func(*Exporter)

// WithFs sets the file system the export file is written to. Defaults to the
// OS file system.
func WithFs(fs afero.Fs) Option {
	return func(e *Exporter) {
		e.fs = fs
	}
}

func WithLogger(log logr.Logger) Option {
	return func(e *Exporter) {
		e.log = log
	}
}

// New validates settings and returns an exporter for them.
func New(settings Settings, opts ...Option) (*Exporter, error) {
	if settings.FileName == "" {
		return nil, errors.New("export file name cannot be empty")
	}
	encode, err := encoderFor(settings.FileType)
	if err != nil {
		return nil, err
	}
	e := &Exporter{
		settings: settings,
		encode:   encode,
		fs:       afero.NewOsFs(),
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Exporter) Settings() Settings {
	return e.settings
}

// Export encodes stats and writes them to the export file.
func (e *Exporter) Export(stats progress.Stats) error {
	content, err := e.encode(stats)
	if err != nil {
		return fmt.Errorf("unable to encode stats as %s: %w", e.settings.FileType, err)
	}
	if dir := filepath.Dir(e.settings.FileName); dir != "." {
		if err := e.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create export directory: %w", err)
		}
	}
	if err := afero.WriteFile(e.fs, e.settings.FileName, content, 0o644); err != nil {
		return fmt.Errorf("unable to write export file: %w", err)
	}
	e.log.V(5).Info("stats exported", "file", e.settings.FileName, "type", e.settings.FileType, "bytes", len(content))
	return nil
}

// Encode renders stats in the given format without writing them anywhere.
func Encode(fileType FileType, stats progress.Stats) ([]byte, error) {
	encode, err := encoderFor(fileType)
	if err != nil {
		return nil, err
	}
	return encode(stats)
}
