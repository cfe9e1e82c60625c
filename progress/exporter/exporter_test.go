package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/antchfx/jsonquery"
	"github.com/antchfx/xmlquery"
	"github.com/gcastellov/go-progress/progress"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = progress.Stats{
	StartedAt:              time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	EstimatedTimeOfArrival: time.Date(2024, 1, 2, 3, 5, 5, 0, time.UTC),
	ElapsedTime:            time.Minute,
	RemainingTime:          0,
	ExpectedItems:          10,
	SuccessCount:           8,
	FailureCount:           2,
	CurrentCount:           10,
	CurrentPercent:         100,
}

func export(t *testing.T, fileType FileType) string {
	t.Helper()
	fs := afero.NewMemMapFs()
	name := "/out/stats." + string(fileType)
	exp, err := New(Settings{FileName: name, FileType: fileType}, WithFs(fs))
	require.NoError(t, err)
	require.NoError(t, exp.Export(sample))

	content, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	return string(content)
}

func TestExportCSV(t *testing.T) {
	r := csv.NewReader(strings.NewReader(export(t, CSV)))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header, values := records[0], records[1]
	assert.Equal(t, []string{
		"CurrentCount",
		"CurrentPercent",
		"ElapsedTime",
		"EstimatedTimeOfArrival",
		"ExpectedItems",
		"FailureCount",
		"RemainingTime",
		"StartedAt",
		"SuccessCount",
	}, header)
	assert.Equal(t, []string{
		"10",
		"100.00",
		"00:01:00",
		"2024-01-02 03:05:05",
		"10",
		"2",
		"00:00:00",
		"2024-01-02 03:04:05",
		"8",
	}, values)
}

func TestExportText(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(export(t, Text), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "CurrentCount:                                   10", lines[0])
	assert.Equal(t, "SuccessCount:                                    8", lines[8])
	assert.Equal(t, "EstimatedTimeOfArrival:           2024-01-02 03:05:05", lines[3])
}

func TestExportJSON(t *testing.T) {
	doc, err := jsonquery.Parse(strings.NewReader(export(t, JSON)))
	require.NoError(t, err)

	success := jsonquery.FindOne(doc, "//successCount")
	require.NotNil(t, success)
	assert.EqualValues(t, 8, success.Value())

	failure := jsonquery.FindOne(doc, "//failureCount")
	require.NotNil(t, failure)
	assert.EqualValues(t, 2, failure.Value())

	assert.NotNil(t, jsonquery.FindOne(doc, "//estimatedTimeOfArrival"))
}

func TestExportXML(t *testing.T) {
	doc, err := xmlquery.Parse(strings.NewReader(export(t, XML)))
	require.NoError(t, err)

	root := xmlquery.FindOne(doc, "/Stats")
	require.NotNil(t, root)
	assert.Len(t, xmlquery.Find(doc, "/Stats/*"), 9)

	success := xmlquery.FindOne(doc, "/Stats/SuccessCount")
	require.NotNil(t, success)
	assert.Equal(t, "8", success.InnerText())
	assert.Equal(t, "2024-01-02 03:04:05", xmlquery.FindOne(doc, "/Stats/StartedAt").InnerText())

	first := xmlquery.FindOne(doc, "/Stats/*[1]")
	require.NotNil(t, first)
	assert.Equal(t, "CurrentCount", first.Data)
}

func TestExportOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "stats.csv", bytes.Repeat([]byte("ZZZZ"), 1024), 0o644))

	exp, err := New(Settings{FileName: "stats.csv", FileType: CSV}, WithFs(fs))
	require.NoError(t, err)
	require.NoError(t, exp.Export(sample))

	content, err := afero.ReadFile(fs, "stats.csv")
	require.NoError(t, err)
	assert.NotContains(t, string(content), "ZZZZ")

	want, err := Encode(CSV, sample)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(content))
}

func TestExportWriteError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	exp, err := New(Settings{FileName: "stats.json", FileType: JSON}, WithFs(fs))
	require.NoError(t, err)
	assert.Error(t, exp.Export(sample))
}

func TestNewValidatesSettings(t *testing.T) {
	_, err := New(Settings{FileName: "stats.yaml", FileType: "yaml"})
	assert.True(t, errors.Is(err, ErrUnsupportedFileType))

	_, err = New(Settings{FileType: CSV})
	assert.Error(t, err)
}

func TestParseFileType(t *testing.T) {
	tests := map[string]FileType{
		"csv":   CSV,
		" CSV ": CSV,
		"text":  Text,
		"txt":   Text,
		"json":  JSON,
		"Xml":   XML,
	}
	for in, want := range tests {
		got, err := ParseFileType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFileType("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestExportUnknownPercentFields(t *testing.T) {
	content, err := Encode(CSV, progress.Stats{RemainingTime: progress.UnknownDuration})
	require.NoError(t, err)
	assert.Contains(t, string(content), "Unknown")
}
