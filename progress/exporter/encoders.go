package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/cbroglie/mustache"
	"github.com/gcastellov/go-progress/progress"
)

const separator = ';'

type encoder func(progress.Stats) ([]byte, error)

func encoderFor(t FileType) (encoder, error) {
	switch t {
	case CSV:
		return encodeCSV, nil
	case Text:
		return encodeText, nil
	case JSON:
		return encodeJSON, nil
	case XML:
		return encodeXML, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, t)
}

// encodeCSV writes a header line with the field names and a line with the
// values.
func encodeCSV(stats progress.Stats) ([]byte, error) {
	fields := stats.Fields()
	names := make([]string, len(fields))
	values := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		values[i] = f.Value
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = separator
	if err := w.WriteAll([][]string{names, values}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var textTemplate = mustMustache("{{#fields}}{{line}}\n{{/fields}}")

func mustMustache(data string) *mustache.Template {
	tmpl, err := mustache.ParseStringRaw(data, true)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// encodeText writes one "Name:   value" line per field, the name left aligned
// on 20 columns and the value right aligned on 30.
func encodeText(stats progress.Stats) ([]byte, error) {
	fields := stats.Fields()
	lines := make([]map[string]string, len(fields))
	for i, f := range fields {
		lines[i] = map[string]string{"line": fmt.Sprintf("%-20s%30s", f.Name+":", f.Value)}
	}
	out, err := textTemplate.Render(map[string]interface{}{"fields": lines})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func encodeJSON(stats progress.Stats) ([]byte, error) {
	return json.MarshalIndent(stats, "", "  ")
}

type xmlStats struct {
	XMLName xml.Name `xml:"Stats"`
	Fields  []xmlField
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// encodeXML writes <Stats> with one child element per field.
func encodeXML(stats progress.Stats) ([]byte, error) {
	doc := xmlStats{}
	for _, f := range stats.Fields() {
		doc.Fields = append(doc.Fields, xmlField{XMLName: xml.Name{Local: f.Name}, Value: f.Value})
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
