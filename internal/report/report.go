// Package report renders tonnage reports for download.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-road/internal/metrics"
	"github.com/joeblew999/plat-road/internal/survey"
)

// Format is an export format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatXLSX, FormatPDF, FormatYAML, FormatJSON}

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")); f {
	case FormatXLSX, FormatPDF, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatYAML:
		return "application/yaml"
	}
	return "application/json"
}

// Filename returns a download name for a project.
func (f Format) Filename(project string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(project))
	if name == "" {
		name = "tonnage"
	}
	return name + "." + string(f)
}

// Line is one layer of a report.
type Line struct {
	Name            string  `json:"name" yaml:"name"`
	Recipe          string  `json:"recipe" yaml:"recipe"`
	InstalledWeight float64 `json:"installedWeight" yaml:"installedWeight"`
	Area            float64 `json:"area" yaml:"area"`
	ActiveSections  int     `json:"activeSections" yaml:"activeSections"`
	TotalSections   int     `json:"totalSections" yaml:"totalSections"`
	Mass            float64 `json:"mass" yaml:"mass"`
	Tonnage         float64 `json:"tonnage" yaml:"tonnage"`
}

// Document is a report ready to render.
type Document struct {
	Project     string    `json:"project" yaml:"project"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
	Stations    int       `json:"stations" yaml:"stations"`
	Layers      []Line    `json:"layers" yaml:"layers"`
	TotalMass   float64   `json:"totalMass" yaml:"totalMass"`
	Total       float64   `json:"total" yaml:"total"`
}

// New builds a document from a computed tonnage report.
func New(project string, r survey.Report, at time.Time) Document {
	doc := Document{
		Project:     project,
		GeneratedAt: at.UTC().Truncate(time.Second),
		Stations:    r.Stations,
		Layers:      make([]Line, 0, len(r.Layers)),
		TotalMass:   r.TotalMass,
		Total:       r.Total,
	}
	for _, l := range r.Layers {
		doc.Layers = append(doc.Layers, Line{
			Name:            l.Name,
			Recipe:          l.Recipe,
			InstalledWeight: l.InstalledWeight,
			Area:            l.Area,
			ActiveSections:  l.ActiveSections,
			TotalSections:   l.TotalSections,
			Mass:            l.Mass,
			Tonnage:         l.Tonnage,
		})
	}
	return doc
}

// Build renders doc in format f.
func Build(f Format, doc Document) ([]byte, error) {
	start := time.Now()
	var (
		out []byte
		err error
	)
	switch f {
	case FormatXLSX:
		out, err = BuildXLSX(doc)
	case FormatPDF:
		out, err = BuildPDF(doc)
	case FormatYAML:
		out, err = BuildYAML(doc)
	case FormatJSON:
		out, err = BuildJSON(doc)
	default:
		err = fmt.Errorf("unknown report format %q", f)
	}
	metrics.ObserveReportExport(string(f), err, time.Since(start))
	return out, err
}

// BuildYAML renders doc as YAML.
func BuildYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildJSON renders doc as indented JSON.
func BuildJSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
