// Package report renders batch summaries for people and for tools.
package report

import (
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"heic2jpg/contracts"
)

// Lines is the results listing: every converted file, then every failure.
func Lines(s contracts.BatchSummary) []string {
	var lines []string
	for _, r := range s.Converted() {
		lines = append(lines, "Converted: "+r.Output)
	}
	failed := s.Failed()
	if len(failed) > 0 {
		lines = append(lines, "", "Failed to convert:")
		for _, r := range failed {
			lines = append(lines, r.Message())
		}
	}
	return lines
}

func WriteText(w io.Writer, s contracts.BatchSummary) error {
	for _, l := range Lines(s) {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d) in %s\n",
		len(s.Converted()), len(s.Failed()), len(s.Results), s.OutputDir)
	return err
}

type yamlFailure struct {
	Source string `yaml:"source"`
	Error  string `yaml:"error"`
}

type yamlConverted struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

type yamlSummary struct {
	OutputDir  string          `yaml:"output_dir"`
	StartedAt  string          `yaml:"started_at"`
	FinishedAt string          `yaml:"finished_at"`
	Total      int             `yaml:"total"`
	Converted  []yamlConverted `yaml:"converted"`
	Failed     []yamlFailure   `yaml:"failed"`
}

func WriteYAML(w io.Writer, s contracts.BatchSummary) error {
	doc := yamlSummary{
		OutputDir:  s.OutputDir,
		StartedAt:  s.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt: s.FinishedAt.UTC().Format(time.RFC3339),
		Total:      len(s.Results),
		Converted:  []yamlConverted{},
		Failed:     []yamlFailure{},
	}
	for _, r := range s.Converted() {
		doc.Converted = append(doc.Converted, yamlConverted{Source: r.Source, Output: r.Output})
	}
	for _, r := range s.Failed() {
		doc.Failed = append(doc.Failed, yamlFailure{Source: r.Source, Error: r.Err.Error()})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}
