/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Output formatting
 */

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenPrinting/ippclient"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// checkOutput validates output format
func checkOutput(format string) error {
	switch format {
	case OutputText, OutputYAML:
		return nil
	}
	return fmt.Errorf("invalid output format %q; must be %s or %s",
		format, OutputText, OutputYAML)
}

// yamlResult is the YAML representation of ippclient.Result
type yamlResult struct {
	Operation string      `yaml:"operation"`
	RequestID int32       `yaml:"request-id"`
	Status    string      `yaml:"status"`
	JobID     int         `yaml:"job-id,omitempty"`
	JobURI    string      `yaml:"job-uri,omitempty"`
	Groups    []yamlGroup `yaml:"groups,omitempty"`
}

// yamlGroup is the YAML representation of ippclient.Group
type yamlGroup struct {
	Group      string     `yaml:"group"`
	Attributes *yaml.Node `yaml:"attributes"`
}

// writeResult writes Result in the requested format
func writeResult(w io.Writer, r *ippclient.Result, format string) error {
	if format == OutputYAML {
		return writeResultYAML(w, r)
	}

	writeResultText(w, r)
	return nil
}

// writeResultYAML writes Result as YAML document
func writeResultYAML(w io.Writer, r *ippclient.Result) error {
	out := yamlResult{
		Operation: r.Op.String(),
		RequestID: r.RequestID,
		Status:    r.StatusString,
		JobID:     r.JobID,
		JobURI:    r.JobURI,
	}

	if r.Response != nil {
		for _, g := range r.Response.Groups {
			out.Groups = append(out.Groups, yamlGroup{
				Group:      g.Name,
				Attributes: yamlAttributes(g.Attrs),
			})
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}

	return enc.Close()
}

// yamlAttributes converts Attributes into the YAML mapping,
// preserving order of attributes
func yamlAttributes(attrs ippclient.Attributes) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, attr := range attrs {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: attr.Name},
			yamlValues(attr.Values))
	}

	return node
}

// yamlValues converts Values into the YAML node. Single
// value becomes scalar, multiple values become sequence
func yamlValues(values ippclient.Values) *yaml.Node {
	if len(values) == 1 {
		return yamlValue(values[0].V)
	}

	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		node.Content = append(node.Content, yamlValue(v.V))
	}

	return node
}

// yamlValue converts Value into the YAML node
func yamlValue(v ippclient.Value) *yaml.Node {
	switch v := v.(type) {
	case ippclient.Collection:
		return yamlAttributes(ippclient.Attributes(v))
	case ippclient.Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.String()}
	case ippclient.Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.String()}
	case ippclient.Void:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}
}

// writeResultText writes Result in the human-readable form
func writeResultText(w io.Writer, r *ippclient.Result) {
	fmt.Fprintf(w, "%s: %s (request-id %d)\n", r.Op, r.StatusString, r.RequestID)

	if r.JobID != 0 {
		fmt.Fprintf(w, "job-id: %d\n", r.JobID)
	}

	if r.JobURI != "" {
		fmt.Fprintf(w, "job-uri: %s\n", r.JobURI)
	}

	if r.Response == nil {
		return
	}

	for _, g := range r.Response.Groups {
		fmt.Fprintf(w, "\n%s:\n", g.Name)
		writeAttributesText(w, g.Attrs, 1)
	}
}

// writeAttributesText writes Attributes with the given
// indentation level
func writeAttributesText(w io.Writer, attrs ippclient.Attributes, level int) {
	indent := strings.Repeat("    ", level)

	for _, attr := range attrs {
		if attr.Tag() != ippclient.TagBeginCollection {
			fmt.Fprintf(w, "%s%s (%s): %s\n", indent, attr.Name,
				attr.Tag(), attr.Values)
			continue
		}

		fmt.Fprintf(w, "%s%s (collection):\n", indent, attr.Name)
		for i, v := range attr.Values {
			if len(attr.Values) > 1 {
				fmt.Fprintf(w, "%s    [%d]\n", indent, i)
			}
			if c, ok := v.V.(ippclient.Collection); ok {
				writeAttributesText(w, ippclient.Attributes(c), level+1)
			}
		}
	}
}

// writePrinters writes printers summary as the table
func writePrinters(w io.Writer, printers []ippclient.PrinterSummary, format string) error {
	if format == OutputYAML {
		type yamlPrinter struct {
			Name     string `yaml:"name"`
			Info     string `yaml:"info,omitempty"`
			Location string `yaml:"location,omitempty"`
			URI      string `yaml:"uri"`
			State    string `yaml:"state,omitempty"`
			Color    string `yaml:"color,omitempty"`
			Duplex   string `yaml:"duplex,omitempty"`
			Formats  string `yaml:"formats,omitempty"`
			UUID     string `yaml:"uuid,omitempty"`
		}

		out := make([]yamlPrinter, len(printers))
		for i, p := range printers {
			out[i] = yamlPrinter(p)
		}

		return yaml.NewEncoder(w).Encode(out)
	}

	if len(printers) == 0 {
		fmt.Fprintf(w, "No printers found\n")
		return nil
	}

	for _, p := range printers {
		fmt.Fprintf(w, "%-20s %-10s C=%-1s D=%-1s %s\n",
			p.Name, p.State, p.Color, p.Duplex, p.URI)
		if p.Info != "" {
			fmt.Fprintf(w, "    info:     %s\n", p.Info)
		}
		if p.Location != "" {
			fmt.Fprintf(w, "    location: %s\n", p.Location)
		}
	}

	return nil
}
