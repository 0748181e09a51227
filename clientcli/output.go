package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sagarc03/roster"
)

// maxCellLen caps table cells in human output.
const maxCellLen = 40

// Formatter formats results for output.
type Formatter interface {
	FormatRecords(w io.Writer, kind string, records []roster.Record) error
	FormatRecord(w io.Writer, record roster.Record) error
	FormatDelete(w io.Writer, results []DeleteResult) error
	FormatPing(w io.Writer, result *PingResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatRecords prints records as a table with one column per member.
// In quiet mode only the ids are printed.
func (f *HumanFormatter) FormatRecords(w io.Writer, kind string, records []roster.Record) error {
	if f.Quiet {
		for i := range records {
			_, _ = fmt.Fprintln(w, records[i].ID)
		}
		return nil
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintf(w, "No %s found\n", kind)
		return nil
	}

	columns := recordColumns(records)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(columns)+1)
	header = append(header, "ID")
	for _, c := range columns {
		header = append(header, strings.ToUpper(c))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i := range records {
		rec := &records[i]
		row := make([]string, 0, len(columns)+1)
		row = append(row, strconv.Itoa(rec.ID))
		for _, c := range columns {
			v, ok := rec.Fields[c]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, truncate(formatValue(v)))
		}
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "\n%d record(s)\n", len(records))
	return nil
}

// FormatRecord prints one record as key: value lines.
// In quiet mode only the id is printed.
func (f *HumanFormatter) FormatRecord(w io.Writer, record roster.Record) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, record.ID)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	_, _ = fmt.Fprintf(tw, "id:\t%d\n", record.ID)
	for _, k := range record.Keys() {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", k, formatValue(record.Fields[k]))
	}
	return tw.Flush()
}

// FormatDelete formats delete results as human-readable text.
func (f *HumanFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s/%d - %v\n", r.Kind, r.ID, r.Err)
			continue
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Deleted: %s/%d\n", r.Kind, r.ID)
		}
	}
	return nil
}

// FormatPing formats a liveness check as human-readable text.
func (f *HumanFormatter) FormatPing(w io.Writer, result *PingResult) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s: %s (%s)\n", result.Endpoint, result.Message, result.Latency.Round(time.Microsecond))
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList prints profiles as a table. The default is marked with *.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  NAME\tENDPOINT\tKIND\tOUTPUT")
	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n",
			marker, truncate(p.Name), p.Endpoint, orDash(p.Kind), orDash(p.Output))
	}
	return tw.Flush()
}

// FormatProfileShow prints one profile as key: value lines.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	name := profile.Name
	if isDefault {
		name += " (default)"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", name)
	_, _ = fmt.Fprintf(tw, "Endpoint:\t%s\n", profile.Endpoint)
	if profile.Kind != "" {
		_, _ = fmt.Fprintf(tw, "Kind:\t%s\n", profile.Kind)
	}
	if profile.Output != "" {
		_, _ = fmt.Fprintf(tw, "Output:\t%s\n", profile.Output)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatRecords formats records as a JSON array, as the server sends them.
func (f *JSONFormatter) FormatRecords(w io.Writer, _ string, records []roster.Record) error {
	if records == nil {
		records = []roster.Record{}
	}
	return writeJSON(w, records)
}

// FormatRecord formats a record as JSON.
func (f *JSONFormatter) FormatRecord(w io.Writer, record roster.Record) error {
	return writeJSON(w, record)
}

// FormatDelete formats delete results as JSON.
func (f *JSONFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	// Convert errors to strings for JSON output
	type jsonResult struct {
		Kind    string `json:"kind"`
		ID      int    `json:"id"`
		Deleted bool   `json:"deleted"`
		Error   string `json:"error,omitempty"`
	}

	output := struct {
		Results []jsonResult `json:"results"`
	}{
		Results: make([]jsonResult, len(results)),
	}

	for i, r := range results {
		jr := jsonResult{
			Kind:    r.Kind,
			ID:      r.ID,
			Deleted: r.Deleted,
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		output.Results[i] = jr
	}

	return writeJSON(w, output)
}

// FormatPing formats a liveness check as JSON.
func (f *JSONFormatter) FormatPing(w io.Writer, result *PingResult) error {
	return writeJSON(w, result)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// jsonProfile is a profile as the JSON formatter prints it.
type jsonProfile struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Kind     string `json:"kind,omitempty"`
	Output   string `json:"output,omitempty"`
	Default  bool   `json:"default"`
}

func toJSONProfile(p *Profile, isDefault bool) jsonProfile {
	return jsonProfile{
		Name:     p.Name,
		Endpoint: p.Endpoint,
		Kind:     p.Kind,
		Output:   p.Output,
		Default:  isDefault,
	}
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}
	for i := range profiles {
		output.Profiles[i] = toJSONProfile(&profiles[i], profiles[i].Name == defaultName)
	}
	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	return writeJSON(w, toJSONProfile(&profile, isDefault))
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// recordColumns returns the union of member names in first-seen order.
func recordColumns(records []roster.Record) []string {
	seen := make(map[string]bool)
	var columns []string
	for i := range records {
		for _, k := range records[i].Keys() {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	return columns
}

func truncate(s string) string {
	if len(s) <= maxCellLen {
		return s
	}
	return s[:maxCellLen-3] + "..."
}
