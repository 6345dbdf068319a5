package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"karmaconf/internal/config"
	"karmaconf/internal/karma"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// DumpHeader precedes the configuration document on stdout.
const DumpHeader = "Karma Config:"

// Encode renders cfg as a JSON or YAML document. Table output is not a
// document and is rejected here; use WriteConfig for it.
func Encode(cfg *karma.Config, format config.OutputFormat) ([]byte, error) {
	switch format {
	case config.OutputFormatJSON, "":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode configuration as JSON: %w", err)
		}
		return append(data, '\n'), nil
	case config.OutputFormatYAML:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode configuration as YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported document format: %s", format)
	}
}

// WriteConfig prints the header and cfg in the requested format.
func WriteConfig(w io.Writer, cfg *karma.Config, format config.OutputFormat) error {
	if format == config.OutputFormatTable {
		fmt.Fprintln(w, text.FgHiBlue.Sprint(DumpHeader))
		return writeConfigTables(w, cfg)
	}
	data, err := Encode(cfg, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, DumpHeader)
	_, err = w.Write(data)
	return err
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func header(cols ...string) table.Row {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = text.FgHiCyan.Sprint(strings.ToUpper(c))
	}
	return row
}

// writeConfigTables formats the configuration as a set of tables
func writeConfigTables(w io.Writer, cfg *karma.Config) error {
	summary := newTable(w, "")
	summary.AppendHeader(header("setting", "value"))
	summary.AppendRow(table.Row{"frameworks", joinOrDash(cfg.Frameworks)})
	summary.AppendRow(table.Row{"reporters", joinOrDash(cfg.Reporters)})
	summary.AppendRow(table.Row{"browsers", joinOrDash(cfg.Browsers)})
	if cfg.CoverageReporter != nil {
		formats := make([]string, 0, len(cfg.CoverageReporter.Reporters))
		for _, f := range cfg.CoverageReporter.Reporters {
			formats = append(formats, f.Type)
		}
		summary.AppendRow(table.Row{"coverage", strings.Join(formats, ", ")})
	}
	if cfg.SauceLabs != nil {
		summary.AppendRow(table.Row{"sauce build", cfg.SauceLabs.Build})
		summary.AppendRow(table.Row{"sauce tags", joinOrDash(cfg.SauceLabs.Tags)})
	}
	summary.Render()

	files := newTable(w, "files")
	files.AppendHeader(header("#", "pattern", "included", "served"))
	for i, f := range cfg.Files {
		files.AppendRow(table.Row{i + 1, f.Pattern, formatBool(f.Included), formatBool(f.Served)})
	}
	files.Render()

	if len(cfg.CustomLaunchers) > 0 {
		launchers := make([]karma.Launcher, 0, len(cfg.CustomLaunchers))
		for _, name := range cfg.Browsers {
			if l, ok := cfg.CustomLaunchers.Get(name); ok {
				launchers = append(launchers, l)
			}
		}
		writeLauncherTable(w, launchers)
	}
	return nil
}

// WriteLaunchers prints the launcher table in the requested format.
func WriteLaunchers(w io.Writer, launchers []karma.Launcher, format config.OutputFormat) error {
	switch format {
	case config.OutputFormatTable, "":
		if len(launchers) == 0 {
			fmt.Fprintln(w, text.FgYellow.Sprint("No launchers configured"))
			return nil
		}
		writeLauncherTable(w, launchers)
		return nil
	case config.OutputFormatJSON:
		type entry struct {
			Name string `json:"name"`
			karma.Launcher
		}
		entries := make([]entry, len(launchers))
		for i, l := range launchers {
			entries[i] = entry{Name: l.Name, Launcher: l}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode launchers: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	case config.OutputFormatYAML:
		data, err := yaml.Marshal(launchers)
		if err != nil {
			return fmt.Errorf("failed to encode launchers: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeLauncherTable(w io.Writer, launchers []karma.Launcher) {
	t := newTable(w, "launchers")
	t.AppendHeader(header("name", "base", "platform", "browser"))
	for _, l := range launchers {
		t.AppendRow(table.Row{l.Name, l.Base, l.Platform, l.BrowserName})
	}
	t.Render()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return text.FgHiBlack.Sprint("-")
	}
	return strings.Join(values, ", ")
}

func formatBool(v bool) string {
	if v {
		return text.FgGreen.Sprint("yes")
	}
	return text.FgYellow.Sprint("no")
}
