package display

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/dupes"
	"github.com/backmassage/fltools/internal/organize"
	"github.com/backmassage/fltools/internal/rename"
	"github.com/backmassage/fltools/internal/search"
	"github.com/backmassage/fltools/internal/term"
)

// Digest is one line of hash output.
type Digest struct {
	Path      string           `json:"path" yaml:"path"`
	Algorithm config.Algorithm `json:"algorithm" yaml:"algorithm"`
	Digest    string           `json:"digest" yaml:"digest"`
}

// Structured writes v as indented JSON or as YAML. Text is not a
// structured format and returns an error.
func Structured(w io.Writer, format config.OutputFormat, v interface{}) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

// Search writes matches one path per line in text format.
func Search(w io.Writer, format config.OutputFormat, res search.Result) error {
	if format != config.FormatText {
		return Structured(w, format, res)
	}
	for _, p := range res.Matches {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// Digests writes "<digest>  <path>" lines in text format, the layout
// sha256sum uses.
func Digests(w io.Writer, format config.OutputFormat, digests []Digest) error {
	if format != config.FormatText {
		return Structured(w, format, digests)
	}
	for _, d := range digests {
		if _, err := fmt.Fprintf(w, "%s  %s\n", d.Digest, d.Path); err != nil {
			return err
		}
	}
	return nil
}

// Dupes writes each group under a heading, followed by a summary line.
func Dupes(w io.Writer, format config.OutputFormat, res dupes.Result) error {
	if format != config.FormatText {
		return Structured(w, format, res)
	}
	for _, g := range res.Ordered {
		fmt.Fprintf(w, "%s%s%s  %s each, %d copies\n",
			term.Cyan, ShortDigest(g.Digest), term.NC, FormatBytes(g.Size), len(g.Paths))
		for _, p := range g.Paths {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	_, err := fmt.Fprintf(w, "%s%s%s, %s scanned, %s reclaimable\n",
		term.Bold, Plural(len(res.Ordered), "group"), term.NC,
		Plural(res.Scanned, "file"), FormatBytes(res.WastedBytes()))
	return err
}

// Organize writes skipped files and a summary in text format. Individual
// moves are reported by the organize logger as they happen.
func Organize(w io.Writer, format config.OutputFormat, res organize.Result, dryRun bool) error {
	if format != config.FormatText {
		return Structured(w, format, res)
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "%sskipped%s %s (%s)\n", term.Yellow, term.NC, s.Path, s.Reason)
	}
	verb := "moved"
	if dryRun {
		verb = "would move"
	}
	_, err := fmt.Fprintf(w, "%s%s %s%s, %d skipped\n", term.Bold, verb, Plural(len(res.Moves), "file"), term.NC, len(res.Skipped))
	return err
}

// Rename writes skipped files and a summary in text format, like
// [Organize].
func Rename(w io.Writer, format config.OutputFormat, res rename.Result, dryRun bool) error {
	if format != config.FormatText {
		return Structured(w, format, res)
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "%sskipped%s %s (%s)\n", term.Yellow, term.NC, s.Name, s.Reason)
	}
	verb := "renamed"
	if dryRun {
		verb = "would rename"
	}
	_, err := fmt.Fprintf(w, "%s%s %s%s, %d skipped\n", term.Bold, verb, Plural(len(res.Renamed), "file"), term.NC, len(res.Skipped))
	return err
}
