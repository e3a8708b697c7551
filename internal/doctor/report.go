package doctor

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Entry is the outcome for one path.
type Entry struct {
	Path          string `json:"path" yaml:"path"`
	IsDir         bool   `json:"is_dir,omitempty" yaml:"is_dir,omitempty"`
	Abnormal      bool   `json:"abnormal" yaml:"abnormal"`
	Status        Status `json:"status" yaml:"status"`
	StillAbnormal bool   `json:"still_abnormal,omitempty" yaml:"still_abnormal,omitempty"`
}

// Summary counts entries by outcome.
type Summary struct {
	Checked       int `json:"checked" yaml:"checked"`
	Abnormal      int `json:"abnormal" yaml:"abnormal"`
	Fixed         int `json:"fixed" yaml:"fixed"`
	Failed        int `json:"failed" yaml:"failed"`
	StillAbnormal int `json:"still_abnormal" yaml:"still_abnormal"`
}

// Report is the result of one Run.
type Report struct {
	Mode     Mode     `json:"mode" yaml:"mode"`
	Platform string   `json:"platform" yaml:"platform"`
	Roots    []string `json:"roots" yaml:"roots"`
	Entries  []Entry  `json:"entries" yaml:"entries"`
	Summary  Summary  `json:"summary" yaml:"summary"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (r *Report) add(e Entry) {
	r.Entries = append(r.Entries, e)
	r.Summary.Checked++
	if e.Abnormal {
		r.Summary.Abnormal++
	}
	switch e.Status {
	case StatusFixed:
		r.Summary.Fixed++
	case StatusFailed:
		r.Summary.Failed++
	}
	if e.StillAbnormal {
		r.Summary.StillAbnormal++
	}
}

// Healthy reports whether the run leaves nothing for the user to do: no
// abnormal path in check mode, no failed repair in fix mode, no scan error.
func (r *Report) Healthy() bool {
	if len(r.Errors) > 0 {
		return false
	}
	if r.Mode == ModeFix {
		return r.Summary.Failed == 0
	}
	return r.Summary.Abnormal == 0
}

var statusLabels = map[Status]string{
	StatusOK:       "[ OK ]",
	StatusAbnormal: "[WARN]",
	StatusFixed:    "[FIX ]",
	StatusFailed:   "[FAIL]",
}

// Render writes the report as text, json or yaml. Text output lists only
// paths needing attention unless verbose is set.
func (r *Report) Render(w io.Writer, format string, verbose bool) error {
	switch format {
	case "", "text":
		return r.renderText(w, verbose)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func (r *Report) renderText(w io.Writer, verbose bool) error {
	for _, e := range r.Entries {
		if e.Status == StatusOK && !verbose {
			continue
		}
		line := fmt.Sprintf("  %s %s", statusLabels[e.Status], e.Path)
		if e.StillAbnormal {
			line += " (attributes still reported after repair)"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, msg := range r.Errors {
		if _, err := fmt.Fprintf(w, "  [FAIL] %s\n", msg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s: checked=%d abnormal=%d fixed=%d failed=%d\n",
		r.Mode, r.Summary.Checked, r.Summary.Abnormal, r.Summary.Fixed, r.Summary.Failed)
	return err
}
