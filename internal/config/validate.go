package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates the configuration works but may not do what
	// the user intended.
	SeverityWarning ValidationSeverity = "warning"
)

// Bounds for viewer.tick_rate.
const (
	minTickRate = 10 * time.Millisecond
	maxTickRate = 5 * time.Second
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "viewer.tick_rate"
	Message  string
}

// String formats the issue as "field: message".
func (vi ValidationIssue) String() string {
	if vi.Field == "" {
		return vi.Message
	}
	return vi.Field + ": " + vi.Message
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors()) > 0
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings()) > 0
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	return vr.filter(SeverityError)
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	return vr.filter(SeverityWarning)
}

// Err joins all error-severity issues into a single error, or returns nil.
func (vr *ValidationResult) Err() error {
	errs := vr.Errors()
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, issue := range errs {
		msgs[i] = issue.String()
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func (vr *ValidationResult) filter(sev ValidationSeverity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// Validate checks the configuration for correctness.
//
// meta is the TOML metadata from LoadFromFile and may be nil when no file
// was loaded; when present, keys that did not map to a field are reported
// as warnings.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateViewer(vr, &cfg.Viewer)
	validateLogging(vr, &cfg.Logging)
	validateUnknownKeys(vr, meta)

	return vr
}

// TickDuration parses TickRate.
func (v ViewerConfig) TickDuration() (time.Duration, error) {
	d, err := time.ParseDuration(v.TickRate)
	if err != nil {
		return 0, fmt.Errorf("parsing tick rate %q: %w", v.TickRate, err)
	}
	return d, nil
}

func validateViewer(vr *ValidationResult, v *ViewerConfig) {
	d, err := v.TickDuration()
	switch {
	case err != nil:
		addError(vr, "viewer.tick_rate",
			fmt.Sprintf("invalid duration %q; use a Go duration such as \"250ms\"", v.TickRate))
	case d <= 0:
		addError(vr, "viewer.tick_rate", "must be positive")
	case d < minTickRate:
		addWarning(vr, "viewer.tick_rate",
			fmt.Sprintf("%s is below %s and will redraw more often than the terminal can show", d, minTickRate))
	case d > maxTickRate:
		addWarning(vr, "viewer.tick_rate",
			fmt.Sprintf("%s is above %s; periodic work will lag", d, maxTickRate))
	}

	if v.PageStep < 1 {
		addError(vr, "viewer.page_step", fmt.Sprintf("must be at least 1, got %d", v.PageStep))
	}
}

func validateLogging(vr *ValidationResult, l *LoggingConfig) {
	if l.File == "" {
		return
	}
	dir := filepath.Dir(l.File)
	if _, err := os.Stat(dir); err != nil {
		addWarning(vr, "logging.file", fmt.Sprintf("directory %q does not exist", dir))
	}
}

// validateUnknownKeys checks for TOML keys that did not map to any config struct field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
