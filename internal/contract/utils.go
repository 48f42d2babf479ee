package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/perfgate/perfgate/schema"
)

// Color variables for console output.
var (
	RegressedColor    = color.New(color.FgRed, color.Bold)    // regression is the signal everything exists for
	ImprovedColor     = color.New(color.FgGreen, color.Bold)  // favorable shift
	UnchangedColor    = color.New(color.FgCyan)               // informational
	InsufficientColor = color.New(color.FgYellow)             // ambiguity stays visible
)

// GetPlainVerdictLabel returns a plain text label for a classification.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainVerdictLabel(c schema.Classification) string {
	switch c {
	case schema.Regressed:
		return "REGRESSED"
	case schema.Improved:
		return "IMPROVED"
	case schema.InsufficientData:
		return "INSUFFICIENT DATA"
	default:
		return "UNCHANGED"
	}
}

// GetColorVerdictLabel returns a colored label for console output.
func GetColorVerdictLabel(c schema.Classification) string {
	text := GetPlainVerdictLabel(c)
	switch c {
	case schema.Regressed:
		return RegressedColor.Sprint(text)
	case schema.Improved:
		return ImprovedColor.Sprint(text)
	case schema.InsufficientData:
		return InsufficientColor.Sprint(text)
	default:
		return UnchangedColor.Sprint(text)
	}
}

// GetBucketLabel returns a display label for an effect size bucket.
func GetBucketLabel(b schema.EffectBucket) string {
	switch b {
	case schema.LargeEffect:
		return "Large"
	case schema.MediumEffect:
		return "Medium"
	case schema.SmallEffect:
		return "Small"
	default:
		return "Negligible"
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetBaselineDBFilePath returns the path to the SQLite DB file for baseline storage.
func GetBaselineDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".perfgate_baselines.db"
	}
	return filepath.Join(homeDir, ".perfgate_baselines.db")
}

// TruncateID shortens a benchmark identifier for table output, keeping
// the trailing segments which carry the specific benchmark name.
func TruncateID(id string, maxWidth int) string {
	runes := []rune(id)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return id
}

// SelectOutputFile opens the output file for writing, or returns stdout
// when no path was configured.
func SelectOutputFile(outputFile string) (*os.File, error) {
	if outputFile == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", outputFile, err)
	}
	return file, nil
}
