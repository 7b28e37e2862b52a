package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/firego/internal/domain"
)

// Formatter renders a projection report. Implementations are pure.
type Formatter interface {
	Format(report *domain.Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                          { return ff.ID }

// WriteFormatted runs a formatter and writes the output to a timestamped file
// in dir. It returns the file path.
func WriteFormatted(f Formatter, report *domain.Report, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("fire_report_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// formatterFactories builds each formatter for a currency.
var formatterFactories = map[string]func(Currency) Formatter{
	"console":        func(c Currency) Formatter { return ConsoleFormatter{Currency: c} },
	"json":           func(c Currency) Formatter { return JSONFormatter{Pretty: true} },
	"csv":            func(c Currency) Formatter { return CSVExporter{Currency: c} },
	"trajectory-csv": func(c Currency) Formatter { return TrajectoryCSV{} },
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":           "console",
	"table":          "console",
	"json-pretty":    "json",
	"csv-summary":    "csv",
	"trajectory":     "trajectory-csv",
	"csv-trajectory": "trajectory-csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// GetFormatterByName fetches a registered formatter, or nil if none matches.
func GetFormatterByName(name string, currency Currency) Formatter {
	factory, ok := formatterFactories[NormalizeFormatName(name)]
	if !ok {
		return nil
	}
	return factory(currency)
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatterFactories))
	for name := range formatterFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
