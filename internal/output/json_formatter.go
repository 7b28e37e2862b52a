package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/firego/internal/domain"
)

// JSONFormatter serializes the report (normalized plan plus result).
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
