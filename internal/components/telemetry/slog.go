package telemetry

import (
	"fmt"
	"log/slog"
	"strings"
)

// SlogAPI implements API using the log/slog package. the zero value logs
// to slog.Default().
type SlogAPI struct {
	Logger *slog.Logger
}

func (s SlogAPI) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// attrs turns "scope: id" into separate attributes, errors are logged under
// "err" and everything else positionally.
func (SlogAPI) attrs(id string, params []any) []any {
	out := []any{}
	if id != "" {
		scope, rest, ok := strings.Cut(id, ": ")
		if ok {
			out = append(out, "scope", scope, "id", rest)
		} else {
			out = append(out, "id", id)
		}
	}
	for i, p := range params {
		if err, ok := p.(error); ok {
			out = append(out, "err", err)
			continue
		}
		out = append(out, fmt.Sprintf("params.%d", i), p)
	}
	return out
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.logger().Error("broken component", s.attrs(id, params)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.logger().Warn("warning", s.attrs(id, params)...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	s.logger().Debug(message, s.attrs("", params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.logger().Info("count", append(s.attrs(id, nil), "n", count)...)
}
