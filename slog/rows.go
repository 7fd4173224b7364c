package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/metro"
)

var _ metro.RowParser = (*LoggingRowParser)(nil)

// LoggingRowParser wraps a RowParser with logging.
type LoggingRowParser struct {
	next   metro.RowParser
	logger *slog.Logger
}

// NewLoggingRowParser creates a new LoggingRowParser.
func NewLoggingRowParser(next metro.RowParser, logger *slog.Logger) *LoggingRowParser {
	return &LoggingRowParser{next: next, logger: logger}
}

// ParseRows delegates to the wrapped parser and logs the row count.
func (p *LoggingRowParser) ParseRows(html string) (rows []metro.Row, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse rows",
			"bytes", len(html),
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseRows(html)
}
