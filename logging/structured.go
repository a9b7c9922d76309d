// Package logging provides structured logging for document tooling
package logging

import (
	"go.uber.org/zap"
)

// Logger wraps zap.Logger with document-specific helpers
type Logger struct {
	*zap.Logger
	fields map[string]interface{}
}

// Config holds logging configuration
type Config struct {
	Level       string            `json:"level"`
	Format      string            `json:"format"` // "json" or "console"
	OutputPath  string            `json:"output_path"`
	Fields      map[string]string `json:"fields"`
	Development bool              `json:"development"`
}

// NewLogger creates a new structured logger
func NewLogger(config Config) (*Logger, error) {
	var zapConfig zap.Config

	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	// Output goes to stderr by default so stdout stays free for document payloads
	zapConfig.OutputPaths = []string{"stderr"}
	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, len(config.Fields))
	zapFields := make([]zap.Field, 0, len(config.Fields))
	for k, v := range config.Fields {
		fields[k] = v
		zapFields = append(zapFields, zap.String(k, v))
	}

	return &Logger{
		Logger: logger.With(zapFields...),
		fields: fields,
	}, nil
}

// NewDefaultLogger creates a logger with sensible defaults
func NewDefaultLogger() *Logger {
	config := Config{
		Level:  "info",
		Format: "json",
		Fields: map[string]string{
			"service": "esd",
		},
	}

	logger, err := NewLogger(config)
	if err != nil {
		zapLogger, _ := zap.NewProduction()
		return &Logger{
			Logger: zapLogger,
			fields: map[string]interface{}{"service": "esd"},
		}
	}

	return logger
}

// NewNop returns a logger that discards everything, for tests and library defaults
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), fields: map[string]interface{}{}}
}

// Fields returns a copy of the context fields attached to the logger
func (l *Logger) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		out[k] = v
	}
	return out
}

// WithField adds a field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := l.Fields()
	newFields[key] = value

	return &Logger{
		Logger: l.Logger.With(zap.Any(key, value)),
		fields: newFields,
	}
}

// WithFields adds multiple fields to the logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := l.Fields()
	for k, v := range fields {
		newFields[k] = v
	}

	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return &Logger{
		Logger: l.Logger.With(zapFields...),
		fields: newFields,
	}
}

// WithDocument scopes the logger to one document type
func (l *Logger) WithDocument(documentType string) *Logger {
	return l.WithField("document", documentType)
}

// LogCodecEvent logs an encode or decode of a document
func (l *Logger) LogCodecEvent(event string, fields map[string]interface{}) {
	allFields := map[string]interface{}{
		"event": event,
	}
	for k, v := range fields {
		allFields[k] = v
	}

	l.WithFields(allFields).Info("Codec event")
}

// LogPerformanceMetric logs performance-related metrics
func (l *Logger) LogPerformanceMetric(metric string, value interface{}, unit string) {
	l.WithFields(map[string]interface{}{
		"metric": metric,
		"value":  value,
		"unit":   unit,
		"type":   "performance",
	}).Debug("Performance metric")
}

// LogDataQualityEvent logs data quality issues
func (l *Logger) LogDataQualityEvent(entity string, issue string, severity string) {
	l.WithFields(map[string]interface{}{
		"entity":   entity,
		"issue":    issue,
		"severity": severity,
		"type":     "data_quality",
	}).Warn("Data quality issue")
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.Logger.Sync()
}
