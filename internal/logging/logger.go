// Package logging is the structured logging facade of the ledger. Components
// depend on the Logger interface; the process wires a logrus backed adapter
// and tests use MockLogger.
package logging

// Logger is the structured logger handed to every component.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry
	WithError(err error) Logger

	// WithField returns a logger that attaches one field to every entry
	WithField(key string, value interface{}) Logger

	// WithFields returns a logger that attaches fields to every entry
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}
