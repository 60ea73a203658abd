package log

// nullLogger discards everything written to it. It is the
// default for the emulation core, so that stepping in tight
// loops never pays for formatting.
type nullLogger struct{}

func (nullLogger) Fatal(string)                  {}
func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}

// NewNullLogger returns a logger that does nothing.
func NewNullLogger() Logger {
	return nullLogger{}
}
