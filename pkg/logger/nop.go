package logger

// NewNop returns a Logger that discards everything. Handy in tests.
func NewNop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)     {}
func (nopLogger) Info(string, ...Field)      {}
func (nopLogger) Warn(string, ...Field)      {}
func (nopLogger) Error(string, ...Field)     {}
func (nopLogger) Fatal(string, ...Field)     {}
func (nopLogger) WithFields(...Field) Logger { return nopLogger{} }
func (nopLogger) Sync() error                { return nil }
