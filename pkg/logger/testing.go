package logger

import "testing"

// TestLogger routes log output through testing.T so log context shows up
// next to the failing test only.
type TestLogger struct {
	T *testing.T
}

// NewTestLogger creates a logger bound to t.
func NewTestLogger(t *testing.T) Logger {
	return &TestLogger{T: t}
}

func (l *TestLogger) Debug(msg string) { l.logf("[DEBUG] %s", msg) }
func (l *TestLogger) Info(msg string)  { l.logf("[INFO] %s", msg) }
func (l *TestLogger) Warn(msg string)  { l.logf("[WARN] %s", msg) }
func (l *TestLogger) Error(msg string) { l.logf("[ERROR] %s", msg) }

// Fatal logs without exiting so a stray fatal cannot kill the test binary.
func (l *TestLogger) Fatal(msg string) { l.logf("[FATAL] %s", msg) }

func (l *TestLogger) logf(format string, args ...interface{}) {
	if l.T != nil {
		l.T.Logf(format, args...)
	}
}

func (l *TestLogger) WithField(key string, value interface{}) Logger { return l }

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger { return l }
