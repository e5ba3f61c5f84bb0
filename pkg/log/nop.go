package log

// NewNop returns a Logger that discards everything. Useful as a default in
// library code and in tests.
func NewNop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)          {}
func (nopLogger) Info(string, ...Field)           {}
func (nopLogger) Warn(string, ...Field)           {}
func (nopLogger) Error(string, ...Field)          {}
func (nopLogger) Fatal(string, ...Field)          {}
func (n nopLogger) With(...Field) Logger          { return n }
func (n nopLogger) WithComponent(string) Logger   { return n }
func (nopLogger) SetLevel(Level)                  {}
func (nopLogger) GetLevel() Level                 { return FatalLevel }
