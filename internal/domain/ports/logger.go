package ports

// Logger is the printf-style logger used across the application
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Success(msg string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{})   {}
func (NopLogger) Info(string, ...interface{})    {}
func (NopLogger) Warn(string, ...interface{})    {}
func (NopLogger) Error(string, ...interface{})   {}
func (NopLogger) Success(string, ...interface{}) {}
