package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger writes timestamped, category-tagged lines to stdout.
// Levels are colored; categories (DATABASE, API, ORDER, ...) identify the subsystem.
type Logger struct {
	mu    sync.Mutex
	debug bool

	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	debugColor *color.Color
}

func NewLogger() *Logger {
	return &Logger{
		debug:      os.Getenv("LOG_DEBUG") == "true",
		infoColor:  color.New(color.FgGreen),
		warnColor:  color.New(color.FgYellow),
		errorColor: color.New(color.FgRed),
		debugColor: color.New(color.FgCyan),
	}
}

// Close flushes nothing today but keeps the call sites symmetric with NewLogger.
func (l *Logger) Close() {}

func (l *Logger) write(c *color.Color, level, category, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	c.Printf("%s [%s] [%s] %s\n", timestamp, level, category, message)
}

func (l *Logger) Info(category, message string) {
	l.write(l.infoColor, "INFO", category, message)
}

func (l *Logger) Warn(category, message string) {
	l.write(l.warnColor, "WARN", category, message)
}

func (l *Logger) Error(category, message string) {
	l.write(l.errorColor, "ERROR", category, message)
}

func (l *Logger) Debug(category, message string) {
	if !l.debug {
		return
	}
	l.write(l.debugColor, "DEBUG", category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.write(l.errorColor, "FATAL", category, message)
	os.Exit(1)
}

func (l *Logger) LogProcess(stage, message string) {
	l.Info(stage, message)
}

func (l *Logger) LogDatabase(operation, table, message string) {
	l.Info("DATABASE", fmt.Sprintf("[%s:%s] %s", operation, table, message))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogSecurity(event, message string) {
	l.Warn("SECURITY", fmt.Sprintf("[%s] %s", event, message))
}

func (l *Logger) LogKafka(operation, topic, message string) {
	l.Info("KAFKA", fmt.Sprintf("[%s:%s] %s", operation, topic, message))
}

func (l *Logger) LogOrder(action string, orderID int64, message string) {
	l.Info("ORDER", fmt.Sprintf("[%s:%d] %s", action, orderID, message))
}
