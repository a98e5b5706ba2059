package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level orders log entries for console mirroring. The log file always
// receives every entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (lv Level) String() string {
	switch lv {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// LogDirEnv overrides the default ~/.autodemo/logs directory.
const LogDirEnv = "AUTODEMO_LOG_DIR"

// Rotation limits for the shared log file.
const (
	maxSizeMB  = 10
	maxBackups = 5
	maxAgeDays = 14
)

// Logger writes component-tagged diagnostic entries for a run.
// Every logger created in one process shares a session ID and a rotating
// log file under ~/.autodemo/logs/. Entries at or above the tee level are
// mirrored to the tee writer when one is set.
type Logger struct {
	sessionID string
	component string
	logPath   string

	sink *sink
}

// sink is shared between a logger and its named children.
type sink struct {
	mu        sync.Mutex
	logger    *log.Logger
	closer    io.Closer
	tee       io.Writer
	teeLevel  Level
	closeOnce sync.Once
}

var (
	// Global session ID for the current process
	sessionID     string
	sessionIDOnce sync.Once

	logDir   string
	initOnce sync.Once
	initErr  error

	fileOnce sync.Once
	fileOut  *lumberjack.Logger
)

func getSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// initLogDirectory ensures the log directory exists
func initLogDirectory() error {
	initOnce.Do(func() {
		dir := os.Getenv(LogDirEnv)
		if dir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				initErr = fmt.Errorf("failed to get home directory: %w", err)
				return
			}
			dir = filepath.Join(homeDir, ".autodemo", "logs")
		}

		if err := os.MkdirAll(dir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
		logDir = dir
	})
	return initErr
}

// sharedFile returns the process-wide rotating log file.
func sharedFile() *lumberjack.Logger {
	fileOnce.Do(func() {
		fileOut = &lumberjack.Logger{
			Filename:   filepath.Join(logDir, fmt.Sprintf("%s-autodemo.log", getSessionID())),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
	})
	return fileOut
}

// NewLogger creates a logger for a component writing to
// ~/.autodemo/logs/<session-id>-autodemo.log.
//
// If the log directory cannot be created, it returns a fallback logger
// that writes to stderr along with the error.
func NewLogger(component string) (*Logger, error) {
	if err := initLogDirectory(); err != nil {
		return newFallbackLogger(component, err), err
	}

	out := sharedFile()
	return &Logger{
		sessionID: getSessionID(),
		component: component,
		logPath:   out.Filename,
		sink: &sink{
			logger:   log.New(out, "", 0),
			closer:   out,
			teeLevel: LevelInfo,
		},
	}, nil
}

// New creates a logger writing to w. It is meant for tests and embedding;
// w is never closed by the logger.
func New(component string, w io.Writer) *Logger {
	return &Logger{
		sessionID: getSessionID(),
		component: component,
		sink: &sink{
			logger:   log.New(w, "", 0),
			teeLevel: LevelInfo,
		},
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New("nop", io.Discard)
}

func newFallbackLogger(component string, err error) *Logger {
	logger := log.New(os.Stderr, "", 0)
	logger.Printf("WARNING: Failed to initialize file logging: %v", err)
	logger.Printf("Falling back to stderr logging")

	return &Logger{
		sessionID: getSessionID(),
		component: component,
		sink: &sink{
			logger:   logger,
			teeLevel: LevelInfo,
		},
	}
}

// Named returns a logger for another component sharing this logger's output.
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		sessionID: l.sessionID,
		component: component,
		logPath:   l.logPath,
		sink:      l.sink,
	}
}

// SetTee mirrors entries at or above min to w. A nil writer disables mirroring.
func (l *Logger) SetTee(w io.Writer, min Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.tee = w
	l.sink.teeLevel = min
}

func (l *Logger) formatLogEntry(level Level, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("[%s] [%s] [%s] %s", timestamp, l.component, level, message)
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	entry := l.formatLogEntry(level, fmt.Sprintf(format, v...))

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	l.sink.logger.Println(entry)
	if l.sink.tee != nil && level >= l.sink.teeLevel {
		fmt.Fprintln(l.sink.tee, entry)
	}
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.write(LevelDebug, format, v...)
}

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.write(LevelInfo, format, v...)
}

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.write(LevelWarn, format, v...)
}

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.write(LevelError, format, v...)
}

// Try runs a best-effort operation. A failure is logged as a warning and
// never returned; the result reports whether fn succeeded.
func (l *Logger) Try(op string, fn func() error) bool {
	if err := fn(); err != nil {
		l.Warnf("%s failed: %v", op, err)
		return false
	}
	return true
}

// SessionID returns the current session ID
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogPath returns the path to the log file, or "" when not logging to a file.
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.sink.closeOnce.Do(func() {
		if l.sink.closer != nil {
			err = l.sink.closer.Close()
		}
	})
	return err
}
