// Package logx is mpflash's structured logging wrapper. It keeps the
// level-filtered, constructor-takes-a-config shape of the teacher
// project's own internal/logging package but backs it with logrus
// instead of a bare stdlib *log.Logger, matching the ecosystem choice
// the rest of the retrieval pack makes for CLI flashing tools.
package logx

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// StreamOutput reads r until EOF, logging each chunk read (up to 4096
// bytes, not split on line boundaries) at info level. Shared by the
// external-tool transports (esptool, psoc6) that stream a collaborator
// process's combined stdout/stderr.
func StreamOutput(r io.Reader, entry *logrus.Entry) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			entry.Infof("%s", string(buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

// Config controls logger construction.
type Config struct {
	Level  string // debug, info, warn, error
	Output io.Writer
	Color  bool
}

// Logger wraps a logrus.Logger with the per-device field helper the
// orchestrator needs.
type Logger struct {
	l *logrus.Logger
}

func New(cfg Config) *Logger {
	l := logrus.New()
	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	} else {
		l.SetOutput(os.Stderr)
	}
	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   !cfg.Color,
		FullTimestamp:   false,
		DisableQuote:    true,
		PadLevelText:    true,
	})
	return &Logger{l: l}
}

// Default returns a logger at info level writing to stderr, used by
// packages that are not handed one explicitly (tests, library callers).
func Default() *Logger {
	return New(Config{Level: "info"})
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.l.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.l.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.l.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.l.Errorf(format, args...) }

// ForDevice returns an entry carrying the device's port as a
// structured field, used by the orchestrator on every per-item log
// line so failures are attributable at a glance.
func (l *Logger) ForDevice(port, boardID string) *logrus.Entry {
	return l.l.WithFields(logrus.Fields{"port": port, "board_id": boardID})
}

func (l *Logger) Entry() *logrus.Entry { return logrus.NewEntry(l.l) }
