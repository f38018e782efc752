// Package logger configures the logrus standard logger.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// A Config defines the log output.
type Config struct {
	Level string
	// File enables a rotated log file. Stderr is still used unless Quiet is set.
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Quiet      bool
}

// Setup configures the standard logger used by all packages.
func Setup(cfg Config) error {
	return Configure(logrus.StandardLogger(), cfg)
}

// Configure applies cfg to the given logger.
func Configure(l *logrus.Logger, cfg Config) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = logrus.ParseLevel(cfg.Level)
		if err != nil {
			return errors.Wrap(err, "could not parse log level")
		}
	}

	formatter := new(logFormatter)
	l.SetLevel(level)
	l.SetFormatter(formatter)
	l.SetOutput(os.Stderr)
	if cfg.Quiet {
		l.SetOutput(io.Discard)
	}

	if cfg.File != "" {
		l.AddHook(&fileHook{
			rotate: &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    orDefault(cfg.MaxSize, 20),
				MaxBackups: orDefault(cfg.MaxBackups, 2),
				MaxAge:     orDefault(cfg.MaxAge, 10),
			},
			formatter: formatter,
		})
	}
	return nil
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

////////////////////
//                //
// File hook      //
//                //
////////////////////

type fileHook struct {
	sync.Mutex
	rotate    *lumberjack.Logger
	formatter logrus.Formatter
}

// Fire writes the formatted entry to the rotated file.
func (hook *fileHook) Fire(entry *logrus.Entry) error {
	hook.Lock()
	defer hook.Unlock()

	// use our formatter instead of entry.String()
	msg, err := hook.formatter.Format(entry)
	if err != nil {
		log.Println("failed to generate string for entry:", err)
		return err
	}

	_, err = hook.rotate.Write(msg)
	return err
}

// Levels returns configured log levels.
func (hook *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

////////////////////
//                //
// Log formatter  //
//                //
////////////////////

type logFormatter struct{}

// Format implements Logrus formatter.
func (f *logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	fields := ""
	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fs := make([]string, 0, len(keys))
		for _, k := range keys {
			fs = append(fs, fmt.Sprintf("%s=%v", k, entry.Data[k]))
		}
		fields = fmt.Sprintf(" (%s)", strings.Join(fs, ", "))
	}

	data := fmt.Sprintf("[%s] %+5s: %s%s\n",
		entry.Time.Format(time.RFC3339),
		strings.ToUpper(entry.Level.String()),
		entry.Message,
		fields,
	)
	return []byte(data), nil
}
