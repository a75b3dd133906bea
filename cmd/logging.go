package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/viper"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

var logFile *os.File

func parseLogLevel(level string) (slog.Level, error) {
	var result slog.Level

	if err := result.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return 0, utils.MakeError(ErrInvalidLogLevel, "'%v': %v", level, err)
	}

	return result, nil
}

// Installs the default logger: human readable records on stderr and, if log.file
// is set, JSON records appended to that file
func setupLogging() error {
	level, err := parseLogLevel(viper.GetString("log.level"))
	if err != nil {
		return err
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}

	if path := viper.GetString("log.file"); path != "" {
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}

		handlers = append(handlers, slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	return nil
}

func closeLogging() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
