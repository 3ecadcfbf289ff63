package valutatrade

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ActionLog is the structured audit trail of user-visible operations
// (REGISTER, LOGIN, BUY, SELL, UPDATE). Each operation is recorded with its
// outcome so the log alone tells what happened and why.
//
// A nil *ActionLog is valid and records nothing, so callers do not need to
// guard every call site.
type ActionLog struct {
	logger *slog.Logger
	file   *os.File
}

// OpenActionLog opens (or creates) the audit log file in append mode.
func OpenActionLog(path string) (*ActionLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open action log: %w", err)
	}
	return &ActionLog{
		logger: slog.New(slog.NewTextHandler(f, nil)),
		file:   f,
	}, nil
}

// Record logs one operation. A nil err records result=OK, otherwise
// result=ERROR with the error message.
func (a *ActionLog) Record(action string, err error, args ...any) {
	if a == nil {
		return
	}
	if err != nil {
		args = append(args, "result", "ERROR", "error", err.Error())
		a.logger.Error(action, args...)
		return
	}
	args = append(args, "result", "OK")
	a.logger.Info(action, args...)
}

// Close releases the underlying file.
func (a *ActionLog) Close() error {
	if a == nil || a.file == nil {
		return nil
	}
	return a.file.Close()
}
