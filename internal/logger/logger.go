package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

var (
	debugEnabled bool
	logFile      *os.File
	logger       *log.Logger
)

// Init initializes the logger with the specified debug flag
// Creates log directory and file if they don't exist
// Overwrites existing log file on each start
func Init(debug bool) error {
	debugEnabled = debug

	logDir, err := logDirectory()
	if err != nil {
		return err
	}

	// Create directories if they don't exist
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create/overwrite log file
	logPath := filepath.Join(logDir, "kspcfg.log")
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	// Initialize logger
	logger = log.New(logFile, "", log.LstdFlags)

	Info("kspcfg started")
	if debugEnabled {
		Info("Debug mode enabled")
	}

	return nil
}

// logDirectory returns the platform-specific data directory kspcfg
// logs to: ~/.local/share/kspcfg on Linux/macOS, %LOCALAPPDATA%\kspcfg
// on Windows (ported from the teacher's cmd/smpe_ls getDefaultDataPath,
// which drew the same split for its MCS data file; kspcfg has no data
// file, only a log, so the split moved here).
func logDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if runtime.GOOS == "windows" {
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "kspcfg"), nil
		}
		return filepath.Join(homeDir, "AppData", "Local", "kspcfg"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "kspcfg"), nil
}

// Close closes the log file
func Close() error {
	if logFile != nil {
		Info("kspcfg shutting down")
		return logFile.Close()
	}
	return nil
}

// SetDebug toggles debug-level logging at runtime, for a
// workspace/didChangeConfiguration push that changes the debug flag
// after Init has already run.
func SetDebug(debug bool) {
	debugEnabled = debug
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	if logger != nil {
		msg := fmt.Sprintf(format, v...)
		logger.Printf("[INFO] %s", msg)
	}
}

// Debug logs a debug message (only if debug is enabled)
func Debug(format string, v ...interface{}) {
	if debugEnabled && logger != nil {
		msg := fmt.Sprintf(format, v...)
		logger.Printf("[DEBUG] %s", msg)
	}
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	if logger != nil {
		msg := fmt.Sprintf(format, v...)
		logger.Printf("[ERROR] %s", msg)
	}
}

// Fatal logs a fatal message and exits
func Fatal(format string, v ...interface{}) {
	if logger != nil {
		msg := fmt.Sprintf(format, v...)
		logger.Printf("[FATAL] %s", msg)
	}
	os.Exit(1)
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	logDir, err := logDirectory()
	if err != nil {
		return ""
	}
	return filepath.Join(logDir, "kspcfg.log")
}
