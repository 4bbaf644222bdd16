// Package writers opens the destination that log output goes to.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriterType represents the type of writer to create
type WriterType string

const (
	WriterTypeStdout WriterType = "stdout"
	WriterTypeStderr WriterType = "stderr"
	WriterTypeFile   WriterType = "file"
)

// Open returns the writer for an output specification. Closing a standard
// stream writer is a no-op, closing a file writer closes the file.
// Supported formats:
//   - "stdout" or "" - writes to os.Stdout
//   - "stderr" - writes to os.Stderr
//   - "file:///path/to/file" - writes to file (creates directories if needed)
//   - "/path/to/file", "./app.log" or "app.log" - writes to file
func Open(output string) (io.WriteCloser, error) {
	switch ParseWriterType(output) {
	case WriterTypeStdout:
		return stdStream{os.Stdout}, nil
	case WriterTypeStderr:
		return stdStream{os.Stderr}, nil
	case WriterTypeFile:
		return createFileWriter(strings.TrimPrefix(output, "file://"))
	default:
		return nil, fmt.Errorf("unsupported output format: %s", output)
	}
}

// ParseWriterType determines the writer type from an output string. It
// returns the empty WriterType for unsupported outputs.
func ParseWriterType(output string) WriterType {
	switch {
	case output == "" || output == "stdout":
		return WriterTypeStdout
	case output == "stderr":
		return WriterTypeStderr
	case strings.HasPrefix(output, "file://"):
		return WriterTypeFile
	case isFilePath(output):
		return WriterTypeFile
	default:
		return ""
	}
}

// isFilePath determines if the string represents a local file path
func isFilePath(path string) bool {
	// Reject URLs with schemes other than file://
	if strings.Contains(path, "://") {
		return false
	}
	return strings.ContainsAny(path, `/\`) || filepath.Ext(path) == ".log"
}

// createFileWriter opens filePath for appending, creating parent directories
func createFileWriter(filePath string) (*os.File, error) {
	dir := filepath.Dir(filePath)
	if dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	return file, nil
}

// stdStream keeps os.Stdout and os.Stderr open when the writer is closed.
type stdStream struct {
	*os.File
}

// Close flushes the stream without closing it. Sync fails on pipes and
// terminals, which have nothing buffered anyway.
func (s stdStream) Close() error {
	_ = s.Sync()
	return nil
}
