package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput writes each http exchange to its own file in a directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput creates the directory if needed, dumps of a previous run
// are kept, new ones are prefixed by `runId` so they don't collide.
func NewFilesystemOutput(dir, runId string) (FilesystemOutput, error) {
	dir = filepath.Join(dir, runId)
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	path := filepath.Join(o.directory, fmt.Sprintf("%s.http", id))
	err := os.WriteFile(path, []byte(contents), 0o600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
