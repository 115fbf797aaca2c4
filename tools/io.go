package tools

import (
	"io"
	"os"
	"path/filepath"
)

// Returns a writer on the given file, or on stdout when the path is empty. The returned function
// closes the file.
func CreateOutputWriter(filePath string) (io.Writer, func() error, error) {
	if filePath == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	if err := CreateDirectoryIfDoesNotExist(filepath.Dir(filePath)); err != nil {
		return nil, nil, err
	}
	file, err := os.Create(filePath)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func CreateDirectoryIfDoesNotExist(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return err
		}
	}
	return nil
}
