package project

import (
	"errors"
	"fmt"
)

var errEmptyPath = errors.New("file has an empty path")

func duplicatePathError(path string) error {
	return fmt.Errorf("duplicate file path in project: %s", path)
}
