package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/pipeloop/pkg/errors"
)

// readInput reads grid text from the named file, or from stdin when the
// argument is missing or "-".
func readInput(stdin io.Reader, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(io.LimitReader(stdin, errors.MaxInputBytes+1))
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}

	path := args[0]
	if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "grid file %s not found", path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, path, nil
}
