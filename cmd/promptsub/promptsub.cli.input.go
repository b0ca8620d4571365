package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// loadParams decodes parameters from inline JSON or a JSON file.
// At most one source may be given; none yields an empty map.
func loadParams(dataJSON, dataFilePath string) (map[string]any, error) {
	if dataJSON != "" && dataFilePath != "" {
		return nil, errors.New(ErrMsgInvalidJSON)
	}

	raw := []byte(dataJSON)
	if dataFilePath != "" {
		var err error
		raw, err = os.ReadFile(dataFilePath)
		if err != nil {
			return nil, err
		}
	}

	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var params map[string]any
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return params, nil
}
