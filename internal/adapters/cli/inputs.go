package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/afero"
)

// ParseInputFile reads input references from a file, one per line.
// Blank lines and lines starting with # are ignored.
func ParseInputFile(fs afero.Fs, path string) ([]string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var refs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// CollectInputs appends the references from filePath, if any, after args.
// Order is kept and repeats are not removed; a file listed twice is edited
// twice.
func CollectInputs(fs afero.Fs, args []string, filePath string) ([]string, error) {
	refs := append([]string(nil), args...)
	if filePath == "" {
		return refs, nil
	}

	fromFile, err := ParseInputFile(fs, filePath)
	if err != nil {
		return nil, err
	}
	return append(refs, fromFile...), nil
}
