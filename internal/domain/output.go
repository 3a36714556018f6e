package domain

import (
	"path/filepath"
	"strings"
)

const alteredSuffix = "_ALTERED"

// OutputName derives the destination name for input. The directory part is
// kept; only the base name's extension is replaced.
func OutputName(input string, exportPremiere bool) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if exportPremiere {
		return stem + ".xml"
	}
	return stem + alteredSuffix + ext
}

// FillOutputs returns outputs extended so that it has one entry per input.
// Supplied names keep their positions; each missing name derives from the
// input at the same index. Extra supplied names are left in place.
func FillOutputs(inputs []string, outputs []string, exportPremiere bool) []string {
	filled := make([]string, len(outputs), max(len(inputs), len(outputs)))
	copy(filled, outputs)
	for i := len(outputs); i < len(inputs); i++ {
		filled = append(filled, OutputName(inputs[i], exportPremiere))
	}
	return filled
}
