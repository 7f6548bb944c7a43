package interpretation

import (
	"strings"

	apperrors "github.com/zfogg/harmonic-analysis/internal/errors"
	"github.com/zfogg/harmonic-analysis/internal/theory"
)

// ParseKeyText parses a human-readable parent-key option, spec §6:
// "C major", "A minor", "Bb major", case-insensitive on the mode word.
func ParseKeyText(text string) (theory.Key, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return theory.Key{}, apperrors.InvalidKey(text)
	}
	tonic, err := theory.ParseNote(fields[0])
	if err != nil {
		return theory.Key{}, apperrors.InvalidKey(text)
	}
	switch strings.ToLower(fields[1]) {
	case "major":
		return theory.NewMajorKey(tonic), nil
	case "minor":
		return theory.NewMinorKey(tonic), nil
	default:
		return theory.Key{}, apperrors.InvalidKey(text)
	}
}
