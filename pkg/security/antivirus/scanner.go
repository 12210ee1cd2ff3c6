// Package antivirus scans uploaded files with an external engine before they
// are processed.
package antivirus

import (
	"errors"
	"fmt"
)

// ErrScannerUnavailable means the engine could not be reached or failed to
// produce a verdict. Callers reject the upload.
var ErrScannerUnavailable = errors.New("antivirus: scanner unavailable")

// ThreatError is returned for an infected file.
type ThreatError struct {
	Threat string
}

func (e *ThreatError) Error() string {
	return fmt.Sprintf("antivirus: threat detected: %s", e.Threat)
}

// IsThreat reports whether err is a detection rather than a scanner failure.
func IsThreat(err error) (string, bool) {
	var te *ThreatError
	if errors.As(err, &te) {
		return te.Threat, true
	}
	return "", false
}
