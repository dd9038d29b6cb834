package capture

import (
	"errors"
	"fmt"
)

// ErrTimeout reports that the browser process exceeded the capture
// deadline and was killed.
var ErrTimeout = errors.New("screenshot process timed out")

// ProcessError reports a browser invocation that exited abnormally or
// produced no output file.
type ProcessError struct {
	ExitCode      int
	Stderr        string
	OutputMissing bool
}

func (e *ProcessError) Error() string {
	if e.OutputMissing {
		return "screenshot process produced no output file"
	}
	return fmt.Sprintf("screenshot process exited with code %d", e.ExitCode)
}
