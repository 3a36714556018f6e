package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	log := New(&out, &errOut, false)

	log.Info("processing %s", "a.mp4")
	log.Warn("frame rate detection failed")
	log.Error("could not locate file: %s", "b.mp4")
	log.Debug("hidden")

	got := out.String()
	if !strings.Contains(got, "[INFO] processing a.mp4") {
		t.Errorf("missing info line in %q", got)
	}
	if !strings.Contains(got, "[WARN] frame rate detection failed") {
		t.Errorf("missing warn line in %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("debug line printed while disabled: %q", got)
	}
	if !strings.Contains(errOut.String(), "[ERROR] could not locate file: b.mp4") {
		t.Errorf("error line not on errOut: %q", errOut.String())
	}
}

func TestLogger_Debug(t *testing.T) {
	var out bytes.Buffer
	log := New(&out, &out, true)

	log.Debug("ffmpeg path: %s", "ffmpeg")
	if !strings.Contains(out.String(), "[DEBUG] ffmpeg path: ffmpeg") {
		t.Errorf("missing debug line: %q", out.String())
	}

	log.SetDebug(false)
	out.Reset()
	log.Debug("gone")
	if out.Len() != 0 {
		t.Errorf("debug printed after SetDebug(false): %q", out.String())
	}
}

func TestLogger_NoColorForBuffers(t *testing.T) {
	var out bytes.Buffer
	log := New(&out, &out, false)
	log.Success("finished")

	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("escape codes written to non-terminal: %q", out.String())
	}
}
