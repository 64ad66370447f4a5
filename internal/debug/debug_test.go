package debug

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(LevelLive, &buf)
	defer InitWriter(LevelOff, &buf)

	Info("loaded %d", 1)
	Live("added unit %d", 2)
	Verbose("hidden")
	Trace("hidden")
	Error(errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"[INFO] loaded 1", "[LIVE] added unit 2", "[ERROR] boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("messages above the level were printed:\n%s", out)
	}
}

func TestOffPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(LevelOff, &buf)
	Info("x")
	Drag("start", "projector 1", 1, 2)
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
	if Fmt("%d", 1) != "" {
		t.Error("Fmt should be empty when disabled")
	}
}
