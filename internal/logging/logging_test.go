package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		debug     bool
		wantInfo  bool
		wantDebug bool
		wantWarn  bool
		wantError bool
	}{
		{"quiet", false, false, false, false, false, false},
		{"verbose", true, false, true, false, true, false},
		{"debug", false, true, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, out, errOut := newTestLogger(tt.verbose, tt.debug)
			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("warn %d", 3)
			l.Errorf("error %d", 4)

			if got := strings.Contains(out.String(), "[info] info 1"); got != tt.wantInfo {
				t.Errorf("info printed = %t, want %t (out: %q)", got, tt.wantInfo, out.String())
			}
			if got := strings.Contains(out.String(), "[debug] debug 2"); got != tt.wantDebug {
				t.Errorf("debug printed = %t, want %t (out: %q)", got, tt.wantDebug, out.String())
			}
			if got := strings.Contains(errOut.String(), "[warn] warn 3"); got != tt.wantWarn {
				t.Errorf("warn printed = %t, want %t (err: %q)", got, tt.wantWarn, errOut.String())
			}
			if got := strings.Contains(errOut.String(), "[error] error 4"); got != tt.wantError {
				t.Errorf("error printed = %t, want %t (err: %q)", got, tt.wantError, errOut.String())
			}
		})
	}
}

func TestWarnfAlways(t *testing.T) {
	l, _, errOut := newTestLogger(false, false)
	l.WarnfAlways("key file mode is %o", 0644)
	if !strings.Contains(errOut.String(), "[warn] key file mode is 644") {
		t.Errorf("expected warning in stderr, got %q", errOut.String())
	}
}

func TestErrorfAndReturn(t *testing.T) {
	l, _, _ := newTestLogger(false, false)
	err := l.ErrorfAndReturn("failed to load %s", "config")
	if err == nil || err.Error() != "failed to load config" {
		t.Errorf("ErrorfAndReturn() = %v, want 'failed to load config'", err)
	}
}

func TestDefaultWritersKeepStdoutClean(t *testing.T) {
	color.NoColor = true

	originalStdout, originalStderr := os.Stdout, os.Stderr
	outReader, outWriter, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdout pipe: %v", err)
	}
	errReader, errWriter, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stderr pipe: %v", err)
	}
	os.Stdout, os.Stderr = outWriter, errWriter

	l := Logger{Verbose: true, Debug: true}
	l.Infof("info line")
	l.Debugf("debug line")
	l.Warnf("warn line")

	outWriter.Close()
	errWriter.Close()
	os.Stdout, os.Stderr = originalStdout, originalStderr

	stdout, _ := io.ReadAll(outReader)
	stderr, _ := io.ReadAll(errReader)

	if len(stdout) != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout)
	}
	for _, want := range []string{"[info] info line", "[debug] debug line", "[warn] warn line"} {
		if !strings.Contains(string(stderr), want) {
			t.Errorf("Expected %q on stderr, got %q", want, stderr)
		}
	}
}
