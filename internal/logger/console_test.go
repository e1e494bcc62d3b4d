package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
)

func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "DEBUG")

		assert.Equal(t, buf, logger.writer)
		assert.Equal(t, "debug", logger.logLevel)
		assert.False(t, logger.colorOutput, "buffers are never colorized")
	})

	t.Run("invalid level defaults to info", func(t *testing.T) {
		logger := NewConsoleLogger(&bytes.Buffer{}, "verbose")
		assert.Equal(t, "info", logger.logLevel)
	})

	t.Run("nil writer discards", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		assert.NotPanics(t, func() {
			logger.LogInfo("dropped")
			logger.LogArtifact("page", "/tmp/x.java")
		})
	})
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		wantSeen []string
		wantGone []string
	}{
		{"trace", []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}, nil},
		{"info", []string{"INFO", "WARN", "ERROR"}, []string{"TRACE", "DEBUG"}},
		{"error", []string{"ERROR"}, []string{"TRACE", "DEBUG", "INFO", "WARN"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.level)

			logger.LogTrace("trace message")
			logger.LogDebug("debug message")
			logger.LogInfo("info message")
			logger.LogWarn("warn message")
			logger.LogError("error message")

			out := buf.String()
			for _, l := range tt.wantSeen {
				assert.Contains(t, out, "["+l+"] "+strings.ToLower(l)+" message")
			}
			for _, l := range tt.wantGone {
				assert.NotContains(t, out, "["+l+"]")
			}
		})
	}
}

func TestConsoleLogger_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogArtifact("page", "/work/src/test/java/pages/LoginPage.java")

	out := buf.String()
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] \[INFO\] wrote page: /work/src/test/java/pages/LoginPage.java\n$`, out)
}

func TestConsoleLogger_ConcurrentWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogInfo("line")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "[INFO] line\n"))
}

func TestIsValidLevel(t *testing.T) {
	for _, l := range ValidLevels {
		assert.True(t, IsValidLevel(l))
		assert.True(t, IsValidLevel(strings.ToUpper(l)))
	}
	assert.False(t, IsValidLevel("verbose"))
	assert.False(t, IsValidLevel(""))
}

func TestIsTerminal(t *testing.T) {
	t.Run("non-file writers", func(t *testing.T) {
		assert.False(t, IsTerminal(&bytes.Buffer{}))
		assert.False(t, IsTerminal(nil))
	})

	t.Run("regular file", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "log")
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		assert.False(t, IsTerminal(f))
	})

	t.Run("NO_COLOR disables", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.False(t, IsTerminal(os.Stderr))
	})

	t.Run("dumb terminal disables", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.False(t, IsTerminal(os.Stderr))
	})
}

func TestConsoleLogger_ColorIndependentOfStdout(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")
	logger.colorOutput = true

	logger.LogWarn("careful")
	logger.LogArtifact("page", "/work/LoginPage.java")

	out := buf.String()
	assert.Contains(t, out, "\x1b[33mWARN\x1b[0m")
	assert.Contains(t, out, "\x1b[36mpage\x1b[0m")
}
