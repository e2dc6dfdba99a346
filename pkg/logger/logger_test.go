package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "defaults", level: "", format: "", wantLevel: logrus.InfoLevel},
		{name: "debug text", level: "debug", format: "text", wantLevel: logrus.DebugLevel},
		{name: "json", level: "warn", format: "JSON", wantLevel: logrus.WarnLevel, wantJSON: true},
		{name: "bad level", level: "loud", format: "", wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Configure(tt.level, tt.format, &buf)

			if got := Log.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
			_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
			if isJSON != tt.wantJSON {
				t.Errorf("json formatter = %v, want %v", isJSON, tt.wantJSON)
			}
		})
	}
}

func TestConfigureWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure("info", "json", &buf)
	defer Silence()

	Log.WithField("room_id", "abc").Info("room created")

	if !strings.Contains(buf.String(), `"room_id":"abc"`) {
		t.Fatalf("expected structured field in output, got %q", buf.String())
	}
}
