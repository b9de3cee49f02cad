package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		if l.SugaredLogger == nil {
			t.Fatalf("New(%q) returned nil logger", mode)
		}
	}
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("project_id", "prj-1").Info("evaluated", "sites", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["project_id"] != "prj-1" {
		t.Errorf("project_id = %v", ctx["project_id"])
	}
	if ctx["sites"] != int64(3) {
		t.Errorf("sites = %v (%T)", ctx["sites"], ctx["sites"])
	}
}

func TestBadgerInfoDemoted(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.Badger().Infof("compaction %d done\n", 4)
	l.Badger().Warningf("value log %s", "gc")

	if logs.Len() != 1 {
		t.Fatalf("expected only the warning at info level, got %d entries", logs.Len())
	}
	if got := logs.All()[0].Message; got != "value log gc" {
		t.Errorf("message = %q", got)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Debug("ignored")
	l.Sync()
}
