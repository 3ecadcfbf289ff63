package valutatrade

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestActionLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "actions.log")
	al, err := OpenActionLog(path)
	if err != nil {
		t.Fatalf("OpenActionLog() unexpected error = %v", err)
	}

	al.Record("BUY", nil, "user", "alice", "currency", "BTC", "amount", "0.5")
	al.Record("SELL", errors.New("insufficient funds"), "user", "alice")
	if err := al.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	log := string(data)
	lines := strings.Split(strings.TrimSpace(log), "\n")
	if len(lines) != 2 {
		t.Fatalf("log has %d lines, want 2:\n%s", len(lines), log)
	}
	if !strings.Contains(lines[0], "msg=BUY") || !strings.Contains(lines[0], "result=OK") {
		t.Errorf("buy line = %q, want action and result=OK", lines[0])
	}
	if !strings.Contains(lines[1], "msg=SELL") || !strings.Contains(lines[1], "result=ERROR") {
		t.Errorf("sell line = %q, want action and result=ERROR", lines[1])
	}
	if !strings.Contains(lines[1], "insufficient funds") {
		t.Errorf("sell line = %q, want the error message", lines[1])
	}
}

func TestActionLog_NilIsSafe(t *testing.T) {
	var al *ActionLog
	al.Record("UPDATE", nil)
	if err := al.Close(); err != nil {
		t.Errorf("Close() on nil = %v, want nil", err)
	}
}
