package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLog_AppendsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer l.Close()

	if err := l.SendStatus("conv_1", "ops@example.com", true, ""); err != nil {
		t.Fatalf("send status write failed: %v", err)
	}
	if err := l.Email("conv_1", "guest@example.com"); err != nil {
		t.Fatalf("email write failed: %v", err)
	}
	if err := l.Details("conv_1", "Conversation Details (ID: conv_1):\nStatus: done\n"); err != nil {
		t.Fatalf("details write failed: %v", err)
	}
	if err := l.Summary("conv_1", "Email: guest@example.com\nSummary: short call"); err != nil {
		t.Fatalf("summary write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	got := string(data)

	wantLines := []string{
		"Summary Email Status for conv_1 to ops@example.com: Success",
		"Conversation conv_1: guest@example.com",
		"Conversation conv_1 Details:",
		"Gemini Summary for conv_1:",
	}
	last := -1
	for _, want := range wantLines {
		idx := strings.Index(got, want)
		if idx == -1 {
			t.Fatalf("expected log to contain %q, got:\n%s", want, got)
		}
		if idx < last {
			t.Errorf("line %q out of order", want)
		}
		last = idx
	}
}

func TestLog_SendStatusFailureDetail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer l.Close()

	if err := l.SendStatus("conv_2", "ops@example.com", false, "Authentication error"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "Failed - Authentication error") {
		t.Errorf("expected failure detail, got %q", string(data))
	}
}

func TestLog_AppendsAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	if err := l.Email("conv_1", "a@b.co"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	l.Close()

	l2, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer l2.Close()
	if err := l2.Email("conv_2", "c@d.co"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "conv_1") || !strings.Contains(string(data), "conv_2") {
		t.Errorf("expected both entries after reopen, got %q", string(data))
	}
}
