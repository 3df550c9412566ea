package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// findBinary locates the subtrack binary. Set SUBTRACK_BIN to override
// the default ../../bin/subtrack location.
func findBinary(t *testing.T) string {
	t.Helper()

	if bin := os.Getenv("SUBTRACK_BIN"); bin != "" {
		return bin
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}
	bin, _ := filepath.Abs(filepath.Join(cwd, "..", "..", "bin", "subtrack"))
	if _, err := os.Stat(bin); os.IsNotExist(err) {
		t.Skipf("subtrack binary not found at %s; build it first or set SUBTRACK_BIN", bin)
	}
	return bin
}

func run(t *testing.T, bin, dataFile string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(bin, append([]string{"--config", dataFile}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestEndToEndWorkflow(t *testing.T) {
	bin := findBinary(t)
	dataFile := filepath.Join(t.TempDir(), "subtrack.json")

	// 1. Initialize storage
	out, stderr, err := run(t, bin, dataFile, "init")
	if err != nil {
		t.Fatalf("init failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(out, "Initialized") {
		t.Errorf("init output = %q, want mention of initialization", out)
	}

	// 2. Add subscriptions
	if _, stderr, err := run(t, bin, dataFile, "add", "Netflix", "-p", "15.99", "-c", "entertainment", "-d", "2030-06-15"); err != nil {
		t.Fatalf("add Netflix failed: %v\nstderr: %s", err, stderr)
	}
	if _, stderr, err := run(t, bin, dataFile, "add", "Notion", "-p", "8", "-c", "productivity", "-d", "2030-07-01"); err != nil {
		t.Fatalf("add Notion failed: %v\nstderr: %s", err, stderr)
	}

	// 3. Invalid input is rejected
	if _, _, err := run(t, bin, dataFile, "add", "Broken", "-p", "-5", "-d", "2030-01-01"); err == nil {
		t.Error("add with negative price should fail")
	}

	// 4. List shows both records and the monthly total
	out, stderr, err = run(t, bin, dataFile, "list")
	if err != nil {
		t.Fatalf("list failed: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{"Netflix", "Notion", "23.99"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	// 5. The mutation captured a history snapshot
	out, stderr, err = run(t, bin, dataFile, "history")
	if err != nil {
		t.Fatalf("history failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(out, "23.99") {
		t.Errorf("history should hold the current month snapshot:\n%s", out)
	}

	// 6. Export round-trips through import
	exportFile := filepath.Join(t.TempDir(), "export.json")
	if _, stderr, err := run(t, bin, dataFile, "export", "-o", exportFile); err != nil {
		t.Fatalf("export failed: %v\nstderr: %s", err, stderr)
	}
	data, err := os.ReadFile(exportFile)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var doc struct {
		Subscriptions []struct {
			Name string `json:"name"`
		} `json:"subscriptions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(doc.Subscriptions) != 2 {
		t.Errorf("export holds %d subscriptions, want 2", len(doc.Subscriptions))
	}

	freshFile := filepath.Join(t.TempDir(), "fresh.json")
	if _, stderr, err := run(t, bin, freshFile, "init"); err != nil {
		t.Fatalf("init of fresh store failed: %v\nstderr: %s", err, stderr)
	}
	if _, stderr, err := run(t, bin, freshFile, "import", exportFile); err != nil {
		t.Fatalf("import failed: %v\nstderr: %s", err, stderr)
	}
	out, _, err = run(t, bin, freshFile, "list")
	if err != nil {
		t.Fatalf("list after import failed: %v", err)
	}
	if !strings.Contains(out, "Netflix") || !strings.Contains(out, "Notion") {
		t.Errorf("imported list missing records:\n%s", out)
	}

	// 7. Delete by name with --force
	if _, stderr, err := run(t, bin, dataFile, "delete", "Netflix", "-f"); err != nil {
		t.Fatalf("delete failed: %v\nstderr: %s", err, stderr)
	}
	out, _, _ = run(t, bin, dataFile, "list")
	if strings.Contains(out, "Netflix") {
		t.Errorf("Netflix should be gone after delete:\n%s", out)
	}

	// 8. Doctor passes on a healthy store
	out, stderr, err = run(t, bin, dataFile, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\nstdout: %s\nstderr: %s", err, out, stderr)
	}
}

func TestCorruptStoreRecovers(t *testing.T) {
	bin := findBinary(t)
	dataFile := filepath.Join(t.TempDir(), "subtrack.json")

	if err := os.WriteFile(dataFile, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	// A corrupt store resets to defaults instead of failing.
	out, stderr, err := run(t, bin, dataFile, "list")
	if err != nil {
		t.Fatalf("list on corrupt store failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(out, "No subscriptions") {
		t.Errorf("corrupt store should reset to an empty list:\n%s", out)
	}
}
