package rawmidi

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseDeviceName(t *testing.T) {
	tests := []struct {
		name   string
		card   int
		device int
		ok     bool
	}{
		{"midiC0D0", 0, 0, true},
		{"midiC1D0", 1, 0, true},
		{"midiC12D3", 12, 3, true},
		{"midiC1", 0, 0, false},
		{"pcmC0D0p", 0, 0, false},
		{"controlC0", 0, 0, false},
		{"seq", 0, 0, false},
		{"midiC1D0x", 0, 0, false},
	}

	for _, tt := range tests {
		card, device, ok := parseDeviceName(tt.name)
		if ok != tt.ok {
			t.Errorf("parseDeviceName(%s) ok = %v, expected %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && (card != tt.card || device != tt.device) {
			t.Errorf("parseDeviceName(%s) = (%d, %d), expected (%d, %d)", tt.name, card, device, tt.card, tt.device)
		}
	}
}

func TestIsCharacterDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/null", true},
		{"/dev/zero", true},
		{os.TempDir(), false},
		{"/nonexistent", false},
	}

	for _, test := range tests {
		result := isCharacterDevice(test.path)
		if result != test.expected {
			t.Errorf("isCharacterDevice(%s) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestListPortsInMissingDirectory(t *testing.T) {
	_, err := listPortsIn("/nonexistent/snd")
	if err == nil {
		t.Fatal("Expected error for missing device directory")
	}

	var portErr *PortInfoError
	if !errors.As(err, &portErr) {
		t.Fatalf("Expected *PortInfoError, got %T", err)
	}
	if portErr.Path != "/nonexistent/snd" {
		t.Errorf("Expected path /nonexistent/snd, got %s", portErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected cause to be os.ErrNotExist, got %v", portErr.Err)
	}
}

func TestListPortsInSkipsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"midiC0D0", "midiC1D0", "pcmC0D0p", "timer"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	ports, err := listPortsIn(dir)
	if err != nil {
		t.Fatalf("listPortsIn failed: %v", err)
	}
	if len(ports) != 0 {
		t.Errorf("Expected no ports from regular files, got %v", ports)
	}
}

func TestDescribePort(t *testing.T) {
	root := t.TempDir()
	oldProc, oldSys := procDir, sysfsDir
	procDir = filepath.Join(root, "proc")
	sysfsDir = filepath.Join(root, "sys")
	defer func() {
		procDir, sysfsDir = oldProc, oldSys
	}()

	mustWrite := func(path, content string) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	mustWrite(filepath.Join(procDir, "card1", "midi0"), "X-TOUCH MINI\n\nOutput 0\n")
	mustWrite(filepath.Join(sysfsDir, "card1", "id"), "MINI\n")

	info := describePort("/dev/snd/midiC1D0", 1, 0)
	if info.Name != "X-TOUCH MINI" {
		t.Errorf("Expected name 'X-TOUCH MINI', got '%s'", info.Name)
	}
	if info.CardID != "MINI" {
		t.Errorf("Expected card id 'MINI', got '%s'", info.CardID)
	}
	if info.Description != "MINI MIDI 1-0" {
		t.Errorf("Expected description 'MINI MIDI 1-0', got '%s'", info.Description)
	}

	// No procfs or sysfs entries for card 2
	info = describePort("/dev/snd/midiC2D1", 2, 1)
	if info.Name != "midiC2D1" {
		t.Errorf("Expected fallback name 'midiC2D1', got '%s'", info.Name)
	}
	if info.Description != "Raw MIDI 2-1" {
		t.Errorf("Expected fallback description, got '%s'", info.Description)
	}
}

func TestReadSysfsFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		content  *string
		expected string
	}{
		{"normal file", ptr("1234\n"), "1234"},
		{"file with spaces", ptr("  test value  \n"), "test value"},
		{"nonexistent file", nil, ""},
		{"empty file", ptr(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, tt.name)
			if tt.content != nil {
				if err := os.WriteFile(testFile, []byte(*tt.content), 0644); err != nil {
					t.Fatalf("Setup failed: %v", err)
				}
			}
			if got := readSysfsFile(testFile); got != tt.expected {
				t.Errorf("readSysfsFile() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func ptr(s string) *string { return &s }

// TestListPortsIntegration lists the devices of the machine running the tests
func TestListPortsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if _, err := os.Stat(devDir); err != nil {
		t.Skip("No ALSA device directory on this system")
	}

	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts failed: %v", err)
	}

	t.Logf("Found %d raw MIDI ports:", len(ports))
	for i, port := range ports {
		t.Logf("  %d. %s", i+1, port)
		if !isCharacterDevice(port.Path) {
			t.Errorf("Port %s is not a character device", port.Path)
		}
	}
}
