package rawmidi

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	devDir   = "/dev/snd"
	procDir  = "/proc/asound"
	sysfsDir = "/sys/class/sound"
)

// Raw MIDI device nodes are named midiC<card>D<device>
var devicePattern = regexp.MustCompile(`^midiC(\d+)D(\d+)$`)

// PortInfo describes a raw MIDI device. Every raw MIDI device can be opened
// for both input and output.
type PortInfo struct {
	Name        string
	Path        string
	Card        int
	Device      int
	CardID      string
	Description string
}

func (p PortInfo) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Path)
}

// ListPorts returns the raw MIDI devices present on the system, ordered by
// card and device number.
func ListPorts() ([]PortInfo, error) {
	return listPortsIn(devDir)
}

func listPortsIn(dir string) ([]PortInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &PortInfoError{Path: dir, Err: err}
	}

	var ports []PortInfo
	for _, entry := range entries {
		card, device, ok := parseDeviceName(entry.Name())
		if !ok {
			continue
		}

		fullPath := filepath.Join(dir, entry.Name())
		if !isCharacterDevice(fullPath) {
			continue
		}

		ports = append(ports, describePort(fullPath, card, device))
	}

	sort.Slice(ports, func(i, j int) bool {
		if ports[i].Card != ports[j].Card {
			return ports[i].Card < ports[j].Card
		}
		return ports[i].Device < ports[j].Device
	})

	return ports, nil
}

// parseDeviceName extracts card and device numbers from a device node name
func parseDeviceName(name string) (card, device int, ok bool) {
	m := devicePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	card, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	device, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return card, device, true
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// describePort fills in the human readable parts of a PortInfo from procfs
// and sysfs. Missing files leave the fields at their fallbacks.
func describePort(path string, card, device int) PortInfo {
	info := PortInfo{
		Path:   path,
		Card:   card,
		Device: device,
		CardID: readSysfsFile(filepath.Join(sysfsDir, fmt.Sprintf("card%d", card), "id")),
	}

	info.Name = readFirstLine(filepath.Join(procDir, fmt.Sprintf("card%d", card), fmt.Sprintf("midi%d", device)))
	if info.Name == "" {
		info.Name = filepath.Base(path)
	}

	if info.CardID != "" {
		info.Description = fmt.Sprintf("%s MIDI %d-%d", info.CardID, card, device)
	} else {
		info.Description = fmt.Sprintf("Raw MIDI %d-%d", card, device)
	}

	return info
}

// readSysfsFile reads a single value file, trimming surrounding whitespace
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readFirstLine(path string) string {
	content := readSysfsFile(path)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSpace(content)
}
