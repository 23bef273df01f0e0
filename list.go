package midi

import (
	"strconv"
	"strings"

	"github.com/allbin/go-midi/rawmidi"
)

// PortInfo describes a port offered by a transport
type PortInfo = rawmidi.PortInfo

// ListPorts returns the ports offered by the transport
func ListPorts(t Transport) ([]PortInfo, error) {
	ports, err := t.Ports()
	if err != nil {
		return nil, portInfoFailure(err)
	}
	return ports, nil
}

// FindInputPort picks the input port matching selector
func FindInputPort(ports []PortInfo, selector string) (PortInfo, error) {
	port, ok := matchPort(ports, selector)
	if !ok {
		return PortInfo{}, ErrInputPortNotFound
	}
	return port, nil
}

// FindOutputPort picks the output port matching selector
func FindOutputPort(ports []PortInfo, selector string) (PortInfo, error) {
	port, ok := matchPort(ports, selector)
	if !ok {
		return PortInfo{}, ErrOutputPortNotFound
	}
	return port, nil
}

// matchPort resolves a selector against a port list. In order of
// precedence a selector matches an exact path, an exact name, a list index,
// then a case-insensitive substring of the name or description. The empty
// selector matches the first port.
func matchPort(ports []PortInfo, selector string) (PortInfo, bool) {
	if len(ports) == 0 {
		return PortInfo{}, false
	}
	if selector == "" {
		return ports[0], true
	}

	for _, p := range ports {
		if p.Path == selector {
			return p, true
		}
	}
	for _, p := range ports {
		if p.Name == selector {
			return p, true
		}
	}
	if idx, err := strconv.Atoi(selector); err == nil {
		if idx >= 0 && idx < len(ports) {
			return ports[idx], true
		}
		return PortInfo{}, false
	}

	needle := strings.ToLower(selector)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			return p, true
		}
	}
	return PortInfo{}, false
}
