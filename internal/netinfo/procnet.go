package netinfo

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// loopbackName is skipped when reading the kernel listing
const loopbackName = "lo"

// ReadProcNetDev returns interface names from a /proc/net/dev style file,
// where the text before the first colon on each data line is the name.
func ReadProcNetDev(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open interface listing: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, ":")
		if idx < 0 {
			// header lines carry no colon
			continue
		}
		name := strings.TrimSpace(line[:idx])
		if name == "" || name == loopbackName || strings.Contains(name, "|") {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read interface listing: %w", err)
	}
	return names, nil
}
