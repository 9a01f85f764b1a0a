package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadHostList loads device hostnames from a CSV file, one host per line in
// the first column. Blank lines are skipped.
func ReadHostList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening host list: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading host list %s: %w", path, err)
	}

	var hosts []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		host := strings.TrimSpace(row[0])
		if host == "" {
			continue
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}
