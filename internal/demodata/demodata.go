// Package demodata loads the optional table of demo profiles that a user can
// compare their recommendations against.
package demodata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Profile is one row of the demo table. Columns without a matching field are
// kept in Extra.
type Profile struct {
	Name            string         `mapstructure:"name"`
	Age             int            `mapstructure:"age"`
	UserType        string         `mapstructure:"user_type"`
	SuggestedCareer string         `mapstructure:"suggested_career"`
	Extra           map[string]any `mapstructure:",remain"`
}

// Table is a read-only set of demo profiles.
type Table struct {
	profiles []Profile
}

// Load reads the table at path. A missing file gives an empty table. Any
// other problem is logged as a warning and also gives an empty table.
func Load(path string, logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return &Table{}
	}

	file, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("demo data is unavailable", zap.String("path", path), zap.Error(err))
		}
		return &Table{}
	}
	defer file.Close()

	table, err := Parse(file)
	if err != nil {
		logger.Warn("demo data is malformed; ignoring it", zap.String("path", path), zap.Error(err))
		return &Table{}
	}

	logger.Debug("demo data loaded", zap.String("path", path), zap.Int("profiles", table.Len()))
	return table
}

// Parse reads a CSV table with a header row. The name column is required.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	header := make([]string, len(records[0]))
	hasName := false
	for i, column := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(column))
		if header[i] == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, errors.New("header has no name column")
	}

	table := &Table{profiles: make([]Profile, 0, len(records)-1)}
	for line, record := range records[1:] {
		row := make(map[string]any, len(header))
		for i, column := range header {
			row[column] = strings.TrimSpace(record[i])
		}

		profile, err := decode(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+2, err)
		}
		table.profiles = append(table.profiles, profile)
	}

	return table, nil
}

func decode(row map[string]any) (Profile, error) {
	var profile Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		return Profile{}, err
	}
	if err := decoder.Decode(row); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Len returns the number of profiles.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.profiles)
}

// Empty reports whether there is nothing to compare against.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Profiles returns a copy of all profiles in file order.
func (t *Table) Profiles() []Profile {
	if t == nil {
		return nil
	}
	out := make([]Profile, len(t.profiles))
	copy(out, t.profiles)
	return out
}

// BySuggestedCareer returns the profiles whose suggested career matches name,
// ignoring case and surrounding spaces.
func (t *Table) BySuggestedCareer(name string) []Profile {
	if t == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	var out []Profile
	for _, p := range t.profiles {
		if strings.EqualFold(strings.TrimSpace(p.SuggestedCareer), name) {
			out = append(out, p)
		}
	}
	return out
}
