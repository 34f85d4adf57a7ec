package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Reader parses the configuration file at a Location.
// Every call reads the file again so external edits are picked up.
type Reader struct {
	location Location
}

func NewReader(location Location) *Reader {
	return &Reader{location: location}
}

// Location returns the file this reader parses
func (r *Reader) Location() Location {
	return r.location
}

func (r *Reader) load() (*ini.File, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
	}, r.location.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", r.location.Path(), err)
	}
	return file, nil
}

// Entries lists the section names in file order
func (r *Reader) Entries() ([]string, error) {
	file, err := r.load()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, section.Name())
	}
	return names, nil
}

// Read returns the parameters of a single entry
func (r *Reader) Read(name string) (Entry, error) {
	file, err := r.load()
	if err != nil {
		return Entry{}, err
	}

	section, err := file.GetSection(name)
	if err != nil || name == ini.DefaultSection {
		return Entry{}, fmt.Errorf("%w: [%s] in %s", ErrEntryNotFound, name, r.location.Path())
	}
	return sectionToEntry(file.Section(ini.DefaultSection), section), nil
}

// ReadAll returns every entry in file order
func (r *Reader) ReadAll() ([]Entry, error) {
	file, err := r.load()
	if err != nil {
		return nil, err
	}

	defaults := file.Section(ini.DefaultSection)
	var entries []Entry
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		entries = append(entries, sectionToEntry(defaults, section))
	}
	return entries, nil
}

// sectionToEntry layers the section's own keys over the default section
func sectionToEntry(defaults, section *ini.Section) Entry {
	params := make(map[string]string)
	for k, v := range defaults.KeysHash() {
		params[k] = v
	}
	for k, v := range section.KeysHash() {
		params[k] = v
	}
	return Entry{Name: section.Name(), Params: params}
}
