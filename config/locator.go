package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"sqlwrapper/logger"
)

const (
	DefaultFile     = "db_config.ini"
	AlternateFile   = "sqlwrapper.ini"
	ConfigDirEnvVar = "SQLWRAPPER_CONFIG_DIR"
)

//go:embed templates/db_config.ini
var template []byte

// Template returns the packaged starter configuration
func Template() []byte {
	out := make([]byte, len(template))
	copy(out, template)
	return out
}

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Location is a resolved (directory, filename) pair
type Location struct {
	Dir  string
	File string
}

// Path joins the directory and filename
func (l Location) Path() string {
	return filepath.Join(l.Dir, l.File)
}

func (l Location) String() string {
	return l.Path()
}

// Locator finds the configuration file among candidate directories and filenames.
// Directories take priority over filenames: every filename is tried in the
// first directory before moving on to the next one.
type Locator struct {
	Dirs    []string
	Files   []string
	WorkDir string
	// Prompter is asked whether to bootstrap a template when nothing is found.
	// A nil Prompter never creates files.
	Prompter Confirmer
}

// DefaultLocator searches $SQLWRAPPER_CONFIG_DIR, the working directory,
// ~/.sqlwrapper and ~/.mypylib for db_config.ini or sqlwrapper.ini
func DefaultLocator(prompter Confirmer) *Locator {
	var dirs []string
	if dir := os.Getenv(ConfigDirEnvVar); dir != "" {
		dirs = append(dirs, dir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	dirs = append(dirs, cwd)

	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".sqlwrapper"), filepath.Join(home, ".mypylib"))
	}

	return &Locator{
		Dirs:     dirs,
		Files:    []string{DefaultFile, AlternateFile},
		WorkDir:  cwd,
		Prompter: prompter,
	}
}

// Locate returns the first existing candidate
func (l *Locator) Locate() (Location, error) {
	for _, dir := range l.Dirs {
		for _, file := range l.Files {
			loc := Location{Dir: dir, File: file}
			info, err := os.Stat(loc.Path())
			if err != nil || info.IsDir() {
				continue
			}
			logger.Debugf("Using configuration file %s", loc.Path())
			return loc, nil
		}
	}

	logger.Debugf("No configuration file found in %v (candidates %v)", l.Dirs, l.Files)
	if l.Prompter == nil {
		return Location{}, fmt.Errorf("%w: searched %v for %v", ErrConfigNotFound, l.Dirs, l.Files)
	}

	loc := l.bootstrapLocation()
	ok, err := l.Prompter.Confirm(fmt.Sprintf("No configuration file found. Create %s from template?", loc.Path()))
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}
	if !ok {
		return Location{}, fmt.Errorf("%w: searched %v for %v", ErrConfigNotFound, l.Dirs, l.Files)
	}

	if err := WriteTemplate(loc); err != nil {
		return Location{}, err
	}
	logger.Infof("Created configuration template at %s", loc.Path())
	return loc, nil
}

func (l *Locator) bootstrapLocation() Location {
	dir := l.WorkDir
	if dir == "" {
		dir = "."
	}
	file := DefaultFile
	if len(l.Files) > 0 {
		file = l.Files[0]
	}
	return Location{Dir: dir, File: file}
}

// WriteTemplate writes the packaged template to loc without overwriting an existing file
func WriteTemplate(loc Location) error {
	if err := os.MkdirAll(loc.Dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", loc.Dir, err)
	}

	f, err := os.OpenFile(loc.Path(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", loc.Path(), err)
	}
	defer f.Close()

	if _, err := f.Write(template); err != nil {
		return fmt.Errorf("failed to write config template: %w", err)
	}
	return nil
}
