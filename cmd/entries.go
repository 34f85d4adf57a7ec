package cmd

import (
	"fmt"
	"os"

	"sqlwrapper/config"
	"sqlwrapper/printer"
)

type LsCommand struct{}

func (l *LsCommand) Run() error {
	loc, err := locateConfig(newPrompter())
	if err != nil {
		return err
	}

	entries, err := config.NewReader(loc).ReadAll()
	if err != nil {
		return err
	}

	summaries := make([]EntrySummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, printer.Summarize(entry))
	}
	DisplayEntries(loc.Path(), summaries)
	return nil
}

type ConfigPathCommand struct{}

func (c *ConfigPathCommand) Run() error {
	loc, err := locateConfig(nil)
	if err != nil {
		return err
	}
	PrintSuccess("%s", loc.Path())
	return nil
}

// ConfigInitCommand writes the template without overwriting an existing file
type ConfigInitCommand struct {
	Dir string
}

func (c *ConfigInitCommand) Run() error {
	dir := c.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}

	loc := config.Location{Dir: dir, File: config.DefaultFile}
	if err := config.WriteTemplate(loc); err != nil {
		return err
	}
	PrintSuccess("Created %s", loc.Path())
	return nil
}

// ConfigShowCommand prints one entry with passwords masked
type ConfigShowCommand struct {
	Entry string
}

func (c *ConfigShowCommand) Run() error {
	loc, err := locateConfig(nil)
	if err != nil {
		return err
	}

	entry, err := config.NewReader(loc).Read(c.Entry)
	if err != nil {
		return err
	}
	DisplayValues(entry.Name, entry.Redacted())
	return nil
}
