package cmd

import (
	"context"

	"sqlwrapper/config"
	"sqlwrapper/db"
	"sqlwrapper/logger"
	"sqlwrapper/prompt"
)

// ConnectorSetup holds the open connector and the file its entry came from
type ConnectorSetup struct {
	Connector db.Connector
	Location  config.Location
}

// newPrompter is replaced in tests with a scripted prompter
var newPrompter = func() prompt.Prompter {
	return prompt.NewConsole()
}

// openConnector is replaced in tests to avoid a live database
var openConnector = func(ctx context.Context, resolver *db.Resolver, entry string) (db.Connector, error) {
	return resolver.Open(ctx, entry)
}

// locateConfig finds the configuration file; with a prompter the user may
// bootstrap a template when none exists
func locateConfig(prompter config.Confirmer) (config.Location, error) {
	return config.DefaultLocator(prompter).Locate()
}

// SetupConnector locates the configuration, resolves the entry from
// --entry (or the menu) and opens the connection
func SetupConnector(ctx context.Context) (*ConnectorSetup, error) {
	p := newPrompter()

	loc, err := locateConfig(p)
	if err != nil {
		return nil, err
	}

	resolver := db.NewResolver(config.NewReader(loc), p)
	resolver.Options.Schema = settings.Schema

	logger.Debugf("Opening entry %q from %s", settings.Entry, loc.Path())
	conn, err := openConnector(ctx, resolver, settings.Entry)
	if err != nil {
		return nil, err
	}
	logger.Infof("Connected to %s entry %s (schema %s)", conn.Backend(), conn.Entry().Name, conn.Schema())

	SetActiveConnector(conn)
	return &ConnectorSetup{Connector: conn, Location: loc}, nil
}

// Close prints the session history in verbose mode and closes the connection
func (s *ConnectorSetup) Close() {
	if s.Connector == nil {
		return
	}
	for i, query := range s.Connector.History().Entries() {
		PrintInfo("history[%d]: %s", i, query)
	}

	activeMu.Lock()
	if active == s.Connector {
		active = nil
	}
	activeMu.Unlock()

	logger.Debug("Closing database connection")
	if err := s.Connector.Close(); err != nil {
		logger.Warnf("Error closing connection: %v", err)
	}
}

// withConnector runs fn against a freshly opened connector and closes it afterwards
func withConnector(ctx context.Context, fn func(conn db.Connector) error) error {
	setup, err := SetupConnector(ctx)
	if err != nil {
		return err
	}
	defer setup.Close()
	return fn(setup.Connector)
}
