package db

import (
	"context"
	"fmt"

	"sqlwrapper/config"
	"sqlwrapper/logger"
	"sqlwrapper/prompt"
)

// Resolver turns a configuration entry name into a connector
type Resolver struct {
	Reader   *config.Reader
	Prompter prompt.Prompter
	Options  Options
}

func NewResolver(reader *config.Reader, prompter prompt.Prompter) *Resolver {
	return &Resolver{
		Reader:   reader,
		Prompter: prompter,
		Options:  Options{Prompter: prompter},
	}
}

// Choose asks the user to pick an entry from the numbered menu
func (r *Resolver) Choose() (string, error) {
	entries, err := r.Reader.Entries()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: %s has no entries", config.ErrEntryNotFound, r.Reader.Location())
	}
	if r.Prompter == nil {
		return "", fmt.Errorf("no entry given and no prompt available")
	}

	idx, err := r.Prompter.Select("Please select a database", entries)
	if err != nil {
		return "", err
	}
	return entries[idx], nil
}

// Resolve reads the named entry, or asks for one when name is empty, and
// builds its connector without connecting
func (r *Resolver) Resolve(ctx context.Context, name string) (Connector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		chosen, err := r.Choose()
		if err != nil {
			return nil, err
		}
		name = chosen
	}

	entry, err := r.Reader.Read(name)
	if err != nil {
		return nil, err
	}

	opts := r.Options
	if opts.Prompter == nil {
		opts.Prompter = r.Prompter
	}
	conn, err := Build(entry, opts)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Resolved entry %s to a %s connector", name, conn.Backend())
	return conn, nil
}

// Open resolves the entry, connects and checks the connection
func (r *Resolver) Open(ctx context.Context, name string) (Connector, error) {
	conn, err := r.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := conn.Connect(ctx); err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
