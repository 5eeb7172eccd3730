package cmd

import (
	"fmt"

	"stint/internal/server"
)

// ServeCmd serves the read-only status board over SSH
type ServeCmd struct {
	Addr           string `help:"Listen address" default:"localhost:2222"`
	AuthorizedKeys string `help:"Path to authorized_keys (defaults to ~/.ssh/authorized_keys)" default:""`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	addr := s.Addr
	if cli.settings != nil && cli.settings.ListenAddr != "" && s.Addr == "localhost:2222" {
		addr = cli.settings.ListenAddr
	}
	authorizedKeys := s.AuthorizedKeys
	if authorizedKeys == "" && cli.settings != nil {
		authorizedKeys = cli.settings.AuthorizedKeys
	}

	srv, err := server.NewServer(addr, cli.DB, authorizedKeys)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
