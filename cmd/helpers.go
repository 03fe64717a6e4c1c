package cmd

import (
	"strings"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/bridge/sim"
)

// newProvider returns the provider selected by the persistent --sim flag:
// the built-in simulated tree, or the platform's live bridge.
func newProvider() (bridge.Provider, error) {
	if simFlag, _ := rootCmd.PersistentFlags().GetBool("sim"); simFlag {
		return sim.NewDemo(), nil
	}
	return bridge.NewProvider()
}

// parseRoles splits a comma-separated role list.
func parseRoles(s string) []string {
	if s == "" {
		return nil
	}
	var roles []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
