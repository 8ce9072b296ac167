package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/deps"
	"github.com/agripots/appdesc/internal/di"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve duplicate dependency declarations",
	Long: `Collapse duplicate dependency declarations so each library appears once, at
the position of its first declaration. The conflict policy comes from
resolution.policy in the tool config (last_declared or highest) unless --policy
is given.`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addResolveFlags(resolveCmd)
}

func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().String("policy", "", "conflict policy: last_declared or highest")
	cmd.Flags().Bool("json", false, "print the resolution as JSON")
}

func runResolve(cmd *cobra.Command, _ []string) error {
	policyFlag, err := cmd.Flags().GetString("policy")
	if err != nil {
		return fmt.Errorf("failed to get policy flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.descriptor()
	if err != nil {
		return err
	}

	resolver, err := a.resolver(policyFlag)
	if err != nil {
		return err
	}
	res, err := resolver.Resolve(a.ctx, d.Dependencies)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	for _, r := range res.Dependencies {
		notation := r.Coordinate()
		if r.Platform {
			notation = "platform(" + notation + ")"
		}
		fmt.Fprintf(out, "%s %s\n", r.Configuration, notation)
	}
	printConflicts(out, res)
	return nil
}

func printConflicts(out io.Writer, res *deps.Resolution) {
	for _, c := range res.Conflicts {
		fmt.Fprintf(out, "! conflict %s: requested %s, selected %s (%s)\n",
			c.Key, strings.Join(c.Requested, ", "), c.Selected, res.Policy)
	}
}

// resolver returns the configured resolver, or one with policy when set.
func (a *app) resolver(policy string) (*deps.Resolver, error) {
	if policy == "" {
		svc, err := di.Invoke[*di.ResolverService](a.container)
		if err != nil {
			return nil, err
		}
		return svc.Resolver, nil
	}

	p, err := deps.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	cacheSvc, err := di.Invoke[*di.CacheService](a.container)
	if err != nil {
		return nil, err
	}
	return deps.NewResolver(cacheSvc.Cache, p,
		deps.WithTTL(a.config().Cache.TTL()),
		deps.WithLogger(a.log.With().Str("component", "resolver").Logger()))
}
