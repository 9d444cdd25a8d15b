// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"strings"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/fisherprime/arborist"
)

const (
	inputFlag          = "input"
	formatFlag         = "format"
	idKeyFlag          = "id-key"
	parentKeyFlag      = "parent-key"
	groupKeyFlag       = "group-key"
	mappedKeyFlag      = "mapped-key"
	orphansAsRootsFlag = "orphans-as-roots"
	workersFlag        = "workers"
	logLevelFlag       = "log-level"

	formatJSON    = "json"
	formatCompact = "compact"
)

type (
	// forester is the Forester flavour used by the CLI: JSON objects identified by strings.
	forester = arborist.Forester[map[string]any, string]

	// app carries the state shared by the subcommands.
	app struct {
		v      *viper.Viper
		logger *logrus.Logger
	}
)

// NewRootCommand creates the arborist command tree.
//
// Flags may also be set through ARBORIST_ prefixed environment variables.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), logger: logrus.New()}

	a.v.SetEnvPrefix("ARBORIST")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "arborist",
		Short:         "Forest operations over flat parent-pointer records",
		Long:          "Reads a JSON array of records (or the compact `1,2)),3)` form) & builds forests, ancestor chains, descendant sets or checks for cycles.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger.SetOutput(cmd.ErrOrStderr())

			level, err := logrus.ParseLevel(a.v.GetString(logLevelFlag))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", logLevelFlag, err)
			}
			a.logger.SetLevel(level)

			return nil
		},
	}

	bindRootFlags(a.v, root)

	root.AddCommand(
		a.newForestCommand(),
		a.newAncestorsCommand(),
		a.newDescendantsCommand(),
		a.newCycleCommand(),
		a.newReparentCommand(),
		a.newBatchCommand(),
	)

	return root
}

// keyOptions maps the configured field names.
func (a *app) keyOptions() []arborist.KeyOption {
	return []arborist.KeyOption{
		arborist.WithIDKey(a.v.GetString(idKeyFlag)),
		arborist.WithParentKey(a.v.GetString(parentKeyFlag)),
		arborist.WithGroupKey(a.v.GetString(groupKeyFlag)),
		arborist.WithMappedKey(a.v.GetString(mappedKeyFlag)),
	}
}

// forester creates the configured Forester; release frees its worker pool.
func (a *app) forester() (f *forester, release func(), err error) {
	options := []arborist.Option{
		arborist.WithConfig(&arborist.Config{
			Logger: a.logger,
			Debug:  a.logger.IsLevelEnabled(logrus.DebugLevel),
		}),
	}
	if a.v.GetBool(orphansAsRootsFlag) {
		options = append(options, arborist.WithOrphansAsRoots())
	}

	release = func() {}
	if workers := a.v.GetInt(workersFlag); workers > 0 {
		var pool *ants.Pool
		if pool, err = ants.NewPool(workers); err != nil {
			return nil, nil, fmt.Errorf("create worker pool: %w", err)
		}

		options = append(options, arborist.WithPool(pool))
		release = pool.Release
	}

	f = arborist.New(arborist.MapKeysFunc(arborist.StringID, a.keyOptions()...), options...)

	return
}
