// SPDX-License-Identifier: MIT
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gitlab.com/fisherprime/arborist"
)

// mustBindPFlag attempts to bind a key to a pflag & panics if the binding fails.
func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

// bindRootFlags binds the persistent flags shared by every subcommand to viper.
func bindRootFlags(v *viper.Viper, command *cobra.Command) {
	flags := command.PersistentFlags()

	flags.StringP(inputFlag, "i", "-", "the records file, - for stdin")
	mustBindPFlag(v, inputFlag, flags.Lookup(inputFlag))

	flags.String(formatFlag, formatJSON, "the input format: json or compact")
	mustBindPFlag(v, formatFlag, flags.Lookup(formatFlag))

	flags.String(idKeyFlag, arborist.DefaultIDKey, "the record field holding the identifier")
	mustBindPFlag(v, idKeyFlag, flags.Lookup(idKeyFlag))

	flags.String(parentKeyFlag, arborist.DefaultParentKey, "the record field holding the parent identifier")
	mustBindPFlag(v, parentKeyFlag, flags.Lookup(parentKeyFlag))

	flags.String(groupKeyFlag, arborist.DefaultGroupKey, "the record field holding the grouping key")
	mustBindPFlag(v, groupKeyFlag, flags.Lookup(groupKeyFlag))

	flags.String(mappedKeyFlag, arborist.DefaultMappedKey, "the batch target field holding the identifier")
	mustBindPFlag(v, mappedKeyFlag, flags.Lookup(mappedKeyFlag))

	flags.Bool(orphansAsRootsFlag, false, "treat records whose parent is missing as roots instead of dropping them")
	mustBindPFlag(v, orphansAsRootsFlag, flags.Lookup(orphansAsRootsFlag))

	flags.Int(workersFlag, 0, "resolve batch partitions on a worker pool of this size, 0 to disable")
	mustBindPFlag(v, workersFlag, flags.Lookup(workersFlag))

	flags.String(logLevelFlag, "warning", "the log level to use")
	mustBindPFlag(v, logLevelFlag, flags.Lookup(logLevelFlag))
}
