// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	outputFlag  = "output"
	targetsFlag = "targets"
)

var errCycleFound = errors.New("the records contain a cycle")

func (a *app) newForestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forest",
		Short: "Build the forest implied by the records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.loadRecords(cmd)
			if err != nil {
				return err
			}

			f, release, err := a.forester()
			if err != nil {
				return err
			}
			defer release()

			forest := f.Build(records)

			output, _ := cmd.Flags().GetString(outputFlag)
			switch output {
			case formatCompact:
				serialized, err := f.Serialize(cmd.Context(), forest)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), serialized)
				return err
			case formatJSON:
				trees := make([]map[string]any, len(forest))
				for index, root := range forest {
					trees[index] = treeObject(root)
				}

				return writeJSON(cmd, trees)
			default:
				return fmt.Errorf("%w: %s", errUnknownFormat, output)
			}
		},
	}

	cmd.Flags().StringP(outputFlag, "o", formatJSON, "the output format: json or compact")

	return cmd
}

func (a *app) newAncestorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors <id>",
		Short: "List a record & its ancestors up to the root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.loadRecords(cmd)
			if err != nil {
				return err
			}

			f, release, err := a.forester()
			if err != nil {
				return err
			}
			defer release()

			return writeJSON(cmd, f.Ancestors(records, args[0]))
		},
	}
}

func (a *app) newDescendantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "descendants <id>",
		Short: "List every record below a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.loadRecords(cmd)
			if err != nil {
				return err
			}

			f, release, err := a.forester()
			if err != nil {
				return err
			}
			defer release()

			return writeJSON(cmd, f.Descendants(records, args[0]))
		},
	}
}

func (a *app) newCycleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cycle",
		Short: "Check the records for parent cycles, failing when one exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.loadRecords(cmd)
			if err != nil {
				return err
			}

			f, release, err := a.forester()
			if err != nil {
				return err
			}
			defer release()

			hasCycle := f.HasCycle(records)
			if err = writeJSON(cmd, map[string]bool{"cycle": hasCycle}); err != nil {
				return err
			}

			if hasCycle {
				return errCycleFound
			}

			return nil
		},
	}
}

func (a *app) newReparentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reparent <id> <parent>",
		Short: "Check that a record may be moved under a new parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.loadRecords(cmd)
			if err != nil {
				return err
			}

			f, release, err := a.forester()
			if err != nil {
				return err
			}
			defer release()

			if err = f.CheckReparent(records, args[0], args[1]); err != nil {
				return err
			}

			return writeJSON(cmd, map[string]bool{"ok": true})
		},
	}
}

func (a *app) newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Resolve the ancestors of many targets, partitioned by group",
		Long:  "Reads targets from --targets & prints one ancestor chain per target, in target order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.loadRecords(cmd)
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString(targetsFlag)
			targets, err := a.loadTargets(cmd, name)
			if err != nil {
				return err
			}

			f, release, err := a.forester()
			if err != nil {
				return err
			}
			defer release()

			chains, err := f.MappedAncestors(cmd.Context(), records, targets)
			if err != nil {
				return err
			}

			return writeJSON(cmd, chains)
		},
	}

	cmd.Flags().String(targetsFlag, "", "the JSON targets file")
	_ = cmd.MarkFlagRequired(targetsFlag)

	return cmd
}
