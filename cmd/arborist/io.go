// SPDX-License-Identifier: MIT
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/arborist"
	"gitlab.com/fisherprime/arborist/lexer"
)

// childrenKey holds a node's children in the JSON forest output.
const childrenKey = "children"

var errUnknownFormat = errors.New("unknown input format")

// open returns the named file or the command's stdin for "-".
func open(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	return os.Open(name)
}

// decodeObjects reads a JSON array of objects, keeping numbers verbatim.
func decodeObjects(in io.Reader) (objects []map[string]any, err error) {
	decoder := json.NewDecoder(in)
	decoder.UseNumber()

	if err = decoder.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	return
}

// loadRecords reads the configured input.
func (a *app) loadRecords(cmd *cobra.Command) (records []map[string]any, err error) {
	in, err := open(cmd, a.v.GetString(inputFlag))
	if err != nil {
		return
	}
	defer in.Close()

	switch format := a.v.GetString(formatFlag); format {
	case formatJSON:
		return decodeObjects(in)
	case formatCompact:
		var parsed []arborist.Record[string]
		if parsed, err = arborist.Deserialize[string](cmd.Context(), lexer.WithLogger(a.logger), lexer.WithSource(bufio.NewReader(in))); err != nil {
			return
		}

		idKey, parentKey := a.v.GetString(idKeyFlag), a.v.GetString(parentKeyFlag)
		records = make([]map[string]any, len(parsed))
		for index, r := range parsed {
			records[index] = map[string]any{idKey: r.ID}
			if parent, ok := r.Parent(); ok {
				records[index][parentKey] = parent
			}
		}

		return
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownFormat, format)
	}
}

// loadTargets reads batch targets from a JSON file.
func (a *app) loadTargets(cmd *cobra.Command, name string) ([]arborist.Target[string], error) {
	in, err := open(cmd, name)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	objects, err := decodeObjects(in)
	if err != nil {
		return nil, err
	}

	return arborist.MapTargetsFunc(arborist.StringID, objects, a.keyOptions()...), nil
}

// treeObject renders a Hierarchy as its record plus a children field.
func treeObject(h *arborist.Hierarchy[map[string]any]) map[string]any {
	object := make(map[string]any, len(h.Value())+1)
	for key, value := range h.Value() {
		object[key] = value
	}

	children := h.Children()
	rendered := make([]map[string]any, len(children))
	for index, child := range children {
		rendered[index] = treeObject(child)
	}
	object[childrenKey] = rendered

	return object
}

func writeJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}
