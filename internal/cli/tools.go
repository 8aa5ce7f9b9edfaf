package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"leantime-mcp/internal/tools"
)

func newToolsCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			withSchema, _ := cmd.Flags().GetBool("schema")

			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			descriptors := a.dispatcher.Registry().Descriptors()
			if asJSON || withSchema {
				entries := make([]map[string]interface{}, len(descriptors))
				for i, d := range descriptors {
					entry := map[string]interface{}{"name": d.Name, "description": d.Description}
					if withSchema {
						entry["inputSchema"] = d.InputSchema
					}
					entries[i] = entry
				}
				return writeJSON(cmd, map[string]interface{}{"tools": entries})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range descriptors {
				fmt.Fprintf(tw, "%s\t%s\n", d.Name, d.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Bool("json", false, "Print the listing as JSON")
	cmd.Flags().Bool("schema", false, "Include input schemas (implies --json)")

	return cmd
}

func newCallCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Run one tool and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readCallInput(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			output, err := a.dispatcher.Dispatch(cmd.Context(), args[0], input)
			if err != nil {
				return toolExitError(err)
			}
			return writeJSON(cmd, map[string]interface{}{"output": output})
		},
	}

	cmd.Flags().StringP("input", "i", "", "Tool input as inline JSON object")
	cmd.Flags().StringP("input-file", "f", "", "Tool input from a JSON or YAML file")

	return cmd
}

func newBatchCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Run a list of {name, input} requests from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return err
			}
			var requests []tools.Request
			if err := decodeDocument(data, &requests); err != nil {
				return exitError(exitInputParse, "parsing %s: %v", args[0], err)
			}

			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			results, err := a.dispatcher.DispatchBatch(cmd.Context(), requests)
			if err != nil {
				return toolExitError(err)
			}
			return writeJSON(cmd, map[string]interface{}{"results": results})
		},
	}
}

// readCallInput reads --input or --input-file.
func readCallInput(cmd *cobra.Command) (map[string]interface{}, error) {
	inline, _ := cmd.Flags().GetString("input")
	path, _ := cmd.Flags().GetString("input-file")
	if inline != "" && path != "" {
		return nil, exitError(exitInputParse, "--input and --input-file are mutually exclusive")
	}

	input := map[string]interface{}{}
	switch {
	case inline != "":
		if err := json.Unmarshal([]byte(inline), &input); err != nil {
			return nil, exitError(exitInputParse, "parsing --input: %v", err)
		}
	case path != "":
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(data)) == "" {
			return input, nil
		}
		if err := decodeDocument(data, &input); err != nil {
			return nil, exitError(exitInputParse, "parsing %s: %v", path, err)
		}
	}
	if input == nil {
		input = map[string]interface{}{}
	}
	return input, nil
}

// decodeDocument accepts JSON or YAML. JSON is decoded with encoding/json since
// YAML rejects tab indentation that JSON allows.
func decodeDocument(data []byte, v interface{}) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal([]byte(trimmed), v)
	}
	return yaml.Unmarshal(data, v)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, exitError(exitInputParse, "file not found: %s", path)
		}
		return nil, exitError(exitInputParse, "reading %s: %v", path, err)
	}
	return data, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return exitError(exitFailure, "encoding output: %v", err)
	}
	return nil
}
