package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remapd/remapd/internal/ir"
	"github.com/remapd/remapd/internal/keys"
)

// LayerInfo is one layer's summary in the layers command output.
type LayerInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Mods     string `json:"mods,omitempty"`
	Bindings int    `json:"bindings"`
}

// NewLayersCommand creates the layers command.
func NewLayersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "layers <config-file>",
		Short:         "List the layers a config declares",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayers(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runLayers(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	c := newCompiler(opts, formatter)

	res, err := c.Compile(path)
	if err != nil {
		return outputFatal(formatter, err)
	}

	infos := make([]LayerInfo, len(res.Config.Layers))
	for i, layer := range res.Config.Layers {
		infos[i] = LayerInfo{
			Name:     layer.Name,
			Type:     layer.Type.String(),
			Mods:     keys.FormatModSet(layer.Mods),
			Bindings: countBindings(&layer),
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}

	for _, info := range infos {
		mods := info.Mods
		if mods == "" {
			mods = "-"
		}
		fmt.Fprintf(formatter.Writer, "%-20s %-10s %-6s %d binding(s)\n",
			info.Name, info.Type, mods, info.Bindings)
	}
	return nil
}

func countBindings(layer *ir.Layer) int {
	n := 0
	for _, d := range layer.Keymap {
		if d != nil {
			n++
		}
	}
	return n
}
