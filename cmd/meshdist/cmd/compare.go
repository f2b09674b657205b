package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/meshdist/engine"
	"github.com/arl/meshdist/loader"
	"github.com/arl/meshdist/mesh"
)

var compareCmd = &cobra.Command{
	Use:   "compare SOURCE TARGET",
	Short: "measure the surface distance from SOURCE to TARGET",
	Long: `Load SOURCE and TARGET mesh files, sample SOURCE's surface and measure
each sample's distance to the closest point on TARGET's surface. With
--symmetric, also measures TARGET to SOURCE and reports the worst of
both directions (Hausdorff distance).`,
	Args: cobra.ExactArgs(2),
	Run:  runCompare,
}

var (
	compareCfgVal       string
	compareSymmetricVal bool
	compareQuietVal     bool
)

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareCfgVal, "config", "", "settings file (YAML); flags below override its values")
	compareCmd.Flags().BoolVar(&compareSymmetricVal, "symmetric", false, "measure both directions and report the Hausdorff distance")
	compareCmd.Flags().BoolVar(&compareQuietVal, "quiet", false, "disable progress logging")
}

func runCompare(cmd *cobra.Command, args []string) {
	settings := engine.DefaultSettings()
	if compareCfgVal != "" {
		if err := unmarshalYAMLFile(compareCfgVal, &settings); err != nil {
			fmt.Println("error reading config:", err)
			os.Exit(-1)
		}
	}
	if cmd.Flags().Changed("symmetric") {
		settings.Symmetric = compareSymmetricVal
	}
	if cmd.Flags().Changed("quiet") {
		settings.Quiet = compareQuietVal
	}

	source, err := readMesh(args[0])
	check(err)
	target, err := readMesh(args[1])
	check(err)

	ctx := engine.NewContext(settings.Quiet)
	stats, err := engine.DistSurfSurf(ctx, source, target, settings)
	check(err)

	for _, msg := range ctx.Messages() {
		fmt.Println(msg)
	}
	check(engine.Report(os.Stdout, stats, target))
}

func readMesh(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loader.ReadModel(f, loader.AutoDetect)
}

func check(err error) {
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
}
