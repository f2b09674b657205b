package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "meshdist",
	Short: "measure the surface distance between two triangle meshes",
	Long: `meshdist compares two triangular surface meshes and reports how far
one strays from the other:
	- load meshes from RAW, VRML2, Inventor, SMF or OFF files,
	- sample one mesh's surface and measure each sample's distance to the other,
	- report mean/RMS/max error, optionally in both directions (Hausdorff mode).`,
}

// Execute adds all child commands to RootCmd and runs it. Called once
// by main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
