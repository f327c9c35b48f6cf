// Command aapt2go compiles Android resource source files to intermediate
// containers and links those containers into a resources.arsc-bearing
// archive, grounded on spec.md's compile/link split (§4, §5).
package main

import (
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *log.Helper
)

func newLogger() *log.Helper {
	level := log.LevelError
	if verbose {
		level = log.LevelInfo
	}
	base := log.NewStdLogger(os.Stdout)
	return log.NewHelper(log.NewFilter(base, log.FilterLevel(level)))
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "aapt2go",
		Short: "An Android resource compiler and linker",
		Long:  "aapt2go compiles resource source files into flat containers and links them into a packaged resource table",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("aapt2go 0.1.0")
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newLinkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
