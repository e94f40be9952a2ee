// Command qv4gc is a small inspection CLI over this module's GC/shape
// engine: a root command with persistent flags, one file per subcommand,
// each wiring itself into rootCmd from its own init().
package main

import "github.com/neuroradiology/qtdeclarative/cmd/qv4gc/cmd"

func main() {
	cmd.Execute()
}
