package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/capacity-sim/capacity-sim/sim/scenario"
)

// defaultsCmd prints the default scenario as a YAML file usable with run --scenario
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default scenario as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeDefaults(os.Stdout); err != nil {
			logrus.Fatalf("Writing defaults: %v", err)
		}
	},
}

func writeDefaults(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scenario.Default()); err != nil {
		return err
	}
	return enc.Close()
}
