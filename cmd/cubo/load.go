package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/cubo"
	"github.com/hupe1980/cubo/core"
)

func loadCmd(flags *globalFlags) *cobra.Command {
	var (
		controller bool
		compact    bool
	)

	cmd := &cobra.Command{
		Use:   "load SOURCE [SOURCE...]",
		Short: "Load the first source, merge the rest and print the result",
		Example: `  cubo load ./application.json
  cubo load ./defaults.json https://example.test/site.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}

			var obj core.Object = a.cubo.NewDataObject(nil)
			if controller {
				obj = cubo.Create(a.cubo, core.NewController, nil, obj)
			}

			if err := a.apply(cmd.Context(), obj, args); err != nil {
				return err
			}

			var out []byte
			if compact {
				out, err = json.Marshal(obj)
			} else {
				out, err = json.MarshalIndent(obj, "", "  ")
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().BoolVar(&controller, "controller", false, "load into a Controller created by a DataObject")
	cmd.Flags().BoolVar(&compact, "compact", false, "print compact JSON")

	return cmd
}
