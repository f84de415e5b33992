package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func getCmd(flags *globalFlags) *cobra.Command {
	var def string

	cmd := &cobra.Command{
		Use:   "get SOURCE KEY",
		Short: "Print one property of a source",
		Long: `Print one property of a source as JSON.

Like DataObject.Get, a property holding 0, "", false or null counts as
absent and the --default value is printed instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}

			obj := a.cubo.NewDataObject(nil)
			if err := a.apply(cmd.Context(), obj, args[:1]); err != nil {
				return err
			}

			var fallback any
			if cmd.Flags().Changed("default") {
				fallback = def
			}

			out, err := json.Marshal(obj.Get(args[1], fallback))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&def, "default", "", "value printed when the property is absent or falsy")

	return cmd
}
