package main

import (
	"fmt"

	"github.com/modfin/mailparse/utils"
	"github.com/spf13/cobra"
)

func newHeadersCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "headers [file]",
		Short: "Print the decoded header fields of a message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseInput(cmd, args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, f := range m.Headers {
				key, err := f.Key()
				if err != nil {
					key = string(f.RawKey)
				}
				v := f.Value()
				if raw {
					v = string(f.RawValue)
				}
				fmt.Fprintf(w, "%s: %s\n", key, v)
			}
			if raw {
				return nil
			}

			if v, ok := m.Headers.FirstValue("Date"); ok {
				if t, err := utils.ParseDate(v); err == nil {
					fmt.Fprintf(w, "\n# date: %s\n", t.UTC().Format("2006-01-02T15:04:05Z"))
				}
			}
			results, err := m.AuthenticationResults()
			for _, r := range results {
				for _, res := range r.Results {
					fmt.Fprintf(w, "# auth %s: %T %+v\n", r.Identifier, res, res)
				}
			}
			if err != nil {
				logger(cmd.ErrOrStderr()).Warn("bad Authentication-Results", "err", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print values as found in the message")
	return cmd
}
