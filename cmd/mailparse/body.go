package main

import (
	"fmt"

	"github.com/modfin/mailparse"
	"github.com/modfin/mailparse/charset"
	"github.com/spf13/cobra"
)

func newBodyCmd() *cobra.Command {
	var (
		path   string
		detect bool
		binary bool
	)
	cmd := &cobra.Command{
		Use:   "body [file]",
		Short: "Print the decoded body of one part",
		Long: "Print the decoded body of one part. Without --part the first text/plain " +
			"part is chosen, falling back to the message itself.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseInput(cmd, args)
			if err != nil {
				return err
			}

			p := m
			if path != "" {
				var ok bool
				if p, ok = m.Find(path); !ok {
					return fmt.Errorf("no part %q", path)
				}
			} else if t, ok := m.TextPart(mailparse.MimeTextPlain); ok {
				p = t
			}

			w := cmd.OutOrStdout()
			if binary {
				b, err := p.Bytes()
				if err != nil {
					return err
				}
				_, err = w.Write(b)
				return err
			}

			if _, declared := p.ContentType.Params.Get("charset"); detect && !declared {
				b, err := p.Bytes()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(w, charset.DecodeDetected(b))
				return err
			}
			s, err := p.Text()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, s)
			return err
		},
	}
	cmd.Flags().StringVar(&path, "part", "", `part path such as "1.2"`)
	cmd.Flags().BoolVar(&detect, "detect", false, "guess the charset when none is declared")
	cmd.Flags().BoolVar(&binary, "binary", false, "write the transfer-decoded bytes without charset conversion")
	return cmd
}
