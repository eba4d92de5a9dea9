package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/modfin/mailparse"
	"github.com/modfin/mailparse/utils"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the part tree of a message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseInput(cmd, args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			m.Walk(func(p *mailparse.Part) bool {
				fmt.Fprintf(w, "%s%s %s", strings.Repeat("  ", p.Depth), pathLabel(p), p.ContentType.MediaType)
				if len(p.Subparts) > 0 {
					fmt.Fprintf(w, " (%d parts)\n", len(p.Subparts))
					return true
				}
				fmt.Fprintf(w, " charset=%s size=%d", p.ContentType.Charset, len(p.RawBody()))
				if p.IsAttachment() {
					fmt.Fprint(w, " attachment")
				}
				if name, err := p.Filename(); err == nil {
					fmt.Fprintf(w, " filename=%q", name)
				}
				if b, err := p.Bytes(); err == nil {
					fmt.Fprintf(w, " digest=%s", utils.ContentID(time.Time{}, b))
				}
				fmt.Fprintln(w)
				return true
			})
			return nil
		},
	}
}

func pathLabel(p *mailparse.Part) string {
	if p.Path == "" {
		return "-"
	}
	return p.Path
}
