package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/modfin/mailparse/envelope"
	"github.com/modfin/mailparse/middleware"
	"github.com/spf13/cobra"
)

type mboxFlags struct {
	senderDomains []string
	skipDeleted   bool
	authHost      string
	messageIDHost string
	out           string
	maxSize       int64
}

func newMboxCmd() *cobra.Command {
	var f mboxFlags
	cmd := &cobra.Command{
		Use:   "mbox [file]",
		Short: "List the messages of an mbox file",
		Long: "List the messages of an mbox file, one line per message. Messages can be " +
			"filtered, annotated and written to a new mbox file with --out.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}

			var w *envelope.MboxWriter
			if f.out != "" {
				file, err := os.Create(f.out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = envelope.NewMboxWriter(file)
				defer w.Close()
			}

			out := cmd.OutOrStdout()
			list := func(e *envelope.Envelope) error {
				if err := e.GetError(); err != nil {
					return err
				}
				m, err := e.Mail(parseOptions(cmd)...)
				if err != nil {
					return err
				}
				date := "-"
				if t, err := e.Date(); err == nil {
					date = t.UTC().Format("2006-01-02 15:04")
				}
				from := "-"
				if a, err := m.From(); err == nil {
					from = a.Address
				}
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%d\n", e.Index, date, from, m.Subject(), len(m.Attachments()))
				if w != nil {
					return w.Write(e)
				}
				return nil
			}

			chain := []middleware.Middleware{
				middleware.Logger(logger(cmd.ErrOrStderr())),
				middleware.Recover,
			}
			if f.skipDeleted {
				chain = append(chain, middleware.SkipDeleted)
			}
			if len(f.senderDomains) > 0 {
				chain = append(chain, middleware.FilterSenderDomains(f.senderDomains...))
			}
			if f.messageIDHost != "" {
				chain = append(chain, middleware.AddMessageID(f.messageIDHost))
			}
			if f.authHost != "" {
				chain = append(chain, middleware.AddAuthenticationResult(f.authHost))
			}
			handler := middleware.Chain(list, chain...)

			var failed int
			each := func(e *envelope.Envelope) error {
				if err := handler(e); err != nil && !errors.Is(err, middleware.ErrFiltered) {
					failed++
				}
				return nil
			}
			limit := envelope.WithMaxMessageSize(f.maxSize)

			var err error
			if path == "-" {
				err = envelope.ReadMbox(cmd.Context(), cmd.InOrStdin(), path, each, limit)
			} else {
				err = envelope.ReadMboxFile(cmd.Context(), path, each, limit)
			}
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d messages failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&f.senderDomains, "sender-domain", nil, "keep only mail from these organizational domains")
	cmd.Flags().BoolVar(&f.skipDeleted, "skip-deleted", false, "drop messages marked deleted in Status")
	cmd.Flags().StringVar(&f.authHost, "auth", "", "verify DKIM and DMARC, recording results for this host name")
	cmd.Flags().StringVar(&f.messageIDHost, "message-id", "", "add a Message-ID for this host name where missing")
	cmd.Flags().Int64Var(&f.maxSize, "max-size", 0, "flag messages larger than this many bytes as failed, 0 for no limit")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the kept messages to this mbox file")
	return cmd
}
