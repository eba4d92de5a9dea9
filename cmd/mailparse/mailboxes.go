package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emersion/go-imap/utf7"
	"github.com/modfin/mailparse/envelope"
	"github.com/spf13/cobra"
)

func newMailboxesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mailboxes <dir> [name...]",
		Short: "List the mbox files of a directory with their message counts",
		Long: "List the mbox files of a directory with their message counts. File names " +
			"are IMAP modified UTF-7 as written by mail clients and are shown decoded. " +
			"Given names select mailboxes by their decoded name.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			var files []string
			if len(args) > 1 {
				for _, name := range args[1:] {
					encoded, err := utf7.Encoding.NewEncoder().String(name)
					if err != nil {
						return fmt.Errorf("mailbox %q: %w", name, err)
					}
					files = append(files, encoded)
				}
			} else {
				entries, err := os.ReadDir(dir)
				if err != nil {
					return err
				}
				for _, e := range entries {
					if !e.IsDir() {
						files = append(files, e.Name())
					}
				}
			}

			log := logger(cmd.ErrOrStderr())
			for _, file := range files {
				name, err := utf7.Encoding.NewDecoder().String(file)
				if err != nil {
					log.Warn("undecodable mailbox name", "file", file, "err", err)
					name = file
				}
				n, err := countMessages(cmd.Context(), filepath.Join(dir, file))
				if err != nil {
					return fmt.Errorf("mailbox %q: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, n)
			}
			return nil
		},
	}
}

func countMessages(ctx context.Context, path string) (int, error) {
	n := 0
	err := envelope.ReadMboxFile(ctx, path, func(*envelope.Envelope) error {
		n++
		return nil
	})
	return n, err
}
