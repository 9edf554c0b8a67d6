package cli

import (
	"fmt"

	"notebook/internal/notes"
	"notebook/internal/web/components"
	"notebook/internal/web/notepage"
	"github.com/spf13/cobra"
)

func newShowCommand(a *app) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a note from the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := notes.Open(ctx, a.cfg.Store, a.logger.Named("store"))
			if err != nil {
				return fmt.Errorf("open note store: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if asHTML {
				component, err := notepage.New(store).Render(ctx, notepage.Params{ID: args[0]})
				if err != nil {
					return err
				}
				if err := component.Render(ctx, out); err != nil {
					return fmt.Errorf("render note: %w", err)
				}
				_, err = fmt.Fprintln(out)
				return err
			}

			note, err := store.GetNote(ctx, args[0])
			if err != nil {
				return err
			}
			if note == nil {
				_, err = fmt.Fprintln(out, components.EmptyStateMessage)
				return err
			}

			_, err = fmt.Fprintf(out, "# %s\n\nLast updated on %s\n\n%s\n",
				components.NoteTitle(note),
				components.FormatUpdatedAt(note.UpdatedAt),
				note.Content)
			return err
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "print the rendered note page fragment instead of markdown")
	return cmd
}
