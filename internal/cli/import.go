package cli

import (
	"fmt"

	"notebook/internal/config"
	"notebook/internal/notes"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load notes from a YAML file into the configured store",
		Long: `import reads a YAML document with a top-level "notes" list (id, title,
content, updated_at) and writes it to the configured store. Notes without an
id get a random UUID. The memory store is rejected since it does not outlive
the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Store.Driver == config.DriverMemory {
				return fmt.Errorf("import into the %s store would be discarded; choose sqlite or dir", config.DriverMemory)
			}

			items, err := notes.ReadSeedFile(args[0], nil)
			if err != nil {
				return err
			}

			store, err := notes.Open(cmd.Context(), a.cfg.Store, a.logger.Named("store"))
			if err != nil {
				return fmt.Errorf("open note store: %w", err)
			}
			defer store.Close()

			writer, ok := store.(notes.Writer)
			if !ok {
				return fmt.Errorf("%w: %s", notes.ErrReadOnly, a.cfg.Store.Driver)
			}
			if err := writer.PutNotes(cmd.Context(), items); err != nil {
				return fmt.Errorf("import notes: %w", err)
			}

			a.logger.Info("notes imported", zap.String("file", args[0]), zap.Int("notes", len(items)))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d notes\n", len(items))
			return nil
		},
	}
}
