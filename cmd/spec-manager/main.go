// Command spec-manager maintains the spec catalog in PostgreSQL: import
// documents, flip their active flags, and list what servers can serve.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/specview/specview/pkg/loader"
	"github.com/specview/specview/pkg/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type manager struct {
	repo   *storage.Repository
	closer func()
}

func newRootCommand() *cobra.Command {
	var databaseURL string
	m := &manager{}

	cmd := &cobra.Command{
		Use:           "spec-manager",
		Short:         "Manage the spec catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if databaseURL == "" {
				databaseURL = os.Getenv("SPECVIEW_DATABASE_URL")
			}
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			db, err := storage.Open(cmd.Context(), databaseURL, logger)
			if err != nil {
				return err
			}
			if err := storage.Migrate(cmd.Context(), db); err != nil {
				db.Close()
				return err
			}
			m.repo = storage.NewRepository(db)
			m.closer = func() {
				db.Close()
				logger.Sync()
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if m.closer != nil {
				m.closer()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "",
		"PostgreSQL URL (or SPECVIEW_DATABASE_URL)")

	cmd.AddCommand(m.newListCommand(false))
	cmd.AddCommand(m.newListCommand(true))
	cmd.AddCommand(m.newImportCommand())
	cmd.AddCommand(m.newSetActiveCommand("activate", true))
	cmd.AddCommand(m.newSetActiveCommand("deactivate", false))
	cmd.AddCommand(m.newDeleteCommand())
	return cmd
}

func (m *manager) newListCommand(activeOnly bool) *cobra.Command {
	use, short := "list", "List all catalog specs"
	if activeOnly {
		use, short = "active", "List active catalog specs"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				docs []*storage.SpecDocument
				err  error
			)
			if activeOnly {
				docs, err = m.repo.Active(cmd.Context())
			} else {
				docs, err = m.repo.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog is empty")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTITLE\tVERSION\tFORMAT\tSIZE\tACTIVE")
			for _, doc := range docs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%t\n",
					doc.ID, doc.Name, deref(doc.Title), deref(doc.Version),
					doc.Format, doc.ContentSize, doc.IsActive)
			}
			return w.Flush()
		},
	}
}

func (m *manager) newImportCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a spec file into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			// Parse before storing so the catalog never holds a document the
			// server cannot load.
			parsed, err := loader.LoadBytes(data, args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = parsed.Doc.Info.Title
			}
			doc := storage.NewSpecDocument(name, string(data), parsed.Format)
			doc.Title = &parsed.Doc.Info.Title
			doc.Version = &parsed.Doc.Info.Version
			if err := m.repo.Create(cmd.Context(), doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %q as id %d\n", doc.Name, doc.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "catalog name (defaults to the document title)")
	return cmd
}

func (m *manager) newSetActiveCommand(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: use + " a catalog spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id must be an integer: %q", args[0])
			}
			if err := m.repo.SetActive(cmd.Context(), id, active); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "spec %d: active=%t\n", id, active)
			return nil
		},
	}
}

func (m *manager) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a catalog spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id must be an integer: %q", args[0])
			}
			if err := m.repo.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted spec %d\n", id)
			return nil
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
