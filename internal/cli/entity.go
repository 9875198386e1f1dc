package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/coursebook/internal/registry"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// kindSpec describes how one entity kind appears on the command line.
type kindSpec[T types.Record, In any] struct {
	use     string // command name, e.g. "course-type"
	noun    string // table noun, e.g. "course type"
	created string
	updated string
	deleted string
	prompt  string // delete confirmation
	inUse   string // delete refused because of references
	repo    func(*registry.Registry) *registry.Repo[T, In]
}

// userMessage replaces the text of a user error while keeping it matchable.
type userMessage struct {
	msg string
	err error
}

func (e userMessage) Error() string { return e.msg }
func (e userMessage) Unwrap() error { return e.err }

// printResult writes rec as JSON in --json mode, otherwise msg and the id.
func (a *app) printResult(cmd *cobra.Command, msg string, rec types.Record) error {
	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), rec)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", msg, rec.RecordID())
	return nil
}

func newGetCmd[T types.Record, In any](a *app, s kindSpec[T, In], show func(cmd *cobra.Command, reg *registry.Registry, rec T) error) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + s.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			rec, err := s.repo(reg).Get(cmd.Context(), args[0])
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rec)
			}
			return show(cmd, reg, rec)
		},
	}
}

func newDeleteCmd[T types.Record, In any](a *app, s kindSpec[T, In]) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + s.noun,
		Long: fmt.Sprintf("Delete removes a %s by its ID. A record that other records\n"+
			"still reference cannot be deleted.", s.noun),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			repo := s.repo(reg)
			if _, err := repo.Get(cmd.Context(), id); err != nil {
				return classify(err)
			}
			ok, err := confirmed(cmd, yes, s.prompt)
			if err != nil || !ok {
				return err
			}

			if err := repo.Delete(cmd.Context(), id); err != nil {
				if errors.Is(err, types.ErrInUse) {
					return userMessage{msg: s.inUse, err: err}
				}
				return classify(err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"deleted": id,
					"kind":    string(repo.Kind()),
					"status":  "success",
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", s.deleted, id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
