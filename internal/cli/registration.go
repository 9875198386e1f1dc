package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/coursebook/internal/registry"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

var registrationSpec = kindSpec[types.Registration, types.RegistrationInput]{
	use:     "registration",
	noun:    "registration",
	created: "Student registered successfully",
	updated: "Registration updated successfully",
	deleted: "Student unregistered successfully",
	prompt:  "Are you sure you want to unregister this student?",
	repo:    (*registry.Registry).Registrations,
}

var registrationHeaders = []string{"ID", "NAME", "EMAIL", "OFFERING", "REGISTERED"}

func newRegistrationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     registrationSpec.use,
		Aliases: []string{"reg"},
		Short:   "Manage student registrations for course offerings",
	}
	show := func(cmd *cobra.Command, reg *registry.Registry, r types.Registration) error {
		return printRegistrations(cmd, reg, []types.Registration{r})
	}
	cmd.AddCommand(
		newRegistrationListCmd(a),
		newGetCmd(a, registrationSpec, show),
		newRegistrationCreateCmd(a),
		newRegistrationUpdateCmd(a),
		newDeleteCmd(a, registrationSpec),
	)
	return cmd
}

func newRegistrationListCmd(a *app) *cobra.Command {
	var byOffering, all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List student registrations",
		Long: `List shows every registration with the offering it belongs to.

Use --by-offering to group registrations under each offering. Offerings
without students are left out unless --all is given.

Example:
  coursebook registration list
  coursebook registration list --by-offering
  coursebook registration list --by-offering --all --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			if byOffering {
				rosters, err := reg.RegistrationsByOffering(cmd.Context())
				if err != nil {
					return classify(err)
				}
				if !all {
					rosters = withStudents(rosters)
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), rosters)
				}
				printRosters(cmd, rosters)
				return nil
			}

			registrations, err := reg.Registrations().List(cmd.Context())
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), registrations)
			}
			return printRegistrations(cmd, reg, registrations)
		},
	}
	cmd.Flags().BoolVar(&byOffering, "by-offering", false, "group registrations by offering")
	cmd.Flags().BoolVar(&all, "all", false, "with --by-offering, include offerings without registrations")
	return cmd
}

func bindRegistrationFlags(cmd *cobra.Command, in *types.RegistrationInput) {
	cmd.Flags().StringVar(&in.OfferingID, "offering", "", "offering ID")
	cmd.Flags().StringVar(&in.Name, "name", "", "student name")
	cmd.Flags().StringVar(&in.Email, "email", "", "student email")
}

func newRegistrationCreateCmd(a *app) *cobra.Command {
	var in types.RegistrationInput
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Register a student for an offering",
		Example: `  coursebook registration create --offering <offering-id> --name "Asha Rao" --email asha@example.com`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			r, err := reg.Registrations().Create(cmd.Context(), in)
			if err != nil {
				return classify(err)
			}
			return a.printResult(cmd, registrationSpec.created, r)
		},
	}
	bindRegistrationFlags(cmd, &in)
	return cmd
}

func newRegistrationUpdateCmd(a *app) *cobra.Command {
	var in types.RegistrationInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a registration",
		Long:  "Update replaces the offering, name or email of a registration. Flags not\ngiven keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			current, err := reg.Registrations().Get(cmd.Context(), args[0])
			if err != nil {
				return classify(err)
			}
			if !cmd.Flags().Changed("offering") {
				in.OfferingID = current.OfferingID
			}
			if !cmd.Flags().Changed("name") {
				in.Name = current.Name
			}
			if !cmd.Flags().Changed("email") {
				in.Email = current.Email
			}

			r, err := reg.Registrations().Update(cmd.Context(), args[0], in)
			if err != nil {
				return classify(err)
			}
			return a.printResult(cmd, registrationSpec.updated, r)
		},
	}
	bindRegistrationFlags(cmd, &in)
	return cmd
}

// printRegistrations prints registrations with their offering labels.
func printRegistrations(cmd *cobra.Command, reg *registry.Registry, registrations []types.Registration) error {
	labels, err := reg.OfferingLabels(cmd.Context())
	if err != nil {
		return classify(err)
	}
	rows := make([][]string, len(registrations))
	for i, r := range registrations {
		label, ok := labels[r.OfferingID]
		if !ok {
			label = registry.UnknownOfferingLabel
		}
		rows[i] = []string{r.ID, r.Name, r.Email, label, r.RegisteredAt.Local().Format(timeLayout)}
	}
	printTable(cmd.OutOrStdout(), "registration", registrationHeaders, rows)
	return nil
}

// withStudents drops rosters with no registrations.
func withStudents(rosters []registry.OfferingRoster) []registry.OfferingRoster {
	out := make([]registry.OfferingRoster, 0, len(rosters))
	for _, r := range rosters {
		if len(r.Registrations) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// printRosters prints one section per offering listing its students.
func printRosters(cmd *cobra.Command, rosters []registry.OfferingRoster) {
	w := cmd.OutOrStdout()
	if len(rosters) == 0 {
		fmt.Fprintln(w, "No registrations found.")
		return
	}
	for i, r := range rosters {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d registered)\n", r.Label, len(r.Registrations))
		for _, s := range r.Registrations {
			fmt.Fprintf(w, "  %s <%s>  %s\n", s.Name, s.Email, s.ID)
		}
	}
}
