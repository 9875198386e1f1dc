package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/coursebook/internal/registry"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

var offeringSpec = kindSpec[types.Offering, types.OfferingInput]{
	use:     "offering",
	noun:    "offering",
	created: "Course offering created successfully",
	updated: "Course offering updated successfully",
	deleted: "Course offering deleted successfully",
	prompt:  "Are you sure you want to delete this offering?",
	inUse:   "Cannot delete: This offering has student registrations",
	repo:    (*registry.Registry).Offerings,
}

var offeringHeaders = []string{"ID", "OFFERING", "CREATED"}

func newOfferingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   offeringSpec.use,
		Short: "Manage course offerings (a course delivered as a course type)",
	}
	show := func(cmd *cobra.Command, reg *registry.Registry, o types.Offering) error {
		return printOfferings(cmd, reg, []types.Offering{o})
	}
	cmd.AddCommand(
		newOfferingListCmd(a),
		newGetCmd(a, offeringSpec, show),
		newOfferingCreateCmd(a),
		newOfferingUpdateCmd(a),
		newDeleteCmd(a, offeringSpec),
	)
	return cmd
}

func newOfferingListCmd(a *app) *cobra.Command {
	var courseTypeID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List course offerings",
		Long: `List shows every course offering with its course type and course.

Use --course-type to show only the offerings of one course type.

Example:
  coursebook offering list
  coursebook offering list --course-type <id>
  coursebook offering list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			offerings, err := reg.OfferingsByCourseType(cmd.Context(), courseTypeID)
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), offerings)
			}
			return printOfferings(cmd, reg, offerings)
		},
	}
	cmd.Flags().StringVar(&courseTypeID, "course-type", "", "only offerings of this course type ID")
	return cmd
}

func newOfferingCreateCmd(a *app) *cobra.Command {
	var in types.OfferingInput
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a course offering",
		Example: "  coursebook offering create --course <course-id> --course-type <course-type-id>",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			o, err := reg.Offerings().Create(cmd.Context(), in)
			if err != nil {
				return classify(err)
			}
			return a.printResult(cmd, offeringSpec.created, o)
		},
	}
	cmd.Flags().StringVar(&in.CourseID, "course", "", "course ID")
	cmd.Flags().StringVar(&in.CourseTypeID, "course-type", "", "course type ID")
	return cmd
}

func newOfferingUpdateCmd(a *app) *cobra.Command {
	var in types.OfferingInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the course or course type of an offering",
		Long:  "Update replaces the course and/or course type of an offering. Flags not\ngiven keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			current, err := reg.Offerings().Get(cmd.Context(), args[0])
			if err != nil {
				return classify(err)
			}
			if !cmd.Flags().Changed("course") {
				in.CourseID = current.CourseID
			}
			if !cmd.Flags().Changed("course-type") {
				in.CourseTypeID = current.CourseTypeID
			}

			o, err := reg.Offerings().Update(cmd.Context(), args[0], in)
			if err != nil {
				return classify(err)
			}
			return a.printResult(cmd, offeringSpec.updated, o)
		},
	}
	cmd.Flags().StringVar(&in.CourseID, "course", "", "course ID")
	cmd.Flags().StringVar(&in.CourseTypeID, "course-type", "", "course type ID")
	return cmd
}

// printOfferings prints offerings as a table labelled "<course type> - <course>".
func printOfferings(cmd *cobra.Command, reg *registry.Registry, offerings []types.Offering) error {
	labels, err := reg.OfferingLabels(cmd.Context())
	if err != nil {
		return classify(err)
	}
	rows := make([][]string, len(offerings))
	for i, o := range offerings {
		label, ok := labels[o.ID]
		if !ok {
			if label, err = reg.OfferingLabel(cmd.Context(), o); err != nil {
				return classify(err)
			}
		}
		rows[i] = []string{o.ID, label, o.CreatedAt.Local().Format(timeLayout)}
	}
	printTable(cmd.OutOrStdout(), "offering", offeringHeaders, rows)
	return nil
}
