package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/coursebook/internal/registry"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// namedSpec extends kindSpec for kinds whose only mutable field is a name.
type namedSpec[T types.Record, In any] struct {
	kindSpec[T, In]
	short  string
	input  func(name string) In
	fields func(T) (name, created string)
}

var courseTypeSpec = namedSpec[types.CourseType, types.CourseTypeInput]{
	kindSpec: kindSpec[types.CourseType, types.CourseTypeInput]{
		use:     "course-type",
		noun:    "course type",
		created: "Course type created successfully",
		updated: "Course type updated successfully",
		deleted: "Course type deleted successfully",
		prompt:  "Are you sure you want to delete this course type?",
		inUse:   "Cannot delete: This course type is used in course offerings",
		repo:    (*registry.Registry).CourseTypes,
	},
	short: "Manage course types (e.g. Individual, Group, Special)",
	input: func(name string) types.CourseTypeInput { return types.CourseTypeInput{Name: name} },
	fields: func(ct types.CourseType) (string, string) {
		return ct.Name, ct.CreatedAt.Local().Format(timeLayout)
	},
}

var courseSpec = namedSpec[types.Course, types.CourseInput]{
	kindSpec: kindSpec[types.Course, types.CourseInput]{
		use:     "course",
		noun:    "course",
		created: "Course created successfully",
		updated: "Course updated successfully",
		deleted: "Course deleted successfully",
		prompt:  "Are you sure you want to delete this course?",
		inUse:   "Cannot delete: This course is used in course offerings",
		repo:    (*registry.Registry).Courses,
	},
	short: "Manage courses (e.g. Hindi, English, Urdu)",
	input: func(name string) types.CourseInput { return types.CourseInput{Name: name} },
	fields: func(c types.Course) (string, string) {
		return c.Name, c.CreatedAt.Local().Format(timeLayout)
	},
}

func newCourseTypeCmd(a *app) *cobra.Command { return newNamedCmd(a, courseTypeSpec) }

func newCourseCmd(a *app) *cobra.Command { return newNamedCmd(a, courseSpec) }

func newNamedCmd[T types.Record, In any](a *app, s namedSpec[T, In]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   s.use,
		Short: s.short,
	}

	show := func(cmd *cobra.Command, _ *registry.Registry, rec T) error {
		name, created := s.fields(rec)
		printTable(cmd.OutOrStdout(), s.noun, []string{"ID", "NAME", "CREATED"},
			[][]string{{rec.RecordID(), name, created}})
		return nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List all %ss", s.noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			records, err := s.repo(reg).List(cmd.Context())
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), records)
			}
			rows := make([][]string, len(records))
			for i, rec := range records {
				name, created := s.fields(rec)
				rows[i] = []string{rec.RecordID(), name, created}
			}
			printTable(cmd.OutOrStdout(), s.noun, []string{"ID", "NAME", "CREATED"}, rows)
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a " + s.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			rec, err := s.repo(reg).Create(cmd.Context(), s.input(args[0]))
			if err != nil {
				return classify(err)
			}
			return a.printResult(cmd, s.created, rec)
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a " + s.noun,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			rec, err := s.repo(reg).Update(cmd.Context(), args[0], s.input(args[1]))
			if err != nil {
				return classify(err)
			}
			return a.printResult(cmd, s.updated, rec)
		},
	}

	cmd.AddCommand(list, newGetCmd(a, s.kindSpec, show), create, update, newDeleteCmd(a, s.kindSpec))
	return cmd
}
