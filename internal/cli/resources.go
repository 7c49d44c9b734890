package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

var studentsCmd = &cobra.Command{
	Use:   "students [id]",
	Short: "List students, or show one with its fees and attendance",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}
		if len(args) == 0 {
			students, err := e.svc.ListStudents(cmd.Context(), e.token)
			if err != nil {
				return runtimeErr(err)
			}
			return printJSON(students)
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		student, err := e.svc.GetStudent(cmd.Context(), id, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		fees, err := e.svc.GetStudentFees(cmd.Context(), id, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		attendance, err := e.svc.GetStudentAttendance(cmd.Context(), id, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		return printJSON(map[string]any{
			"student":    student,
			"fees":       fees,
			"attendance": attendance,
		})
	},
}

var teachersCmd = &cobra.Command{
	Use:   "teachers [id]",
	Short: "List teachers, or show one with the classes they teach",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}
		if len(args) == 0 {
			teachers, err := e.svc.ListTeachers(cmd.Context(), e.token)
			if err != nil {
				return runtimeErr(err)
			}
			return printJSON(teachers)
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		teacher, err := e.svc.GetTeacher(cmd.Context(), id, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		classes, err := e.svc.GetTeacherClasses(cmd.Context(), id, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		return printJSON(map[string]any{
			"teacher": teacher,
			"classes": classes,
		})
	},
}

var classesCmd = &cobra.Command{
	Use:   "classes [id]",
	Short: "List classes, or show one with its students and timetable",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}
		if len(args) == 0 {
			classes, err := e.svc.ListClasses(cmd.Context(), e.token)
			if err != nil {
				return runtimeErr(err)
			}
			return printJSON(classes)
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		class, err := e.svc.GetClass(cmd.Context(), id, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		students, err := e.svc.GetClassStudents(cmd.Context(), id, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		timetable, err := e.svc.GetClassTimetable(cmd.Context(), id, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		return printJSON(map[string]any{
			"class":     class,
			"students":  students,
			"timetable": timetable,
		})
	},
}

var timetableClassID int64

var timetableCmd = &cobra.Command{
	Use:   "timetable",
	Short: "Show timetable entries, optionally for a single class",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}
		if timetableClassID > 0 {
			entries, err := e.svc.GetTimetableByClass(cmd.Context(), timetableClassID, e.token)
			if err != nil {
				return runtimeErr(err)
			}
			return printJSON(entries)
		}
		entries, err := e.svc.ListTimetable(cmd.Context(), e.token)
		if err != nil {
			return runtimeErr(err)
		}
		return printJSON(entries)
	},
}

func init() {
	timetableCmd.Flags().Int64Var(&timetableClassID, "class", 0, "filter to a class id")
}
