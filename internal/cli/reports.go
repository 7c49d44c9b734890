package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

var reportFilters []string

var reportsCmd = &cobra.Command{
	Use:       "reports <attendance|fees|academic>",
	Short:     "Generate a backend report",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"attendance", "fees", "academic"},
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}

		filters, err := parseFilters(reportFilters)
		if err != nil {
			return err
		}

		var fetch func(context.Context, map[string]string, *oauth2.Token) (*model.Report, error)
		switch args[0] {
		case "attendance":
			fetch = e.svc.GetAttendanceReport
		case "fees":
			fetch = e.svc.GetFeesReport
		case "academic":
			fetch = e.svc.GetAcademicReport
		default:
			return fmt.Errorf("unknown report type %q", args[0])
		}

		report, err := fetch(cmd.Context(), filters, e.token)
		if err != nil {
			return runtimeErr(err)
		}
		return printJSON(report)
	},
}

// parseFilters turns repeated --filter key=value flags into a param map.
func parseFilters(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(raw))
	for _, f := range raw {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", f)
		}
		filters[key] = value
	}
	return filters, nil
}

func init() {
	reportsCmd.Flags().StringArrayVar(&reportFilters, "filter", nil, "report filter as key=value (repeatable)")
}
