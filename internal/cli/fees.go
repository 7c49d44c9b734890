package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campushq/schoolapi/common/model"
)

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Work with fee records",
}

var feesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all fee records",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}
		fees, err := e.svc.ListFees(cmd.Context(), e.token)
		if err != nil {
			return runtimeErr(err)
		}
		return printJSON(fees)
	},
}

var feesPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a fee as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := e.svc.PayFee(cmd.Context(), id, e.token); err != nil {
			return runtimeErr(err)
		}
		fmt.Fprintf(os.Stdout, "Fee %d marked as paid.\n", id)
		return nil
	},
}

var leavesCmd = &cobra.Command{
	Use:   "leaves",
	Short: "Work with leave requests",
}

var leavesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests visible to the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}
		leaves, err := e.svc.ListLeaveRequests(cmd.Context(), e.token)
		if err != nil {
			return runtimeErr(err)
		}
		return printJSON(leaves)
	},
}

var leaveStatusCmds = []struct {
	use    string
	status model.LeaveStatus
}{
	{"approve <id>", model.LeaveApproved},
	{"reject <id>", model.LeaveRejected},
}

func newLeaveStatusCmd(use string, status model.LeaveStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Set a leave request to %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			if err := e.requireToken(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			leave, err := e.svc.SetLeaveStatus(cmd.Context(), id, status, e.token)
			if err != nil {
				return runtimeErr(err)
			}
			return printJSON(leave)
		},
	}
}

func init() {
	feesCmd.AddCommand(feesListCmd)
	feesCmd.AddCommand(feesPayCmd)

	leavesCmd.AddCommand(leavesListCmd)
	for _, c := range leaveStatusCmds {
		leavesCmd.AddCommand(newLeaveStatusCmd(c.use, c.status))
	}
}
