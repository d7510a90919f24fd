package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	minRank int64
	maxRank int64
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Group role metadata lookups",
}

var groupRoleCmd = &cobra.Command{
	Use:   "role <group-id> <rank>",
	Short: "Show the group role with the given rank",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setUp()

		role, err := newClient().GetGroupRank(cmd.Context(), parseIDArg(args[0]), parseIDArg(args[1]))
		if err != nil {
			log.Fatal().Err(err).Msg("group role lookup failed")
		}
		if role == nil {
			fmt.Fprintln(os.Stderr, "the group has no role with that rank")
			os.Exit(1)
		}
		fmt.Println(string(role))
	},
}

var groupRolesCmd = &cobra.Command{
	Use:   "roles <group-id>",
	Short: "List group roles with ranks inside [min, max]",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setUp()

		roles, err := newClient().GetGroupRanks(cmd.Context(), parseIDArg(args[0]), minRank, maxRank)
		if err != nil {
			log.Fatal().Err(err).Msg("group roles lookup failed")
		}
		printJSON(roles)
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.AddCommand(groupRoleCmd)
	groupCmd.AddCommand(groupRolesCmd)

	groupRolesCmd.Flags().Int64Var(&minRank, "min", 0, "minimum rank, inclusive")
	groupRolesCmd.Flags().Int64Var(&maxRank, "max", 255, "maximum rank, inclusive")
}
