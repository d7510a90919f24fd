package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Identity and inventory lookups for a single account",
}

var userIDCmd = &cobra.Command{
	Use:   "id <username>",
	Short: "Resolve a username to its account id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setUp()

		id, err := newClient().GetIDFromUsername(cmd.Context(), args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("id lookup failed")
		}
		if id == nil {
			fmt.Fprintln(os.Stderr, "no account with that username")
			os.Exit(1)
		}
		fmt.Println(*id)
	},
}

var userNameCmd = &cobra.Command{
	Use:   "name <user-id>",
	Short: "Resolve an account id to its username",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setUp()

		username, err := newClient().GetUsernameFromID(cmd.Context(), parseIDArg(args[0]))
		if err != nil {
			log.Fatal().Err(err).Msg("username lookup failed")
		}
		fmt.Println(username)
	},
}

var userRolesCmd = &cobra.Command{
	Use:   "roles <user-id>",
	Short: "List the rank the user holds in each of their groups",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setUp()

		ranks, err := newClient().GetUserRoles(cmd.Context(), parseIDArg(args[0]))
		if err != nil {
			log.Fatal().Err(err).Msg("group roles lookup failed")
		}
		printJSON(ranks)
	},
}

var userHasAssetCmd = &cobra.Command{
	Use:   "has-asset <user-id> <asset-type> <item-id>",
	Short: "Check whether the user owns an inventory item",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		setUp()

		owned, err := newClient().HasAsset(cmd.Context(), parseIDArg(args[0]), parseIDArg(args[2]), args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("inventory lookup failed")
		}
		fmt.Println(owned)
	},
}

var userCheckCodeCmd = &cobra.Command{
	Use:   "check-code <user-id> <code>",
	Short: "Check whether a verification code appears on the user's profile",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setUp()

		match, err := newClient().CheckCode(cmd.Context(), parseIDArg(args[0]), args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("code check failed")
		}
		fmt.Println(match)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userIDCmd)
	userCmd.AddCommand(userNameCmd)
	userCmd.AddCommand(userRolesCmd)
	userCmd.AddCommand(userHasAssetCmd)
	userCmd.AddCommand(userCheckCodeCmd)
}

func parseIDArg(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		log.Fatal().Str("arg", arg).Msg("expected a decimal integer id")
	}
	return id
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("could not encode result")
	}
	fmt.Println(string(out))
}
