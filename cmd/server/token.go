package main

import (
	"fmt"

	"alcyxob/fitness-dashboard/internal/access"
	"alcyxob/fitness-dashboard/internal/session"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var decodeTokenCmd = &cobra.Command{
	Use:   "decode-token <token>",
	Short: "Print the session claims carried by a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		claims, err := session.Decode(args[0])
		if err != nil {
			return err
		}
		bold := color.New(color.Bold).SprintFunc()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", bold("Role:"), color.CyanString(string(claims.Role)))
		fmt.Fprintf(out, "%s %d\n", bold("User ID:"), claims.UserID)
		fmt.Fprintf(out, "%s %s\n", bold("Name:"), claims.DisplayName)
		fmt.Fprintf(out, "%s %s\n", bold("Home:"), claims.HomePath())
		return nil
	},
}

var authorizeToken string

var authorizeCmd = &cobra.Command{
	Use:   "authorize <path>",
	Short: "Show what the access policy decides for a path",
	Long:  "Runs the dashboard's access policy for a path, as an anonymous visitor or with --token.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		var sess *access.Session
		if authorizeToken != "" {
			claims, err := session.Decode(authorizeToken)
			if err != nil {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "token ignored: %v\n", err)
			} else {
				sess = &access.Session{Token: authorizeToken, Role: claims.Role}
			}
		}

		decision := access.Authorize(path, sess)
		out := cmd.OutOrStdout()
		if decision.Allowed() {
			color.New(color.FgGreen, color.Bold).Fprintf(out, "ALLOW %s\n", path)
		} else {
			color.New(color.FgRed, color.Bold).Fprintf(out, "REDIRECT %s -> %s\n", path, decision.Redirect)
		}
		if role, ok := access.RequiredRole(path); ok {
			fmt.Fprintf(out, "requires role %s\n", role)
		}
		return nil
	},
}

func init() {
	authorizeCmd.Flags().StringVar(&authorizeToken, "token", "", "session token to authorize with")
}
