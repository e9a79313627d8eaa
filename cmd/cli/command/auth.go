package command

import (
	"fmt"
	"time"

	"yamdb/cmd/cli/authentication"
	"yamdb/cmd/cli/command/client"
	"yamdb/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// auth.go holds the signup / token / whoami / logout commands.

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Register with the yamdb API, exchange the mailed confirmation code for a token, and manage the stored token.`,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register (or request a new confirmation code)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.SignupRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Email, _ = cmd.Flags().GetString("email")

		resp, err := client.NewHTTPClient(apiURL).Signup(cmd.Context(), &req)
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}

		color.Green("✓ Confirmation code sent to %s", resp.Email)
		fmt.Printf("Run: yamdbctl auth token -u %s -c <code>\n", resp.Username)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Exchange a confirmation code for an access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.TokenRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.ConfirmationCode, _ = cmd.Flags().GetString("code")

		resp, err := client.NewHTTPClient(apiURL).Token(cmd.Context(), &req)
		if err != nil {
			return fmt.Errorf("token exchange failed: %w", err)
		}

		if err := authentication.SaveSession(authentication.Session{
			Server:   apiURL,
			Username: req.Username,
			Token:    resp.Token,
			IssuedAt: time.Now(),
		}); err != nil {
			color.Yellow("! could not store the token in the keyring: %v", err)
			fmt.Println(resp.Token)
			return nil
		}

		color.Green("✓ Logged in as %s, token stored in the system keyring", req.Username)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile of the stored token's user",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		me, err := httpClient.Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("could not load profile: %w", err)
		}

		fmt.Printf("Username: %s\nEmail:    %s\nRole:     %s\n", me.Username, me.Email, me.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.ClearSession(apiURL); err != nil {
			return err
		}
		color.Green("✓ Logged out")
		return nil
	},
}

func init() {
	authCmd.AddCommand(signupCmd)
	authCmd.AddCommand(tokenCmd)
	authCmd.AddCommand(whoamiCmd)
	authCmd.AddCommand(logoutCmd)

	signupCmd.Flags().StringP("username", "u", "", "Username for the account")
	signupCmd.Flags().StringP("email", "e", "", "Email the confirmation code is sent to")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("email")

	tokenCmd.Flags().StringP("username", "u", "", "Username for the account")
	tokenCmd.Flags().StringP("code", "c", "", "Confirmation code from the signup mail")
	_ = tokenCmd.MarkFlagRequired("username")
	_ = tokenCmd.MarkFlagRequired("code")
}
