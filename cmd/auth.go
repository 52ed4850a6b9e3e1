package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/watchtime-cli/watchtime/auth"
	"github.com/watchtime-cli/watchtime/color"
	"github.com/watchtime-cli/watchtime/icon"
	"github.com/watchtime-cli/watchtime/key"
	"github.com/watchtime-cli/watchtime/log"
	"github.com/watchtime-cli/watchtime/open"
	"github.com/watchtime-cli/watchtime/report"
	"github.com/watchtime-cli/watchtime/style"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd groups the commands managing the credentials sent with reports.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the session cookie and CSRF token sent with watch time reports",
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authLoginCmd.Flags().String("session", "", "Session cookie value, skips the prompt")
	authLoginCmd.Flags().String("csrf", "", "CSRF token value, skips the prompt")
}

// authLoginCmd stores the credentials copied from a logged-in browser.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the session cookie and CSRF token in the system keyring",
	Long: `Store the session cookie and CSRF token in the system keyring.
Log in to the site in your browser, then copy the values of the "sessionid" and "csrftoken" cookies.`,
	Run: func(cmd *cobra.Command, args []string) {
		creds := auth.Credentials{
			Session:   lo.Must(cmd.Flags().GetString("session")),
			CSRFToken: lo.Must(cmd.Flags().GetString("csrf")),
		}

		if creds.Session == "" || creds.CSRFToken == "" {
			offerLoginPage()
		}

		if creds.Session == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "Session cookie (sessionid):",
			}, &creds.Session, survey.WithValidator(survey.Required)))
		}

		if creds.CSRFToken == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "CSRF token (csrftoken):",
			}, &creds.CSRFToken, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.Save(creds))
		log.Info("credentials saved to keyring")

		fmt.Printf(
			"%s credentials saved to the system keyring\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}

// offerLoginPage asks to open the site root in the browser.
func offerLoginPage() {
	page, err := report.Origin(viper.GetString(key.ReportURL))
	if err != nil {
		return
	}

	var openInBrowser bool
	err = survey.AskOne(&survey.Confirm{
		Message: fmt.Sprintf("Open %s in your browser to log in?", page),
		Default: false,
	}, &openInBrowser)

	if err == nil && openInBrowser {
		err = open.Start(page)
	}

	if err != nil || !openInBrowser {
		fmt.Println("Log in at the following URL and copy the cookies from your browser:")
		fmt.Println(page)
	}
}

func init() {
	authCmd.AddCommand(authLogoutCmd)
}

// authLogoutCmd removes the stored credentials.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credentials from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.Delete())
		fmt.Printf(
			"%s credentials removed\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

// authStatusCmd shows which credentials are stored.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credentials are stored",
	Run: func(cmd *cobra.Command, args []string) {
		creds, err := auth.Load()
		handleErr(err)

		show := func(name, value string) {
			if value == "" {
				fmt.Printf("%s %s\n", style.Bold(name), style.Fg(color.Red)("not set"))
				return
			}
			fmt.Printf("%s %s\n", style.Bold(name), style.Fg(color.Green)(auth.Mask(value)))
		}

		show("Session   ", creds.Session)
		show("CSRF token", creds.CSRFToken)

		if override := viper.GetString(key.ReportCSRFToken); override != "" {
			fmt.Println(style.Faint(fmt.Sprintf("CSRF token overridden by %s", key.ReportCSRFToken)))
		}

		if creds.Session == "" {
			handleErr(errors.New("not logged in, run \"watchtime auth login\""))
		}
	},
}
