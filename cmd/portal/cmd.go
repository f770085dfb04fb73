package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/aussiebroadwan/partnerportal/internal/portal/app"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Partner portal API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Plain "portal" serves, so container images need no arguments.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := app.LoadConfig()
				return app.Migrate(cfg, app.NewLogger(cfg))
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion)
			},
		},
		newAdminCmd(),
		newBootstrapCmd(),
	)
	return root
}

func serve() error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func newAdminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts directly against the database",
	}

	var email, name string
	invite := &cobra.Command{
		Use:   "invite",
		Short: "Create an admin and print its setup link",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(app.LoadConfig())
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			inv, err := application.InviteAdmin(cmd.Context(), email, name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "admin:      %s (%s)\n", inv.Admin.Email, inv.Admin.ID)
			fmt.Fprintf(out, "setup link: %s\n", inv.SetupLink)
			fmt.Fprintf(out, "expires:    %s\n", inv.ExpiresAt.Format("2006-01-02 15:04 MST"))
			if !inv.Notification.Sent {
				fmt.Fprintf(out, "email:      not sent (%s)\n", inv.Notification.Error)
			}
			return nil
		},
	}
	invite.Flags().StringVar(&email, "email", "", "admin email address")
	invite.Flags().StringVar(&name, "name", "", "admin full name")
	_ = invite.MarkFlagRequired("email")
	_ = invite.MarkFlagRequired("name")

	admin.AddCommand(invite)
	return admin
}

// newBootstrapCmd calls a running server's bootstrap endpoint. The password
// comes from the environment so it stays out of shell history.
func newBootstrapCmd() *cobra.Command {
	var url, email, name string
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the first admin on a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := os.Getenv("BOOTSTRAP_TOKEN")
			if token == "" {
				return errors.New("BOOTSTRAP_TOKEN is not set")
			}
			req := portalsdk.BootstrapRequest{
				Email:    email,
				FullName: name,
				Password: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
			}
			if errs := req.Validate(); errs != nil {
				parts := make([]string, 0, len(errs))
				for _, field := range slices.Sorted(maps.Keys(errs)) {
					parts = append(parts, field+": "+errs[field])
				}
				return fmt.Errorf("invalid bootstrap request: %s", strings.Join(parts, ", "))
			}

			client := portalsdk.NewSDKClient(url)
			admin, err := client.Bootstrap(cmd.Context(), token, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8080", "portal base URL")
	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&name, "name", "", "admin full name")
	return cmd
}
