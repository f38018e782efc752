package main

import (
	"fmt"
	"os"

	"github.com/lostandfound/lostandfound/internal/client"
	"github.com/lostandfound/lostandfound/pkg/lfclient"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	report lfclient.Report
	filter lfclient.Filter
	near   []float64
	limit  int
)

func main() {
	c := &cobra.Command{
		Use:     "lfc",
		Short:   "Lost and found client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(registerCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(tokenCmd)

	reportCmd.Flags().StringVarP(&report.Category, "category", "t", "", "Item category")
	reportCmd.Flags().StringVarP(&report.Description, "description", "d", "", "Public description")
	reportCmd.Flags().StringVarP(&report.SecretDetails, "secret", "s", "", "Private details used to match the item")
	reportCmd.Flags().StringVar(&report.ImageURL, "image", "", "Image URL")
	reportCmd.Flags().Float64Var(&report.Location.Latitude, "lat", 0, "Latitude")
	reportCmd.Flags().Float64Var(&report.Location.Longitude, "lng", 0, "Longitude")
	reportCmd.MarkFlagRequired("category")
	c.AddCommand(reportCmd)

	listCmd.Flags().StringVarP(&filter.Category, "category", "t", "", "Filter by category")
	listCmd.Flags().StringVarP(&filter.Status, "status", "s", "", "Filter by status (lost or found)")
	listCmd.Flags().Float64SliceVar(&near, "near", nil, "Filter around LAT,LNG")
	listCmd.Flags().Float64VarP(&filter.Radius, "radius", "r", 1000, "Radius in meters used with --near")
	listCmd.Flags().IntVarP(&filter.Limit, "limit", "n", 0, "Maximum number of items")
	c.AddCommand(listCmd)

	leaderboardCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of users")
	c.AddCommand(leaderboardCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Register a user on a lostandfound server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Register()
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the registered user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Logout()
		},
	}

	tokenCmd = &cobra.Command{
		Use:   "token [TOKEN]",
		Short: "Set the notification token (no token disables notifications)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			}
			return client.Token(token)
		},
	}

	reportCmd = &cobra.Command{
		Use:   "report lost|found",
		Short: "Report a lost or found item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			report.Status = args[0]
			return client.Report(os.Stdout, report)
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List reported items",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(near) > 0 {
				if len(near) != 2 {
					return fmt.Errorf("--near expects LAT,LNG")
				}
				filter.Near = &lfclient.Location{Latitude: near[0], Longitude: near[1]}
			}
			return client.List(os.Stdout, filter)
		},
	}

	leaderboardCmd = &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the users with the most points",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Leaderboard(os.Stdout, limit)
		},
	}
)
