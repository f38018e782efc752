package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/lostandfound/lostandfound/pkg/lfclient"
	"github.com/pkg/errors"
)

// Report reports an item with the stored identity.
func Report(w io.Writer, r lfclient.Report) error {
	client, err := Connect()
	if err != nil {
		return err
	}

	r.Status = strings.ToUpper(r.Status)
	result, err := client.Report(r)
	if err != nil {
		return errors.Wrap(err, "could not report item")
	}

	fmt.Fprintf(w, "Reported %s item %s\n", result.Item.Status, result.Item.ID)
	if result.Awarded {
		fmt.Fprintf(w, "Points: %d\n", result.Points)
	}
	if result.PointsError != "" {
		fmt.Fprintln(w, result.PointsError)
	}
	return nil
}

// List prints the reported items.
func List(w io.Writer, f lfclient.Filter) error {
	client, err := Connect()
	if err != nil {
		return err
	}

	f.Status = strings.ToUpper(f.Status)
	items, err := client.Items(f)
	if err != nil {
		return errors.Wrap(err, "could not list items")
	}

	for _, item := range items {
		fmt.Fprintf(w, "%s  %-5s  %-12s  %s  %s\n",
			item.Timestamp.Local().Format("2006-01-02 15:04"),
			item.Status,
			item.Category,
			item.ID,
			item.Description,
		)
	}
	return nil
}

// Leaderboard prints the users with the most points.
func Leaderboard(w io.Writer, limit int) error {
	client, err := Connect()
	if err != nil {
		return err
	}

	users, err := client.Leaderboard(limit)
	if err != nil {
		return errors.Wrap(err, "could not get leaderboard")
	}

	for _, user := range users {
		fmt.Fprintf(w, "%3d. %-30s %6d\n", user.Rank, strings.TrimSpace(user.FirstName+" "+user.LastName), user.Points)
	}
	return nil
}
