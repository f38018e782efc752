package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/lostandfound/lostandfound/pkg/lfclient"
	"github.com/pkg/errors"
)

// Register creates a user on a lostandfound server and stores its identity.
func Register() error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = endpoint

	client, err := lfclient.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach given endpoint")
	}

	firstname, err := readline.Line("First name: ")
	if err != nil {
		return errors.Wrap(err, "could not read first name from stdin")
	}

	lastname, err := readline.Line("Last name: ")
	if err != nil {
		return errors.Wrap(err, "could not read last name from stdin")
	}

	token, err := readline.Line("Notification token (optional): ")
	if err != nil {
		return errors.Wrap(err, "could not read notification token from stdin")
	}

	user, err := client.Register(firstname, lastname, token)
	if err != nil {
		return errors.Wrap(err, "could not register")
	}
	cfg.UserID = user.ID
	fmt.Println("Registered as " + user.ID)

	return Save(cfg)
}

// Token updates the notification token of the stored identity.
func Token(token string) error {
	client, err := Connect()
	if err != nil {
		return err
	}

	_, err = client.SetNotificationToken(token)
	return errors.Wrap(err, "could not update notification token")
}

// Logout forgets the stored identity.
func Logout() error {
	return errors.Wrap(Remove(), "could not remove credential file")
}
