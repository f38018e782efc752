package notifier

import "fmt"

// A Notification is a rendered title and body.
type Notification struct {
	Title string
	Body  string
}

// OwnerNotification is sent to the user who reported the matched lost item.
func OwnerNotification(category string) Notification {
	return Notification{
		Title: "Possible match for your item!",
		Body:  fmt.Sprintf("A found item in category '%s' was reported that may match yours. Check the item list for details.", category),
	}
}

// FinderNotification is sent to the user who reported the found item.
func FinderNotification(category string) Notification {
	return Notification{
		Title: "Possible match for the item you found!",
		Body:  fmt.Sprintf("You reported finding an item in category '%s'. We may have located the owner. Check the item list.", category),
	}
}
