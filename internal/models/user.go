package models

import "printpay/internal/store"

// User holds the users/{userId} fields needed for payment notifications.
type User struct {
	ID       string
	Email    string
	FCMToken string
}

func UserFromDocument(id string, d store.Document) *User {
	return &User{
		ID:       id,
		Email:    d.String("email"),
		FCMToken: d.String("fcmToken"),
	}
}
