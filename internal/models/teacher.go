package models

// Teacher is the single profile the application serves. The row is created
// once during initial setup and read-mostly afterwards; repositories address
// it by lifecycle, never by a hardcoded id.
type Teacher struct {
	ID                int64   `db:"id" json:"id"`
	FirstName         string  `db:"first_name" json:"first_name"`
	LastName          string  `db:"last_name" json:"last_name"`
	Email             string  `db:"email" json:"email"`
	ProfilePhotoURL   *string `db:"profile_photo_url" json:"profile_photo_url"`
	GoogleCredentials *string `db:"google_credentials" json:"-"`
	GoogleConnected   bool    `db:"google_connected" json:"google_connected"`
}
