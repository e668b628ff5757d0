package entity

import "context"

// Settings is a singleton document: created lazily with defaults on first
// read, never more than one instance.
type Settings struct {
	ID         string `json:"id" bson:"_id"`
	FromEmail  string `json:"from_email" bson:"fromEmail"`
	AdminEmail string `json:"admin_email" bson:"adminEmail"`
}

const SettingsID = "email-settings"

type SettingsRepositoryInterface interface {
	GetOrCreate(ctx context.Context, defaults Settings) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
}
