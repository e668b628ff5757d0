package entity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

type LeadKind string

const (
	KindJoin    LeadKind = "join"
	KindContact LeadKind = "contact"
)

// Lead lifecycle status, driven from the admin dashboard.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Tele-calling funnel status.
const (
	TeleCallingPending       = "pending"
	TeleCallingCalled        = "called"
	TeleCallingNoAnswer      = "no_answer"
	TeleCallingFollowUp      = "follow_up_needed"
	TeleCallingConverted     = "converted"
	TeleCallingNotInterested = "not_interested"
)

var (
	ErrLeadNotFound        = errors.New("lead request not found")
	ErrDuplicateTrackingID = errors.New("tracking id already exists")
)

func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusDeclined
}

func IsValidTeleCallingStatus(s string) bool {
	switch s {
	case TeleCallingPending, TeleCallingCalled, TeleCallingNoAnswer,
		TeleCallingFollowUp, TeleCallingConverted, TeleCallingNotInterested:
		return true
	}
	return false
}

type Note struct {
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// HistoryEntry is append-only: entries are never edited or removed.
type HistoryEntry struct {
	Action      string    `json:"action" bson:"action"`
	Details     string    `json:"details" bson:"details"`
	PerformedBy string    `json:"performed_by" bson:"performedBy"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// JoinPayload is the tagged variant for join requests. Role decides which
// details block is populated.
type JoinPayload struct {
	Role    string          `json:"role" bson:"role"` // student | teacher
	Student *StudentDetails `json:"student,omitempty" bson:"student,omitempty"`
	Teacher *TeacherDetails `json:"teacher,omitempty" bson:"teacher,omitempty"`
}

type StudentDetails struct {
	Grade    string   `json:"grade" bson:"grade"`
	Board    string   `json:"board" bson:"board"`
	Subjects []string `json:"subjects" bson:"subjects"`
}

type TeacherDetails struct {
	Qualification string   `json:"qualification" bson:"qualification"`
	Experience    string   `json:"experience" bson:"experience"`
	Subjects      []string `json:"subjects" bson:"subjects"`
}

type ContactPayload struct {
	Subject string `json:"subject" bson:"subject"`
	Message string `json:"message" bson:"message"`
}

type Lead struct {
	ID                string          `json:"id" bson:"_id"`
	Kind              LeadKind        `json:"kind" bson:"kind"`
	Name              string          `json:"name" bson:"name"`
	Email             string          `json:"email" bson:"email"`
	Phone             string          `json:"phone,omitempty" bson:"phone,omitempty"`
	Join              *JoinPayload    `json:"join,omitempty" bson:"join,omitempty"`
	Contact           *ContactPayload `json:"contact,omitempty" bson:"contact,omitempty"`
	Status            string          `json:"status" bson:"status"`
	TeleCallingStatus string          `json:"tele_calling_status" bson:"teleCallingStatus"`
	Notes             []Note          `json:"notes" bson:"notes"`
	History           []HistoryEntry  `json:"history" bson:"history"`
	TrackingID        string          `json:"tracking_id,omitempty" bson:"trackingId,omitempty"`
	// Meta holds any genuinely free-form extras; nothing else extends the schema.
	Meta      map[string]string `json:"meta,omitempty" bson:"meta,omitempty"`
	CreatedAt time.Time         `json:"created_at" bson:"createdAt"`
}

// Factory
func NewLead(kind LeadKind, name, email, phone string) *Lead {
	return &Lead{
		ID:                uuid.New().String(),
		Kind:              kind,
		Name:              name,
		Email:             email,
		Phone:             phone,
		Status:            StatusPending,
		TeleCallingStatus: TeleCallingPending,
		Notes:             []Note{},
		History:           []HistoryEntry{},
		TrackingID:        NewTrackingID(kind),
		CreatedAt:         time.Now(),
	}
}

// NewTrackingID builds the human-shareable reference: kind prefix, submission
// date, random 4-digit suffix. Collisions are possible and get rejected by the
// unique index at write time.
func NewTrackingID(kind LeadKind) string {
	prefix := "CT"
	if kind == KindJoin {
		prefix = "JN"
	}
	var suffix int64
	if n, err := rand.Int(rand.Reader, big.NewInt(10000)); err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, time.Now().Format("060102"), suffix)
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, kind LeadKind, id string) (*Lead, error)
	FindAll(ctx context.Context, kind LeadKind) ([]*Lead, error)
	UpdateStatus(ctx context.Context, kind LeadKind, id, field, status string, entry HistoryEntry) (*Lead, error)
	AppendNote(ctx context.Context, kind LeadKind, id string, note Note) (*Lead, error)
	AppendHistory(ctx context.Context, kind LeadKind, id string, entry HistoryEntry) error
	Delete(ctx context.Context, kind LeadKind, id string) error
}
