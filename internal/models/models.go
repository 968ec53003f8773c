package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// -------------------------------
// Users & Roles
// -------------------------------

// UserAccount is a login account. UserID is the human-readable identity the
// rest of the system keys on (mentions, notifications, live connections);
// it is stored in canonical form (see internal/identity).
type UserAccount struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:text;uniqueIndex"`
	Email        string    `gorm:"type:text;uniqueIndex"`
	PasswordHash string    `gorm:"type:text"`
	Role         string    `gorm:"type:varchar(20);default:'Viewer'"` // SuperAdmin, Admin, HR, Viewer
	Zone         string    `gorm:"type:text;index"`
	Photo        string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20);default:'active'"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	LastSeen     time.Time `gorm:"autoUpdateTime"`
}

// -------------------------------
// Employee Profiles
// -------------------------------

type EmployeeProfile struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FullName   string         `gorm:"type:text;index"`
	Position   string         `gorm:"type:text"`
	Department string         `gorm:"type:text;index"`
	Zone       string         `gorm:"type:text;index"`
	Address    string         `gorm:"type:text"`
	Phone      string         `gorm:"type:text"`
	Status     string         `gorm:"type:varchar(30);default:'pending'"` // pending, active, on_leave, departed
	Tags       pq.StringArray `gorm:"type:text[]"`
	Photo      string         `gorm:"type:text"`
	CreatedBy  string         `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

// Comment is attached to an employee profile. Mentions holds the canonical
// userIds parsed out of the text at creation time.
type Comment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID      `gorm:"type:uuid;index"`
	Author    string         `gorm:"type:text;index"`
	Text      string         `gorm:"type:text"`
	Mentions  pq.StringArray `gorm:"type:text[]"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

// -------------------------------
// Activity Log
// -------------------------------

type ActivityLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Actor     string         `gorm:"type:text;index"`
	Action    string         `gorm:"type:text;index"` // e.g. profile_created, comment_added, rider_assigned
	Target    string         `gorm:"type:text;index"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

// -------------------------------
// Transport Routes
// -------------------------------

type TransportRoute struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name      string        `gorm:"type:text;uniqueIndex"`
	Zone      string        `gorm:"type:text;index"`
	Stops     []PickupPoint `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `gorm:"autoCreateTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime"`
}

// PickupPoint is one ordered stop on a route. Riders are the canonical
// userIds assigned to board at this stop.
type PickupPoint struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RouteID  uuid.UUID      `gorm:"type:uuid;index"`
	Name     string         `gorm:"type:text"`
	Position int            `gorm:"type:int"` // order along the route
	Riders   pq.StringArray `gorm:"type:text[]"`
}

// -------------------------------
// Notifications
// -------------------------------

// Notification is the durable record behind the live stream. The stream path
// is best-effort; this row is the system of record for read/unread state.
type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    string         `gorm:"type:text;index"` // canonical
	Type      string         `gorm:"type:varchar(30)"`
	Message   string         `gorm:"type:text"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	Read      bool           `gorm:"default:false;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

// NotificationPreferences are the server-side per-user toggles consulted
// before sending e-mail side effects. The stream consumer keeps its own
// client-side preference layer.
type NotificationPreferences struct {
	UserID        string    `gorm:"type:text;primaryKey"`
	MentionAlerts bool      `gorm:"default:true"`
	ProfileAlerts bool      `gorm:"default:true"`
	RouteAlerts   bool      `gorm:"default:true"`
	EmailOnTag    bool      `gorm:"default:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}
