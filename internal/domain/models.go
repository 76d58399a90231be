package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel contains common fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a fresh UUID so inserts work on databases without gen_random_uuid()
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// User is an account that owns clients and logs calls
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
}

func (User) TableName() string {
	return "users"
}

// Client is a company or contact that calls are logged against.
// Address holds the primary contact email, Mail is a free-text category and
// PostalMail is the actual mailing email.
type Client struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	User        *User      `gorm:"foreignKey:UserID"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Address     string     `gorm:"type:varchar(255)"`
	Phone       string     `gorm:"type:varchar(50);not null"`
	Company     string     `gorm:"type:varchar(200);index"`
	Web         string     `gorm:"type:varchar(500)"`
	Mail        string     `gorm:"type:varchar(200)"`
	PostalMail  string     `gorm:"type:varchar(255)"`
	Notes       string     `gorm:"type:text"`
	IsActive    bool       `gorm:"not null;default:true;index"`
	IsClient    bool       `gorm:"not null;default:false"`
	ClientSince *time.Time `gorm:"type:timestamp"`
}

func (Client) TableName() string {
	return "clients"
}

// Call is a sales or contact log entry against a client
type Call struct {
	BaseModel
	ClientID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	Client         *Client     `gorm:"foreignKey:ClientID"`
	UserID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	User           *User       `gorm:"foreignKey:UserID"`
	CallDate       time.Time   `gorm:"not null;index"`
	NextActionDate *time.Time  `gorm:"index"`
	Status         CallStatus  `gorm:"type:varchar(20);not null;default:'Scheduled'"`
	Duration       int         `gorm:"not null;default:0"`
	Outcome        CallOutcome `gorm:"type:varchar(20)"`
	Notes          string      `gorm:"type:text"`
	NextAction     string      `gorm:"type:varchar(500)"`
	ReminderSentAt *time.Time
}

func (Call) TableName() string {
	return "calls"
}

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationTypeCallSoon NotificationType = "call_soon"
)

// Notification represents a user notification
type Notification struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"type:varchar(50);not null"`
	Title      string    `gorm:"type:varchar(200);not null"`
	Message    string    `gorm:"type:varchar(500);not null"`
	Read       bool      `gorm:"column:read;not null;default:false;index"`
	ReadAt     *time.Time
	EntityID   *uuid.UUID `gorm:"type:uuid"`
	EntityType string     `gorm:"type:varchar(50)"`
}

func (Notification) TableName() string {
	return "notifications"
}
