package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// --- Roles ---
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// --- Leave statuses ---
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(d.String())
}

// Value stores the date as YYYY-MM-DD, which both SQLite and MySQL accept for DATE columns.
func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements the sql.Scanner interface.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}
	return fmt.Errorf("cannot scan %T into Date", value)
}

func (d *Date) scanString(s string) error {
	// sqlite may hand back a full timestamp for DATE columns
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("cannot scan %q into Date: %w", s, err)
	}
	*d = parsed
	return nil
}

// User - an employee account
type User struct {
	ID       int64  `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
	Name     string `json:"name" db:"name"`
	Role     string `json:"role" db:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// LeaveApplication - a leave request filed by a user
type LeaveApplication struct {
	ID       int64  `json:"id" db:"id"`
	DateFrom Date   `json:"date_from" db:"date_from"`
	DateTo   Date   `json:"date_to" db:"date_to"`
	Reason   string `json:"reason" db:"reason"`
	Status   string `json:"status" db:"status"`
	UserID   int64  `json:"user_id" db:"user_id"`
}

// LeaveFilter narrows a leave listing. Zero values mean "any".
type LeaveFilter struct {
	UserID int64
	Status string
}

// UserInput is the request body for creating or replacing a user.
// An empty Role means the default role.
type UserInput struct {
	Email    string `json:"email" form:"email" binding:"required,max=100"`
	Password string `json:"password" form:"password" binding:"required,max=72"`
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	Role     string `json:"role" form:"role"`
}

// LeaveInput is the request body for creating or replacing a leave application.
// Dates stay strings here so a malformed date is reported against its field.
type LeaveInput struct {
	DateFrom string `json:"date_from" form:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" form:"date_to" binding:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" form:"reason" binding:"required,max=255"`
	Status   string `json:"status" form:"status"`
	UserID   int64  `json:"user_id" form:"user_id" binding:"required,gt=0"`
}
