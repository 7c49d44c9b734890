package model

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// If you want a helper for JSON unmarshal:
func JSONUnmarshal(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

// ----------------------------------------------------------------------
// Enumerations
// ----------------------------------------------------------------------

// Role is the account role assigned by the backend.
type Role string

const (
	RolePrincipal Role = "principal"
	RoleTeacher   Role = "teacher"
	RoleStudent   Role = "student"
)

// FeeStatus tracks payment state of a fee record.
type FeeStatus string

const (
	FeePaid    FeeStatus = "paid"
	FeeUnpaid  FeeStatus = "unpaid"
	FeePartial FeeStatus = "partial"
)

// AttendanceStatus marks a student's presence on a given date.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// Weekday is a school day as encoded in timetable entries.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
)

// ----------------------------------------------------------------------
// JSON codec types for the backend's date and time-of-day fields
// ----------------------------------------------------------------------

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// Date is a calendar date serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = Date{t}
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// ClockTime is a time of day serialized as "HH:MM:SS".
type ClockTime struct {
	time.Time
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(c.Format(clockLayout))
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid time: %w", err)
	}
	if s == "" {
		*c = ClockTime{}
		return nil
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", s, err)
	}
	*c = ClockTime{t}
	return nil
}

func (c ClockTime) String() string {
	if c.IsZero() {
		return ""
	}
	return c.Format(clockLayout)
}

// ----------------------------------------------------------------------
// Accounts
// ----------------------------------------------------------------------

// Profile carries the role-specific extras attached to a user account.
// ClassName is set for students, Subject for teachers.
type Profile struct {
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	ClassName string `json:"class_name"`
	Subject   string `json:"subject"`
}

// User is a backend account of any role.
type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      Role     `json:"role"`
	Profile   *Profile `json:"profile,omitempty"`
}

// FullName returns "First Last", falling back to the username.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

// Session is the result of a successful login: a bearer token pair plus the
// authenticated user's data.
type Session struct {
	Token *oauth2.Token
	User  User
}

// LoginResponse is the raw shape of the login endpoint.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ----------------------------------------------------------------------
// Academic records
// ----------------------------------------------------------------------

// Student is keyed by its user's ID; SchoolClass is nil while unassigned.
type Student struct {
	User        User   `json:"user"`
	SchoolClass *int64 `json:"school_class"`
}

// ID returns the student's primary key, which is the user ID.
func (s Student) ID() int64 { return s.User.ID }

type Teacher struct {
	User User `json:"user"`
}

// ID returns the teacher's primary key, which is the user ID.
func (t Teacher) ID() int64 { return t.User.ID }

// SchoolClass is a named class, optionally assigned to a teacher's user ID.
type SchoolClass struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Teacher *int64 `json:"teacher"`
}

type Attendance struct {
	ID      int64            `json:"id"`
	Student int64            `json:"student"`
	Date    Date             `json:"date"`
	Status  AttendanceStatus `json:"status"`
}

type TimetableEntry struct {
	ID          int64     `json:"id"`
	SchoolClass int64     `json:"school_class"`
	DayOfWeek   Weekday   `json:"day_of_week"`
	StartTime   ClockTime `json:"start_time"`
	EndTime     ClockTime `json:"end_time"`
	Subject     string    `json:"subject"`
	Teacher     *int64    `json:"teacher"`
}

// ----------------------------------------------------------------------
// Finance and leave
// ----------------------------------------------------------------------

// Fee.Amount is kept as the backend's decimal string to avoid float rounding.
type Fee struct {
	ID      int64     `json:"id"`
	Student int64     `json:"student"`
	Amount  string    `json:"amount"`
	DueDate Date      `json:"due_date"`
	Status  FeeStatus `json:"status"`
}

// LeaveRequest.User is populated by the backend on reads and ignored on
// writes; the requester is inferred from the bearer token.
type LeaveRequest struct {
	ID        int64       `json:"id"`
	User      *User       `json:"user,omitempty"`
	StartDate Date        `json:"start_date"`
	EndDate   Date        `json:"end_date"`
	Reason    string      `json:"reason"`
	Status    LeaveStatus `json:"status,omitempty"`
}

// ----------------------------------------------------------------------
// Reports
// ----------------------------------------------------------------------

// Report is the generic shape of the reporting endpoints. Data is left raw
// since each report type has its own payload.
type Report struct {
	ReportType string          `json:"report_type"`
	Filters    map[string]any  `json:"filters"`
	Data       json.RawMessage `json:"data"`
}
