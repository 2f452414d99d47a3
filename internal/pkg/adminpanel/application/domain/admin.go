package adminpanel

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("adminpanel: not found")

// DashboardStats is the aggregate snapshot shown on the staff dashboard.
type DashboardStats struct {
	TotalUsers       int            `json:"total_users"`
	UsersByType      map[string]int `json:"users_by_type"`
	NewUsersWeek     int            `json:"new_users_week"`
	ProjectsByStatus map[string]int `json:"projects_by_status"`
	TotalReviews     int            `json:"total_reviews"`
	AverageRating    float64        `json:"average_rating"`
	OpenReports      int            `json:"open_reports"`
	PendingQueue     int            `json:"pending_queue"`
}

// UserSummary is one row of the staff user listing.
type UserSummary struct {
	ID         string    `db:"id"`
	Email      string    `db:"email"`
	Username   string    `db:"username"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	UserType   string    `db:"user_type"`
	IsVerified bool      `db:"is_verified"`
	IsStaff    bool      `db:"is_staff"`
	IsActive   bool      `db:"is_active"`
	LastSeen   time.Time `db:"last_seen"`
	CreatedAt  time.Time `db:"created_at"`
}

// ResourceUsage pairs a used amount with its total, in bytes.
type ResourceUsage struct {
	Used  uint64 `json:"used"`
	Total uint64 `json:"total"`
}

// SystemStatus is a point-in-time health reading of the host and process.
type SystemStatus struct {
	T           time.Time     `json:"t"`
	CPUPercent  float64       `json:"cpu_percent"`
	CPUCores    int           `json:"cpu_cores"`
	LogicalPro  int           `json:"logical_pro"`
	UptimeSec   uint64        `json:"uptime_sec"`
	Mem         ResourceUsage `json:"mem"`
	Swap        ResourceUsage `json:"swap"`
	Disk        ResourceUsage `json:"disk"`
	Loads       []float64     `json:"loads"`
	Goroutines  int           `json:"goroutines"`
	HeapAlloc   uint64        `json:"heap_alloc"`
	GoVersion   string        `json:"go_version"`
	DBReachable bool          `json:"db_reachable"`
}
