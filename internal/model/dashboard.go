package model

// DashboardSummary holds the counters shown on the dashboard cards.
type DashboardSummary struct {
	Today               int `json:"today"`
	Upcoming            int `json:"upcoming"`
	Pending             int `json:"pending"`
	Patients            int `json:"patients"`
	UnreadNotifications int `json:"unread_notifications"`
}
