package entity

import "time"

type Customer struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"tenant_id"`
	Name          string     `json:"name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Birthday      *time.Time `json:"birthday,omitempty"`
	Points        int        `json:"points"`
	Stamps        int        `json:"stamps"`
	LastCheckinAt *time.Time `json:"last_checkin_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Reward struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"points_cost"`
	Active      bool   `json:"active"`
}

type Redemption struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	CustomerID string    `json:"customer_id"`
	RewardID   string    `json:"reward_id"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}
