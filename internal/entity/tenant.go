package entity

import "time"

type Tenant struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	Timezone       string     `json:"timezone"`
	Plan           string     `json:"plan"`
	PlanExpiresAt  *time.Time `json:"plan_expires_at,omitempty"`
	LogoURL        string     `json:"logo_url"`
	PrimaryColor   string     `json:"primary_color"`
	SecondaryColor string     `json:"secondary_color"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}
