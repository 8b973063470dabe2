package models

import "strings"

// Profile is the slice of the employee directory the buddy module consumes.
// The directory is owned by the wider HR platform; this module only reads it.
type Profile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Position  string `json:"position"`
	// IsBuddy marks enrollment in the mentor pool. Only enrolled employees
	// may be assigned buddees.
	IsBuddy bool `json:"is_buddy"`
}

// DisplayName is the name used for sorting and rendering rosters.
func (p *Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
