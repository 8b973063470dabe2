package store

import "peopledesk/internal/directory/models"

// SeedDevDirectory fills the in-memory directory with a small staff roster
// for local development without a database.
func SeedDevDirectory(s *InMemory) {
	profiles := []models.Profile{
		{ID: 1, FirstName: "Greta", LastName: "Mora", Email: "greta.mora@example.com", Position: "Senior Engineer", IsBuddy: true},
		{ID: 2, FirstName: "Tomas", LastName: "Lindqvist", Email: "tomas.lindqvist@example.com", Position: "Engineering Manager", IsBuddy: true},
		{ID: 3, FirstName: "Priya", LastName: "Natarajan", Email: "priya.natarajan@example.com", Position: "Product Designer", IsBuddy: true},
		{ID: 4, FirstName: "Jon", LastName: "Abbate", Email: "jon.abbate@example.com", Position: "Junior Engineer"},
		{ID: 5, FirstName: "Mina", LastName: "Haddad", Email: "mina.haddad@example.com", Position: "QA Engineer"},
		{ID: 6, FirstName: "Oleg", LastName: "Sava", Email: "oleg.sava@example.com", Position: "Data Analyst"},
	}
	for _, p := range profiles {
		s.Put(p)
	}
}
