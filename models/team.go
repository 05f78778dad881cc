package models

// Team is a registered tournament participant. Teams are never renamed;
// they only disappear on a full tournament reset.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
