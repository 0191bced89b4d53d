package models

// Package is a bookable offering drawing from exactly one Resource.
type Package struct {
	ID          string `json:"name"`
	PackageName string `json:"package_name"`
	Resource    string `json:"resource"`
}

type Resource struct {
	ID           string `json:"name"`
	ResourceName string `json:"resource_name"`
	Capacity     int    `json:"capacity"`
}
