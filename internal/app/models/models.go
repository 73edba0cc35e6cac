// Package models holds the persisted entities of the notes platform:
// the four-level academic hierarchy (department, semester, subject, unit),
// the uploaded notes attached to units, and the collaborative live notes.
package models
