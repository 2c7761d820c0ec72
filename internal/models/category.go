package models

// Category is the persisted form of a category row.
type Category struct {
	CategoryID  string  `db:"id"`
	Name        string  `db:"name"`
	Type        string  `db:"type"`
	Description *string `db:"description"`
}
