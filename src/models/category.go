package models

// Category with a nil UserID is a global default visible to every user.
type Category struct {
	ID          int64  `json:"id"`
	UserID      *int64 `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// KeywordRule maps a case-insensitive substring of a transaction description
// to a category. Rules are global and evaluated in id order.
type KeywordRule struct {
	ID         int64  `json:"id"`
	Keyword    string `json:"keyword"`
	CategoryID int64  `json:"category_id"`
}
