package domain

import "time"

type BlogId = int64

type Blog struct {
	Id        BlogId    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Image     string    `json:"image"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogUpdate carries a partial update. Nil fields keep their stored value.
type BlogUpdate struct {
	Title    *string
	Category *string
	Content  *string
	Excerpt  *string
	Image    *string
}

// Categories is the fixed set of allowed blog categories.
var Categories = []string{"Technology", "Science", "Mathematics", "History", "Literature", "Other"}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
