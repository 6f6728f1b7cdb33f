package domain

import "time"

type UserId = int64

type User struct {
	Id        UserId    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	PassHash  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Author is the subset of User embedded into blog responses.
type Author struct {
	Id       UserId `json:"id"`
	Username string `json:"username"`
}
