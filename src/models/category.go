package models

type Category struct {
	ID     int64  `json:"category_id"`
	UserID int64  `json:"-"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

func (c Category) OwnerID() int64 { return c.UserID }
