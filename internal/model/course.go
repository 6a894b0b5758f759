package model

import "time"

// Course is the browse/search projection of an upstream course.
type Course struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Level           string    `json:"level"`
	CategoryID      int64     `json:"categoryId"`
	Price           float64   `json:"price"`
	Rating          float64   `json:"rating"`
	EnrollmentCount int       `json:"enrollmentCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CourseFilters narrows a course search. Zero values mean "not filtered".
type CourseFilters struct {
	Keyword    string
	CategoryID int64
	Level      string
	IsFree     *bool
	IsPaid     *bool
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
	Page       int
	Size       int
}

// CoursePage is one page of search results in the upstream's envelope shape.
type CoursePage struct {
	Content       []Course `json:"content"`
	TotalPages    int      `json:"totalPages"`
	TotalElements int      `json:"totalElements"`
	Page          int      `json:"page"`
}
