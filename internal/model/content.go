package model

type Category struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	ImageURL    *string `db:"image_url" json:"image_url"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

type BlogPost struct {
	BaseModel
	Slug          string  `db:"slug" json:"slug"`
	Title         string  `db:"title" json:"title"`
	Content       string  `db:"content" json:"content"` // HTML
	CoverImageURL *string `db:"cover_image_url" json:"cover_image_url"`
	Published     bool    `db:"published" json:"published"`
}

type SiteImage struct {
	BaseModel
	Key     string `db:"key" json:"key"`
	URL     string `db:"url" json:"url"`
	AltText string `db:"alt_text" json:"alt_text"`
}

type NavLink struct {
	BaseModel
	Label     string `db:"label" json:"label"`
	URL       string `db:"url" json:"url"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	IsActive  bool   `db:"is_active" json:"is_active"`
}
