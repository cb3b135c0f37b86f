package persistence

import "time"

// PageModel is a row of the page index. Column names follow the wiki's
// page table so an existing page table can be read directly.
type PageModel struct {
	ID         int64     `gorm:"column:page_id;primaryKey;autoIncrement"`
	Namespace  int       `gorm:"column:page_namespace;not null;uniqueIndex:name_title,priority:1"`
	Title      string    `gorm:"column:page_title;size:255;not null;uniqueIndex:name_title,priority:2"`
	IsRedirect bool      `gorm:"column:page_is_redirect;not null;default:false;index"`
	Touched    time.Time `gorm:"column:page_touched;not null"`
}

// TableName returns the table name.
func (PageModel) TableName() string {
	return "page"
}
