package specification

import "gorm.io/gorm"

// ByProjectID filters by the time-derived snapshot id. Project ids are
// strings, unlike the uuid keys everywhere else, so they get their own
// spec instead of reusing ByID.
type ByProjectID struct {
	ID string
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type ByTitle struct {
	Title string
}

func (s ByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title = ?", s.Title)
}
