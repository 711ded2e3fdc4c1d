package database

import "time"

// DefaultRole is assigned to profiles created without an explicit role.
const DefaultRole = "User"

// ProfileRecord is the stored profile. It has no password column: the
// password only ever travels to the auth gateway.
type ProfileRecord struct {
	Email    string     `gorm:"column:email;primaryKey;size:254"`
	Username string     `gorm:"column:username;size:30"`
	AboutMe  string     `gorm:"column:about_me;type:text"`
	Location string     `gorm:"column:location;size:50"`
	Dob      *time.Time `gorm:"column:dob;type:date"`
	Language string     `gorm:"column:language;size:30"`
	Role     string     `gorm:"column:role;size:5;not null;default:User"`

	Favourites  []FavouriteActivityRecord `gorm:"foreignKey:Email;references:Email;constraint:OnDelete:CASCADE"`
	SavedTrails []SavedTrailRecord        `gorm:"foreignKey:Email;references:Email;constraint:OnDelete:CASCADE"`
}

func (ProfileRecord) TableName() string { return "profiles" }

// ActivityRecord is an activity type such as "Hiking".
type ActivityRecord struct {
	ID   int64  `gorm:"column:activity_id;primaryKey;autoIncrement"`
	Name string `gorm:"column:activity;size:30;not null;uniqueIndex"`

	Favourites []FavouriteActivityRecord `gorm:"foreignKey:ActivityID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ActivityRecord) TableName() string { return "activities" }

// FavouriteActivityRecord links a profile to an activity it likes.
type FavouriteActivityRecord struct {
	Email      string `gorm:"column:email;primaryKey;size:254"`
	ActivityID int64  `gorm:"column:activity_id;primaryKey;autoIncrement:false"`
}

func (FavouriteActivityRecord) TableName() string { return "favourite_activities" }

// SavedTrailRecord is a profile's bookmark of an external trail. TrailID has
// no foreign key; trails live in another system.
type SavedTrailRecord struct {
	Email     string    `gorm:"column:email;primaryKey;size:254"`
	TrailID   int64     `gorm:"column:trail_id;primaryKey;autoIncrement:false"`
	SavedDate time.Time `gorm:"column:saved_date;type:date;not null"`
}

func (SavedTrailRecord) TableName() string { return "saved_trails" }

// Models lists every record type in migration order.
func Models() []any {
	return []any{
		&ProfileRecord{},
		&ActivityRecord{},
		&FavouriteActivityRecord{},
		&SavedTrailRecord{},
	}
}
