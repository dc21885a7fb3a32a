package models

import "time"

// Follow is a directed edge in the follower graph: follower follows followed.
// The composite primary key gives the edge set semantics (at most one edge
// per ordered pair), and the check constraint forbids self-loops.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false;check:chk_follows_no_self,follower_id <> followed_id" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey;autoIncrement:false" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
