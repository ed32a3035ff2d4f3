package models

import "time"

// Follow is a directed edge: follower follows followed.
// The pair is unique; self-follow is prevented by business logic, not schema.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

// Block is a directed edge: blocker blocks blocked. The edge is stored one
// way but its effect is symmetric: creating it removes any follow edge
// between the two users in either direction, and BlockGuard checks both
// directions before any interaction.
type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID uint      `gorm:"not null;uniqueIndex:idx_block_pair" json:"blocker_id"`
	BlockedID uint      `gorm:"not null;uniqueIndex:idx_block_pair;index" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`

	Blocker User `gorm:"foreignKey:BlockerID" json:"blocker,omitempty"`
	Blocked User `gorm:"foreignKey:BlockedID" json:"blocked,omitempty"`
}

// TableName specifies the table name for GORM
func (Block) TableName() string {
	return "blocks"
}

// MutualEdge is one row of the mutual-follower candidate query: MutualID is
// a user the viewer follows who in turn follows CandidateID.
type MutualEdge struct {
	CandidateID uint `json:"candidate_id"`
	MutualID    uint `json:"mutual_id"`
}

// Recommendation pairs a suggested user with the mutual friends that led to
// the suggestion. MutualFriends is empty for the followers-based strategy.
type Recommendation struct {
	User          User   `json:"user"`
	MutualFriends []User `json:"mutual_friends,omitempty"`
}
