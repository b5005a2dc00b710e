package blog

import "time"

// Role of a logged-in user. The backend re-checks the role on every call,
// client-side it only gates navigation and UI branching.
type Role string

const (
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
)

// Identity is the locally stored session claim. There is at most one active
// identity per session; a nil *Identity means anonymous.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type PostStatus string

const (
	StatusConcept   PostStatus = "CONCEPT"
	StatusPublished PostStatus = "PUBLISHED"
	StatusApproved  PostStatus = "APPROVED"
	StatusRejected  PostStatus = "REJECTED"
)

// Post as exchanged with the post service. ID is zero until the server
// assigns one on creation. CreatedAt is kept as the raw ISO-8601 string the
// backend sends; use CreatedTime to interpret it.
type Post struct {
	ID            int        `json:"id,omitempty"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Author        string     `json:"author"`
	CreatedAt     string     `json:"createdAt"`
	Status        PostStatus `json:"status"`
	ReviewComment string     `json:"reviewComment,omitempty"`
	Comments      []Comment  `json:"comments,omitempty"`
}

// Comment on a published post. Only Text is mutable after creation.
type Comment struct {
	ID        int    `json:"id,omitempty"`
	PostID    int    `json:"postId"`
	Commenter string `json:"commenter"`
	Text      string `json:"text"`
	AddedAt   string `json:"addedAt"`
}

// createdAtLayouts covers RFC3339 and the zone-less form the post service
// emits for LocalDateTime fields.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// CreatedTime parses CreatedAt. The zero time is returned when the
// timestamp is absent or malformed.
func (p Post) CreatedTime() time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, p.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// AddedTime parses AddedAt the same way Post.CreatedTime does.
func (c Comment) AddedTime() time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, c.AddedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}
