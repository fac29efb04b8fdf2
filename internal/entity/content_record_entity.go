package entity

import "time"

// ContentRecord is the metadata of one uploaded document.
type ContentRecord struct {
	Id             string         `json:"id"`
	Name           string         `json:"name"`
	FileType       string         `json:"type"`
	Size           int64          `json:"size"`
	Subject        string         `json:"subject"`
	Unit           string         `json:"unit"`
	CourseCode     string         `json:"courseCode"`
	Description    string         `json:"description"`
	Tags           []string       `json:"tags"`
	UploadedBy     string         `json:"uploadedBy"`
	UploadedByName string         `json:"uploadedByName"`
	UploadedAt     time.Time      `json:"uploadDate"`
	Downloads      int            `json:"downloads"`
	Ratings        map[string]int `json:"ratings"`
	Rating         float64        `json:"rating"`
}

// Clone returns a deep copy so callers never share the tags slice or the
// ratings map with the store.
func (r ContentRecord) Clone() ContentRecord {
	out := r
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	if r.Ratings != nil {
		out.Ratings = make(map[string]int, len(r.Ratings))
		for k, v := range r.Ratings {
			out.Ratings[k] = v
		}
	}
	return out
}

const (
	AccountRoleUser  = "user"
	AccountRoleAdmin = "admin"
)

// Account is the minimal identity record kept alongside the library. Identity
// itself is owned by the auth provider that issues the JWT.
type Account struct {
	Id       string    `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}
