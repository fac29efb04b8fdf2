package dto

import (
	"time"

	"campus-share-be/internal/entity"
)

// Caller identifies who is acting. It is filled from the JWT claims.
type Caller struct {
	UserId string
	Name   string
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == entity.AccountRoleAdmin
}

type UploadFileRequest struct {
	Name        string `json:"name" validate:"required"`
	FileType    string `json:"type"`
	Size        int64  `json:"size" validate:"gte=0"`
	Subject     string `json:"subject" validate:"required"`
	Unit        string `json:"unit" validate:"required,numeric"`
	CourseCode  string `json:"courseCode"`
	Description string `json:"description"`
}

type RateFileRequest struct {
	Rating int `json:"rating"`
}

type NavigateIntoRequest struct {
	FolderId string `json:"folder_id" validate:"required"`
}

type NavigateToBreadcrumbRequest struct {
	Index int `json:"index"`
}

type AssistantRequest struct {
	Action  string `json:"action" validate:"required,oneof=summarize quiz keypoints chat"`
	Message string `json:"message"`
}

type FileResponse struct {
	Id             string         `json:"id"`
	Name           string         `json:"name"`
	FileType       string         `json:"type"`
	Size           int64          `json:"size"`
	Subject        string         `json:"subject"`
	Unit           string         `json:"unit"`
	CourseCode     string         `json:"course_code"`
	Description    string         `json:"description"`
	Tags           []string       `json:"tags"`
	UploadedBy     string         `json:"uploaded_by"`
	UploadedByName string         `json:"uploaded_by_name"`
	UploadedAt     time.Time      `json:"uploaded_at"`
	Downloads      int            `json:"downloads"`
	Ratings        map[string]int `json:"ratings"`
	Rating         float64        `json:"rating"`
	MyRating       int            `json:"my_rating"`
}

type FolderResponse struct {
	Id        string            `json:"id"`
	Name      string            `json:"name"`
	Kind      string            `json:"kind"`
	FileCount int               `json:"file_count"`
	Children  []*FolderResponse `json:"children,omitempty"`
}

// BreadcrumbItem is one entry of the navigation stack.
type BreadcrumbItem struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// NavigationResponse describes the current folder and what is visible in it.
// Folders are listed for root and subject nodes; files only for unit nodes,
// after the search filter is applied.
type NavigationResponse struct {
	Breadcrumbs []BreadcrumbItem  `json:"breadcrumbs"`
	Current     BreadcrumbItem    `json:"current"`
	Kind        string            `json:"kind"`
	Folders     []*FolderResponse `json:"folders"`
	Files       []*FileResponse   `json:"files"`
}

type ProfileStatsResponse struct {
	UserId         string  `json:"user_id"`
	FileCount      int     `json:"file_count"`
	TotalDownloads int     `json:"total_downloads"`
	AverageRating  float64 `json:"average_rating"`
}

type AdminStatsResponse struct {
	TotalFiles     int `json:"total_files"`
	TotalDownloads int `json:"total_downloads"`
	TotalUploaders int `json:"total_uploaders"`
	TotalAccounts  int `json:"total_accounts"`
	ActiveSessions int `json:"active_sessions"`
}

type PurgeUploaderResponse struct {
	UserId  string `json:"user_id"`
	Removed int    `json:"removed"`
}

type AssistantResponse struct {
	Action string `json:"action"`
	Text   string `json:"text"`
	Failed bool   `json:"failed"`
}

// LibraryEventMessage travels over the in-process event bus after a mutation.
type LibraryEventMessage struct {
	Type       string    `json:"type"`
	FileId     string    `json:"file_id,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Unit       string    `json:"unit,omitempty"`
	ActorId    string    `json:"actor_id"`
	Value      int       `json:"value,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
