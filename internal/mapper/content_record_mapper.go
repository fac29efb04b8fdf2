package mapper

import (
	"campus-share-be/internal/dto"
	"campus-share-be/internal/entity"
	"campus-share-be/pkg/taxonomy"
)

type ContentRecordMapper struct{}

func NewContentRecordMapper() *ContentRecordMapper {
	return &ContentRecordMapper{}
}

// ToResponse maps a record; viewerId fills MyRating.
func (m *ContentRecordMapper) ToResponse(r entity.ContentRecord, viewerId string) *dto.FileResponse {
	return &dto.FileResponse{
		Id:             r.Id,
		Name:           r.Name,
		FileType:       r.FileType,
		Size:           r.Size,
		Subject:        r.Subject,
		Unit:           r.Unit,
		CourseCode:     r.CourseCode,
		Description:    r.Description,
		Tags:           r.Tags,
		UploadedBy:     r.UploadedBy,
		UploadedByName: r.UploadedByName,
		UploadedAt:     r.UploadedAt,
		Downloads:      r.Downloads,
		Ratings:        r.Ratings,
		Rating:         r.Rating,
		MyRating:       r.Ratings[viewerId],
	}
}

func (m *ContentRecordMapper) ToResponses(records []entity.ContentRecord, viewerId string) []*dto.FileResponse {
	out := make([]*dto.FileResponse, len(records))
	for i, r := range records {
		out[i] = m.ToResponse(r, viewerId)
	}
	return out
}

// ToFolder maps a node; depth limits how many levels of children are included.
func (m *ContentRecordMapper) ToFolder(n *taxonomy.FolderNode, depth int) *dto.FolderResponse {
	res := &dto.FolderResponse{
		Id:        n.Id,
		Name:      n.Name,
		Kind:      string(n.Kind),
		FileCount: n.FileCount(),
	}
	if depth > 0 {
		res.Children = m.ToFolders(n.Children, depth-1)
	}
	return res
}

func (m *ContentRecordMapper) ToFolders(nodes []*taxonomy.FolderNode, depth int) []*dto.FolderResponse {
	out := make([]*dto.FolderResponse, len(nodes))
	for i, n := range nodes {
		out[i] = m.ToFolder(n, depth)
	}
	return out
}

func (m *ContentRecordMapper) ToBreadcrumbs(nodes []*taxonomy.FolderNode) []dto.BreadcrumbItem {
	out := make([]dto.BreadcrumbItem, len(nodes))
	for i, n := range nodes {
		out[i] = dto.BreadcrumbItem{Id: n.Id, Name: n.Name}
	}
	return out
}
