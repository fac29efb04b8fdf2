package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"campus-share-be/internal/dto"
	"campus-share-be/internal/entity"
	"campus-share-be/internal/mapper"
	"campus-share-be/internal/pkg/logger"
	"campus-share-be/internal/repository/contract"
	"campus-share-be/internal/repository/memory"
	"campus-share-be/pkg/catalogerr"
	"campus-share-be/pkg/events"
	"campus-share-be/pkg/navigation"
	"campus-share-be/pkg/rating"
	"campus-share-be/pkg/search"
	"campus-share-be/pkg/taxonomy"

	"github.com/google/uuid"
)

type ILibraryService interface {
	Load(ctx context.Context) error

	ListFiles(ctx context.Context, caller dto.Caller, term, subject string) []*dto.FileResponse
	Subjects(ctx context.Context) []string
	Tree(ctx context.Context) *dto.FolderResponse

	Upload(ctx context.Context, caller dto.Caller, req *dto.UploadFileRequest) (*dto.FileResponse, error)
	Delete(ctx context.Context, caller dto.Caller, id string) error
	Rate(ctx context.Context, caller dto.Caller, id string, value int) (*dto.FileResponse, error)
	Download(ctx context.Context, caller dto.Caller, id string) (*dto.FileResponse, error)

	Navigation(ctx context.Context, caller dto.Caller, term, subject string) *dto.NavigationResponse
	NavigateInto(ctx context.Context, caller dto.Caller, folderId string) (*dto.NavigationResponse, error)
	NavigateToBreadcrumb(ctx context.Context, caller dto.Caller, index int) (*dto.NavigationResponse, error)

	Profile(ctx context.Context, caller dto.Caller) *dto.ProfileStatsResponse
	AdminStats(ctx context.Context) *dto.AdminStatsResponse
	PurgeUploader(ctx context.Context, caller dto.Caller, userId string) (*dto.PurgeUploaderResponse, error)

	Ask(ctx context.Context, caller dto.Caller, fileId string, req *dto.AssistantRequest) (*dto.AssistantResponse, error)
}

// libraryService owns the record store, the derived folder tree and every
// user's navigation state. One mutex serializes all of it: a mutation, its
// rebuild, the reconciliation of live sessions and the write-back complete
// before anyone else reads.
type libraryService struct {
	mu       sync.Mutex
	store    *memory.ContentStore
	root     *taxonomy.FolderNode
	accounts []entity.Account

	sessions  *memory.SessionRepository
	blobs     contract.BlobRepository
	publisher IPublisherService
	assistant IAssistantService
	logger    logger.ILogger
	mapper    *mapper.ContentRecordMapper

	now   func() time.Time
	newId func() string
}

func NewLibraryService(
	blobs contract.BlobRepository,
	sessions *memory.SessionRepository,
	publisher IPublisherService,
	assistant IAssistantService,
	log logger.ILogger,
) ILibraryService {
	return &libraryService{
		store:     memory.NewContentStore(nil),
		root:      taxonomy.Build(nil),
		accounts:  []entity.Account{},
		sessions:  sessions,
		blobs:     blobs,
		publisher: publisher,
		assistant: assistant,
		logger:    log,
		mapper:    mapper.NewContentRecordMapper(),
		now:       time.Now,
		newId:     uuid.NewString,
	}
}

// Load seeds the store from the blob store. Missing keys mean an empty
// library. Stored means are ignored and recomputed from the ratings.
func (s *libraryService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []entity.ContentRecord
	if err := s.readBlob(ctx, contract.BlobKeyContentRecords, &records); err != nil {
		return fmt.Errorf("load content records: %w", err)
	}
	for i := range records {
		records[i].Rating = rating.Mean(records[i].Ratings)
	}

	var accounts []entity.Account
	if err := s.readBlob(ctx, contract.BlobKeyAccounts, &accounts); err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	if accounts == nil {
		accounts = []entity.Account{}
	}

	s.store.Replace(records)
	s.accounts = accounts
	s.rebuild(true)

	s.logger.Info("LIBRARY", "Library loaded", map[string]interface{}{
		"records":  s.store.Len(),
		"accounts": len(s.accounts),
	})
	return nil
}

func (s *libraryService) readBlob(ctx context.Context, key string, out interface{}) error {
	raw, err := s.blobs.Get(ctx, key)
	if errors.Is(err, contract.ErrBlobNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *libraryService) writeBlob(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, key, raw)
}

// rebuild recomputes the tree from the persisted snapshot. Only shape changes
// (add/remove) re-resolve the sessions' breadcrumbs.
func (s *libraryService) rebuild(reshaped bool) {
	s.root = taxonomy.Build(s.store.All())
	if reshaped {
		s.sessions.Each(func(sess *memory.Session) {
			sess.Navigator.Reconcile(s.root)
		})
	}
}

// mutate runs fn against the store and persists the result. The tree and the
// sessions are only touched once the write-back succeeded; on failure the
// store is restored and nothing else has moved.
func (s *libraryService) mutate(ctx context.Context, reshaped bool, fn func() error) error {
	before := s.store.All()
	if err := fn(); err != nil {
		return err
	}

	if err := s.writeBlob(ctx, contract.BlobKeyContentRecords, s.store.All()); err != nil {
		s.logger.Error("LIBRARY", "Failed to persist content records, rolling back", map[string]interface{}{
			"error": err.Error(),
		})
		s.store.Replace(before)
		return fmt.Errorf("persist content records: %w", err)
	}

	s.rebuild(reshaped)
	return nil
}

func (s *libraryService) emit(ctx context.Context, msg dto.LibraryEventMessage) {
	if s.publisher == nil {
		return
	}
	msg.OccurredAt = s.now()
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("LIBRARY", "Failed to publish library event", map[string]interface{}{
			"error": err.Error(),
			"type":  msg.Type,
		})
	}
}

// session returns the caller's navigation state, opening one at the root the
// first time and recording the caller as the active account.
func (s *libraryService) session(ctx context.Context, caller dto.Caller) *memory.Session {
	if sess, ok := s.sessions.Get(caller.UserId); ok {
		// refresh the idle timer
		s.sessions.Save(sess)
		return sess
	}

	sess := &memory.Session{UserId: caller.UserId, Navigator: navigation.NewNavigator(s.root)}
	s.sessions.Save(sess)

	account := s.upsertAccount(caller)
	if err := s.writeBlob(ctx, contract.BlobKeyAccounts, s.accounts); err != nil {
		s.logger.Warn("LIBRARY", "Failed to persist accounts", map[string]interface{}{"error": err.Error()})
	}
	if err := s.writeBlob(ctx, contract.BlobKeyActiveSession, account); err != nil {
		s.logger.Warn("LIBRARY", "Failed to persist active session", map[string]interface{}{"error": err.Error()})
	}
	return sess
}

func (s *libraryService) upsertAccount(caller dto.Caller) entity.Account {
	for i := range s.accounts {
		if s.accounts[i].Id == caller.UserId {
			if caller.Name != "" {
				s.accounts[i].Name = caller.Name
			}
			if caller.Role != "" {
				s.accounts[i].Role = caller.Role
			}
			return s.accounts[i]
		}
	}
	role := caller.Role
	if role == "" {
		role = entity.AccountRoleUser
	}
	account := entity.Account{Id: caller.UserId, Name: caller.Name, Role: role, JoinedAt: s.now()}
	s.accounts = append(s.accounts, account)
	return account
}

func (s *libraryService) ListFiles(ctx context.Context, caller dto.Caller, term, subject string) []*dto.FileResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mapper.ToResponses(search.Filter(s.store.All(), term, subject), caller.UserId)
}

func (s *libraryService) Subjects(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return taxonomy.Subjects(s.store.All())
}

func (s *libraryService) Tree(ctx context.Context) *dto.FolderResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mapper.ToFolder(s.root, 2)
}

func (s *libraryService) Upload(ctx context.Context, caller dto.Caller, req *dto.UploadFileRequest) (*dto.FileResponse, error) {
	subject := strings.TrimSpace(req.Subject)
	unit := strings.TrimSpace(req.Unit)
	if subject == "" || unit == "" {
		return nil, catalogerr.ErrBlankPlacement
	}

	// the assistant call happens before taking the lock so a slow or failing
	// service never blocks the library
	tags := s.assistant.SuggestTags(ctx, subject, req.CourseCode, req.Description)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(ctx, caller)

	record := entity.ContentRecord{
		Id:             s.newId(),
		Name:           req.Name,
		FileType:       req.FileType,
		Size:           req.Size,
		Subject:        subject,
		Unit:           unit,
		CourseCode:     strings.ToUpper(strings.TrimSpace(req.CourseCode)),
		Description:    req.Description,
		Tags:           tags,
		UploadedBy:     caller.UserId,
		UploadedByName: caller.Name,
		UploadedAt:     s.now(),
		Ratings:        map[string]int{},
	}

	err := s.mutate(ctx, true, func() error {
		s.store.Add(record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("LIBRARY", "File uploaded", map[string]interface{}{
		"file_id": record.Id,
		"subject": record.Subject,
		"unit":    record.Unit,
		"user_id": caller.UserId,
	})
	s.emit(ctx, dto.LibraryEventMessage{
		Type:    events.TypeFileUploaded,
		FileId:  record.Id,
		Subject: record.Subject,
		Unit:    record.Unit,
		ActorId: caller.UserId,
	})

	return s.mapper.ToResponse(record, caller.UserId), nil
}

func (s *libraryService) Delete(ctx context.Context, caller dto.Caller, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(ctx, caller)

	existing, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if existing.UploadedBy != caller.UserId && !caller.IsAdmin() {
		return catalogerr.ErrForbidden
	}

	err = s.mutate(ctx, true, func() error {
		_, err := s.store.Remove(id)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("LIBRARY", "File deleted", map[string]interface{}{
		"file_id": id,
		"user_id": caller.UserId,
	})
	s.emit(ctx, dto.LibraryEventMessage{
		Type:    events.TypeFileDeleted,
		FileId:  id,
		Subject: existing.Subject,
		Unit:    existing.Unit,
		ActorId: caller.UserId,
	})
	return nil
}

func (s *libraryService) Rate(ctx context.Context, caller dto.Caller, id string, value int) (*dto.FileResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(ctx, caller)

	var updated entity.ContentRecord
	err := s.mutate(ctx, false, func() error {
		var err error
		updated, err = s.store.SubmitRating(id, caller.UserId, value)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, dto.LibraryEventMessage{
		Type:    events.TypeFileRated,
		FileId:  id,
		ActorId: caller.UserId,
		Value:   value,
	})
	return s.mapper.ToResponse(updated, caller.UserId), nil
}

func (s *libraryService) Download(ctx context.Context, caller dto.Caller, id string) (*dto.FileResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(ctx, caller)

	var updated entity.ContentRecord
	err := s.mutate(ctx, false, func() error {
		var err error
		updated, err = s.store.IncrementDownloads(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, dto.LibraryEventMessage{
		Type:    events.TypeFileDownloaded,
		FileId:  id,
		ActorId: caller.UserId,
	})
	return s.mapper.ToResponse(updated, caller.UserId), nil
}

// view renders the caller's position. The navigator may hold node objects
// from an older tree (ratings and downloads rebuild without reconciling), so
// the current node is found by walking the breadcrumb path down the live tree.
func (s *libraryService) view(sess *memory.Session, viewerId, term, subject string) *dto.NavigationResponse {
	nav := sess.Navigator
	current := s.root
	for _, id := range nav.Path()[1:] {
		if current = current.Child(id); current == nil {
			break
		}
	}
	if current == nil {
		nav.Reconcile(s.root)
		current = nav.Current()
	}

	res := &dto.NavigationResponse{
		Breadcrumbs: s.mapper.ToBreadcrumbs(nav.Breadcrumbs()),
		Current:     dto.BreadcrumbItem{Id: current.Id, Name: current.Name},
		Kind:        string(current.Kind),
		Folders:     s.mapper.ToFolders(current.Children, 0),
		Files:       []*dto.FileResponse{},
	}
	if current.Kind == taxonomy.KindUnit {
		res.Files = s.mapper.ToResponses(search.Filter(current.Files, term, subject), viewerId)
	}
	return res
}

func (s *libraryService) Navigation(ctx context.Context, caller dto.Caller, term, subject string) *dto.NavigationResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view(s.session(ctx, caller), caller.UserId, term, subject)
}

func (s *libraryService) NavigateInto(ctx context.Context, caller dto.Caller, folderId string) (*dto.NavigationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(ctx, caller)
	if err := sess.Navigator.NavigateIntoId(folderId); err != nil {
		return nil, err
	}
	return s.view(sess, caller.UserId, "", ""), nil
}

func (s *libraryService) NavigateToBreadcrumb(ctx context.Context, caller dto.Caller, index int) (*dto.NavigationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(ctx, caller)
	if err := sess.Navigator.NavigateToBreadcrumb(index); err != nil {
		return nil, err
	}
	return s.view(sess, caller.UserId, "", ""), nil
}

func (s *libraryService) Profile(ctx context.Context, caller dto.Caller) *dto.ProfileStatsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &dto.ProfileStatsResponse{UserId: caller.UserId}
	ratingSum := 0.0
	for _, r := range s.store.All() {
		if r.UploadedBy != caller.UserId {
			continue
		}
		res.FileCount++
		res.TotalDownloads += r.Downloads
		ratingSum += r.Rating
	}
	if res.FileCount > 0 {
		res.AverageRating = ratingSum / float64(res.FileCount)
	}
	return res
}

func (s *libraryService) AdminStats(ctx context.Context) *dto.AdminStatsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	uploaders := make(map[string]struct{})
	res := &dto.AdminStatsResponse{
		TotalAccounts:  len(s.accounts),
		ActiveSessions: s.sessions.Count(),
	}
	for _, r := range s.store.All() {
		res.TotalFiles++
		res.TotalDownloads += r.Downloads
		uploaders[r.UploadedBy] = struct{}{}
	}
	res.TotalUploaders = len(uploaders)
	return res
}

// PurgeUploader removes an account and every file it uploaded.
func (s *libraryService) PurgeUploader(ctx context.Context, caller dto.Caller, userId string) (*dto.PurgeUploaderResponse, error) {
	if !caller.IsAdmin() {
		return nil, catalogerr.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known := false
	for _, a := range s.accounts {
		if a.Id == userId {
			known = true
			break
		}
	}

	removed := 0
	err := s.mutate(ctx, true, func() error {
		removed = s.store.RemoveWhere(func(r entity.ContentRecord) bool {
			return r.UploadedBy == userId
		})
		if removed == 0 && !known {
			return catalogerr.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	kept := s.accounts[:0]
	for _, a := range s.accounts {
		if a.Id != userId {
			kept = append(kept, a)
		}
	}
	s.accounts = kept
	s.sessions.Delete(userId)
	if err := s.writeBlob(ctx, contract.BlobKeyAccounts, s.accounts); err != nil {
		s.logger.Warn("LIBRARY", "Failed to persist accounts", map[string]interface{}{"error": err.Error()})
	}

	s.logger.Info("LIBRARY", "Uploader purged", map[string]interface{}{
		"user_id":  userId,
		"removed":  removed,
		"admin_id": caller.UserId,
	})
	s.emit(ctx, dto.LibraryEventMessage{
		Type:    events.TypeUploaderPurged,
		ActorId: caller.UserId,
		Value:   removed,
	})

	return &dto.PurgeUploaderResponse{UserId: userId, Removed: removed}, nil
}

func (s *libraryService) Ask(ctx context.Context, caller dto.Caller, fileId string, req *dto.AssistantRequest) (*dto.AssistantResponse, error) {
	s.mu.Lock()
	record, err := s.store.Get(fileId)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	text, failed := s.assistant.Ask(ctx, record, req.Action, req.Message)
	return &dto.AssistantResponse{Action: req.Action, Text: text, Failed: failed}, nil
}
