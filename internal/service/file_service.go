package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/pkg/apiclient"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

type cvFetcher interface {
	FetchCV(ctx context.Context, id int64, mode string) (*apiclient.Blob, error)
}

type internshipFileFetcher interface {
	FetchFile(ctx context.Context, id int64, kind models.FileKind) (*apiclient.Blob, error)
}

type objectSpool interface {
	Save(name string, data []byte) (int64, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type objectSigner interface {
	Generate(objectID, disposition string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (string, string, time.Time, error)
	TTL() time.Duration
}

type spoolGauge interface {
	SetSpoolObjects(n int)
}

// FileServiceConfig configures object links.
type FileServiceConfig struct {
	// URLPrefix is prepended to the signed token, e.g. "/console/objects/".
	URLPrefix string
}

// ServedObject is an opened spool object. Closing it releases the object.
type ServedObject struct {
	Handle dto.ObjectHandle
	io.ReadCloser
}

type spooledObject struct {
	handle  dto.ObjectHandle
	created time.Time
}

// FileService fetches protected attachments and hands them out as
// short-lived, single-use object links.
type FileService struct {
	students    cvFetcher
	internships internshipFileFetcher
	spool       objectSpool
	signer      objectSigner
	session     sessionState
	gauge       spoolGauge
	logger      *zap.Logger
	cfg         FileServiceConfig
	now         func() time.Time

	mu      sync.Mutex
	objects map[string]spooledObject
}

// NewFileService constructs a FileService.
func NewFileService(students cvFetcher, internships internshipFileFetcher, spool objectSpool, signer objectSigner, session sessionState, gauge spoolGauge, logger *zap.Logger, cfg FileServiceConfig) *FileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = "/console/objects/"
	}
	return &FileService{
		students:    students,
		internships: internships,
		spool:       spool,
		signer:      signer,
		session:     session,
		gauge:       gauge,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
		objects:     make(map[string]spooledObject),
	}
}

// Open fetches an attachment for inline viewing. kind is cv for a student's
// CV, otherwise one of the internship file kinds.
func (s *FileService) Open(ctx context.Context, kind models.FileKind, recordID int64) (*dto.ObjectHandle, error) {
	if err := requireSession(s.session); err != nil {
		return nil, err
	}
	if kind == models.FileCV {
		blob, err := s.students.FetchCV(ctx, recordID, "open")
		if err != nil {
			return nil, s.fileError(err, "Could not open CV", kind, recordID)
		}
		return s.spoolBlob(blob, fmt.Sprintf("CV_%d", recordID), models.DispositionInline)
	}
	blob, err := s.internships.FetchFile(ctx, recordID, kind)
	if err != nil {
		return nil, s.fileError(err, "Could not open file", kind, recordID)
	}
	return s.spoolBlob(blob, fmt.Sprintf("%s_%d", kind, recordID), models.DispositionInline)
}

// Download fetches a student's CV as an attachment.
func (s *FileService) Download(ctx context.Context, studentID int64) (*dto.ObjectHandle, error) {
	if err := requireSession(s.session); err != nil {
		return nil, err
	}
	blob, err := s.students.FetchCV(ctx, studentID, "download")
	if err != nil {
		return nil, s.fileError(err, "Could not download CV", models.FileCV, studentID)
	}
	return s.spoolBlob(blob, fmt.Sprintf("CV_%d", studentID), models.DispositionAttachment)
}

func (s *FileService) fileError(err error, message string, kind models.FileKind, id int64) error {
	s.logger.Warn("file fetch failed", zap.String("kind", string(kind)), zap.Int64("record_id", id), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrFileUnavailable.Code, appErrors.ErrFileUnavailable.Status, message)
}

func (s *FileService) spoolBlob(blob *apiclient.Blob, fallbackName string, disposition models.Disposition) (*dto.ObjectHandle, error) {
	id := uuid.NewString()
	size, err := s.spool.Save(id, blob.Data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}
	token, expiresAt, err := s.signer.Generate(id, string(disposition))
	if err != nil {
		_ = s.spool.Delete(id)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign object link")
	}

	filename := blob.Filename
	if filename == "" {
		filename = fallbackName
	}
	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	handle := dto.ObjectHandle{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		Disposition: disposition,
		URL:         s.cfg.URLPrefix + token,
		ExpiresAt:   expiresAt,
	}

	s.mu.Lock()
	s.objects[id] = spooledObject{handle: handle, created: s.now()}
	count := len(s.objects)
	s.mu.Unlock()
	s.report(count)
	return &handle, nil
}

// Resolve validates an object link and opens the object. The link is
// consumed: a second Resolve with the same token fails.
func (s *FileService) Resolve(token string) (*ServedObject, error) {
	id, _, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrObjectExpired.Code, appErrors.ErrObjectExpired.Status, appErrors.ErrObjectExpired.Message)
	}

	s.mu.Lock()
	obj, ok := s.objects[id]
	delete(s.objects, id)
	count := len(s.objects)
	s.mu.Unlock()
	if !ok {
		return nil, appErrors.ErrObjectExpired
	}
	s.report(count)

	file, err := s.spool.Open(id)
	if err != nil {
		_ = s.spool.Delete(id)
		return nil, appErrors.Wrap(err, appErrors.ErrObjectExpired.Code, appErrors.ErrObjectExpired.Status, appErrors.ErrObjectExpired.Message)
	}
	return &ServedObject{Handle: obj.handle, ReadCloser: &releasingFile{File: file, release: func() { _ = s.spool.Delete(id) }}}, nil
}

// Release revokes an object before it is served. Unknown ids are ignored.
func (s *FileService) Release(id string) bool {
	s.mu.Lock()
	_, ok := s.objects[id]
	delete(s.objects, id)
	count := len(s.objects)
	s.mu.Unlock()
	if !ok {
		return false
	}
	if err := s.spool.Delete(id); err != nil {
		s.logger.Warn("release spool object failed", zap.String("object_id", id), zap.Error(err))
	}
	s.report(count)
	return true
}

// ReleaseAll revokes every outstanding object.
func (s *FileService) ReleaseAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.objects))
	for id := range s.objects {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.Release(id)
	}
}

// Sweep releases objects older than the link lifetime, including files left
// behind by a previous process.
func (s *FileService) Sweep() int {
	ttl := s.signer.TTL()
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	expired := make([]string, 0)
	for id, obj := range s.objects {
		if obj.created.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	released := 0
	for _, id := range expired {
		if s.Release(id) {
			released++
		}
	}

	orphans, err := s.spool.CleanupOlderThan(ttl)
	if err != nil {
		s.logger.Warn("spool cleanup failed", zap.Error(err))
	}
	s.mu.Lock()
	for _, name := range orphans {
		if _, tracked := s.objects[name]; !tracked {
			released++
		}
		delete(s.objects, name)
	}
	count := len(s.objects)
	s.mu.Unlock()
	s.report(count)

	if released > 0 {
		s.logger.Info("spool swept", zap.Int("released", released))
	}
	return released
}

// Run sweeps on every tick until ctx is done.
func (s *FileService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Outstanding is the number of objects not yet served or released.
func (s *FileService) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *FileService) report(count int) {
	if s.gauge != nil {
		s.gauge.SetSpoolObjects(count)
	}
}

type releasingFile struct {
	*os.File
	release func()
	once    sync.Once
}

func (f *releasingFile) Close() error {
	err := f.File.Close()
	f.once.Do(f.release)
	return err
}
