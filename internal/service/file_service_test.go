package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/pkg/apiclient"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/storage"
)

type fakeFiles struct {
	blob  *apiclient.Blob
	err   error
	modes []string
	kinds []models.FileKind
}

func (f *fakeFiles) FetchCV(_ context.Context, _ int64, mode string) (*apiclient.Blob, error) {
	f.modes = append(f.modes, mode)
	return f.blob, f.err
}

func (f *fakeFiles) FetchFile(_ context.Context, _ int64, kind models.FileKind) (*apiclient.Blob, error) {
	f.kinds = append(f.kinds, kind)
	return f.blob, f.err
}

type gaugeRecorder struct{ last int }

func (g *gaugeRecorder) SetSpoolObjects(n int) { g.last = n }

func fileFixture(t *testing.T, files *fakeFiles) (*FileService, *gaugeRecorder) {
	t.Helper()
	spool, err := storage.NewSpool(t.TempDir())
	require.NoError(t, err)
	gauge := &gaugeRecorder{}
	signer := storage.NewSignedURLSigner("console-secret", time.Minute)
	return NewFileService(files, files, spool, signer, adminSession(), gauge, nil, FileServiceConfig{}), gauge
}

func tokenOf(url string) string {
	return strings.TrimPrefix(url, "/console/objects/")
}

func TestFileOpenUsesServerFilenameOrFallback(t *testing.T) {
	files := &fakeFiles{blob: &apiclient.Blob{Data: []byte("%PDF"), ContentType: "application/pdf", Filename: "jane_cv.pdf"}}
	svc, gauge := fileFixture(t, files)

	handle, err := svc.Open(context.Background(), models.FileCV, 7)
	require.NoError(t, err)
	assert.Equal(t, "jane_cv.pdf", handle.Filename)
	assert.Equal(t, models.DispositionInline, handle.Disposition)
	assert.Equal(t, int64(4), handle.Size)
	assert.True(t, strings.HasPrefix(handle.URL, "/console/objects/"))
	assert.Equal(t, []string{"open"}, files.modes)

	files.blob = &apiclient.Blob{Data: []byte("raw")}
	handle, err = svc.Download(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "CV_7", handle.Filename)
	assert.Equal(t, "application/octet-stream", handle.ContentType)
	assert.Equal(t, models.DispositionAttachment, handle.Disposition)

	handle, err = svc.Open(context.Background(), models.FileSurvey2, 3)
	require.NoError(t, err)
	assert.Equal(t, "survey2_3", handle.Filename)
	assert.Equal(t, []models.FileKind{models.FileSurvey2}, files.kinds)

	assert.Equal(t, 3, svc.Outstanding())
	assert.Equal(t, 3, gauge.last)
}

func TestFileResolveIsSingleUse(t *testing.T) {
	files := &fakeFiles{blob: &apiclient.Blob{Data: []byte("evidence"), ContentType: "image/png"}}
	svc, gauge := fileFixture(t, files)

	handle, err := svc.Open(context.Background(), models.FileEvidences, 1)
	require.NoError(t, err)

	obj, err := svc.Resolve(tokenOf(handle.URL))
	require.NoError(t, err)
	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "evidence", string(data))
	assert.Equal(t, "image/png", obj.Handle.ContentType)
	require.NoError(t, obj.Close())
	assert.Equal(t, 0, gauge.last)

	_, err = svc.Resolve(tokenOf(handle.URL))
	assert.ErrorIs(t, err, appErrors.ErrObjectExpired)

	_, err = svc.Resolve("garbage")
	assert.ErrorIs(t, err, appErrors.ErrObjectExpired)
}

func TestFileReleaseRevokesLink(t *testing.T) {
	files := &fakeFiles{blob: &apiclient.Blob{Data: []byte("x")}}
	svc, _ := fileFixture(t, files)

	first, err := svc.Open(context.Background(), models.FileCV, 1)
	require.NoError(t, err)
	second, err := svc.Open(context.Background(), models.FileCV, 2)
	require.NoError(t, err)

	assert.True(t, svc.Release(first.ID))
	assert.False(t, svc.Release(first.ID))
	_, err = svc.Resolve(tokenOf(first.URL))
	assert.ErrorIs(t, err, appErrors.ErrObjectExpired)

	svc.ReleaseAll()
	assert.Equal(t, 0, svc.Outstanding())
	_, err = svc.Resolve(tokenOf(second.URL))
	assert.ErrorIs(t, err, appErrors.ErrObjectExpired)
}

func TestFileSweepReleasesExpiredObjects(t *testing.T) {
	files := &fakeFiles{blob: &apiclient.Blob{Data: []byte("x")}}
	svc, _ := fileFixture(t, files)

	base := time.Now()
	svc.now = func() time.Time { return base }
	_, err := svc.Open(context.Background(), models.FileCV, 1)
	require.NoError(t, err)

	assert.Equal(t, 0, svc.Sweep())
	assert.Equal(t, 1, svc.Outstanding())

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.Equal(t, 1, svc.Sweep())
	assert.Equal(t, 0, svc.Outstanding())
}

func TestFileErrorsCarryActionMessage(t *testing.T) {
	files := &fakeFiles{err: appErrors.Clone(appErrors.ErrFileUnavailable, "not found")}
	svc, _ := fileFixture(t, files)

	_, err := svc.Open(context.Background(), models.FileCV, 1)
	assert.Equal(t, "Could not open CV", appErrors.FromError(err).Message)
	_, err = svc.Open(context.Background(), models.FileSurvey1, 1)
	assert.Equal(t, "Could not open file", appErrors.FromError(err).Message)
	_, err = svc.Download(context.Background(), 1)
	assert.Equal(t, "Could not download CV", appErrors.FromError(err).Message)
	assert.ErrorIs(t, err, appErrors.ErrFileUnavailable)

	noSession := NewFileService(files, files, nil, nil, &fakeSession{}, nil, nil, FileServiceConfig{})
	_, err = noSession.Open(context.Background(), models.FileCV, 1)
	assert.ErrorIs(t, err, appErrors.ErrNoSession)
}
