package service_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/hauptbau/fieldops-api/internal/storage"
	"github.com/hauptbau/fieldops-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createDocumentationService(t *testing.T, db *gorm.DB) (*service.DocumentationService, string) {
	t.Helper()

	basePath := t.TempDir()
	store, err := storage.NewLocalStorage(basePath)
	require.NoError(t, err)

	svc := service.NewDocumentationService(
		repository.NewPhotoDocumentRepository(db),
		repository.NewProjectRepository(db),
		store,
		zap.NewNop(),
	)
	return svc, basePath
}

func TestDocumentationService_UploadAndDownload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, basePath := createDocumentationService(t, db)
	project := testutil.CreateTestProject(t, db)
	employee := testutil.CreateTestEmployee(t, db, nil)

	dto, err := svc.UploadPhoto(context.Background(), project.ID, employee.ID,
		"baustelle.jpg", "image/jpeg", strings.NewReader("fake image bytes"),
		&domain.CreatePhotoDocumentRequest{Caption: "Rohbau EG fertig"})
	require.NoError(t, err)
	assert.Equal(t, project.ID, dto.ProjectID)
	assert.Equal(t, "Rohbau EG fertig", dto.Caption)
	assert.True(t, strings.HasPrefix(dto.StoragePath, project.ID.String()+string(filepath.Separator)))
	assert.Equal(t, ".jpg", filepath.Ext(dto.StoragePath))

	reader, contentType, err := svc.DownloadPhoto(context.Background(), dto.ID)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
	assert.Equal(t, "image/jpeg", contentType)

	_, err = os.Stat(filepath.Join(basePath, dto.StoragePath))
	assert.NoError(t, err)
}

func TestDocumentationService_Upload_ProjectNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := createDocumentationService(t, db)

	_, err := svc.UploadPhoto(context.Background(), uuid.New(), uuid.New(),
		"baustelle.jpg", "image/jpeg", strings.NewReader("bytes"),
		&domain.CreatePhotoDocumentRequest{})
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestDocumentationService_ListPhotos_Paginated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := createDocumentationService(t, db)
	project := testutil.CreateTestProject(t, db)
	employee := testutil.CreateTestEmployee(t, db, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.UploadPhoto(context.Background(), project.ID, employee.ID,
			"foto.jpg", "image/jpeg", strings.NewReader("bytes"),
			&domain.CreatePhotoDocumentRequest{})
		require.NoError(t, err)
	}

	result, err := svc.ListPhotos(context.Background(), project.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.Data.([]domain.PhotoDocumentDTO), 2)
}

func TestDocumentationService_DeletePhoto_RemovesBlob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, basePath := createDocumentationService(t, db)
	project := testutil.CreateTestProject(t, db)
	employee := testutil.CreateTestEmployee(t, db, nil)

	dto, err := svc.UploadPhoto(context.Background(), project.ID, employee.ID,
		"foto.jpg", "image/jpeg", strings.NewReader("bytes"),
		&domain.CreatePhotoDocumentRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePhoto(context.Background(), dto.ID))

	_, err = os.Stat(filepath.Join(basePath, dto.StoragePath))
	assert.True(t, os.IsNotExist(err))

	_, _, err = svc.DownloadPhoto(context.Background(), dto.ID)
	assert.ErrorIs(t, err, service.ErrPhotoNotFound)
}

func TestDocumentationService_DeletePhoto_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := createDocumentationService(t, db)

	err := svc.DeletePhoto(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrPhotoNotFound)
}
