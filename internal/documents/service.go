package documents

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/petsivet/petsi-backend/pkg/gdrive"
)

// DriveAPI is the subset of the Drive provider client the proxy service
// depends on. Satisfied by *gdrive.Client; substituted in tests.
type DriveAPI interface {
	ListFolders(ctx context.Context) ([]gdrive.Folder, error)
	ListFilesInFolder(ctx context.Context, folderID string) ([]gdrive.File, error)
	CreateFolder(ctx context.Context, name, parentID string) (*gdrive.Folder, error)
	RenameFolder(ctx context.Context, id, name string) (*gdrive.Folder, error)
	RenameFile(ctx context.Context, id, name string) (*gdrive.File, error)
	DeleteItem(ctx context.Context, id string) error
	UploadFile(ctx context.Context, content io.Reader, name, mimeType, folderID string) (*gdrive.File, error)
	DownloadFile(ctx context.Context, id string) ([]byte, error)
	GetFileMetadata(ctx context.Context, id string) (*gdrive.File, error)
}

// ValidationError reports a missing required input by field name.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// FolderWithCount is a folder plus its on-demand file count. The count is
// computed per response and never cached.
type FolderWithCount struct {
	gdrive.Folder
	FileCount int `json:"fileCount"`
}

// FileStats summarizes the documents managed by the clinic for the
// dashboard: total file count plus creation counts for the current and
// previous calendar months.
type FileStats struct {
	Total     int
	ThisMonth int
	LastMonth int
}

// Service exposes clinic-specific folder and file operations on top of the
// Drive provider client. It is stateless; all durable state lives with the
// provider.
type Service struct {
	drive  DriveAPI
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a document proxy service.
func NewService(drive DriveAPI, logger zerolog.Logger) *Service {
	return &Service{
		drive:  drive,
		logger: logger.With().Str("component", "documents").Logger(),
		now:    time.Now,
	}
}

// ListFolders returns every folder with its file count. Counting is one
// list call per folder, executed concurrently; a failed count degrades to
// 0 for that folder instead of failing the whole response, and the final
// order is the folder-list order rather than completion order.
func (s *Service) ListFolders(ctx context.Context) ([]FolderWithCount, error) {
	folders, err := s.drive.ListFolders(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]FolderWithCount, len(folders))
	var wg sync.WaitGroup
	for i, folder := range folders {
		result[i] = FolderWithCount{Folder: folder}

		wg.Add(1)
		go func(i int, folderID string) {
			defer wg.Done()
			result[i].FileCount = s.FileCount(ctx, folderID)
		}(i, folder.ID)
	}
	wg.Wait()

	return result, nil
}

// ListFiles returns the non-trashed files inside a folder.
func (s *Service) ListFiles(ctx context.Context, folderID string) ([]gdrive.File, error) {
	if folderID == "" {
		return nil, &ValidationError{Field: "folder ID"}
	}
	return s.drive.ListFilesInFolder(ctx, folderID)
}

// CreateFolder creates a folder under parentID, or at the root when
// parentID is empty. Not idempotent: calling twice with the same name
// creates two distinct folders with distinct ids.
func (s *Service) CreateFolder(ctx context.Context, name, parentID string) (*gdrive.Folder, error) {
	if name == "" {
		return nil, &ValidationError{Field: "folder name"}
	}
	return s.drive.CreateFolder(ctx, name, parentID)
}

// RenameFolder renames a folder in place; the id stays stable.
func (s *Service) RenameFolder(ctx context.Context, id, name string) (*gdrive.Folder, error) {
	if id == "" {
		return nil, &ValidationError{Field: "folder ID"}
	}
	if name == "" {
		return nil, &ValidationError{Field: "folder name"}
	}
	return s.drive.RenameFolder(ctx, id, name)
}

// RenameFile renames a file in place.
func (s *Service) RenameFile(ctx context.Context, id, name string) (*gdrive.File, error) {
	if id == "" {
		return nil, &ValidationError{Field: "file ID"}
	}
	if name == "" {
		return nil, &ValidationError{Field: "file name"}
	}
	return s.drive.RenameFile(ctx, id, name)
}

// Delete permanently removes a file or folder. Irreversible; confirmation
// is a UI concern. Cascade behavior for folders is whatever the provider
// does natively.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "item ID"}
	}
	return s.drive.DeleteItem(ctx, id)
}

// Upload streams a payload to the provider. The 100 MiB size ceiling is
// enforced at the HTTP boundary before this method is reached.
func (s *Service) Upload(ctx context.Context, content io.Reader, name, mimeType, folderID string) (*gdrive.File, error) {
	if name == "" {
		return nil, &ValidationError{Field: "file name"}
	}
	return s.drive.UploadFile(ctx, content, name, mimeType, folderID)
}

// Download fetches a file's metadata and raw bytes. Both calls must
// succeed or the whole operation fails.
func (s *Service) Download(ctx context.Context, id string) (*gdrive.File, []byte, error) {
	if id == "" {
		return nil, nil, &ValidationError{Field: "file ID"}
	}

	meta, err := s.drive.GetFileMetadata(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.drive.DownloadFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return meta, data, nil
}

// FileCount returns the number of files in a folder, swallowing errors and
// returning 0. Used where a best-effort count is acceptable.
func (s *Service) FileCount(ctx context.Context, folderID string) int {
	files, err := s.drive.ListFilesInFolder(ctx, folderID)
	if err != nil {
		s.logger.Warn().Err(err).Str("folder_id", folderID).Msg("File count failed, reporting 0")
		return 0
	}
	return len(files)
}

// FileStats walks every folder concurrently and tallies total files plus
// this-month and last-month creation counts. A folder whose listing fails
// contributes nothing; failures stay isolated per folder.
func (s *Service) FileStats(ctx context.Context) (FileStats, error) {
	folders, err := s.drive.ListFolders(ctx)
	if err != nil {
		return FileStats{}, err
	}

	now := s.now()
	curYear, curMonth := now.Year(), now.Month()
	prev := now.AddDate(0, -1, -now.Day()+1)
	prevYear, prevMonth := prev.Year(), prev.Month()

	perFolder := make([]FileStats, len(folders))
	var wg sync.WaitGroup
	for i, folder := range folders {
		wg.Add(1)
		go func(i int, folderID string) {
			defer wg.Done()

			files, err := s.drive.ListFilesInFolder(ctx, folderID)
			if err != nil {
				s.logger.Warn().Err(err).Str("folder_id", folderID).Msg("Skipping folder in document stats")
				return
			}

			stats := FileStats{Total: len(files)}
			for _, f := range files {
				created, err := time.Parse(time.RFC3339, f.CreatedTime)
				if err != nil {
					continue
				}
				switch {
				case created.Year() == curYear && created.Month() == curMonth:
					stats.ThisMonth++
				case created.Year() == prevYear && created.Month() == prevMonth:
					stats.LastMonth++
				}
			}
			perFolder[i] = stats
		}(i, folder.ID)
	}
	wg.Wait()

	var total FileStats
	for _, stats := range perFolder {
		total.Total += stats.Total
		total.ThisMonth += stats.ThisMonth
		total.LastMonth += stats.LastMonth
	}
	return total, nil
}
