package gdrive

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/petsivet/petsi-backend/pkg/provider"
)

const folderMimeType = "application/vnd.google-apps.folder"

// listPageSize is the provider's maximum page size. Listings larger than a
// single page are fetched page by page until no continuation token remains.
const listPageSize = 1000

// Field sets requested on every call. Folders carry no size or links;
// files must include everything a UI row needs in one round trip.
const (
	folderFields = "id,name,mimeType,createdTime,modifiedTime"
	fileFields   = "id,name,mimeType,size,createdTime,modifiedTime,webViewLink,webContentLink,thumbnailLink,iconLink"
)

// Client is a thin typed binding to the Google Drive v3 API. It is
// constructed once at startup and injected into every service that needs
// it. Every method is a single remote round trip per page with no retries
// and no caching.
type Client struct {
	files *drive.FilesService
}

// NewClient creates a Drive client authenticated with a service-account
// key file using the full Drive scope. Extra options are appended after
// the credentials, so tests can override the endpoint and authentication.
func NewClient(ctx context.Context, keyFile string, opts ...option.ClientOption) (*Client, error) {
	var all []option.ClientOption
	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, drive.DriveScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account key: %w", err)
		}
		all = append(all, option.WithCredentials(creds))
	}
	all = append(all, opts...)

	svc, err := drive.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Client{files: svc.Files}, nil
}

// ListFolders returns every non-trashed folder visible to the credential,
// ordered by name ascending, concatenating pages in provider order.
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	query := fmt.Sprintf("mimeType='%s' and trashed=false", folderMimeType)

	var folders []Folder
	pageToken := ""
	for {
		call := c.files.List().
			Q(query).
			Fields(googleapi.Field("nextPageToken,files(" + folderFields + ")")).
			OrderBy("name").
			PageSize(listPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, provider.Wrap(err)
		}
		for _, f := range res.Files {
			folder, err := toFolder(f)
			if err != nil {
				return nil, err
			}
			folders = append(folders, *folder)
		}
		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	return folders, nil
}

// ListFilesInFolder returns every non-trashed, non-folder item whose parent
// is folderID, ordered by name ascending.
func (c *Client) ListFilesInFolder(ctx context.Context, folderID string) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false and mimeType!='%s'", folderID, folderMimeType)

	var files []File
	pageToken := ""
	for {
		call := c.files.List().
			Q(query).
			Fields(googleapi.Field("nextPageToken,files(" + fileFields + ")")).
			OrderBy("name").
			PageSize(listPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, provider.Wrap(err)
		}
		for _, f := range res.Files {
			file, err := toFile(f)
			if err != nil {
				return nil, err
			}
			files = append(files, *file)
		}
		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	return files, nil
}

// CreateFolder creates a folder, at the Drive root when parentID is empty.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*Folder, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	res, err := c.files.Create(meta).
		Fields(folderFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, provider.Wrap(err)
	}
	return toFolder(res)
}

// RenameFolder renames the item with the given id in place. The item's
// current type is not verified; rename shares one update primitive with
// RenameFile and only the requested field set differs.
func (c *Client) RenameFolder(ctx context.Context, id, name string) (*Folder, error) {
	res, err := c.files.Update(id, &drive.File{Name: name}).
		Fields(folderFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, provider.Wrap(err)
	}
	return toFolder(res)
}

// RenameFile renames the file with the given id in place.
func (c *Client) RenameFile(ctx context.Context, id, name string) (*File, error) {
	res, err := c.files.Update(id, &drive.File{Name: name}).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, provider.Wrap(err)
	}
	return toFile(res)
}

// DeleteItem permanently deletes a file or folder. Whether a deleted
// folder's contents survive is provider-native behavior and is not
// reimplemented here.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	if err := c.files.Delete(id).Context(ctx).Do(); err != nil {
		return provider.Wrap(err)
	}
	return nil
}

// UploadFile streams content to Drive with the given metadata, into
// folderID when set, otherwise to the root.
func (c *Client) UploadFile(ctx context.Context, content io.Reader, name, mimeType, folderID string) (*File, error) {
	meta := &drive.File{Name: name}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	res, err := c.files.Create(meta).
		Media(content, googleapi.ContentType(mimeType)).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, provider.Wrap(err)
	}
	return toFile(res)
}

// DownloadFile fetches the raw bytes of a file.
func (c *Client) DownloadFile(ctx context.Context, id string) ([]byte, error) {
	res, err := c.files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, provider.Wrap(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download body: %w", err)
	}
	return data, nil
}

// GetFileMetadata fetches the full metadata of a single file.
func (c *Client) GetFileMetadata(ctx context.Context, id string) (*File, error) {
	res, err := c.files.Get(id).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, provider.Wrap(err)
	}
	return toFile(res)
}

// toFolder validates a raw provider folder. Items without an id or name
// cannot be addressed or rendered and are rejected outright.
func toFolder(f *drive.File) (*Folder, error) {
	if f == nil || f.Id == "" || f.Name == "" {
		return nil, provider.Malformed("folder response missing id or name")
	}
	return &Folder{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
	}, nil
}

func toFile(f *drive.File) (*File, error) {
	if f == nil || f.Id == "" || f.Name == "" {
		return nil, provider.Malformed("file response missing id or name")
	}
	return &File{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		CreatedTime:    f.CreatedTime,
		ModifiedTime:   f.ModifiedTime,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		ThumbnailLink:  f.ThumbnailLink,
		IconLink:       f.IconLink,
	}, nil
}
