package filing

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// MIME types used when filing into Drive.
const (
	mimeTypeFolder = "application/vnd.google-apps.folder"
	mimeTypePDF    = "application/pdf"
	mimeTypeDOC    = "application/msword"
	mimeTypeDOCX   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DriveFiler uploads classified resumes into the domain/experience folder
// tree under a root folder.
type DriveFiler struct {
	service *drive.Service
	rootID  string
}

// NewDriveFiler creates a Drive filer on top of an authenticated client.
// rootID is the folder all domain folders live under; "root" targets the
// My Drive top level.
func NewDriveFiler(ctx context.Context, client *http.Client, rootID string) (*DriveFiler, error) {
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive client: %w", err)
	}
	if rootID == "" {
		rootID = "root"
	}
	return &DriveFiler{service: srv, rootID: rootID}, nil
}

// RootID returns the configured root folder ID.
func (df *DriveFiler) RootID() string {
	return df.rootID
}

// EnsureFolder looks a folder up by exact name under the parent and creates
// it when absent. List-then-create keeps the call idempotent per invocation;
// true atomicity across concurrent scans would need a lock Drive does not
// offer, and a duplicate folder is an accepted worst case.
func (df *DriveFiler) EnsureFolder(ctx context.Context, parentID, name string) (string, error) {
	query := fmt.Sprintf(
		"name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		escapeQuery(name), parentID, mimeTypeFolder)

	list, err := df.service.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("folder lookup %q: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := df.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: mimeTypeFolder,
		Parents:  []string{parentID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("folder create %q: %w", name, err)
	}
	return folder.Id, nil
}

// Upload stores the attachment bytes in the given folder with the derived
// filename and description, returning the new file ID.
func (df *DriveFiler) Upload(ctx context.Context, folderID, filename, description string, content []byte, fileType string) (string, error) {
	file, err := df.service.Files.Create(&drive.File{
		Name:        filename,
		Description: description,
		Parents:     []string{folderID},
	}).
		Media(bytes.NewReader(content), googleapi.ContentType(mimeTypeFor(fileType))).
		Fields("id").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", filename, err)
	}
	return file.Id, nil
}

func mimeTypeFor(fileType string) string {
	switch fileType {
	case "pdf":
		return mimeTypePDF
	case "doc":
		return mimeTypeDOC
	case "docx":
		return mimeTypeDOCX
	default:
		return "application/octet-stream"
	}
}

// escapeQuery escapes single quotes and backslashes for a Drive query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
