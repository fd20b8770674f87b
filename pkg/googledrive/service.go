package googledrive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// spreadsheetsScope is requested alongside the Drive scope so the same
// credential can drive the submission export.
const spreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

type Service struct {
	clientID     string
	clientSecret string
	redirectURI  string

	// endpoint overrides the Drive API base URL; empty in production
	endpoint string
}

func NewService(clientID, clientSecret, redirectURI string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
	}
}

func (s *Service) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		RedirectURL:  s.redirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drive.DriveFileScope, spreadsheetsScope},
	}
}

// Exchange converts an authorization code into a token pair
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %v", err)
	}
	return token, nil
}

// Refresh performs a single refresh-token exchange. No retry; the caller
// surfaces the failure immediately.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	src := s.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("unable to refresh access token: %v", err)
	}
	return token, nil
}

// getDriveService creates a Drive client from a valid access token
func (s *Service) getDriveService(ctx context.Context, accessToken string) (*drive.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	client := oauth2.NewClient(ctx, src)

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}

	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive service: %v", err)
	}

	return srv, nil
}

// EnsureFolder returns the id of a non-trashed folder with the given name,
// creating it when absent. The first match by provider ordering wins when
// several folders share the name. Lookup-then-create is not transactional,
// so concurrent callers for a brand-new name can leave duplicate folders.
func (s *Service) EnsureFolder(ctx context.Context, accessToken, name, parentID string) (string, error) {
	srv, err := s.getDriveService(ctx, accessToken)
	if err != nil {
		return "", err
	}

	list, err := srv.Files.List().
		Q(folderQuery(name, parentID)).
		Fields("files(id, name)").
		PageSize(10).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to look up folder %q: %v", name, err)
	}

	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		folder.Parents = []string{parentID}
	}

	created, err := srv.Files.Create(folder).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create folder %q: %v", name, err)
	}

	return created.Id, nil
}

// UploadFile streams content into the folder and returns the new file's id
// and human-facing view URL.
func (s *Service) UploadFile(ctx context.Context, accessToken, folderID, name, mimeType string, content io.Reader) (string, string, error) {
	srv, err := s.getDriveService(ctx, accessToken)
	if err != nil {
		return "", "", err
	}

	file := &drive.File{
		Name:    name,
		Parents: []string{folderID},
	}

	var opts []googleapi.MediaOption
	if mimeType != "" {
		opts = append(opts, googleapi.ContentType(mimeType))
	}

	created, err := srv.Files.Create(file).
		Media(content, opts...).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("unable to upload file %q: %v", name, err)
	}

	viewURL := created.WebViewLink
	if viewURL == "" {
		viewURL = "https://drive.google.com/file/d/" + created.Id + "/view"
	}

	return created.Id, viewURL, nil
}

// AllowPublicRead grants "anyone with link can read" on the file
func (s *Service) AllowPublicRead(ctx context.Context, accessToken, fileID string) error {
	srv, err := s.getDriveService(ctx, accessToken)
	if err != nil {
		return err
	}

	perm := &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}

	_, err = srv.Permissions.Create(fileID, perm).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to set public permission on file %s: %v", fileID, err)
	}

	return nil
}

// Download fetches file content for the proxy endpoint. The caller owns the
// returned body.
func (s *Service) Download(ctx context.Context, accessToken, fileID string) (io.ReadCloser, string, error) {
	srv, err := s.getDriveService(ctx, accessToken)
	if err != nil {
		return nil, "", err
	}

	resp, err := srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("unable to download file %s: %v", fileID, err)
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// folderQuery builds the Drive search query for an exact-name, non-trashed
// folder, optionally constrained to a parent.
func folderQuery(name, parentID string) string {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQueryName(name), folderMimeType)
	if parentID != "" {
		q += fmt.Sprintf(" and '%s' in parents", escapeQueryName(parentID))
	}
	return q
}

// escapeQueryName escapes a display name for safe embedding in a Drive query
func escapeQueryName(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	return strings.ReplaceAll(name, `'`, `\'`)
}
