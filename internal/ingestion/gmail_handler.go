package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

// DefaultMaxMessages bounds a single scan when the caller does not specify one.
const DefaultMaxMessages = 50

// GmailHandler fetches resume attachments from a mailbox.
type GmailHandler struct {
	service *gmail.Service
}

// NewGoogleClient runs the installed-app OAuth flow against the credentials
// file, caching the token at tokenPath. The returned client is shared by the
// Gmail, Drive and Sheets services.
func NewGoogleClient(ctx context.Context, credentialsPath, tokenPath string, scopes ...string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			log.Printf("Unable to cache oauth token: %v", err)
		}
	}

	return config.Client(ctx, tok), nil
}

// NewGmailHandler creates a Gmail handler on top of an authenticated client.
func NewGmailHandler(ctx context.Context, client *http.Client) (*GmailHandler, error) {
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}
	return &GmailHandler{service: srv}, nil
}

// getTokenFromWeb requests a token interactively.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

// tokenFromFile retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// saveToken caches a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// FetchResumeAttachments lists messages with attachments matching the extra
// query terms and returns every PDF/DOC/DOCX attachment in memory, tagged
// with sender, subject and date. Per-message failures are logged and skipped;
// only the initial listing can fail the fetch.
func (gh *GmailHandler) FetchResumeAttachments(ctx context.Context, query string, maxMessages int64) ([]models.RawDocument, error) {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}

	user := "me"
	q := strings.TrimSpace("has:attachment " + query)

	r, err := gh.service.Users.Messages.List(user).Q(q).MaxResults(maxMessages).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve messages: %w", err)
	}

	var docs []models.RawDocument
	for _, msg := range r.Messages {
		message, err := gh.service.Users.Messages.Get(user, msg.Id).Context(ctx).Do()
		if err != nil {
			log.Printf("Unable to retrieve message %s: %v", msg.Id, err)
			continue
		}

		meta := extractEmailMeta(message)

		for _, part := range attachmentParts(message.Payload) {
			ext := strings.ToLower(filepath.Ext(part.Filename))
			if ext != ".pdf" && ext != ".doc" && ext != ".docx" {
				continue
			}

			attachment, err := gh.service.Users.Messages.Attachments.Get(user, msg.Id, part.Body.AttachmentId).Context(ctx).Do()
			if err != nil {
				log.Printf("Unable to retrieve attachment %s: %v", part.Filename, err)
				continue
			}

			data, err := base64.URLEncoding.DecodeString(attachment.Data)
			if err != nil {
				log.Printf("Unable to decode attachment %s: %v", part.Filename, err)
				continue
			}

			docs = append(docs, models.RawDocument{
				Content:  data,
				Filename: part.Filename,
				FileType: strings.TrimPrefix(ext, "."),
				Meta:     meta,
			})
		}
	}

	return docs, nil
}

// attachmentParts walks the MIME tree and returns every part carrying an
// attachment. Mail clients routinely nest attachments under multipart
// containers, so the top level alone is not enough.
func attachmentParts(payload *gmail.MessagePart) []*gmail.MessagePart {
	if payload == nil {
		return nil
	}

	var parts []*gmail.MessagePart
	for _, part := range payload.Parts {
		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			parts = append(parts, part)
		}
		parts = append(parts, attachmentParts(part)...)
	}
	return parts
}

// extractEmailMeta pulls sender, subject and date out of the message headers.
func extractEmailMeta(message *gmail.Message) models.EmailMeta {
	meta := models.EmailMeta{MessageID: message.Id, Sender: "Unknown"}

	for _, header := range message.Payload.Headers {
		switch header.Name {
		case "From":
			meta.Sender = senderName(header.Value)
		case "Subject":
			meta.Subject = header.Value
		case "Date":
			if t, err := mail.ParseDate(header.Value); err == nil {
				meta.Date = t
			}
		}
	}

	if meta.Date.IsZero() && message.InternalDate > 0 {
		meta.Date = time.UnixMilli(message.InternalDate)
	}
	return meta
}

// senderName reduces a "Name <email@example.com>" header to a bare name,
// falling back to the mailbox prefix.
func senderName(from string) string {
	if idx := strings.Index(from, "<"); idx > 0 {
		name := strings.TrimSpace(strings.Trim(from[:idx], `" `))
		if name != "" {
			return name
		}
		from = strings.Trim(from[idx:], "<>")
	}
	if idx := strings.Index(from, "@"); idx > 0 {
		return from[:idx]
	}
	if from == "" {
		return "Unknown"
	}
	return from
}
