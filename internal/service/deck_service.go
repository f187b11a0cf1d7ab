package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"slidetutor/internal/config"
	"slidetutor/internal/domain"
	"slidetutor/internal/hashid"
	"slidetutor/internal/port"
)

// DeckUploadInput is the DTO for deck upload requests.
type DeckUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// DeckUploadResult carries the stored document plus whether the identical
// deck had been uploaded before.
type DeckUploadResult struct {
	Document      *domain.Document `json:"document"`
	AlreadyCached bool             `json:"already_cached"`
}

// DeckService defines the deck intake and metadata contract.
type DeckService interface {
	Upload(ctx context.Context, input DeckUploadInput) (*DeckUploadResult, error)
	GetInfo(ctx context.Context, documentID string) (*domain.Document, error)
}

type deckService struct {
	docRepo  port.DocumentRepository
	storage  port.ObjectStorage
	renderer port.PageRenderer
	upload   *config.UploadConfig
	prefix   string
}

// NewDeckService creates a new DeckService implementation.
func NewDeckService(
	docRepo port.DocumentRepository,
	storage port.ObjectStorage,
	renderer port.PageRenderer,
	uploadCfg *config.UploadConfig,
	keyPrefix string,
) DeckService {
	return &deckService{
		docRepo:  docRepo,
		storage:  storage,
		renderer: renderer,
		upload:   uploadCfg,
		prefix:   keyPrefix,
	}
}

// Upload validates the file, derives its content identity, and stores deck
// bytes plus metadata. Uploading bit-identical bytes twice returns the
// existing document without storing a second copy.
func (s *deckService) Upload(ctx context.Context, input DeckUploadInput) (*DeckUploadResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.upload.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte content type detection on the first 512 bytes
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Derive the content identity by streaming the whole file
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}
	documentID, err := hashid.Compute(input.File)
	if err != nil {
		return nil, err
	}

	// Identical content already processed: return the cached metadata
	exists, err := s.docRepo.Exists(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if exists {
		doc, err := s.docRepo.GetByID(ctx, documentID)
		if err != nil {
			return nil, err
		}
		log.Printf("deckService.Upload: deck %s already cached (%s)", documentID, doc.Filename)
		return &DeckUploadResult{Document: doc, AlreadyCached: true}, nil
	}

	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}
	content, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	totalPages, err := s.renderer.PageCount(content)
	if err != nil {
		return nil, err
	}

	key := documentID + ".pdf"
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}

	log.Printf("deckService.Upload: storing deck %s (%s, %d pages, %d bytes)",
		documentID, input.Header.Filename, totalPages, len(content))

	err = s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(content),
		ContentType: "application/pdf",
		Size:        int64(len(content)),
	})
	if err != nil {
		log.Printf("deckService.Upload: storage upload failed for %s: %v", documentID, err)
		return nil, domain.ErrUploadFailed
	}

	doc := &domain.Document{
		ID:          documentID,
		Filename:    input.Header.Filename,
		TotalPages:  totalPages,
		StoragePath: key,
	}
	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document metadata: %w", err)
	}

	return &DeckUploadResult{Document: doc, AlreadyCached: false}, nil
}

func (s *deckService) GetInfo(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, documentID)
}
