package service

import (
	"errors"
	"fmt"
	"strings"

	"gamifyiq-backend/internal/model"
	"gamifyiq-backend/internal/repository"
	"gamifyiq-backend/utilities"
)

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// DocumentUpload is the payload accepted from the upload endpoint.
type DocumentUpload struct {
	Name     string `json:"name" binding:"required"`
	Content  string `json:"content" binding:"required"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}

type DocumentService interface {
	UploadDocument(upload DocumentUpload, uploadedByID uint) (*model.Document, error)
	GetDocuments(filter repository.DocumentFilter) ([]model.Document, error)
	GetDocumentByID(documentID uint) (*model.Document, error)
	DeleteDocument(documentID uint) error
}

type documentService struct {
	documentRepo repository.DocumentRepository
	maxFileSize  int64
}

func NewDocumentService(documentRepo repository.DocumentRepository, maxFileSizeMB int) DocumentService {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 10
	}
	return &documentService{
		documentRepo: documentRepo,
		maxFileSize:  int64(maxFileSizeMB) * 1024 * 1024,
	}
}

// UploadDocument validates and stores a document, then publishes
// document_uploaded so game generation runs asynchronously.
func (s *documentService) UploadDocument(upload DocumentUpload, uploadedByID uint) (*model.Document, error) {
	if strings.TrimSpace(upload.Content) == "" {
		return nil, errors.New("document content cannot be empty")
	}
	if upload.FileSize > s.maxFileSize {
		return nil, fmt.Errorf("file size exceeds %d MB limit", s.maxFileSize/(1024*1024))
	}
	if upload.MimeType != "" && !allowedMimeTypes[upload.MimeType] {
		return nil, errors.New("file type not supported")
	}

	document := &model.Document{
		Name:         upload.Name,
		OriginalName: upload.Name,
		Content:      upload.Content,
		MimeType:     upload.MimeType,
		FileSize:     upload.FileSize,
		Status:       model.DocumentProcessing,
		UploadedByID: uploadedByID,
	}
	if err := s.documentRepo.CreateDocument(document); err != nil {
		return nil, err
	}

	utilities.Info("document %d (%s) uploaded, queued for game generation", document.ID, document.Name)
	utilities.GlobalEventBus.Publish(utilities.EventDocumentUploaded, document.ID)

	return document, nil
}

func (s *documentService) GetDocuments(filter repository.DocumentFilter) ([]model.Document, error) {
	return s.documentRepo.GetDocuments(filter)
}

func (s *documentService) GetDocumentByID(documentID uint) (*model.Document, error) {
	return s.documentRepo.GetDocumentByID(documentID)
}

func (s *documentService) DeleteDocument(documentID uint) error {
	if _, err := s.documentRepo.GetDocumentByID(documentID); err != nil {
		return err
	}
	return s.documentRepo.DeleteDocument(documentID)
}
