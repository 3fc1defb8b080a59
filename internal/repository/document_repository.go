package repository

import (
	"errors"
	"time"

	"gamifyiq-backend/internal/db"
	"gamifyiq-backend/internal/db/query"
	"gamifyiq-backend/internal/model"
)

// DocumentFilter narrows and pages document listings.
type DocumentFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

type DocumentRepository interface {
	CreateDocument(document *model.Document) error
	GetDocuments(filter DocumentFilter) ([]model.Document, error)
	GetDocumentByID(documentID uint) (*model.Document, error)
	UpdateDocumentStatus(documentID uint, status string, processedAt *time.Time) error
	DeleteDocument(documentID uint) error
	CountGamesForDocument(documentID uint) (int64, error)
}

type documentRepository struct{}

func NewDocumentRepository() DocumentRepository {
	return &documentRepository{}
}

func (r *documentRepository) CreateDocument(document *model.Document) error {
	return db.GetDB().Create(document).Error
}

func (r *documentRepository) GetDocuments(filter DocumentFilter) ([]model.Document, error) {
	qb := query.NewQueryBuilder().From("documents").OrderBy("created_at DESC")
	if filter.Status != "" {
		qb.WhereEqual("status", filter.Status)
	}
	if filter.Search != "" {
		qb.WhereLike("name", filter.Search)
	}
	if filter.PageSize > 0 {
		qb.Paginate(filter.Page, filter.PageSize)
	}

	sql, args := qb.Build()
	var documents []model.Document
	err := db.GetDB().Raw(sql, args...).Scan(&documents).Error
	return documents, err
}

func (r *documentRepository) GetDocumentByID(documentID uint) (*model.Document, error) {
	var document model.Document
	err := db.GetDB().Preload("Games").Where("id = ?", documentID).First(&document).Error
	if err != nil {
		return nil, errors.New("document not found")
	}
	return &document, nil
}

func (r *documentRepository) UpdateDocumentStatus(documentID uint, status string, processedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if processedAt != nil {
		updates["processed_at"] = *processedAt
	}
	return db.GetDB().Model(&model.Document{}).Where("id = ?", documentID).Updates(updates).Error
}

func (r *documentRepository) DeleteDocument(documentID uint) error {
	return db.GetDB().Delete(&model.Document{}, documentID).Error
}

func (r *documentRepository) CountGamesForDocument(documentID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Game{}).Where("document_id = ?", documentID).Count(&count).Error
	return count, err
}
