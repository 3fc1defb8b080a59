package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"gamifyiq-backend/internal/db"
	"gamifyiq-backend/internal/model"
	"gamifyiq-backend/internal/repository"
	"gamifyiq-backend/utilities"
)

const certificateDir = "working/certificates"

type CertificateService interface {
	GenerateCertificate(gameSessionID uint) (*model.Certificate, error)
	GetCertificateBySession(gameSessionID uint) (*model.Certificate, error)
}

type certificateService struct {
	sessionRepo repository.SessionRepository
	gameRepo    repository.GameRepository
	userRepo    repository.UserRepository
}

func NewCertificateService(sessionRepo repository.SessionRepository, gameRepo repository.GameRepository, userRepo repository.UserRepository) CertificateService {
	return &certificateService{
		sessionRepo: sessionRepo,
		gameRepo:    gameRepo,
		userRepo:    userRepo,
	}
}

// InitCertificateEventListeners issues a certificate whenever a session
// completes.
func InitCertificateEventListeners(certSvc CertificateService) {
	utilities.GlobalEventBus.Subscribe(utilities.EventSessionCompleted, func(data interface{}) {
		gameSessionID, ok := data.(uint)
		if !ok {
			utilities.Error("invalid session ID received for certificate generation")
			return
		}

		if _, err := certSvc.GenerateCertificate(gameSessionID); err != nil {
			utilities.Error("failed to generate certificate for session %d: %v", gameSessionID, err)
		}
	})
}

func (s *certificateService) GenerateCertificate(gameSessionID uint) (*model.Certificate, error) {
	var session model.GameSession
	if err := db.GetDB().Where("id = ?", gameSessionID).First(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	game, err := s.gameRepo.GetGameByID(session.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game: %w", err)
	}

	holderName := "Employee"
	if session.UserID != 0 {
		if user, err := s.userRepo.GetUserByID(session.UserID); err == nil {
			holderName = user.Name
		}
	}

	if err := os.MkdirAll(certificateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create certificate directory: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 28)
	pdf.CellFormat(0, 40, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 16)
	pdf.CellFormat(0, 12, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 16, holderName, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 16)
	pdf.CellFormat(0, 12, "has successfully completed", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 14, game.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Score: %d / %d points", session.Score, game.TotalPoints), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, time.Now().Format("January 2, 2006"), "", 1, "C", false, 0, "")

	fileName := fmt.Sprintf("certificate_%d.pdf", gameSessionID)
	outputPath := filepath.Join(certificateDir, fileName)
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return nil, fmt.Errorf("failed to save PDF: %w", err)
	}

	certificate := &model.Certificate{
		GameSessionID: gameSessionID,
		UserID:        session.UserID,
		Title:         fmt.Sprintf("%s Completion Certificate", game.Title),
		FilePath:      outputPath,
		DownloadURL:   "/certificates/" + fileName,
		IssuedAt:      time.Now(),
	}
	if err := s.sessionRepo.SaveCertificate(certificate); err != nil {
		return nil, err
	}

	utilities.Info("issued certificate %d for session %d", certificate.ID, gameSessionID)
	return certificate, nil
}

func (s *certificateService) GetCertificateBySession(gameSessionID uint) (*model.Certificate, error) {
	return s.sessionRepo.GetCertificateBySession(gameSessionID)
}
