package main

import (
	"golang.org/x/crypto/bcrypt"

	"gamifyiq-backend/internal/model"
	"gamifyiq-backend/internal/repository"
	"gamifyiq-backend/utilities"
)

// seedSampleData loads a starter admin, two employees, and two sample policy
// documents. Runs only when the DB INITIALIZE flag is set; existing rows are
// left untouched.
func seedSampleData(userRepo repository.UserRepository, documentRepo repository.DocumentRepository) {
	users := []model.User{
		{Email: "admin@gamifyiq.com", Name: "System Administrator", Role: model.RoleAdmin, Password: "admin123"},
		{Email: "john.doe@company.com", Name: "John Doe", Role: model.RoleEmployee, Password: "changeme"},
		{Email: "jane.smith@company.com", Name: "Jane Smith", Role: model.RoleEmployee, Password: "changeme"},
	}

	seededUsers := 0
	for _, u := range users {
		if existing, err := userRepo.GetUserByEmail(u.Email); err == nil && existing != nil {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			utilities.Error("failed to hash seed password for %s: %v", u.Email, err)
			continue
		}
		u.Password = string(hashed)
		u.IsActive = true
		if err := userRepo.CreateUser(&u); err != nil {
			utilities.Error("failed to seed user %s: %v", u.Email, err)
			continue
		}
		seededUsers++
	}

	documents := []model.Document{
		{
			Name:         "HIPAA Privacy Policy",
			OriginalName: "hipaa-privacy-policy.pdf",
			Content:      "This document outlines the HIPAA privacy requirements and guidelines for handling protected health information. Employees must verify patient identity before disclosing records, report suspected breaches within 24 hours, and never share credentials used to access health systems.",
			MimeType:     "application/pdf",
			FileSize:     1024000,
			Status:       model.DocumentUploading,
		},
		{
			Name:         "Code of Conduct",
			OriginalName: "code-of-conduct.pdf",
			Content:      "This document outlines the expected behavior and ethical standards for all employees, covering conflicts of interest, acceptable use of company resources, anti-harassment rules, and the escalation path for reporting violations.",
			MimeType:     "application/pdf",
			FileSize:     2048000,
			Status:       model.DocumentUploading,
		},
	}

	seededDocs := 0
	for _, d := range documents {
		existing, err := documentRepo.GetDocuments(repository.DocumentFilter{Search: d.Name, PageSize: 1})
		if err == nil && len(existing) > 0 {
			continue
		}
		doc := d
		if err := documentRepo.CreateDocument(&doc); err != nil {
			utilities.Error("failed to seed document %s: %v", d.Name, err)
			continue
		}
		seededDocs++
		// Kick off generation the same way a real upload would.
		utilities.GlobalEventBus.Publish(utilities.EventDocumentUploaded, doc.ID)
	}

	utilities.Info("seed complete: %d users, %d documents", seededUsers, seededDocs)
}
