package services

import (
	"context"
	"mime/multipart"

	"github.com/MorneNemdil/lovejoy-security-project/internal/model"

	"go.uber.org/zap"
)

type EvaluationService struct {
	Requests EvaluationStore
	Uploads  *UploadService
	log      *zap.Logger
}

func NewEvaluationService(requests EvaluationStore, uploads *UploadService, log *zap.Logger) *EvaluationService {
	return &EvaluationService{Requests: requests, Uploads: uploads, log: log}
}

// Submit persists an evaluation request owned by the caller. The photo is
// optional; when the record insert fails after a photo was written, the
// stored file is removed so no orphan is left behind.
func (s *EvaluationService) Submit(ctx context.Context, accountID int64, details, contactMethod string, photo *multipart.FileHeader) (int64, error) {
	if details == "" || contactMethod == "" {
		return 0, ErrMissingFields
	}

	stored, err := s.Uploads.SavePhoto(photo)
	if err != nil {
		return 0, err
	}

	id, err := s.Requests.Create(ctx, accountID, details, contactMethod, stored)
	if err != nil {
		if stored != nil {
			if rmErr := s.Uploads.Remove(*stored); rmErr != nil {
				s.log.Error("removing orphaned upload failed",
					zap.String("filename", *stored), zap.Error(rmErr))
			}
		}
		return 0, err
	}
	return id, nil
}

// ListAll returns every request joined with its owner's email. The admin
// check happens before this is called.
func (s *EvaluationService) ListAll(ctx context.Context) ([]model.EvaluationRequestWithOwner, error) {
	return s.Requests.ListAllWithOwner(ctx)
}
