package service

import (
	"context"
	"errors"
	"time"

	"ai-storevision-be/internal/dto"
	"ai-storevision-be/internal/entity"
	"ai-storevision-be/internal/pkg/apperrors"
	"ai-storevision-be/internal/pkg/logger"
	"ai-storevision-be/pkg/datauri"
	"ai-storevision-be/pkg/filestore"
)

// Public collection names (URL segments) to store document keys.
var collectionKeys = map[string]string{
	"generated-images": filestore.KeyGeneratedImages,
	"vision":           filestore.KeyVisionAnalyses,
	"chat":             filestore.KeyChatSessions,
	"sustainability":   filestore.KeySustainabilityReports,
	"dashboard":        filestore.KeyDashboardSnapshots,
}

type IStoreService interface {
	Load(ctx context.Context) (*filestore.Document, error)
	SaveGeneratedImage(ctx context.Context, req *dto.SaveGeneratedImageRequest) (*entity.GeneratedImage, error)
	SaveVisionAnalysis(ctx context.Context, req *dto.SaveVisionAnalysisRequest) (*entity.VisionAnalysis, error)
	UpsertChatSession(ctx context.Context, req *dto.UpsertChatSessionRequest) (*entity.ChatSession, error)
	SaveSustainabilityReport(ctx context.Context, req *dto.SaveSustainabilityReportRequest) (*entity.SustainabilityReport, error)
	SaveDashboardSnapshot(ctx context.Context, req *dto.SaveDashboardSnapshotRequest) (*entity.DashboardSnapshot, error)
	Delete(ctx context.Context, collection, id string) error
	ReadImage(ctx context.Context, filename string) ([]byte, error)
}

type storeService struct {
	store            *filestore.FileStore
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewStoreService(
	store *filestore.FileStore,
	publisherService IPublisherService,
	logger logger.ILogger,
) IStoreService {
	return &storeService{
		store:            store,
		publisherService: publisherService,
		logger:           logger,
	}
}

func (s *storeService) Load(ctx context.Context) (*filestore.Document, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return doc, nil
}

func (s *storeService) SaveGeneratedImage(ctx context.Context, req *dto.SaveGeneratedImageRequest) (*entity.GeneratedImage, error) {
	// Strict path: a malformed payload writes nothing at all.
	img, err := datauri.Parse(req.ImageData)
	if err != nil {
		return nil, apperrors.Validation("imageData deve ser um data URI de imagem em base64")
	}

	filename, err := s.store.SaveImage(entity.IdPrefixImage, img.Data, datauri.Ext(img.MediaType))
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	record := entity.GeneratedImage{
		Id:         entity.NewId(entity.IdPrefixImage),
		CameraName: req.CameraName,
		ImageFile:  filename,
		Timestamp:  time.Now(),
	}

	err = s.store.Mutate(func(doc *filestore.Document) error {
		doc.GeneratedImages = append([]entity.GeneratedImage{record}, doc.GeneratedImages...)
		return nil
	})
	if err != nil {
		// The image file already written stays on disk; the next delete of
		// the collection would not know about it. Acknowledged window.
		return nil, apperrors.Storage(err)
	}

	s.publisherService.PublishStoreActivity("save", filestore.KeyGeneratedImages, record.Id)
	return &record, nil
}

func (s *storeService) SaveVisionAnalysis(ctx context.Context, req *dto.SaveVisionAnalysisRequest) (*entity.VisionAnalysis, error) {
	// Lenient path: an unparsable payload degrades to a nil file
	// reference instead of failing the save.
	var imageFile *string
	if req.ImageData != "" {
		if img, err := datauri.Parse(req.ImageData); err == nil {
			filename, err := s.store.SaveImage(entity.IdPrefixVision, img.Data, datauri.Ext(img.MediaType))
			if err != nil {
				return nil, apperrors.Storage(err)
			}
			imageFile = &filename
		} else {
			s.logger.Warn("store", "vision image payload not parsable, storing without file", map[string]interface{}{
				"cameraName": req.CameraName,
			})
		}
	}

	result := req.Result
	if result.Objects == nil {
		result.Objects = []string{}
	}
	if result.Charts == nil {
		result.Charts = []entity.Chart{}
	}

	record := entity.VisionAnalysis{
		Id:         entity.NewId(entity.IdPrefixVision),
		CameraName: req.CameraName,
		ImageFile:  imageFile,
		Task:       req.Task,
		Result:     result,
		Timestamp:  time.Now(),
	}

	err := s.store.Mutate(func(doc *filestore.Document) error {
		doc.VisionAnalyses = append([]entity.VisionAnalysis{record}, doc.VisionAnalyses...)
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.publisherService.PublishStoreActivity("save", filestore.KeyVisionAnalyses, record.Id)
	return &record, nil
}

func (s *storeService) UpsertChatSession(ctx context.Context, req *dto.UpsertChatSessionRequest) (*entity.ChatSession, error) {
	now := time.Now()
	var session entity.ChatSession
	action := "save"

	err := s.store.Mutate(func(doc *filestore.Document) error {
		if req.Id != "" {
			for i := range doc.ChatSessions {
				if doc.ChatSessions[i].Id == req.Id {
					// startedAt survives every update
					doc.ChatSessions[i].Messages = req.Messages
					doc.ChatSessions[i].LastMessageAt = now
					session = doc.ChatSessions[i]
					action = "upsert"
					return nil
				}
			}
		}

		session = entity.ChatSession{
			Id:            req.Id,
			Messages:      req.Messages,
			StartedAt:     now,
			LastMessageAt: now,
		}
		if session.Id == "" {
			session.Id = entity.NewId(entity.IdPrefixChat)
		}
		doc.ChatSessions = append([]entity.ChatSession{session}, doc.ChatSessions...)
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.publisherService.PublishStoreActivity(action, filestore.KeyChatSessions, session.Id)
	return &session, nil
}

func (s *storeService) SaveSustainabilityReport(ctx context.Context, req *dto.SaveSustainabilityReportRequest) (*entity.SustainabilityReport, error) {
	charts := req.Charts
	if charts == nil {
		charts = []entity.Chart{}
	}

	record := entity.SustainabilityReport{
		Id:        entity.NewId(entity.IdPrefixSustainability),
		InputData: req.InputData,
		Report:    req.Report,
		Charts:    charts,
		Timestamp: time.Now(),
	}

	err := s.store.Mutate(func(doc *filestore.Document) error {
		doc.SustainabilityReports = append([]entity.SustainabilityReport{record}, doc.SustainabilityReports...)
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.publisherService.PublishStoreActivity("save", filestore.KeySustainabilityReports, record.Id)
	return &record, nil
}

func (s *storeService) SaveDashboardSnapshot(ctx context.Context, req *dto.SaveDashboardSnapshotRequest) (*entity.DashboardSnapshot, error) {
	record := entity.DashboardSnapshot{
		Id:        entity.NewId(entity.IdPrefixDashboard),
		Insights:  req.Insights,
		Charts:    req.Charts,
		Stats:     req.Stats,
		Text:      req.Text,
		Timestamp: time.Now(),
	}
	if record.Insights == nil {
		record.Insights = []entity.DashboardInsight{}
	}
	if record.Charts == nil {
		record.Charts = []entity.Chart{}
	}

	err := s.store.Mutate(func(doc *filestore.Document) error {
		doc.DashboardSnapshots = append([]entity.DashboardSnapshot{record}, doc.DashboardSnapshots...)
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.publisherService.PublishStoreActivity("save", filestore.KeyDashboardSnapshots, record.Id)
	return &record, nil
}

func (s *storeService) Delete(ctx context.Context, collection, id string) error {
	key, ok := collectionKeys[collection]
	if !ok {
		return apperrors.NotFound("coleção desconhecida: " + collection)
	}

	var ownedImage string
	err := s.store.Mutate(func(doc *filestore.Document) error {
		switch key {
		case filestore.KeyGeneratedImages:
			for i, e := range doc.GeneratedImages {
				if e.Id == id {
					ownedImage = e.ImageFile
					doc.GeneratedImages = append(doc.GeneratedImages[:i], doc.GeneratedImages[i+1:]...)
					return nil
				}
			}
		case filestore.KeyVisionAnalyses:
			for i, e := range doc.VisionAnalyses {
				if e.Id == id {
					if e.ImageFile != nil {
						ownedImage = *e.ImageFile
					}
					doc.VisionAnalyses = append(doc.VisionAnalyses[:i], doc.VisionAnalyses[i+1:]...)
					return nil
				}
			}
		case filestore.KeyChatSessions:
			for i, e := range doc.ChatSessions {
				if e.Id == id {
					doc.ChatSessions = append(doc.ChatSessions[:i], doc.ChatSessions[i+1:]...)
					return nil
				}
			}
		case filestore.KeySustainabilityReports:
			for i, e := range doc.SustainabilityReports {
				if e.Id == id {
					doc.SustainabilityReports = append(doc.SustainabilityReports[:i], doc.SustainabilityReports[i+1:]...)
					return nil
				}
			}
		case filestore.KeyDashboardSnapshots:
			for i, e := range doc.DashboardSnapshots {
				if e.Id == id {
					doc.DashboardSnapshots = append(doc.DashboardSnapshots[:i], doc.DashboardSnapshots[i+1:]...)
					return nil
				}
			}
		}
		return apperrors.NotFound("registro não encontrado: " + id)
	})
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.Storage(err)
	}

	if ownedImage != "" {
		if err := s.store.DeleteImage(ownedImage); err != nil {
			// Entity is already gone; an orphaned file only costs disk.
			s.logger.Warn("store", "failed to delete owned image file", map[string]interface{}{
				"file":  ownedImage,
				"error": err.Error(),
			})
		}
	}

	s.publisherService.PublishStoreActivity("delete", key, id)
	return nil
}

func (s *storeService) ReadImage(ctx context.Context, filename string) ([]byte, error) {
	data, err := s.store.ReadImage(filename)
	if errors.Is(err, filestore.ErrImageNotFound) || errors.Is(err, filestore.ErrUnsafeFilename) {
		return nil, apperrors.NotFound("imagem não encontrada: " + filename)
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return data, nil
}
