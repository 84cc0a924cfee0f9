package filestore

import (
	"ai-storevision-be/internal/entity"
)

// CurrentVersion tags the document schema. Bump when a collection is
// added; older files are upgraded in memory by Normalize.
const CurrentVersion = 1

// Collection keys as they appear in the store document.
const (
	KeyGeneratedImages       = "generatedImages"
	KeyVisionAnalyses        = "visionAnalyses"
	KeyChatSessions          = "chatSessions"
	KeySustainabilityReports = "sustainabilityReports"
	KeyDashboardSnapshots    = "dashboardSnapshots"
)

// Document is the entire persisted store: five insertion-ordered
// collections, newest entry first.
type Document struct {
	Version               int                           `json:"version"`
	GeneratedImages       []entity.GeneratedImage       `json:"generatedImages"`
	VisionAnalyses        []entity.VisionAnalysis       `json:"visionAnalyses"`
	ChatSessions          []entity.ChatSession          `json:"chatSessions"`
	SustainabilityReports []entity.SustainabilityReport `json:"sustainabilityReports"`
	DashboardSnapshots    []entity.DashboardSnapshot    `json:"dashboardSnapshots"`
}

// NewDocument returns an empty, fully-keyed document.
func NewDocument() *Document {
	doc := &Document{Version: CurrentVersion}
	doc.Normalize()
	return doc
}

// Normalize injects empty collections for keys missing from an older
// stored file, so loads never fail on schema evolution. The upgraded
// shape is persisted by whichever mutation runs next, not by the load
// itself.
func (d *Document) Normalize() {
	if d.Version == 0 {
		d.Version = CurrentVersion
	}
	if d.GeneratedImages == nil {
		d.GeneratedImages = []entity.GeneratedImage{}
	}
	if d.VisionAnalyses == nil {
		d.VisionAnalyses = []entity.VisionAnalysis{}
	}
	if d.ChatSessions == nil {
		d.ChatSessions = []entity.ChatSession{}
	}
	if d.SustainabilityReports == nil {
		d.SustainabilityReports = []entity.SustainabilityReport{}
	}
	if d.DashboardSnapshots == nil {
		d.DashboardSnapshots = []entity.DashboardSnapshot{}
	}
}
