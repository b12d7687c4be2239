package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// SkillsExtractedEvent tells a hiring dashboard that an entity's stored
// skill set was just replaced. EntityKind is "job" or "candidate".
type SkillsExtractedEvent struct {
	Type       string `json:"type"`
	CompanyID  string `json:"company_id"`
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id"`
	SkillCount int    `json:"skill_count"`
	Timestamp  string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// CompanyTopic names the subscription topic carrying one company's events.
func CompanyTopic(companyID uuid.UUID) string {
	return "company:" + companyID.String()
}

// NotifySkillsExtracted publishes a SkillsExtractedEvent on the company's
// topic. It is a no-op until SetDefaultHub has run, so usecases can call it
// unconditionally.
func NotifySkillsExtracted(companyID uuid.UUID, entityKind string, entityID uuid.UUID, skillCount int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := SkillsExtractedEvent{
		Type:       "skills_extracted",
		CompanyID:  companyID.String(),
		EntityKind: entityKind,
		EntityID:   entityID.String(),
		SkillCount: skillCount,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(CompanyTopic(companyID), b)
}
