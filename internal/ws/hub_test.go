package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
}

func recvOrTimeout(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for message")
		return nil
	}
}

func assertNoMessage(t *testing.T, ch <-chan []byte) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubRoutesByTopic(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	acmeID := uuid.New()
	otherID := uuid.New()

	acme := NewClient(hub, nil, CompanyTopic(acmeID))
	other := NewClient(hub, nil, CompanyTopic(otherID))
	firehose := NewClient(hub, nil, "")

	hub.Register(acme)
	hub.Register(other)
	hub.Register(firehose)
	waitForClients(t, hub, 3)

	hub.Broadcast(CompanyTopic(acmeID), []byte(`{"n":1}`))

	if got := string(recvOrTimeout(t, acme.send)); got != `{"n":1}` {
		t.Fatalf("topic subscriber got %q", got)
	}
	if got := string(recvOrTimeout(t, firehose.send)); got != `{"n":1}` {
		t.Fatalf("firehose subscriber got %q", got)
	}
	assertNoMessage(t, other.send)
}

func TestNotifySkillsExtractedPublishesCompanyEvent(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	SetDefaultHub(hub)
	defer SetDefaultHub(nil)

	companyID := uuid.New()
	jobID := uuid.New()

	sub := NewClient(hub, nil, CompanyTopic(companyID))
	hub.Register(sub)
	waitForClients(t, hub, 1)

	NotifySkillsExtracted(companyID, "job", jobID, 4)

	var evt SkillsExtractedEvent
	if err := json.Unmarshal(recvOrTimeout(t, sub.send), &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if evt.Type != "skills_extracted" {
		t.Errorf("Type = %q, want skills_extracted", evt.Type)
	}
	if evt.CompanyID != companyID.String() {
		t.Errorf("CompanyID = %q, want %q", evt.CompanyID, companyID)
	}
	if evt.EntityKind != "job" || evt.EntityID != jobID.String() {
		t.Errorf("entity = %s/%s, want job/%s", evt.EntityKind, evt.EntityID, jobID)
	}
	if evt.SkillCount != 4 {
		t.Errorf("SkillCount = %d, want 4", evt.SkillCount)
	}
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, "")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Stop()

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatalf("expected closed send channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("send channel not closed after Stop")
	}
}
