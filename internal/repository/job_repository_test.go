package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestBuildJobListQuery(t *testing.T) {
	q, args := buildJobListQuery(JobFilter{Limit: 20})
	if strings.Contains(q, "WHERE") {
		t.Fatalf("unfiltered query should have no WHERE clause: %s", q)
	}
	if len(args) != 2 {
		t.Fatalf("expected limit and offset args only, got %v", args)
	}

	companyID := uuid.New()
	q, args = buildJobListQuery(JobFilter{Query: " engineer ", CompanyID: companyID, Limit: 10, Offset: 5})
	if !strings.Contains(q, "company_id = $1") {
		t.Fatalf("missing company filter: %s", q)
	}
	if !strings.Contains(q, "(title ILIKE $2 OR location ILIKE $2)") {
		t.Fatalf("missing search filter: %s", q)
	}
	if !strings.Contains(q, "LIMIT $3 OFFSET $4") {
		t.Fatalf("missing paging: %s", q)
	}
	if len(args) != 4 || args[1] != "%engineer%" {
		t.Fatalf("args = %v", args)
	}
}
