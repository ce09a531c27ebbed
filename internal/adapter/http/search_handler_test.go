package http

import (
	"fmt"
	stdhttp "net/http"
	"testing"

	"crediasesor-backoffice/internal/domain/client"
	"crediasesor-backoffice/internal/domain/permission"
)

type resultsBody struct {
	Results []map[string]any `json:"results"`
}

func TestSearch_Endpoints(t *testing.T) {
	s := newTestServer(t)
	seedJuly(t, s)
	_, tok := s.seedUser(t, "ana", permission.RoleUser, permission.DefaultUserSet())

	all := decode[resultsBody](t, s.do(t, stdhttp.MethodGet, "/api/search?q=Juan", tok, nil))
	if len(all.Results) != 2 || all.Results[0]["type"] != "cliente" || all.Results[1]["type"] != "credito" {
		t.Fatalf("all = %v", all.Results)
	}

	empty := s.do(t, stdhttp.MethodGet, "/api/search?q=", tok, nil)
	wantStatus(t, empty, stdhttp.StatusOK)
	if body := decode[resultsBody](t, empty); body.Results == nil || len(body.Results) != 0 {
		t.Fatalf("blank query = %s", empty.Body.String())
	}

	clients := decode[resultsBody](t, s.do(t, stdhttp.MethodGet, "/api/search/clientes?q=80123", tok, nil))
	if len(clients.Results) != 1 || clients.Results[0]["dni"] != "80123" {
		t.Fatalf("clients = %v", clients.Results)
	}
	credits := decode[resultsBody](t, s.do(t, stdhttp.MethodGet, "/api/search/creditos?q=CRD-2025", tok, nil))
	if len(credits.Results) != 1 || credits.Results[0]["banco"] != "Banco Popular" {
		t.Fatalf("credits = %v", credits.Results)
	}

	var c client.Client
	if err := s.db.First(&c).Error; err != nil {
		t.Fatal(err)
	}
	rec := s.do(t, stdhttp.MethodGet, fmt.Sprintf("/api/search/clientes/%d", c.ID), tok, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	if one := decode[map[string]any](t, rec); one["creditosActivos"] != float64(1) {
		t.Fatalf("client = %v", one)
	}
	wantStatus(t, s.do(t, stdhttp.MethodGet, "/api/search/creditos/CRD-20250001", tok, nil), stdhttp.StatusOK)
	wantStatus(t, s.do(t, stdhttp.MethodGet, "/api/search/creditos/CRD-0", tok, nil), stdhttp.StatusNotFound)
	wantStatus(t, s.do(t, stdhttp.MethodGet, "/api/search/clientes/9999", tok, nil), stdhttp.StatusNotFound)
}
