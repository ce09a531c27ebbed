package http

import (
	"fmt"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	"crediasesor-backoffice/internal/adapter/middleware"
	"crediasesor-backoffice/internal/domain/advisor"
	"crediasesor-backoffice/internal/domain/client"
	"crediasesor-backoffice/internal/domain/credit"
	"crediasesor-backoffice/internal/domain/entity"
	"crediasesor-backoffice/internal/domain/permission"

	"github.com/shopspring/decimal"
)

// seedJuly stores one advisor with an approved 3.5M bank credit in 2025-07.
func seedJuly(t *testing.T, s *testServer) uint64 {
	t.Helper()
	a := advisor.Advisor{Name: "Ana Torres"}
	b := entity.Bank{Name: "Banco Popular", Rate: decimal.NewFromInt(10_000)}
	c := client.Client{FirstName: "Juan", LastName: "Pérez", NationalID: "80123"}
	for _, v := range []any{&a, &b, &c} {
		if err := s.db.Create(v).Error; err != nil {
			t.Fatal(err)
		}
	}
	cr := credit.Credit{
		ID:          "CRD-20250001",
		ClientID:    c.ID,
		AdvisorID:   a.ID,
		BankID:      &b.ID,
		Amount:      decimal.NewFromInt(3_500_000),
		Status:      credit.StatusApproved,
		RequestedAt: time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := s.db.Create(&cr).Error; err != nil {
		t.Fatal(err)
	}
	return a.ID
}

func TestCommissions_CalculateFlow(t *testing.T) {
	s := newTestServer(t)
	advisorID := seedJuly(t, s)
	_, admin := s.seedUser(t, "admin", permission.RoleAdmin, permission.AdminSet())

	rec := s.do(t, stdhttp.MethodPost, "/api/comisiones/calcular", admin, map[string]any{})
	wantStatus(t, rec, stdhttp.StatusBadRequest)
	if body := decode[ErrorResponse](t, rec); body.Message != msgPeriodRequired {
		t.Fatalf("message = %q", body.Message)
	}

	for _, bad := range []string{"2025-13", "2025-7", "julio"} {
		rec = s.do(t, stdhttp.MethodPost, "/api/comisiones/calcular", admin, map[string]any{"periodo": bad})
		wantStatus(t, rec, stdhttp.StatusBadRequest)
		if body := decode[ErrorResponse](t, rec); !strings.Contains(body.Message, "YYYY-MM") {
			t.Fatalf("periodo %q message = %q", bad, body.Message)
		}
	}
	wantStatus(t, s.do(t, stdhttp.MethodPost, "/api/comisiones/recalcular", admin, map[string]any{"periodo": "2025-13"}), stdhttp.StatusBadRequest)

	rec = s.do(t, stdhttp.MethodPost, "/api/comisiones/calcular", admin, map[string]any{"periodo": "2025-07"})
	wantStatus(t, rec, stdhttp.StatusOK)
	res := decode[map[string]any](t, rec)
	if res["success"] != true || res["registros"] != float64(1) || res["asesoresConComision"] != float64(1) {
		t.Fatalf("result = %v", res)
	}
	if archivo, _ := res["archivo"].(map[string]any); archivo["generado"] != true {
		t.Fatalf("archivo = %v", res["archivo"])
	}

	rec = s.do(t, stdhttp.MethodPost, "/api/comisiones/calcular", admin, map[string]any{"periodo": "2025-07"})
	wantStatus(t, rec, stdhttp.StatusConflict)
	if body := decode[map[string]any](t, rec); body["tipo"] != "periodo_completo" {
		t.Fatalf("tipo = %v", body["tipo"])
	}

	rec = s.do(t, stdhttp.MethodPost, "/api/comisiones/calcular", admin, map[string]any{"periodo": "2025-07", "asesorId": advisorID})
	wantStatus(t, rec, stdhttp.StatusConflict)
	if body := decode[map[string]any](t, rec); body["tipo"] != "asesor_ya_calculado" {
		t.Fatalf("tipo = %v", body["tipo"])
	}

	rec = s.do(t, stdhttp.MethodPost, "/api/comisiones/calcular", admin, map[string]any{"periodo": "2025-06"})
	wantStatus(t, rec, stdhttp.StatusNotFound)
	if body := decode[map[string]any](t, rec); body["tipo"] != "sin_creditos" {
		t.Fatalf("tipo = %v", body["tipo"])
	}

	rec = s.do(t, stdhttp.MethodPost, "/api/comisiones/recalcular", admin, map[string]any{"periodo": "2025-07"})
	wantStatus(t, rec, stdhttp.StatusOK)
	if body := decode[map[string]any](t, rec); body["comisionesEliminadas"] != float64(1) {
		t.Fatalf("comisionesEliminadas = %v", body["comisionesEliminadas"])
	}
}

func TestCommissions_ReadUpdateDelete(t *testing.T) {
	s := newTestServer(t)
	advisorID := seedJuly(t, s)
	_, admin := s.seedUser(t, "admin", permission.RoleAdmin, permission.AdminSet())
	wantStatus(t, s.do(t, stdhttp.MethodPost, "/api/comisiones/calcular", admin, map[string]any{"periodo": "2025-07"}), stdhttp.StatusOK)

	rows := decode[[]map[string]any](t, s.do(t, stdhttp.MethodGet, "/api/comisiones?periodo=2025-07", admin, nil))
	if len(rows) != 1 || rows[0]["estado"] != "Pagado" {
		t.Fatalf("rows = %v", rows)
	}
	id := uint64(rows[0]["id"].(float64))

	byAdvisor := decode[[]map[string]any](t, s.do(t, stdhttp.MethodGet, fmt.Sprintf("/api/comisiones/asesor/%d", advisorID), admin, nil))
	byPeriod := decode[[]map[string]any](t, s.do(t, stdhttp.MethodGet, "/api/comisiones/periodo/2025-07", admin, nil))
	if len(byAdvisor) != 1 || len(byPeriod) != 1 {
		t.Fatalf("by advisor %d, by period %d", len(byAdvisor), len(byPeriod))
	}
	wantStatus(t, s.do(t, stdhttp.MethodGet, "/api/comisiones/periodo/julio", admin, nil), stdhttp.StatusBadRequest)

	summary := decode[[]map[string]any](t, s.do(t, stdhttp.MethodGet, "/api/comisiones/resumen", admin, nil))
	if len(summary) != 1 || summary[0]["periodo"] != "2025-07" {
		t.Fatalf("summary = %v", summary)
	}

	path := fmt.Sprintf("/api/comisiones/%d", id)
	rec := s.do(t, stdhttp.MethodDelete, path, admin, nil)
	wantStatus(t, rec, stdhttp.StatusBadRequest)

	wantStatus(t, s.do(t, stdhttp.MethodPut, path, admin, map[string]any{"estado": "Perdido"}), stdhttp.StatusUnprocessableEntity)
	for _, tc := range []struct{ sent, want string }{
		{sent: "2025-08-05", want: "2025-08-05T00:00:00"},
		{sent: "2025-08-06T10:00:00Z", want: "2025-08-06T10:00:00"},
	} {
		rec = s.do(t, stdhttp.MethodPut, path, admin, map[string]any{"estado": "Pagado", "fechaPago": tc.sent, "metodoPago": "Transferencia"})
		wantStatus(t, rec, stdhttp.StatusOK)
		if row := decode[map[string]any](t, rec); !strings.HasPrefix(fmt.Sprint(row["fechaPago"]), tc.want) {
			t.Fatalf("fechaPago %q stored as %v", tc.sent, row["fechaPago"])
		}
	}
	wantStatus(t, s.do(t, stdhttp.MethodPut, path, admin, map[string]any{"estado": "Pagado", "fechaPago": "05/08/2025"}), stdhttp.StatusBadRequest)

	rec = s.do(t, stdhttp.MethodPut, path, admin, map[string]any{"estado": "Pendiente", "bonificaciones": 5000})
	wantStatus(t, rec, stdhttp.StatusOK)
	if row := decode[map[string]any](t, rec); row["estado"] != "Pendiente" || row["asesor"] == nil {
		t.Fatalf("updated = %v", row)
	}

	rec = s.do(t, stdhttp.MethodDelete, path, admin, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	if body := decode[map[string]string](t, rec); body["message"] != "Comisión eliminada correctamente" {
		t.Fatalf("delete body = %v", body)
	}
	wantStatus(t, s.do(t, stdhttp.MethodDelete, path, admin, nil), stdhttp.StatusNotFound)
	wantStatus(t, s.do(t, stdhttp.MethodDelete, "/api/comisiones/abc", admin, nil), stdhttp.StatusBadRequest)
}

func TestCommissions_PermissionGate(t *testing.T) {
	s := newTestServer(t)
	seedJuly(t, s)
	_, viewer := s.seedUser(t, "asesor", permission.RoleUser, permission.DefaultUserSet())

	wantStatus(t, s.do(t, stdhttp.MethodGet, "/api/comisiones", viewer, nil), stdhttp.StatusOK)

	rec := s.do(t, stdhttp.MethodPost, "/api/comisiones/calcular", viewer, map[string]any{"periodo": "2025-07"})
	wantStatus(t, rec, stdhttp.StatusForbidden)
	if body := decode[map[string]string](t, rec); body["required"] != "comisiones.crear" {
		t.Fatalf("required = %q", body["required"])
	}
	wantStatus(t, s.do(t, stdhttp.MethodDelete, "/api/comisiones/1", viewer, nil), stdhttp.StatusForbidden)
}

func TestCommissions_IdempotentCalculate(t *testing.T) {
	s := newTestServer(t)
	seedJuly(t, s)
	_, admin := s.seedUser(t, "admin", permission.RoleAdmin, permission.AdminSet())

	send := func() string {
		req := strings.NewReader(`{"periodo":"2025-07"}`)
		r := newJSONRequest(stdhttp.MethodPost, "/api/comisiones/calcular", req, admin)
		r.Header.Set(middleware.HeaderIdempotencyKey, strings.Repeat("d", 32))
		rec := serve(s, r)
		wantStatus(t, rec, stdhttp.StatusOK)
		return rec.Body.String()
	}
	// the retry replays the first result instead of reporting periodo_completo
	if first, second := send(), send(); first != second {
		t.Fatalf("replay differs:\n%s\n%s", first, second)
	}
}
