package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	ordersvc "github.com/oceanoetiquetas/oceano-backend/internal/orders"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
)

type stubOrderService struct {
	updated    *models.Pedido
	forCliente []models.Pedido
	err        error
}

func (s stubOrderService) List(ctx context.Context) ([]models.Pedido, error) {
	return nil, s.err
}

func (s stubOrderService) Get(ctx context.Context, id int64) (*models.Pedido, error) {
	return &models.Pedido{ID: id}, s.err
}

func (s stubOrderService) Update(ctx context.Context, id int64, input ordersvc.UpdateInput) (*models.Pedido, error) {
	return s.updated, s.err
}

func (s stubOrderService) ListForCliente(ctx context.Context, clienteID int64) ([]models.Pedido, error) {
	return s.forCliente, s.err
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminUpdateOrderReturnsUpdatedRow(t *testing.T) {
	rastreio := "BR123456789"
	handler := AdminUpdateOrder(stubOrderService{updated: &models.Pedido{
		ID:             5,
		Status:         enums.PedidoEnviado,
		CodigoRastreio: &rastreio,
	}}, nil)

	body := `{"status":"Enviado","codigo_rastreio":"BR123456789"}`
	req := httptest.NewRequest(http.MethodPut, "/api/oceano/admin/pedidos/5", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "5")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data models.Pedido `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data.Status != enums.PedidoEnviado {
		t.Fatalf("unexpected status %q", envelope.Data.Status)
	}
	if envelope.Data.CodigoRastreio == nil || *envelope.Data.CodigoRastreio != rastreio {
		t.Fatalf("tracking code not echoed: %+v", envelope.Data)
	}
}

func TestAdminUpdateOrderRejectsBadID(t *testing.T) {
	handler := AdminUpdateOrder(stubOrderService{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/oceano/admin/pedidos/abc", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id got %d", resp.Code)
	}
}
