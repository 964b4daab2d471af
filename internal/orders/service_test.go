package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Cliente{},
		&models.Produto{},
		&models.Orcamento{},
		&models.Pedido{},
		&models.PedidoItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(conn, db.NewWithConn(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedPedido(t *testing.T, conn *gorm.DB, clienteID, orcamentoID int64) *models.Pedido {
	t.Helper()
	pedido := &models.Pedido{
		ClienteID:   clienteID,
		OrcamentoID: orcamentoID,
		Status:      enums.PedidoEmProducao,
		Itens: []models.PedidoItem{
			{ProdutoID: 1, Quantidade: 10, PrecoUnitario: decimal.NewFromFloat(2.5)},
		},
	}
	if err := conn.Create(pedido).Error; err != nil {
		t.Fatalf("seed pedido: %v", err)
	}
	return pedido
}

func seedFixtures(t *testing.T, conn *gorm.DB) (*models.Cliente, *models.Orcamento) {
	t.Helper()
	cliente := &models.Cliente{Nome: "Zé", Email: "ze@example.com", CodigoAcesso: "AB12CD34"}
	if err := conn.Create(cliente).Error; err != nil {
		t.Fatalf("seed cliente: %v", err)
	}
	produto := &models.Produto{Nome: "Lacre", CodigoProduto: "LAC-001", URLSlug: "lacre", EstaAtivo: true}
	if err := conn.Create(produto).Error; err != nil {
		t.Fatalf("seed produto: %v", err)
	}
	orcamento := &models.Orcamento{ClienteID: cliente.ID, Status: enums.OrcamentoConvertidoEmPedido}
	if err := conn.Create(orcamento).Error; err != nil {
		t.Fatalf("seed orcamento: %v", err)
	}
	return cliente, orcamento
}

func TestGetUnknownOrderNotFound(t *testing.T) {
	svc := newTestService(t, newTestDB(t))

	_, err := svc.Get(context.Background(), 99)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusAndTracking(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	cliente, orcamento := seedFixtures(t, conn)
	pedido := seedPedido(t, conn, cliente.ID, orcamento.ID)

	status := enums.PedidoEnviado.String()
	rastreio := "BR123456789"
	updated, err := svc.Update(context.Background(), pedido.ID, UpdateInput{
		Status:         &status,
		CodigoRastreio: &rastreio,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != enums.PedidoEnviado {
		t.Fatalf("unexpected status %q", updated.Status)
	}
	if updated.CodigoRastreio == nil || *updated.CodigoRastreio != rastreio {
		t.Fatalf("unexpected tracking code: %v", updated.CodigoRastreio)
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	cliente, orcamento := seedFixtures(t, conn)
	pedido := seedPedido(t, conn, cliente.ID, orcamento.ID)

	status := "Teletransportado"
	_, err := svc.Update(context.Background(), pedido.ID, UpdateInput{Status: &status})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateRejectsStatusChangeOnDeliveredOrder(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	cliente, orcamento := seedFixtures(t, conn)
	pedido := seedPedido(t, conn, cliente.ID, orcamento.ID)

	entregue := enums.PedidoEntregue.String()
	if _, err := svc.Update(context.Background(), pedido.ID, UpdateInput{Status: &entregue}); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	producao := enums.PedidoEmProducao.String()
	_, err := svc.Update(context.Background(), pedido.ID, UpdateInput{Status: &producao})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateItemPrice(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	cliente, orcamento := seedFixtures(t, conn)
	pedido := seedPedido(t, conn, cliente.ID, orcamento.ID)

	updated, err := svc.Update(context.Background(), pedido.ID, UpdateInput{
		Itens: []ItemPriceInput{{ItemID: pedido.Itens[0].ID, PrecoUnitario: 9.9}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Itens[0].PrecoUnitario.Equal(decimal.NewFromFloat(9.9)) {
		t.Fatalf("unexpected price %s", updated.Itens[0].PrecoUnitario)
	}
}

func TestUpdateForeignItemRejected(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	cliente, orcamento := seedFixtures(t, conn)
	pedido := seedPedido(t, conn, cliente.ID, orcamento.ID)

	outroOrcamento := &models.Orcamento{ClienteID: cliente.ID, Status: enums.OrcamentoConvertidoEmPedido}
	if err := conn.Create(outroOrcamento).Error; err != nil {
		t.Fatalf("seed orcamento: %v", err)
	}
	outro := seedPedido(t, conn, cliente.ID, outroOrcamento.ID)

	_, err := svc.Update(context.Background(), pedido.ID, UpdateInput{
		Itens: []ItemPriceInput{{ItemID: outro.Itens[0].ID, PrecoUnitario: 1.0}},
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListForClienteScopesByOwner(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	cliente, orcamento := seedFixtures(t, conn)
	seedPedido(t, conn, cliente.ID, orcamento.ID)

	outroCliente := &models.Cliente{Nome: "Outro", Email: "outro@example.com", CodigoAcesso: "ZZ99XX11"}
	if err := conn.Create(outroCliente).Error; err != nil {
		t.Fatalf("seed cliente: %v", err)
	}
	outroOrcamento := &models.Orcamento{ClienteID: outroCliente.ID, Status: enums.OrcamentoConvertidoEmPedido}
	if err := conn.Create(outroOrcamento).Error; err != nil {
		t.Fatalf("seed orcamento: %v", err)
	}
	seedPedido(t, conn, outroCliente.ID, outroOrcamento.ID)

	pedidos, err := svc.ListForCliente(context.Background(), cliente.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pedidos) != 1 || pedidos[0].ClienteID != cliente.ID {
		t.Fatalf("unexpected result: %+v", pedidos)
	}
}
