package clients

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/security"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Cliente{}, &models.Produto{}, &models.Orcamento{}, &models.OrcamentoItem{}, &models.Pedido{}, &models.PedidoItem{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(conn)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateGeneratesAccessCode(t *testing.T) {
	svc := newTestService(t, newTestDB(t))

	cliente, err := svc.Create(context.Background(), Input{Nome: "Oficina do Zé", Email: "ZE@Example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(cliente.CodigoAcesso) != security.AccessCodeLength {
		t.Fatalf("expected %d-char access code, got %q", security.AccessCodeLength, cliente.CodigoAcesso)
	}
	if cliente.Email != "ze@example.com" {
		t.Fatalf("expected normalized email, got %q", cliente.Email)
	}
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Nome: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, Input{Nome: "B", Email: "a@example.com"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateKeepsAccessCode(t *testing.T) {
	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Nome: "A", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, Input{Nome: "A Atualizado", Email: "novo@example.com"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CodigoAcesso != created.CodigoAcesso {
		t.Fatal("access code must survive updates")
	}
	if updated.Nome != "A Atualizado" || updated.Email != "novo@example.com" {
		t.Fatalf("unexpected row after update: %+v", updated)
	}
}

func TestDeleteUnreferencedClient(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Nome: "A", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("unexpected deleted row: %+v", deleted)
	}
}

func TestDeleteReferencedClientConflicts(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Nome: "A", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := conn.Create(&models.Orcamento{ClienteID: created.ID}).Error; err != nil {
		t.Fatalf("seed orcamento: %v", err)
	}

	_, err = svc.Delete(ctx, created.ID)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("client must remain after failed delete: %v", err)
	}
}
