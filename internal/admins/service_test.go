package admins

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
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
	if err := conn.AutoMigrate(&models.AdminUser{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(conn, testPasswordConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateHashesPassword(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	created, err := svc.Create(context.Background(), Input{Username: "maria", Senha: "senha-forte"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(created.SenhaHash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", created.SenhaHash)
	}
	ok, err := security.VerifyPassword("senha-forte", created.SenhaHash)
	if err != nil || !ok {
		t.Fatalf("stored hash must verify: ok=%v err=%v", ok, err)
	}
}

func TestCreateDuplicateUsernameConflicts(t *testing.T) {
	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Username: "maria", Senha: "senha-forte"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, Input{Username: "maria", Senha: "outra-senha"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListOmitsHashes(t *testing.T) {
	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Username: "maria", Senha: "senha-forte"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	admins, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected 1 admin, got %d", len(admins))
	}
	if admins[0].SenhaHash != "" {
		t.Fatal("hash must not be selected by list")
	}
}

func TestDeleteBootstrapAdminForbidden(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	first, err := svc.Create(ctx, Input{Username: "root", Senha: "senha-forte"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("expected first admin to get id 1, got %d", first.ID)
	}

	_, err = svc.Delete(ctx, 1)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	var count int64
	if err := conn.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("bootstrap admin must remain, count=%d", count)
	}
}

func TestDeleteSecondaryAdmin(t *testing.T) {
	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Username: "root", Senha: "senha-forte"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, Input{Username: "maria", Senha: "senha-forte"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(ctx, second.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Username != "maria" {
		t.Fatalf("unexpected deleted admin: %+v", deleted)
	}
}

func TestDeleteUnknownAdminNotFound(t *testing.T) {
	svc := newTestService(t, newTestDB(t))

	_, err := svc.Delete(context.Background(), 42)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
