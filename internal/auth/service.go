package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgAuth "github.com/oceanoetiquetas/oceano-backend/pkg/auth"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/security"
)

// AdminLoginResult carries the minted token plus the authenticated account.
type AdminLoginResult struct {
	Token    string
	AdminID  int64
	Username string
}

// ClienteLoginResult carries the minted token plus the portal identity.
type ClienteLoginResult struct {
	Token     string
	ClienteID int64
	Nome      string
}

// Service implements the two credential flows: admin by username/password,
// customer by access code.
type Service interface {
	AdminLogin(ctx context.Context, username, senha string) (*AdminLoginResult, error)
	ClienteLogin(ctx context.Context, codigoAcesso string) (*ClienteLoginResult, error)
}

type service struct {
	db  *gorm.DB
	jwt config.JWTConfig
	now func() time.Time
}

// NewService builds the auth service.
func NewService(conn *gorm.DB, jwt config.JWTConfig) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("database connection required")
	}
	return &service{db: conn, jwt: jwt, now: time.Now}, nil
}

var errCredenciais = pkgerrors.New(pkgerrors.CodeUnauthorized, "usuário ou senha inválidos")

func (s *service) AdminLogin(ctx context.Context, username, senha string) (*AdminLoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || senha == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "usuário e senha são obrigatórios")
	}

	var admin models.AdminUser
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errCredenciais
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find admin")
	}

	ok, err := security.VerifyPassword(senha, admin.SenhaHash)
	if err != nil || !ok {
		return nil, errCredenciais
	}

	token, err := pkgAuth.MintAccessToken(s.jwt, s.now(), pkgAuth.AccessTokenPayload{
		ActorID: admin.ID,
		Role:    enums.ActorRoleAdmin,
		Nome:    admin.Username,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token")
	}

	return &AdminLoginResult{Token: token, AdminID: admin.ID, Username: admin.Username}, nil
}

func (s *service) ClienteLogin(ctx context.Context, codigoAcesso string) (*ClienteLoginResult, error) {
	codigoAcesso = strings.TrimSpace(codigoAcesso)
	if codigoAcesso == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "código de acesso é obrigatório")
	}

	var cliente models.Cliente
	err := s.db.WithContext(ctx).Where("codigo_acesso = ?", codigoAcesso).First(&cliente).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "código de acesso inválido")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find cliente")
	}

	token, err := pkgAuth.MintAccessToken(s.jwt, s.now(), pkgAuth.AccessTokenPayload{
		ActorID: cliente.ID,
		Role:    enums.ActorRoleCliente,
		Nome:    cliente.Nome,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint cliente token")
	}

	return &ClienteLoginResult{Token: token, ClienteID: cliente.ID, Nome: cliente.Nome}, nil
}
