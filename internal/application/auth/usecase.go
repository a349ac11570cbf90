// Package auth implementa el login del analista. El servicio es de solo
// lectura y no tiene tabla de usuarios: la identidad es operacional, una
// única credencial configurada por entorno con su hash bcrypt.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/pkg/jwt"
)

// Credential credencial del analista tomada de la configuración.
type Credential struct {
	Username     string
	PasswordHash string // bcrypt
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	cred   Credential
	jwtCfg JWTConfig
}

func NewUseCase(cred Credential, jwtCfg JWTConfig) *UseCase {
	return &UseCase{cred: cred, jwtCfg: jwtCfg}
}

// Login verifica usuario y password contra la credencial configurada y
// emite el token de portador. Cualquier discrepancia responde el mismo
// ErrUnauthorized: el mensaje no distingue usuario de password.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username != uc.cred.Username {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cred.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
