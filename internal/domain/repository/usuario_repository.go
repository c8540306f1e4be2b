package repository

import "github.com/seu-usuario/cobrancas-api/internal/domain/entity"

// UsuarioRepository define a porta de persistência de Usuario.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	FindByEmail(email string) (*entity.Usuario, error)
}
