package model

import "time"

// Perfil values accepted for a user.
const (
	PerfilFuncionario = "funcionario"
	PerfilCliente     = "cliente"
)

// User represents a library user (staff or client).
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Nome         string    `json:"nome" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	SenhaHash    string    `json:"-" gorm:"column:senha;size:255;not null"` // Never expose in JSON
	Perfil       string    `json:"perfil" gorm:"size:20;not null;index"`
	Telefone     string    `json:"telefone,omitempty" gorm:"size:20"`
	DataCadastro time.Time `json:"data_cadastro" gorm:"autoCreateTime"`
}

// TableName keeps the original schema table name.
func (User) TableName() string { return "usuarios" }

// IsFuncionario reports whether the user holds the staff role.
func (u *User) IsFuncionario() bool { return u.Perfil == PerfilFuncionario }

// ValidPerfil reports whether p is one of the accepted roles.
func ValidPerfil(p string) bool {
	return p == PerfilFuncionario || p == PerfilCliente
}
