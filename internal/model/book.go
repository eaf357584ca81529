package model

import "time"

// Book represents a catalog entry. Copies are fungible counts:
// QuantidadeDisponivel must always equal QuantidadeTotal minus the
// number of active reservations on the book.
type Book struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Titulo               string    `json:"titulo" gorm:"size:255;not null;index"`
	Autor                string    `json:"autor" gorm:"size:255;not null;index"`
	ISBN                 string    `json:"isbn,omitempty" gorm:"column:isbn;size:20"`
	AnoPublicacao        *int      `json:"ano_publicacao,omitempty"`
	Categoria            string    `json:"categoria,omitempty" gorm:"size:100;index"`
	QuantidadeTotal      int       `json:"quantidade_total" gorm:"not null;default:1"`
	QuantidadeDisponivel int       `json:"quantidade_disponivel" gorm:"not null;default:1"`
	DataCadastro         time.Time `json:"data_cadastro" gorm:"autoCreateTime"`
}

// TableName keeps the original schema table name.
func (Book) TableName() string { return "livros" }
