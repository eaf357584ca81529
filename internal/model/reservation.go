package model

import "time"

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationStatusAtiva     ReservationStatus = "ativa"
	ReservationStatusDevolvida ReservationStatus = "devolvida"
)

// Reservation represents a loan of one copy of a book by a user.
// An "ativa" reservation holds one unit of the book's available count;
// the unit is released on return or cancellation.
type Reservation struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	UsuarioID     uint              `json:"usuario_id" gorm:"not null;index:idx_reserva_usuario_livro"`
	LivroID       uint              `json:"livro_id" gorm:"not null;index:idx_reserva_usuario_livro"`
	DataReserva   time.Time         `json:"data_reserva" gorm:"not null;index"`
	DataDevolucao *time.Time        `json:"data_devolucao"`
	Status        ReservationStatus `json:"status" gorm:"type:varchar(20);not null;index"`

	// Relations
	Usuario User `json:"-" gorm:"foreignKey:UsuarioID"`
	Livro   Book `json:"-" gorm:"foreignKey:LivroID"`
}

// TableName keeps the original schema table name.
func (Reservation) TableName() string { return "reservas" }

// ReservationView is a reservation row denormalized with book and user
// fields for listing. User fields are only filled for staff listings.
type ReservationView struct {
	ID            uint       `json:"id"`
	LivroID       uint       `json:"livro_id"`
	LivroTitulo   string     `json:"livro_titulo"`
	LivroAutor    string     `json:"livro_autor"`
	DataReserva   time.Time  `json:"data_reserva"`
	DataDevolucao *time.Time `json:"data_devolucao"`
	Status        string     `json:"status"`

	UsuarioID    uint   `json:"usuario_id,omitempty"`
	UsuarioNome  string `json:"usuario_nome,omitempty"`
	UsuarioEmail string `json:"usuario_email,omitempty"`
}
