package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"biblioteca/internal/config"
	"biblioteca/internal/db"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
)

type seedUser struct {
	Nome     string
	Email    string
	Senha    string
	Perfil   string
	Telefone string
}

var seedUsers = []seedUser{
	{"Admin Biblioteca", "admin@biblioteca.com", "admin123", model.PerfilFuncionario, "81987654321"},
	{"Maria Silva", "maria@email.com", "cliente123", model.PerfilCliente, "81912345678"},
	{"João Santos", "joao@email.com", "cliente123", model.PerfilCliente, "81998765432"},
}

func anoPtr(v int) *int { return &v }

var seedBooks = []model.Book{
	{Titulo: "Clean Code", Autor: "Robert C. Martin", ISBN: "978-0132350884", AnoPublicacao: anoPtr(2008), Categoria: "Tecnologia", QuantidadeTotal: 5, QuantidadeDisponivel: 5},
	{Titulo: "Python Fluente", Autor: "Luciano Ramalho", ISBN: "978-8575226568", AnoPublicacao: anoPtr(2015), Categoria: "Tecnologia", QuantidadeTotal: 3, QuantidadeDisponivel: 3},
	{Titulo: "Design Patterns", Autor: "Gang of Four", ISBN: "978-0201633610", AnoPublicacao: anoPtr(1994), Categoria: "Tecnologia", QuantidadeTotal: 4, QuantidadeDisponivel: 4},
	{Titulo: "1984", Autor: "George Orwell", ISBN: "978-0451524935", AnoPublicacao: anoPtr(1949), Categoria: "Ficção", QuantidadeTotal: 6, QuantidadeDisponivel: 6},
	{Titulo: "Dom Casmurro", Autor: "Machado de Assis", ISBN: "978-8535908770", AnoPublicacao: anoPtr(1899), Categoria: "Literatura Brasileira", QuantidadeTotal: 4, QuantidadeDisponivel: 4},
	{Titulo: "O Senhor dos Anéis", Autor: "J.R.R. Tolkien", ISBN: "978-8533613379", AnoPublicacao: anoPtr(1954), Categoria: "Fantasia", QuantidadeTotal: 7, QuantidadeDisponivel: 7},
	{Titulo: "Sapiens", Autor: "Yuval Noah Harari", ISBN: "978-0062316097", AnoPublicacao: anoPtr(2011), Categoria: "História", QuantidadeTotal: 5, QuantidadeDisponivel: 5},
	{Titulo: "Código Limpo em Python", Autor: "Mariano Anaya", ISBN: "978-8575228999", AnoPublicacao: anoPtr(2020), Categoria: "Tecnologia", QuantidadeTotal: 2, QuantidadeDisponivel: 2},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Book{}, &model.Reservation{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	usersCreated, err := seedUsersInto(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	booksCreated, err := seedBooksInto(ctx, bookRepo)
	if err != nil {
		log.Fatalf("Failed to seed books: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", usersCreated)
	log.Printf("  - New books created: %d", booksCreated)
	log.Println("Funcionário: admin@biblioteca.com / admin123")
	log.Println("Clientes: maria@email.com, joao@email.com / cliente123")
}

// seedUsersInto creates the sample users, skipping emails already present.
func seedUsersInto(ctx context.Context, repo repository.UserRepository) (int, error) {
	created := 0
	for _, su := range seedUsers {
		_, err := repo.FindByEmail(ctx, su.Email)
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, fmt.Errorf("error checking user %s: %w", su.Email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Senha), bcrypt.DefaultCost)
		if err != nil {
			return created, fmt.Errorf("error hashing password for %s: %w", su.Email, err)
		}

		user := &model.User{
			Nome:      su.Nome,
			Email:     su.Email,
			SenhaHash: string(hashed),
			Perfil:    su.Perfil,
			Telefone:  su.Telefone,
		}
		if err := repo.Create(ctx, user); err != nil {
			return created, fmt.Errorf("error creating user %s: %w", su.Email, err)
		}
		created++
	}
	return created, nil
}

// seedBooksInto creates the sample books, skipping ISBNs already present.
func seedBooksInto(ctx context.Context, repo repository.BookRepository) (int, error) {
	created := 0
	for _, book := range seedBooks {
		_, err := repo.FindByISBN(ctx, book.ISBN)
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, fmt.Errorf("error checking book %s: %w", book.ISBN, err)
		}

		b := book
		if err := repo.Create(ctx, &b); err != nil {
			return created, fmt.Errorf("error creating book %s: %w", book.Titulo, err)
		}
		created++
	}
	return created, nil
}
