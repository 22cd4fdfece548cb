package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ignatzorin/skillswap-backend/internal/models"
)

// SeedPassword пароль всех демонстрационных студентов.
const SeedPassword = "Demo12345"

// SeededStudent демонстрационный студент и его ключ доступа.
type SeededStudent struct {
	ID       int64   `json:"id_estudiante"`
	Email    string  `json:"email"`
	APIKey   string  `json:"api_key"`
	Listings []int64 `json:"publicaciones"`
}

// SeedService генерирует демонстрационные данные для разработки.
type SeedService struct {
	accounts *AccountService
	students StudentRepository
	listings ListingRepository

	// rand.Rand не потокобезопасен, mu защищает rnd.
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeedService создаёт новый сервис для генерации данных.
func NewSeedService(accounts *AccountService, students StudentRepository, listings ListingRepository, seed int64) *SeedService {
	return &SeedService{
		accounts: accounts,
		students: students,
		listings: listings,
		rnd:      rand.New(rand.NewSource(seed)),
	}
}

var seedSkills = []struct {
	title, description string
}{
	{"Clases de Go", "Concurrencia, canales y buenas prácticas."},
	{"Tutoría de cálculo", "Derivadas e integrales para primer año."},
	{"Inglés conversacional", "Práctica oral una vez por semana."},
	{"Diseño en Figma", "Prototipos y sistemas de diseño."},
	{"Guitarra para principiantes", "Acordes básicos y ritmo."},
	{"Bases de datos SQL", "Modelado y consultas en PostgreSQL."},
	{"Edición de video", "Cortes, color y audio en DaVinci."},
	{"Excel avanzado", "Tablas dinámicas y fórmulas."},
}

// SeedData регистрирует и активирует numStudents студентов через обычный
// поток регистрации и создаёт каждому listingsPerStudent публикаций.
// Уже существующие демо-студенты переиспользуются.
func (s *SeedService) SeedData(ctx context.Context, numStudents, listingsPerStudent int) ([]SeededStudent, error) {
	out := make([]SeededStudent, 0, numStudents)

	for i := 1; i <= numStudents; i++ {
		email := fmt.Sprintf("demo%d@inacap.cl", i)

		student, err := s.ensureStudent(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("seed service: student %s: %w", email, err)
		}

		seeded := SeededStudent{ID: student.ID, Email: student.Email, APIKey: student.APIKey}
		for j := 0; j < listingsPerStudent; j++ {
			skillIdx, skillID := s.pick()
			skill := seedSkills[skillIdx]
			listing := &models.Listing{
				Title:       skill.title,
				Description: skill.description,
				Skill:       skillID,
				Active:      true,
				StudentID:   student.ID,
			}
			if err := s.listings.Create(ctx, listing); err != nil {
				return nil, fmt.Errorf("seed service: listing for %s: %w", email, err)
			}
			seeded.Listings = append(seeded.Listings, listing.ID)
		}
		out = append(out, seeded)
	}

	return out, nil
}

// pick выбирает шаблон публикации и id навыка (1..20).
func (s *SeedService) pick() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(len(seedSkills)), s.rnd.Intn(20) + 1
}

func (s *SeedService) ensureStudent(ctx context.Context, email string) (*models.Student, error) {
	student, token, err := s.accounts.Register(ctx, RegisterInput{
		Email:          email,
		Password:       SeedPassword,
		AcceptPolicies: true,
	})
	if errors.Is(err, errEmailTaken) {
		return s.students.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Activate(ctx, token.Token); err != nil {
		return nil, err
	}
	student.Verified = true
	return student, nil
}
