// Package seed carrega os dados estáticos embutidos (categorias, diretório e
// horário da balsa) e os grava no banco de forma idempotente.
package seed

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

//go:embed data/*.yaml
var data embed.FS

type categoryRecord struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type businessRecord struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Address     string `yaml:"address"`
	Phone       string `yaml:"phone"`
	Email       string `yaml:"email"`
	Website     string `yaml:"website"`
	Hours       string `yaml:"hours"`
	Featured    bool   `yaml:"featured"`
}

type sailingRecord struct {
	Time string `yaml:"time"`
	Days string `yaml:"days"`
	Note string `yaml:"note"`
}

type timetableRecord struct {
	Route     string                                 `yaml:"route"`
	Terminals map[entities.Direction]string          `yaml:"terminals"`
	Sailings  map[entities.Direction][]sailingRecord `yaml:"sailings"`
}

func decode(name string, out any) error {
	raw, err := data.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Categories retorna as categorias padrão de cada escopo, na ordem do arquivo
func Categories() ([]*entities.Category, error) {
	var records map[entities.CategoryScope][]categoryRecord
	if err := decode("categories.yaml", &records); err != nil {
		return nil, err
	}

	scopes := make([]entities.CategoryScope, 0, len(records))
	for scope := range records {
		scopes = append(scopes, scope)
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })

	var out []*entities.Category
	for _, scope := range scopes {
		for i, r := range records[scope] {
			c := &entities.Category{
				Scope:       scope,
				Name:        r.Name,
				Description: r.Description,
				SortOrder:   (i + 1) * 10,
				IsActive:    true,
			}
			c.Normalize()
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("category %q: %w", r.Name, err)
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// Businesses retorna as listagens estáticas do diretório
func Businesses() ([]*entities.Business, error) {
	var records []businessRecord
	if err := decode("businesses.yaml", &records); err != nil {
		return nil, err
	}

	out := make([]*entities.Business, 0, len(records))
	for _, r := range records {
		b := &entities.Business{
			Name:        r.Name,
			Slug:        r.Slug,
			Category:    r.Category,
			Description: r.Description,
			Address:     r.Address,
			Phone:       r.Phone,
			Email:       r.Email,
			Website:     r.Website,
			Hours:       r.Hours,
			IsActive:    true,
			IsFeatured:  r.Featured,
		}
		b.Normalize()
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("business %q: %w", r.Name, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Timetable carrega o horário da rota 19
func Timetable() (*entities.Timetable, error) {
	var record timetableRecord
	if err := decode("ferry.yaml", &record); err != nil {
		return nil, err
	}

	sailings := make(map[entities.Direction][]entities.Sailing, len(record.Sailings))
	for dir, list := range record.Sailings {
		if _, ok := record.Terminals[dir]; !ok {
			return nil, fmt.Errorf("direction %q has no terminal", dir)
		}
		for _, s := range list {
			minute, err := entities.ParseClock(s.Time)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", dir, err)
			}
			days, err := entities.ParseDaySet(s.Days)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", dir, s.Time, err)
			}
			sailings[dir] = append(sailings[dir], entities.Sailing{Minute: minute, Days: days, Note: s.Note})
		}
	}
	return entities.NewTimetable(record.Route, record.Terminals, sailings), nil
}

// Seeder grava os dados embutidos no banco
type Seeder struct {
	categories repositories.CategoryRepository
	businesses repositories.BusinessRepository
	uow        ports.UnitOfWork
	logger     ports.Logger
}

// NewSeeder cria um novo Seeder
func NewSeeder(
	categories repositories.CategoryRepository,
	businesses repositories.BusinessRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *Seeder {
	return &Seeder{categories: categories, businesses: businesses, uow: uow, logger: logger}
}

// Result resume o que foi gravado
type Result struct {
	CategoriesCreated  int
	BusinessesUpserted int
}

// Run insere categorias ausentes e faz upsert das listagens por slug
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var result Result

	categories, err := Categories()
	if err != nil {
		return result, err
	}
	businesses, err := Businesses()
	if err != nil {
		return result, err
	}

	err = s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		for _, c := range categories {
			existing, err := s.categories.FindBySlug(ctx, c.Scope, c.Slug)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			if err := s.categories.Create(ctx, c); err != nil {
				return err
			}
			result.CategoriesCreated++
		}

		for _, b := range businesses {
			if err := s.businesses.Upsert(ctx, b); err != nil {
				return fmt.Errorf("upsert %s: %w", b.Slug, err)
			}
			result.BusinessesUpserted++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("seed completed",
		"categories_created", result.CategoriesCreated,
		"businesses_upserted", result.BusinessesUpserted,
	)
	return result, nil
}
