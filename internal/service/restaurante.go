package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

var ErrNombreVacio = errors.New("El nombre del restaurante es obligatorio")

type RestauranteService struct {
	repo *repository.Repository
}

func NewRestauranteService(repo *repository.Repository) *RestauranteService {
	return &RestauranteService{repo: repo}
}

type SignupInput struct {
	Nombre         string
	RUC            *string
	Direccion      *string
	Telefono       *string
	Correo         *string
	CorreoContacto *string
	AdminNombre    string
	AdminCorreo    *string
}

type SignupResult struct {
	Restaurante *model.Restaurante
	Admin       *model.Usuario
	// Token de API en claro; se muestra una sola vez.
	Token string
}

// Signup da de alta un restaurante: genera el slug público, el token de API
// (del que solo se persiste el hash) y el usuario administrador inicial.
func (s *RestauranteService) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, ErrNombreVacio
	}

	slug, err := s.slugDisponible(ctx, Slugify(in.Nombre))
	if err != nil {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	rest := &model.Restaurante{
		Nombre:            in.Nombre,
		Slug:              slug,
		RUC:               in.RUC,
		Direccion:         in.Direccion,
		Telefono:          in.Telefono,
		Correo:            in.Correo,
		CorreoContacto:    in.CorreoContacto,
		EstadoSuscripcion: model.SuscripcionActiva,
		TokenHash:         HashToken(token),
	}
	if err := s.repo.CreateRestaurante(ctx, rest); err != nil {
		return nil, err
	}

	adminNombre := in.AdminNombre
	if adminNombre == "" {
		adminNombre = in.Nombre
	}
	admin := &model.Usuario{
		RestauranteID: rest.ID,
		Nombre:        adminNombre,
		Correo:        in.AdminCorreo,
		Rol:           model.RolAdmin,
		Estado:        "activo",
	}
	if err := s.repo.CreateUsuario(ctx, admin); err != nil {
		return nil, err
	}

	return &SignupResult{Restaurante: rest, Admin: admin, Token: token}, nil
}

func (s *RestauranteService) GetRestaurante(ctx context.Context, id uuid.UUID) (*model.Restaurante, error) {
	return s.repo.GetRestaurante(ctx, id)
}

func (s *RestauranteService) UpdateRestaurante(ctx context.Context, rest *model.Restaurante) error {
	return s.repo.UpdateRestaurante(ctx, rest)
}

// GetStats arma los contadores del dashboard del restaurante.
func (s *RestauranteService) GetStats(ctx context.Context, restauranteID uuid.UUID) (*model.RestauranteStats, error) {
	stats := &model.RestauranteStats{}
	var err error

	if stats.TotalClientes, err = s.repo.CountClientes(ctx, restauranteID); err != nil {
		return nil, err
	}
	if stats.TotalReferidos, err = s.repo.CountReferidos(ctx, restauranteID); err != nil {
		return nil, err
	}
	if stats.TotalConversiones, err = s.repo.CountConversiones(ctx, restauranteID); err != nil {
		return nil, err
	}
	if stats.PremiosActivos, err = s.repo.CountPremiosActivos(ctx, restauranteID); err != nil {
		return nil, err
	}
	return stats, nil
}

// slugDisponible agrega un sufijo numérico si el slug base ya está tomado.
func (s *RestauranteService) slugDisponible(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// Slugify reduce un nombre a minúsculas ascii separadas por guiones. Las
// letras acentuadas conocidas pierden el acento; cualquier otro carácter
// actúa como separador.
func Slugify(nombre string) string {
	var b strings.Builder
	prevGuion := true
	for _, r := range strings.ToLower(nombre) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevGuion = false
		case r == 'ñ':
			b.WriteRune('n')
			prevGuion = false
		default:
			if plain, ok := sinAcento[r]; ok {
				b.WriteRune(plain)
				prevGuion = false
			} else if !prevGuion {
				b.WriteRune('-')
				prevGuion = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

var sinAcento = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u', 'ü': 'u',
	'à': 'a', 'è': 'e', 'ì': 'i', 'ò': 'o', 'ù': 'u',
	'â': 'a', 'ê': 'e', 'î': 'i', 'ô': 'o', 'û': 'u',
	'ä': 'a', 'ë': 'e', 'ï': 'i', 'ö': 'o', 'ç': 'c',
}

func generateToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)), nil
}

// HashToken es el hash que se persiste en lugar del token de API.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
