// Package member содержит бизнес-логику справочника участников, включая кеширование.
package member

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/dues-ledger/internal/lib/money"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/password"
	"github.com/magabrotheeeer/dues-ledger/internal/models"
)

// Repository определяет методы для работы с участниками в хранилище.
type Repository interface {
	// ListMembers возвращает всех участников.
	ListMembers(ctx context.Context) ([]*models.Member, error)
	// GetMember возвращает участника по ID.
	GetMember(ctx context.Context, id int) (*models.Member, error)
	// GetMemberByUserID возвращает участника по ID учётной записи.
	GetMemberByUserID(ctx context.Context, userID int) (*models.Member, error)
	// CreateMemberWithUser создает учётную запись и участника одной транзакцией.
	CreateMemberWithUser(ctx context.Context, user models.User, member models.Member) (*models.Member, error)
	// UpdateMember частично обновляет участника.
	UpdateMember(ctx context.Context, id int, req models.DummyUpdateMember) (*models.Member, error)
	// DeleteMemberCascade удаляет участника вместе со связанными записями.
	DeleteMemberCascade(ctx context.Context, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции справочника участников.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("member:%d", id)
}

// List возвращает всех участников.
func (s *Service) List(ctx context.Context) ([]*models.Member, error) {
	return s.repo.ListMembers(ctx)
}

// Get возвращает участника по ID, используя кеш или хранилище.
func (s *Service) Get(ctx context.Context, id int) (*models.Member, error) {
	var cached models.Member
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read member from cache", slog.Int("id", id), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	m, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), m, time.Hour); err != nil {
		s.log.Warn("failed to cache member", slog.Int("id", id), slog.Any("err", err))
	}
	return m, nil
}

// GetByUser возвращает участника по ID его учётной записи.
func (s *Service) GetByUser(ctx context.Context, userID int) (*models.Member, error) {
	return s.repo.GetMemberByUserID(ctx, userID)
}

// Create хэширует временный пароль, создает учётную запись с ролью member
// и профиль участника одной транзакцией.
func (s *Service) Create(ctx context.Context, req models.DummyCreateMember) (*models.Member, error) {
	const op = "member.Create"

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	status := req.Status
	if status == "" {
		status = models.MemberActive
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleMember,
	}
	member := models.Member{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Status:      status,
		CashBalance: money.FromFloat(req.CashBalance),
	}

	created, err := s.repo.CreateMemberWithUser(ctx, user, member)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new member", slog.Int("id", created.ID))

	if err := s.cache.Set(cacheKey(created.ID), created, time.Hour); err != nil {
		s.log.Warn("failed to cache member", slog.Int("id", created.ID), slog.Any("err", err))
	}
	return created, nil
}

// Update частично обновляет участника и освежает кеш.
func (s *Service) Update(ctx context.Context, id int, req models.DummyUpdateMember) (*models.Member, error) {
	updated, err := s.repo.UpdateMember(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), updated, time.Hour); err != nil {
		s.log.Warn("failed to cache member", slog.Int("id", id), slog.Any("err", err))
	}
	return updated, nil
}

// Delete удаляет участника со связанными записями и инвалидирует кеш.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to remove member from cache", slog.Int("id", id), slog.Any("err", err))
	}
	return s.repo.DeleteMemberCascade(ctx, id)
}
