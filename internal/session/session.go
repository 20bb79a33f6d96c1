// Package session реализует серверные сессии с узким capability-интерфейсом.
//
// Данные сессии (пользователь и пропуск) живут в хранилище Store под
// непрозрачным идентификатором; клиенту выдаётся только подписанная cookie
// с этим идентификатором. Обработчики получают Session из контекста запроса
// и работают с ней через методы User/SetUser/Clear и Pass/SetPass —
// каждая мутация сразу сохраняется в хранилище.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

// Data — содержимое одной сессии.
type Data struct {
	User *models.User `json:"user,omitempty"` // Вошедший пользователь, nil если не залогинен
	Pass *models.Pass `json:"pass,omitempty"` // Активированный пропуск, nil если не куплен
}

// Store описывает хранилище данных сессий.
type Store interface {
	// Load возвращает данные сессии. Для неизвестного id возвращает
	// пустые данные без ошибки: сессия считается новой.
	Load(ctx context.Context, sid string) (*Data, error)
	// Save сохраняет данные сессии, продлевая её TTL.
	Save(ctx context.Context, sid string, data *Data) error
	// Delete удаляет сессию целиком.
	Delete(ctx context.Context, sid string) error
}

// NewSID возвращает свежий идентификатор сессии.
func NewSID() string {
	return uuid.New().String()
}

// Session — значение сессии одного запроса. Все мутации пишутся
// в Store немедленно (write-through).
type Session struct {
	id    string
	data  *Data
	store Store
}

// New оборачивает загруженные данные сессии.
func New(id string, data *Data, store Store) *Session {
	if data == nil {
		data = &Data{}
	}
	return &Session{id: id, data: data, store: store}
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() string { return s.id }

// User возвращает пользователя сессии или nil.
func (s *Session) User() *models.User { return s.data.User }

// Pass возвращает пропуск сессии или nil.
func (s *Session) Pass() *models.Pass { return s.data.Pass }

// SetUser записывает пользователя и сохраняет сессию.
func (s *Session) SetUser(ctx context.Context, u models.User) error {
	s.data.User = &u
	return s.store.Save(ctx, s.id, s.data)
}

// SetPass записывает пропуск, перезаписывая прежний целиком.
func (s *Session) SetPass(ctx context.Context, p models.Pass) error {
	s.data.Pass = &p
	return s.store.Save(ctx, s.id, s.data)
}

// Clear удаляет и пользователя, и пропуск (logout).
func (s *Session) Clear(ctx context.Context) error {
	s.data.User = nil
	s.data.Pass = nil
	return s.store.Delete(ctx, s.id)
}

// DefaultTTL — время жизни сессии, если в конфиге не задано иное.
const DefaultTTL = 24 * time.Hour
