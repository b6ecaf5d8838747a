// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"sort"
	"sync"
	"time"

	"tone/internal/cache"
	"tone/internal/models"
)

// UserRepoStub is an in-memory user repository implementation for tests.
type UserRepoStub struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

// NewUserRepoStub creates an in-memory user repository stub for tests.
func NewUserRepoStub() *UserRepoStub {
	return &UserRepoStub{users: make(map[uint]*models.User), nextID: 1}
}

func (s *UserRepoStub) GetByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	copied := *user
	return &copied, nil
}

func (s *UserRepoStub) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *UserRepoStub) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.NewConflictError("User already exists")
		}
	}
	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}
	user.CreatedAt = time.Now().UTC()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *UserRepoStub) FindOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, _ := s.GetByEmail(ctx, email); user != nil {
		return user, nil
	}
	user := &models.User{Email: email}
	if err := s.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ProfileRepoStub is an in-memory profile repository implementation for tests.
type ProfileRepoStub struct {
	mu       sync.Mutex
	profiles map[uint]*models.Profile
}

// NewProfileRepoStub creates an in-memory profile repository stub for tests.
func NewProfileRepoStub() *ProfileRepoStub {
	return &ProfileRepoStub{profiles: make(map[uint]*models.Profile)}
}

func (s *ProfileRepoStub) GetByUserID(_ context.Context, userID uint) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (s *ProfileRepoStub) GetByUsername(_ context.Context, username string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, profile := range s.profiles {
		if profile.Username == username {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *ProfileRepoStub) Upsert(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.profiles {
		if existing.Username == profile.Username && id != profile.ID {
			return models.NewConflictError("Username already taken")
		}
	}
	if existing, ok := s.profiles[profile.ID]; ok {
		profile.AvatarURL = existing.AvatarURL
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = time.Now().UTC()
	}
	profile.UpdatedAt = time.Now().UTC()
	copied := *profile
	s.profiles[profile.ID] = &copied
	return nil
}

func (s *ProfileRepoStub) UpdateAvatarURL(_ context.Context, userID uint, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return models.NewNotFoundError("Profile", userID)
	}
	profile.AvatarURL = avatarURL
	return nil
}

// ItemRepoStub is an in-memory item repository implementation for tests.
type ItemRepoStub struct {
	mu     sync.Mutex
	items  map[uint]*models.Item
	nextID uint
}

// NewItemRepoStub creates an in-memory item repository stub for tests.
func NewItemRepoStub() *ItemRepoStub {
	return &ItemRepoStub{items: make(map[uint]*models.Item), nextID: 1}
}

func (s *ItemRepoStub) GetByID(_ context.Context, id uint) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, models.NewNotFoundError("Item", id)
	}
	copied := *item
	return &copied, nil
}

func (s *ItemRepoStub) Search(_ context.Context, query string, limit int) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := []models.Item{}
	for _, item := range s.items {
		if containsFold(item.Title, query) {
			results = append(results, *item)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Title < results[j].Title })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *ItemRepoStub) Create(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.Category == "" {
		item.Category = models.DefaultItemCategory
	}
	if item.ID == 0 {
		item.ID = s.nextID
		s.nextID++
	}
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

// LogRepoStub is an in-memory log repository implementation for tests.
type LogRepoStub struct {
	mu     sync.Mutex
	logs   map[uint]*models.Log
	items  *ItemRepoStub
	nextID uint
}

// NewLogRepoStub creates an in-memory log repository stub. When items is
// non-nil the stub preloads item data into returned logs, mirroring the real
// repository.
func NewLogRepoStub(items *ItemRepoStub) *LogRepoStub {
	return &LogRepoStub{logs: make(map[uint]*models.Log), items: items, nextID: 1}
}

func (s *LogRepoStub) withItem(log models.Log) models.Log {
	if s.items != nil {
		if item, err := s.items.GetByID(context.Background(), log.ItemID); err == nil {
			log.Item = *item
		}
	}
	return log
}

func (s *LogRepoStub) GetByID(_ context.Context, id uint) (*models.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log, ok := s.logs[id]
	if !ok {
		return nil, nil
	}
	copied := s.withItem(*log)
	return &copied, nil
}

func (s *LogRepoStub) list(userID uint, publicOnly bool) []models.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := []models.Log{}
	for _, log := range s.logs {
		if log.UserID != userID {
			continue
		}
		if publicOnly && !log.IsPublic {
			continue
		}
		results = append(results, s.withItem(*log))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results
}

func (s *LogRepoStub) ListByUser(_ context.Context, userID uint) ([]models.Log, error) {
	return s.list(userID, false), nil
}

func (s *LogRepoStub) ListPublicByUser(_ context.Context, userID uint) ([]models.Log, error) {
	return s.list(userID, true), nil
}

func (s *LogRepoStub) Create(_ context.Context, log *models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log.ID == 0 {
		log.ID = s.nextID
		s.nextID++
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	copied := *log
	s.logs[log.ID] = &copied
	return nil
}

func (s *LogRepoStub) Update(_ context.Context, log *models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[log.ID]; !ok {
		return models.NewNotFoundError("Log", log.ID)
	}
	copied := *log
	s.logs[log.ID] = &copied
	return nil
}

func (s *LogRepoStub) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, id)
	return nil
}

// BlobStoreStub records uploads in memory and returns deterministic URLs.
type BlobStoreStub struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

// NewBlobStoreStub creates an in-memory blob store stub for tests.
func NewBlobStoreStub() *BlobStoreStub {
	return &BlobStoreStub{Objects: make(map[string][]byte)}
}

func (s *BlobStoreStub) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = data
	return "https://blobs.test/" + key, nil
}

// SenderStub records magic link emails instead of delivering them.
type SenderStub struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

// SentMail is one recorded magic link email.
type SentMail struct {
	To   string
	Link string
}

func (s *SenderStub) SendMagicLink(_ context.Context, to, link string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentMail{To: to, Link: link})
	return nil
}

// TokenStoreStub keeps magic link tokens in a map.
type TokenStoreStub struct {
	mu       sync.Mutex
	Tokens   map[string]string
	StoreErr error
}

// NewTokenStoreStub creates an in-memory token store stub for tests.
func NewTokenStoreStub() *TokenStoreStub {
	return &TokenStoreStub{Tokens: make(map[string]string)}
}

func (s *TokenStoreStub) Store(_ context.Context, token, email string, _ time.Duration) error {
	if s.StoreErr != nil {
		return s.StoreErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tokens[token] = email
	return nil
}

func (s *TokenStoreStub) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.Tokens[token]
	if !ok {
		return "", cache.ErrTokenNotFound
	}
	delete(s.Tokens, token)
	return email, nil
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func containsFold(haystack, needle string) bool {
	return bytes.Contains(bytes.ToLower([]byte(haystack)), bytes.ToLower([]byte(needle)))
}
