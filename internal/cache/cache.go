package cache

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Идентификатор сессии не должен содержать разделитель ключей и символы шаблонов
var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{0,128}$`)

// Cache хранит сгенерированные артефакты (xlsx, pdf) между запросами.
// Вытеснение управляется вызывающим кодом через Delete и DeletePrefix
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Key строит ключ артефакта в рамках сессии: session:kind:code
func Key(session, kind, lotCode string) string {
	return strings.Join([]string{SessionPrefix(session), kind, lotCode}, ":")
}

// ValidSession сообщает, можно ли использовать идентификатор в ключах кэша.
// Пустой идентификатор допустим и означает анонимную сессию
func ValidSession(session string) bool {
	return sessionPattern.MatchString(session)
}

// SessionPrefix возвращает общий префикс ключей сессии
func SessionPrefix(session string) string {
	if session == "" {
		session = "anonymous"
	}
	return "session:" + session
}
