package token

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator выдаёт непредсказуемые токены отмены.
// uuid.NewRandom использует crypto/rand (122 случайных бита).
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate возвращает новый токен без дефисов (32 hex-символа)
func (g *Generator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("token: generate: %w", err)
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}
