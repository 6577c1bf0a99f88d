package txref

import (
	"strings"

	"github.com/google/uuid"
)

// Generator выдает уникальные платежные референсы для депозитов.
// Референс человекочитаемый: верхний регистр, без дефисов,
// например "9F2B4C1A7D3E4F5A8B6C0D1E2F3A4B5C".
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// NewRef возвращает новый уникальный референс
func (g *Generator) NewRef() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw)
}
